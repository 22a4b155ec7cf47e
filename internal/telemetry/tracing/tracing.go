package tracing

import (
	"go.opentelemetry.io/otel"

	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
)

var GlobalTracer = otel.Tracer("portfolio-gateway")

// HoneycombSetup configures the OpenTelemetry SDK via the honeycomb distro.
// The returned function shuts the tracing pipeline down.
func HoneycombSetup(tracingEnabled bool, serviceName string) (func(), error) {
	if !tracingEnabled {
		log.Debugln("tracing disabled, otel setup skipped")
		return func() {}, nil
	}

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(serviceName),
	)
	if err != nil {
		return nil, err
	}

	log.Debugf("otel tracing set up for service: %s", serviceName)

	return otelShutdown, nil
}
