package middleware

import (
	"net/http"

	"github.com/chukwumaoranu/portfolio-gw/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-Id"

// LogRequest tags each request with an id and traces it. The id is echoed
// back in the response so upstream failures can be matched to log lines.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, reqID)

			userIP, err := pkg.ReadUserIP(r)
			if err != nil {
				userIP = r.RemoteAddr
			}

			log.Tracef(" ====> request [%s] path: [%s] [id: %s] [ip: %s] [UA: %s]",
				r.Method, r.URL.Path, reqID, userIP, r.Header.Get("User-Agent"))

			next.ServeHTTP(w, r)
		})
	}
}
