package internal

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/chukwumaoranu/portfolio-gw/internal/auth"
	"github.com/chukwumaoranu/portfolio-gw/internal/config"
	"github.com/chukwumaoranu/portfolio-gw/internal/contact"
	"github.com/chukwumaoranu/portfolio-gw/internal/instrumentation"
	"github.com/chukwumaoranu/portfolio-gw/internal/middleware"
	"github.com/chukwumaoranu/portfolio-gw/internal/profiles"
	"github.com/chukwumaoranu/portfolio-gw/internal/projects"
	"github.com/chukwumaoranu/portfolio-gw/internal/session"
	"github.com/chukwumaoranu/portfolio-gw/internal/site"
	"github.com/chukwumaoranu/portfolio-gw/internal/technologies"
	"github.com/chukwumaoranu/portfolio-gw/internal/telemetry/tracing"
	"github.com/chukwumaoranu/portfolio-gw/internal/upstream"
	"github.com/chukwumaoranu/portfolio-gw/internal/users"
	"github.com/chukwumaoranu/portfolio-gw/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config         *config.Config
	upstreamClient *upstream.Client
	redisClient    *redis.Client
	rateLimiter    middleware.RequestRateLimiter

	authService *auth.Service

	projectsService     *projects.Service
	profilesService     *profiles.Service
	technologiesService *technologies.Service
	usersService        *users.Service
	contactService      *contact.Service
	siteService         *site.Service

	// telemetry
	instr        *instrumentation.Instrumentation
	promRegistry *prometheus.Registry
	otelShutdown func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	promRegistry := prometheus.NewRegistry()
	instr := instrumentation.NewInstrumentationWithRegisterer("gateway", "main", promRegistry)
	instr.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "portfolio-gateway")
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   time.Duration(params.Config.UpstreamTimeoutMs) * time.Millisecond,
	}

	sessionStore := session.NewRedisStore(rdb)
	upstreamClient := upstream.NewClient(
		params.Config.UpstreamBaseURL,
		tracedHttpClient,
		func(ctx context.Context) (string, bool) {
			return sessionStore.Token(ctx)
		},
	)
	upstreamClient.SetErrorHook(instr.CounterUpstreamErrors.Inc)

	authService := auth.NewService(sessionStore, auth.NewAPI(upstreamClient), instr)
	contactService := contact.NewService(upstreamClient, instr)

	s := &Server{
		config:         params.Config,
		versionInfo:    params.VersionInfo,
		upstreamClient: upstreamClient,
		redisClient:    rdb,
		rateLimiter:    redis_rate.NewLimiter(rdb),

		authService: authService,

		projectsService:     projects.NewService(upstreamClient),
		profilesService:     profiles.NewService(upstreamClient),
		technologiesService: technologies.NewService(upstreamClient),
		usersService:        users.NewService(upstreamClient),
		contactService:      contactService,
		siteService: site.NewService(
			upstreamClient,
			contactService,
			params.Config.SiteCacheExpireSeconds,
		),

		// telemetry
		instr:        instr,
		promRegistry: promRegistry,
		otelShutdown: otelShutdown,
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("gateway-router"))

	siteHandler := site.NewHandler(s.siteService)
	siteHandler.SetupRoutes(r.PathPrefix("/site").Subrouter())

	authHandler := auth.NewHandler(s.authService, auth.CookieParams{
		Domain: s.config.CookieDomain,
		Secure: s.config.CookieSecure,
	})
	authRouter := r.PathPrefix("/admin").Subrouter()
	authHandler.SetupRoutes(authRouter)
	authRouter.Use(middleware.RateLimit(
		s.rateLimiter,
		"admin-auth",
		s.config.LoginRateLimitAllowedPerMin,
	))

	adminApiRouter := r.PathPrefix("/admin/api").Subrouter()
	adminApiRouter.Use(middleware.Guard(s.authService))

	projects.NewHandler(s.projectsService).
		SetupRoutes(adminApiRouter.PathPrefix("/projects").Subrouter())
	profiles.NewHandler(s.profilesService).
		SetupRoutes(adminApiRouter.PathPrefix("/profiles").Subrouter())
	technologies.NewHandler(s.technologiesService).
		SetupRoutes(adminApiRouter.PathPrefix("/technologies").Subrouter())
	users.NewHandler(s.usersService).
		SetupRoutes(adminApiRouter.PathPrefix("/users").Subrouter())
	contact.NewHandler(s.contactService).
		SetupRoutes(adminApiRouter.PathPrefix("/contacts").Subrouter())

	// admin pages themselves are rendered by the frontend, the gateway
	// only routes them through the edge gate
	r.PathPrefix("/admin/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Name("admin-unknown")

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, "I'm OK, thanks")
	}).Methods("GET", "OPTIONS").Name("root")

	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(s.versionInfo))
	}).Methods("GET").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	edgeGate := middleware.NewEdgeGateHandler(s.authService)

	r.Use(middleware.PanicRecovery(s.instr))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.instr))
	r.Use(middleware.Cors())
	r.Use(edgeGate.Gate())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(_ context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("gateway service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.instr.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.instr.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.instr.GaugeRequests.Add(1)
	case http.StateClosed:
		s.instr.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
