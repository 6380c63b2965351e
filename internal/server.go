package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/elitestar/bookings-web/internal/account"
	"github.com/elitestar/bookings-web/internal/activity"
	"github.com/elitestar/bookings-web/internal/api"
	"github.com/elitestar/bookings-web/internal/auth"
	"github.com/elitestar/bookings-web/internal/bookings"
	"github.com/elitestar/bookings-web/internal/celebs"
	"github.com/elitestar/bookings-web/internal/config"
	"github.com/elitestar/bookings-web/internal/db"
	"github.com/elitestar/bookings-web/internal/guard"
	"github.com/elitestar/bookings-web/internal/middleware"
	"github.com/elitestar/bookings-web/internal/misc"
	"github.com/elitestar/bookings-web/internal/telemetry/metrics"
	"github.com/elitestar/bookings-web/internal/telemetry/tracing"
	"github.com/elitestar/bookings-web/internal/view"
	"github.com/elitestar/bookings-web/pkg"
)

const (
	sessionsCleanupInterval = 8 * time.Hour
	defaultLoginsPerMin     = 15
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	apiClient   *api.Client
	activity    activity.Recorder
	registry    *auth.RedisRegistry
	authFactory *auth.Factory
	rateLimiter middleware.RequestRateLimiter
	renderer    *view.Renderer
	validator   *pkg.Validator

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config      *config.Config
	Secrets     *config.Secrets
	VersionInfo string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	secrets := params.Secrets

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: secrets.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(secrets.HoneycombEnabled, "elitestar-web", rdb)
	if err != nil {
		return nil, fmt.Errorf("honeycomb setup: %w", err)
	}

	var (
		dbPool         *pgxpool.Pool
		recorder       activity.Recorder = activity.NoopRecorder{}
		extraCollector []prometheus.Collector
	)
	if cfg.ActivityEnabled {
		dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBPassword:     secrets.PostgresPassword,
			TracingEnabled: secrets.HoneycombEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}

		activityRepo := activity.NewRepo(dbPool)
		if err := activityRepo.EnsureSchema(ctx); err != nil {
			log.Errorf("ensure activity schema: %s", err)
		}
		recorder = activityRepo

		extraCollector = append(extraCollector, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}

	promRegistry := metrics.SetupPrometheus(extraCollector...)
	metricsManager := metrics.NewManager("elitestar", "web", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	apiClient := api.NewClient(api.ClientParams{
		BaseURL:  cfg.APIBaseURL,
		Timeout:  cfg.APITimeout(),
		CacheMB:  cfg.APICacheSizeMB,
		CacheTTL: time.Duration(cfg.APICacheTTLSeconds) * time.Second,
		Metrics:  metricsManager,
	})

	var verifier auth.Verifier = apiClient
	if cfg.AuthMode == config.AuthModeLocal {
		if secrets.AdminPasswordHash == "" {
			return nil, errors.New("auth_mode local needs ELITESTAR_ADMIN_PASSWORD_HASH")
		}
		verifier = auth.NewAdminVerifier(secrets.AdminUsername, secrets.AdminPasswordHash)
	}

	registry := auth.NewRedisRegistry(cfg.SessionTTL(), rdb)

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("new renderer: %w", err)
	}
	validator, err := api.NewFormValidator()
	if err != nil {
		return nil, fmt.Errorf("new form validator: %w", err)
	}

	return &Server{
		config:      cfg,
		versionInfo: params.VersionInfo,
		dbPool:      dbPool,
		redisClient: rdb,

		apiClient: apiClient,
		activity:  recorder,
		registry:  registry,
		authFactory: &auth.Factory{
			Codec:        auth.NewJWTCodec(secrets.SessionSecret, cfg.SessionTTL()),
			Verifier:     verifier,
			Registry:     registry,
			CookieName:   auth.DefaultCookieName,
			CookieSecure: cfg.CookieSecure,
			TTL:          cfg.SessionTTL(),
		},
		rateLimiter: redis_rate.NewLimiter(rdb),
		renderer:    renderer,
		validator:   validator,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("elitestar-web"))

	// authenticated pages, and admin pages layered inside them
	authRouter := r.NewRoute().Subrouter()
	authRouter.Use(guard.Middleware(guard.Rule{RedirectTo: "/login"}, s.metricsManager))
	adminRouter := authRouter.NewRoute().Subrouter()
	adminRouter.Use(guard.Middleware(guard.Rule{RedirectTo: "/", RequireAdmin: true}, s.metricsManager))

	miscHandler, err := misc.NewHandler(s.apiClient, s.renderer, s.versionInfo)
	if err != nil {
		return nil, fmt.Errorf("misc handler: %w", err)
	}
	miscHandler.SetupRoutes(r)

	loginsPerMin := s.config.LoginRateLimitPerMin
	if loginsPerMin <= 0 {
		loginsPerMin = defaultLoginsPerMin
	}
	accountHandler := account.NewHandler(s.activity, s.apiClient, s.renderer, s.metricsManager)
	accountHandler.SetupRoutes(r, authRouter, s.rateLimiter, loginsPerMin, s.metricsManager)

	celebsHandler := celebs.NewHandler(s.apiClient, s.activity, s.renderer, s.validator, s.metricsManager)
	celebsHandler.SetupRoutes(r, adminRouter)

	bookingsHandler := bookings.NewHandler(s.apiClient, s.activity, s.renderer)
	bookingsHandler.SetupRoutes(adminRouter)

	// all the rest - unhandled paths
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s.renderer.Error(w, req, http.StatusNotFound, "Page not found.")
	}).Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Session(s.authFactory))
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	s.checkRemoteAPI(ctx)

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
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
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	go s.cleanSessions(ctx, sessionsCleanupInterval)

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// checkRemoteAPI logs whether the remote API answers. The server starts either way.
func (s *Server) checkRemoteAPI(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.apiClient.Healthcheck(ctx); err != nil {
		log.Errorf("remote api [%s] healthcheck failed: %s", s.config.APIBaseURL, err)
		return
	}
	log.Infof("remote api [%s] is up", s.config.APIBaseURL)
}

// cleanSessions drops expired entries from the session registry until ctx is done.
func (s *Server) cleanSessions(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := s.registry.ScanAndClean(ctx)
			s.metricsManager.CounterSessionsCleaned.Add(float64(removed))
			log.Debugf("session registry cleanup removed %d entries", removed)
		}
	}
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
