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
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/2beens/gymlogger/internal/cache"
	"github.com/2beens/gymlogger/internal/config"
	"github.com/2beens/gymlogger/internal/db"
	"github.com/2beens/gymlogger/internal/gymlog/calendar"
	"github.com/2beens/gymlogger/internal/gymlog/exercises"
	"github.com/2beens/gymlogger/internal/gymlog/logs"
	"github.com/2beens/gymlogger/internal/gymlog/progress"
	"github.com/2beens/gymlogger/internal/gymlog/schedule"
	"github.com/2beens/gymlogger/internal/gymlog/settings"
	"github.com/2beens/gymlogger/internal/middleware"
	"github.com/2beens/gymlogger/internal/telemetry/metrics"
	"github.com/2beens/gymlogger/internal/telemetry/tracing"
	"github.com/2beens/gymlogger/pkg"
)

const healthPath = "/health"

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	apiTokenHash      string
	versionInfo       string

	config        *config.Config
	store         *db.Store
	dbPool        *pgxpool.Pool
	calendar      *calendar.Calendar
	progressCache *cache.FreeCache

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	PostgresUser            string
	PostgresPassword        string
	APITokenHash            string
	VersionInfo             string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "gymlogger")
	if err != nil {
		return nil, err
	}

	store := db.NewStore(db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	dbPool, err := store.Pool(ctx)
	if err != nil {
		otelShutdown()
		return nil, fmt.Errorf("open store: %w", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("gymlog", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	return &Server{
		apiTokenHash:  params.APITokenHash,
		versionInfo:   params.VersionInfo,
		config:        params.Config,
		store:         store,
		dbPool:        dbPool,
		calendar:      calendar.New(params.Config.Location(), nil),
		progressCache: cache.NewFreeCache(params.Config.ProgressCacheSizeMB),

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("gymlog-router"))

	exercisesRepo := exercises.NewRepo(s.dbPool)
	exercisesService := exercises.NewService(exercisesRepo, s.progressCache)
	exercises.NewHandler(exercisesService).SetupRoutes(r)

	logsService := logs.NewService(
		logs.NewRepo(s.dbPool, s.calendar),
		exercisesRepo,
		s.calendar,
		s.metricsManager,
		s.progressCache,
	)
	logs.NewHandler(logsService, logs.SessionOptions{
		AutoProgression: s.config.AutoProgressionEnabled(),
		CeilingReps:     s.config.ProgressionCeilingReps,
	}).SetupRoutes(r)

	progressService := progress.NewService(
		logs.NewRepo(s.dbPool, s.calendar),
		exercisesRepo,
		s.calendar,
		s.progressCache,
		s.config.ProgressCacheTTL(),
		s.metricsManager,
	)
	progress.NewHandler(progressService).SetupRoutes(r)

	settingsService := settings.NewService(settings.NewRepo(s.dbPool))
	settings.NewHandler(settingsService).SetupRoutes(r)

	schedule.NewHandler(
		schedule.NewService(exercisesService, settingsService, s.calendar),
	).SetupRoutes(r)

	r.HandleFunc(healthPath, s.handleHealth).Methods("GET").Name("health")

	// all the rest - unhandled paths
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.apiTokenHash, healthPath)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if s.dbPool != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.dbPool.Ping(ctx); err != nil {
			log.Errorf("health: ping db: %s", err)
			status = "db unavailable"
		}
	}
	pkg.WriteTextResponseOK(w, fmt.Sprintf("%s [%s]", status, s.versionInfo))
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		"metrics",
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

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", shutdownErr))
		}
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		if shutdownErr := s.metricsHttpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown metrics http server: %w", shutdownErr))
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.store != nil {
		log.Debugln("closing db pool ...")
		s.store.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return err
}
