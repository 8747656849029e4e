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
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/2beens/mesocycles/internal/cache"
	"github.com/2beens/mesocycles/internal/config"
	"github.com/2beens/mesocycles/internal/db"
	"github.com/2beens/mesocycles/internal/middleware"
	"github.com/2beens/mesocycles/internal/misc"
	"github.com/2beens/mesocycles/internal/telemetry/metrics"
	"github.com/2beens/mesocycles/internal/telemetry/tracing"
	"github.com/2beens/mesocycles/internal/training"
	"github.com/2beens/mesocycles/internal/training/catalog"
	"github.com/2beens/mesocycles/internal/training/mesocycles"
	"github.com/2beens/mesocycles/internal/training/planmod"
	"github.com/2beens/mesocycles/internal/training/storage/memory"
	"github.com/2beens/mesocycles/internal/training/storage/postgres"
	"github.com/2beens/mesocycles/internal/training/workouts"
)

const currentWeekRefreshInterval = time.Hour

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool
	store  training.Store
	clock  training.Clock

	redisClient *redis.Client

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
	RunMigrations           bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	s := &Server{
		config:      cfg,
		versionInfo: params.VersionInfo,
		clock:       training.SystemClock,
	}

	var pgxpoolCollector prometheus.Collector
	switch cfg.Store {
	case config.StorePostgres:
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}

		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}

		if params.RunMigrations {
			if err := db.RunMigrations(ctx, dbPool); err != nil {
				dbPool.Close()
				return nil, fmt.Errorf("run migrations: %w", err)
			}
		}

		s.dbPool = dbPool
		s.store = postgres.NewStore(dbPool)
		pgxpoolCollector = pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		)
	case config.StoreMemory:
		log.Warnln("using in-memory store, all data is lost on restart")
		s.store = memory.NewStore()
	default:
		return nil, fmt.Errorf("unknown store: %s", cfg.Store)
	}

	s.promRegistry = metrics.SetupPrometheus(pgxpoolCollector)
	s.metricsManager = metrics.NewManager("mesocycles", "main", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	if cfg.RedisHost != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})

		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
		s.redisClient = rdb
	} else {
		log.Debugln("redis host not set, rate limiting disabled")
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "mesocycles-engine", s.redisClient)
	if err != nil {
		return nil, err
	}
	s.otelShutdown = otelShutdown

	return s, nil
}

func (s *Server) routerSetup() (*mux.Router, *mesocycles.Service) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	exerciseCache := cache.NewExerciseCache(s.store.Exercises(), s.config.ExerciseCacheSizeMB, time.Hour)

	catalogHandler := catalog.NewHandler(catalog.NewService(s.store, exerciseCache))
	catalogHandler.SetupRoutes(r)

	mesocycleService := mesocycles.NewService(s.store, s.metricsManager)
	mesocycles.NewHandler(mesocycleService, s.clock).SetupRoutes(r)

	workoutsHandler := workouts.NewHandler(
		workouts.NewService(s.store, exerciseCache, s.metricsManager, s.clock),
		workouts.NewSetService(s.store, s.metricsManager, s.clock),
	)
	workoutsHandler.SetupRoutes(r)

	planmod.NewHandler(planmod.NewEngine(s.store, exerciseCache, s.metricsManager)).SetupRoutes(r)

	// keep the interface nil when running on the memory store
	var dbPinger misc.DBPinger
	if s.dbPool != nil {
		dbPinger = s.dbPool
	}
	misc.NewHandler(s.versionInfo, s.config.Store, dbPinger, s.redisClient).SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.RequestID())
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	if s.redisClient != nil {
		r.Use(middleware.RateLimit(
			redis_rate.NewLimiter(s.redisClient),
			"main-router",
			s.config.RateLimitAllowedPerMin,
			s.metricsManager,
		))
	}
	r.Use(middleware.LimitAndDrainRequest(middleware.DefaultMaxRequestBodyBytes))

	return r, mesocycleService
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, mesocycleService := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
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

	go s.refreshCurrentWeekLoop(ctx, mesocycleService)

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// refreshCurrentWeekLoop moves the current week of the active mesocycle
// forward as the calendar goes.
func (s *Server) refreshCurrentWeekLoop(ctx context.Context, mesocycleService *mesocycles.Service) {
	refresh := func() {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		active, err := mesocycleService.GetActive(ctx)
		if err != nil {
			if !errors.Is(err, training.ErrNotFound) {
				log.Errorf("refresh current week, get active mesocycle: %s", err)
			}
			return
		}
		if _, err := mesocycleService.RefreshCurrentWeek(ctx, active.ID, s.clock()); err != nil {
			log.Errorf("refresh current week of mesocycle [%d]: %s", active.ID, err)
		}
	}

	ticker := time.NewTicker(currentWeekRefreshInterval)
	defer ticker.Stop()

	refresh()
	for {
		select {
		case <-ctx.Done():
			log.Debugln("current week refresh loop stopped")
			return
		case <-ticker.C:
			refresh()
		}
	}
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	var errs error
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("close redis client: %w", err))
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

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("shutdown metrics http server: %w", err))
		}
		log.Warnln("metrics server shut down")
	}

	for _, err := range multierr.Errors(errs) {
		log.Errorf(" >>> graceful shutdown: %s", err)
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
