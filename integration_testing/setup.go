//go:build integration_test || all_tests

package integration_testing

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/2beens/mesocycles/internal"
	"github.com/2beens/mesocycles/internal/config"
	"github.com/2beens/mesocycles/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const (
	serverPort = 9100
	serverHost = "127.0.0.1"
	dbName     = "mesocycles"
)

var serverEndpoint = fmt.Sprintf("http://%s:%d", serverHost, serverPort)

type env struct {
	dbPool     *pgxpool.Pool
	dockerPool *dockertest.Pool
	server     *internal.Server
	teardown   []func()
}

func newEnv(ctx context.Context) (*env, error) {
	e := &env{
		teardown: make([]func(), 0),
	}

	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	var err error
	e.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not create new dockertest pool: %w", err)
	}

	// uses pool to try to connect to Docker
	if err = e.dockerPool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping dockertest pool: %w", err)
	}

	redisPort, err := e.redisSetup()
	if err != nil {
		e.cleanup()
		return nil, fmt.Errorf("failed to setup redis: %w", err)
	}

	pgPort, err := e.postgresSetup(ctx)
	if err != nil {
		e.cleanup()
		return nil, fmt.Errorf("failed to setup postgres: %w", err)
	}

	cfg := getTestConfig(redisPort, pgPort)
	e.server, err = internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             "test-version-info",
			RedisPassword:           "",
			HoneycombTracingEnabled: false,
			RunMigrations:           true,
		},
	)
	if err != nil {
		e.cleanup()
		return nil, fmt.Errorf("new server: %w", err)
	}

	e.server.Serve(ctx, cfg.Host, cfg.Port)

	return e, nil
}

func (e *env) cleanup() {
	if e.server != nil {
		e.server.GracefulShutdown()
	}
	if e.dbPool != nil {
		e.dbPool.Close()
	}
	for _, teardown := range e.teardown {
		teardown()
	}
}

func getTestConfig(redisPort, postgresPort string) *config.Config {
	return &config.Config{
		Host:                   serverHost,
		Port:                   serverPort,
		Environment:            "development",
		Store:                  config.StorePostgres,
		RedisHost:              "localhost",
		RedisPort:              redisPort,
		PostgresPort:           postgresPort,
		PostgresHost:           "localhost",
		PostgresDBName:         dbName,
		PrometheusMetricsHost:  serverHost,
		PrometheusMetricsPort:  "9101",
		RateLimitAllowedPerMin: 600,
		AllowedOrigins:         []string{"*"},
		ExerciseCacheSizeMB:    1,
	}
}

func (e *env) redisSetup() (string, error) {
	redisResource, err := e.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "6.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		return "", fmt.Errorf("run redis: %w", err)
	}

	e.teardown = append(e.teardown, func() {
		if err := redisResource.Close(); err != nil {
			log.Printf("close redis resource: %s", err)
		}
	})

	return redisResource.GetPort("6379/tcp"), nil
}

func (e *env) postgresSetup(ctx context.Context) (string, error) {
	pgResource, err := e.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "12",
		Env: []string{
			"POSTGRES_HOST_AUTH_METHOD=trust",
			"POSTGRES_DB=" + dbName,
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return "", fmt.Errorf("dockerpool run postgres: %w", err)
	}

	e.teardown = append(e.teardown, func() {
		if err := pgResource.Close(); err != nil {
			log.Printf("close postgres resource: %s", err)
		}
	})

	pgPort := pgResource.GetPort("5432/tcp")
	e.dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost: "localhost",
		DBPort: pgPort,
		DBName: dbName,
	})
	if err != nil {
		return "", fmt.Errorf("new db pool: %w", err)
	}

	e.dockerPool.MaxWait = time.Minute
	if err := e.dockerPool.Retry(func() error {
		return e.dbPool.Ping(ctx)
	}); err != nil {
		return "", fmt.Errorf("ping db: %w", err)
	}

	return pgPort, nil
}
