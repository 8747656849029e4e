package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDBPool_Config(t *testing.T) {
	pool, err := NewDBPool(context.Background(), NewDBPoolParams{
		DBHost:   "localhost",
		DBPort:   "5432",
		DBName:   "mesocycles",
		MaxConns: 7,
	})
	require.NoError(t, err)
	defer pool.Close()

	cfg := pool.Config()
	assert.Equal(t, int32(7), cfg.MaxConns)
	assert.Equal(t, healthCheckPeriod, cfg.HealthCheckPeriod)
	assert.Equal(t, "mesocycles", cfg.ConnConfig.Database)
	assert.Equal(t, applicationName, cfg.ConnConfig.RuntimeParams["application_name"])
	assert.Nil(t, cfg.ConnConfig.Tracer)
}

func TestNewDBPool_BadPort(t *testing.T) {
	_, err := NewDBPool(context.Background(), NewDBPoolParams{
		DBHost: "localhost",
		DBPort: "not-a-port",
		DBName: "mesocycles",
	})
	assert.Error(t, err)
}
