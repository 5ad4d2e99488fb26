package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/videoclub-api/pkg/config"
	"github.com/jhoicas/videoclub-api/pkg/logger"
)

func TestRun_SinBaseDeDatosDevuelveError(t *testing.T) {
	cfg := &config.Config{
		DB: config.DBConfig{
			Host: "127.0.0.1", Port: 1, User: "app", DBName: "movie_rental", SSLMode: "disable",
			MaxConns: 1,
		},
		Rental: config.RentalConfig{Location: time.UTC},
	}

	n, err := run(cfg, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conexión a PostgreSQL")
	assert.Zero(t, n)
}
