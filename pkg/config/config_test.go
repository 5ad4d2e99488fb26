package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir cambia el directorio de trabajo y lo restaura al terminar el test
// (equivalente a testing.T.Chdir, disponible solo desde Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_ValoresPorDefecto(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.True(t, cfg.Rental.LateFeePerDay.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, 0, cfg.Rental.MaxDays)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
	assert.Equal(t, int32(1), cfg.DB.MinConns)
	assert.Equal(t, time.Hour, cfg.DB.MaxConnLifetime)
}

func TestLoad_EnvSobrescribe(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("RENTAL_LATE_FEE_PER_DAY", "1.50")
	t.Setenv("RENTAL_TIMEZONE", "America/Bogota")
	t.Setenv("RENTAL_MAX_DAYS", "14")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORE_NAME", "Videoclub Central")
	t.Setenv("DB_MAX_CONNS", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Rental.LateFeePerDay.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, "America/Bogota", cfg.Rental.Location.String())
	assert.Equal(t, 14, cfg.Rental.MaxDays)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "Videoclub Central", cfg.App.StoreName)
	assert.Equal(t, int32(4), cfg.DB.MaxConns)
}

func TestLoad_ValoresInvalidos(t *testing.T) {
	cases := map[string]string{
		"RENTAL_LATE_FEE_PER_DAY": "dos",
		"RENTAL_TIMEZONE":         "Marte/Olympus",
		"RENTAL_MAX_DAYS":         "-3",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(key, val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "movie_rental", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/movie_rental?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}

func TestLoad_RecargoCeroPermitido(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("RENTAL_LATE_FEE_PER_DAY", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Rental.LateFeePerDay.IsZero())
}
