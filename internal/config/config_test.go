package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCSV(t *testing.T) {
	assert.Nil(t, parseCSV(""))
	assert.Nil(t, parseCSV("   "))
	assert.Equal(t, []string{"http://localhost:5173"}, parseCSV("http://localhost:5173"))
	assert.Equal(t,
		[]string{"http://localhost:5173", "https://tca.example.com"},
		parseCSV(" http://localhost:5173 , https://tca.example.com ,"))
}

func TestEnvOrInt(t *testing.T) {
	t.Setenv("TCA_TEST_INT", "30")
	assert.Equal(t, 30, envOrInt("TCA_TEST_INT", 5))

	t.Setenv("TCA_TEST_INT", "no-numérico")
	assert.Equal(t, 5, envOrInt("TCA_TEST_INT", 5))

	t.Setenv("TCA_TEST_INT", "")
	assert.Equal(t, 5, envOrInt("TCA_TEST_INT", 5))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tca")
	t.Setenv("JWT_SECRET", "clave")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("METRICS_SAMPLE_INTERVAL", "")

	cfg := Load()
	assert.Equal(t, "tca", cfg.JWTIssuer)
	assert.Equal(t, int64(14400), cfg.AccessTTLSeconds)
	assert.Equal(t, 587, cfg.EmailPort)
	assert.Equal(t, 5, cfg.MetricsSampleSeconds)
	assert.Nil(t, cfg.CorsOrigins)
}

func TestLoadClampsSampleInterval(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tca")
	t.Setenv("JWT_SECRET", "clave")

	t.Setenv("METRICS_SAMPLE_INTERVAL", "0")
	assert.Equal(t, 1, Load().MetricsSampleSeconds)

	t.Setenv("METRICS_SAMPLE_INTERVAL", "-3")
	assert.Equal(t, 1, Load().MetricsSampleSeconds)
}
