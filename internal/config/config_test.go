package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("FEEDLOT_TEST_KEY", "value")
	require.Equal(t, "value", getEnv("FEEDLOT_TEST_KEY", "fallback"))
	require.Equal(t, "fallback", getEnv("FEEDLOT_TEST_MISSING", "fallback"))
}

func TestGetEnvFloat(t *testing.T) {
	require.Equal(t, -1.0, getEnvFloat("FEEDLOT_TEST_FLOAT_MISSING", -1.0))

	t.Setenv("FEEDLOT_TEST_FLOAT", "2.5")
	require.Equal(t, 2.5, getEnvFloat("FEEDLOT_TEST_FLOAT", -1.0))
}

func TestLoad_ThresholdDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

	cfg := Load()
	require.Equal(t, -1.0, cfg.WeighingDropLimit)
	require.Equal(t, 3.0, cfg.WeighingSpikeLimit)
}
