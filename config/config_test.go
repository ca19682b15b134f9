package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetEnvInt(t *testing.T) {
	const key = "SNAKE_TEST_INT"
	defer os.Unsetenv(key)

	require.Equal(t, 7, getEnvInt(key, 7))

	os.Setenv(key, "12")
	require.Equal(t, 12, getEnvInt(key, 7))

	os.Setenv(key, "twelve")
	require.Equal(t, 7, getEnvInt(key, 7))
}

func TestGetEnvMillis(t *testing.T) {
	const key = "SNAKE_TEST_MS"
	defer os.Unsetenv(key)

	require.Equal(t, 100*time.Millisecond, getEnvMillis(key, 100))
	os.Setenv(key, "30")
	require.Equal(t, 30*time.Millisecond, getEnvMillis(key, 100))
}
