package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "App", cfg.Namespace)
	assert.Equal(t, "app", cfg.FsNamespace)
	assert.Equal(t, LogLevelInfo, cfg.LogLevel)
	assert.Equal(t, "www/build", cfg.DistDir)
	assert.False(t, cfg.DevMode)
	assert.False(t, cfg.Target.LazyLoad)
}

func TestWithDefaults(t *testing.T) {
	t.Run("fills empty fields", func(t *testing.T) {
		cfg := (&BuildConfig{}).WithDefaults()

		assert.Equal(t, "App", cfg.Namespace)
		assert.Equal(t, "app", cfg.FsNamespace)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "www/build", cfg.DistDir)
	})

	t.Run("derives fsNamespace from namespace", func(t *testing.T) {
		cfg := (&BuildConfig{Namespace: "MyApp"}).WithDefaults()
		assert.Equal(t, "myapp", cfg.FsNamespace)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		cfg := (&BuildConfig{
			Namespace:   "MyApp",
			FsNamespace: "my-app",
			LogLevel:    "DEBUG",
			DistDir:     "dist",
		}).WithDefaults()

		assert.Equal(t, "my-app", cfg.FsNamespace)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "dist", cfg.DistDir)
		assert.True(t, cfg.IsDebug())
	})
}
