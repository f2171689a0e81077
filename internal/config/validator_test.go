package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/buildcond/internal/errors"
)

func TestValidator_DefaultConfigIsValid(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(DefaultConfig()))
}

func TestValidator_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BuildConfig)
		field  string
	}{
		{
			name:   "unknown log level",
			mutate: func(c *BuildConfig) { c.LogLevel = "trace" },
			field:  "logLevel",
		},
		{
			name:   "namespace with dash",
			mutate: func(c *BuildConfig) { c.Namespace = "my-app" },
			field:  "namespace",
		},
		{
			name:   "uppercase fsNamespace",
			mutate: func(c *BuildConfig) { c.FsNamespace = "MyApp" },
			field:  "fsNamespace",
		},
		{
			name:   "empty distDir",
			mutate: func(c *BuildConfig) { c.DistDir = "" },
			field:  "distDir",
		},
	}

	v, err := NewValidator()
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := v.Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrValidation))

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			fields := make([]string, 0, len(verrs))
			for _, e := range verrs {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidator_ValidateFile(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "buildcond.yaml")
		require.NoError(t, os.WriteFile(path, []byte("namespace: Shop\nlogLevel: debug\n"), 0o644))

		cfg, err := v.ValidateFile(path)
		require.NoError(t, err)
		assert.Equal(t, "shop", cfg.FsNamespace)
	})

	t.Run("invalid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "buildcond.yaml")
		require.NoError(t, os.WriteFile(path, []byte("logLevel: loud\n"), 0o644))

		_, err := v.ValidateFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logLevel")
	})
}

func TestValidationErrors_Error(t *testing.T) {
	assert.Equal(t, "no validation errors", ValidationErrors{}.Error())

	errs := ValidationErrors{{Field: "logLevel", Message: "bad"}}
	assert.Contains(t, errs.Error(), "logLevel: bad")
}
