package cmdutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/opmodel/buildcond/internal/config"
	oerrors "github.com/opmodel/buildcond/internal/errors"
	"github.com/opmodel/buildcond/internal/output"
)

// GlobalConfig holds CLI-wide settings resolved during PersistentPreRunE.
// It is populated once at startup and shared by every sub-command.
type GlobalConfig struct {
	// ConfigPath is the resolved --config path and where it came from.
	ConfigPath config.ResolveConfigPathResult

	// Verbose is the --verbose flag.
	Verbose bool
}

// LoadBuildConfig loads the build configuration with viper and validates it
// against the embedded schema. A missing default config file yields the
// defaults; a missing file named by --config or BUILDCOND_CONFIG is an error.
//
// Validation failures are printed to errOut and returned as a printed *ExitError.
func LoadBuildConfig(g *GlobalConfig, errOut io.Writer) (*config.BuildConfig, error) {
	path := g.ConfigPath.ConfigPath

	if g.ConfigPath.Source != config.SourceDefault {
		exists, err := config.FileExists(path)
		if err != nil {
			return nil, &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("checking config file: %w", err)}
		}
		if !exists {
			return nil, &oerrors.ExitError{
				Code: oerrors.ExitNotFound,
				Err:  fmt.Errorf("config file not found: %s (from %s)", path, g.ConfigPath.Source),
			}
		}
	}

	loader := config.NewLoader()
	cfg, err := loader.LoadWithDefaults(path)
	if err != nil {
		return nil, &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("loading config: %w", err)}
	}

	validator, err := config.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("creating validator: %w", err)
	}
	if err := validator.Validate(cfg); err != nil {
		PrintConfigErrors(errOut, loader.ConfigFileUsed(), err)
		return nil, &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err, Printed: true}
	}

	output.Debug("build config loaded",
		"file", loader.ConfigFileUsed(),
		"namespace", cfg.Namespace,
		"devMode", cfg.DevMode,
		"distDir", cfg.DistDir,
	)
	return cfg, nil
}

// WatchableConfigPath returns the config file to watch, or "" when the
// resolved config file does not exist.
func WatchableConfigPath(g *GlobalConfig) string {
	exists, err := config.FileExists(g.ConfigPath.ConfigPath)
	if err != nil || !exists {
		return ""
	}
	path, err := config.ExpandPath(g.ConfigPath.ConfigPath)
	if err != nil {
		return ""
	}
	return path
}

// PrintConfigErrors prints config validation errors in `cue vet` style.
func PrintConfigErrors(w io.Writer, file string, err error) {
	fmt.Fprintln(w, "Error: config validation failed")
	if file != "" {
		fmt.Fprintf(w, "  File: %s\n", file)
	}
	fmt.Fprintln(w)

	var validationErrs config.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			fmt.Fprintf(w, "  %s: %s\n", e.Field, e.Message)
		}
		return
	}
	fmt.Fprintf(w, "  %v\n", err)
}
