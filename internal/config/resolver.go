package config

import (
	"os"

	"github.com/opmodel/buildcond/internal/output"
)

// Source indicates where a configuration value came from.
type Source string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag Source = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv Source = "env"
	// SourceDefault indicates value is the built-in default.
	SourceDefault Source = "default"
)

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source Source
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[Source]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) BUILDCOND_CONFIG env, (3) ./buildcond.yaml
func ResolveConfigPath(flagValue string) ResolveConfigPathResult {
	result := ResolveConfigPathResult{
		Shadowed: make(map[Source]string),
	}

	envValue := os.Getenv(EnvConfig)

	switch {
	case flagValue != "":
		result.ConfigPath = flagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = DefaultConfigFileName
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = DefaultConfigFileName
	default:
		result.ConfigPath = DefaultConfigFileName
		result.Source = SourceDefault
	}

	return result
}

// LogResolved logs the config path resolution at DEBUG level.
func (r ResolveConfigPathResult) LogResolved() {
	output.Debug("config path resolved",
		"value", r.ConfigPath,
		"source", r.Source,
	)
	for source, shadowed := range r.Shadowed {
		output.Debug("  shadowed by higher precedence",
			"shadowed_source", source,
			"shadowed_value", shadowed,
		)
	}
}
