// Package config provides build configuration loading and validation.
package config

import "strings"

// Log levels accepted by BuildConfig.LogLevel.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Defaults applied by WithDefaults.
const (
	DefaultNamespace = "App"
	DefaultLogLevel  = LogLevelInfo
	DefaultDistDir   = "www/build"
)

// Flags holds optional command-line style switches carried in the config.
type Flags struct {
	// Profile enables runtime profiling hooks.
	Profile bool `json:"profile" yaml:"profile" mapstructure:"profile"`
}

// Target holds the environment switches of the build target.
// They are mirrored into the resolved flag set before derived flags are computed.
type Target struct {
	LazyLoad             bool `json:"lazyLoad" yaml:"lazyLoad" mapstructure:"lazyLoad"`
	ES5                  bool `json:"es5" yaml:"es5" mapstructure:"es5"`
	Polyfills            bool `json:"polyfills" yaml:"polyfills" mapstructure:"polyfills"`
	ClientSide           bool `json:"clientSide" yaml:"clientSide" mapstructure:"clientSide"`
	ExternalModuleLoader bool `json:"externalModuleLoader" yaml:"externalModuleLoader" mapstructure:"externalModuleLoader"`
	SyncQueue            bool `json:"syncQueue" yaml:"syncQueue" mapstructure:"syncQueue"`
	SlotPolyfill         bool `json:"slotPolyfill" yaml:"slotPolyfill" mapstructure:"slotPolyfill"`
	PrerenderServerSide  bool `json:"prerenderServerSide" yaml:"prerenderServerSide" mapstructure:"prerenderServerSide"`
	PrerenderClientSide  bool `json:"prerenderClientSide" yaml:"prerenderClientSide" mapstructure:"prerenderClientSide"`
	DevInspector         bool `json:"devInspector" yaml:"devInspector" mapstructure:"devInspector"`
}

// BuildConfig is the build configuration consumed by the conditional updater.
// Loaded from buildcond.yaml, validated against the embedded CUE schema.
type BuildConfig struct {
	// Namespace is the app namespace identifier (e.g. "MyApp").
	// Env: BUILDCOND_NAMESPACE, Default: "App"
	Namespace string `json:"namespace" yaml:"namespace" mapstructure:"namespace"`

	// FsNamespace is the filesystem-safe lowercase namespace.
	// Default: lowercase Namespace
	FsNamespace string `json:"fsNamespace" yaml:"fsNamespace" mapstructure:"fsNamespace"`

	// LogLevel is one of debug, info, warn, error.
	// Env: BUILDCOND_LOG_LEVEL, Default: "info"
	LogLevel string `json:"logLevel" yaml:"logLevel" mapstructure:"logLevel"`

	// DevMode selects a development build.
	// Env: BUILDCOND_DEV_MODE
	DevMode bool `json:"devMode" yaml:"devMode" mapstructure:"devMode"`

	// DistDir is the compiler distribution directory the runtime entry lives under.
	// Env: BUILDCOND_DIST_DIR, Default: "www/build"
	DistDir string `json:"distDir" yaml:"distDir" mapstructure:"distDir"`

	Flags Flags `json:"flags" yaml:"flags" mapstructure:"flags"`

	ExposeAppOnReady            bool `json:"exposeAppOnReady" yaml:"exposeAppOnReady" mapstructure:"exposeAppOnReady"`
	ExposeAppRegistry           bool `json:"exposeAppRegistry" yaml:"exposeAppRegistry" mapstructure:"exposeAppRegistry"`
	ExposeReadQueue             bool `json:"exposeReadQueue" yaml:"exposeReadQueue" mapstructure:"exposeReadQueue"`
	ExposeWriteQueue            bool `json:"exposeWriteQueue" yaml:"exposeWriteQueue" mapstructure:"exposeWriteQueue"`
	ExposeEventListener         bool `json:"exposeEventListener" yaml:"exposeEventListener" mapstructure:"exposeEventListener"`
	ExposeRequestAnimationFrame bool `json:"exposeRequestAnimationFrame" yaml:"exposeRequestAnimationFrame" mapstructure:"exposeRequestAnimationFrame"`

	// Target contains the build target's environment switches.
	Target Target `json:"target" yaml:"target" mapstructure:"target"`
}

// DefaultConfig returns a BuildConfig with all default values populated.
// Used by `buildcond config init` to generate the initial config file.
func DefaultConfig() *BuildConfig {
	return &BuildConfig{
		Namespace:   DefaultNamespace,
		FsNamespace: strings.ToLower(DefaultNamespace),
		LogLevel:    DefaultLogLevel,
		DistDir:     DefaultDistDir,
	}
}

// WithDefaults fills empty scalar fields with defaults and returns the config.
func (c *BuildConfig) WithDefaults() *BuildConfig {
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.FsNamespace == "" {
		c.FsNamespace = strings.ToLower(c.Namespace)
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	if c.DistDir == "" {
		c.DistDir = DefaultDistDir
	}
	return c
}

// IsDebug reports whether the configured log level is debug.
func (c *BuildConfig) IsDebug() bool {
	return c.LogLevel == LogLevelDebug
}
