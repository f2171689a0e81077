package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for buildcond configuration.
const envPrefix = "BUILDCOND"

// Loader handles loading and merging configuration from file and environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults make every key known to viper so AutomaticEnv applies on Unmarshal.
	def := DefaultConfig()
	v.SetDefault("namespace", def.Namespace)
	v.SetDefault("fsNamespace", "")
	v.SetDefault("logLevel", def.LogLevel)
	v.SetDefault("devMode", false)
	v.SetDefault("distDir", def.DistDir)
	v.SetDefault("flags.profile", false)
	for _, key := range []string{
		"exposeAppOnReady",
		"exposeAppRegistry",
		"exposeReadQueue",
		"exposeWriteQueue",
		"exposeEventListener",
		"exposeRequestAnimationFrame",
		"target.lazyLoad",
		"target.es5",
		"target.polyfills",
		"target.clientSide",
		"target.externalModuleLoader",
		"target.syncQueue",
		"target.slotPolyfill",
		"target.prerenderServerSide",
		"target.prerenderClientSide",
		"target.devInspector",
	} {
		v.SetDefault(key, false)
	}

	// Snake-case aliases for the most common overrides
	_ = v.BindEnv("logLevel", "BUILDCOND_LOG_LEVEL")
	_ = v.BindEnv("devMode", "BUILDCOND_DEV_MODE")
	_ = v.BindEnv("distDir", "BUILDCOND_DIST_DIR")
	_ = v.BindEnv("flags.profile", "BUILDCOND_PROFILE")

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses GetConfigFile. A missing file is not an
// error; defaults and environment variables still apply.
func (l *Loader) Load(configFile string) (*BuildConfig, error) {
	if configFile == "" {
		configFile = GetConfigFile()
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg BuildConfig
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration and applies defaults.
func (l *Loader) LoadWithDefaults(configFile string) (*BuildConfig, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}

	return cfg.WithDefaults(), nil
}

// ConfigFileUsed returns the path viper read, empty before Load.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}
