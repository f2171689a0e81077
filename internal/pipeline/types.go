package pipeline

import (
	"context"
	"time"

	"github.com/opmodel/buildcond/internal/conditionals"
	"github.com/opmodel/buildcond/internal/config"
	oerrors "github.com/opmodel/buildcond/internal/errors"
)

// Pipeline resolves the build conditionals of a module manifest.
type Pipeline interface {
	// Resolve loads the manifest and returns a newly resolved Build.
	Resolve(ctx context.Context, opts ResolveOptions) (*ResolveResult, error)

	// ResolveInto resets b to the baseline and resolves into it, so one
	// Build can be recycled across passes. On error b holds the baseline
	// or a partially resolved flag set and must not be published.
	ResolveInto(ctx context.Context, opts ResolveOptions, b *conditionals.Build) (*ResolveResult, error)
}

// ResolveOptions configures a resolve pass.
type ResolveOptions struct {
	// ManifestPath is the module manifest to load. Required.
	ManifestPath string

	// AppModules overrides the manifest's app module selection.
	// Optional. Each entry must match a module sourceFilePath exactly.
	AppModules []string

	// NoSpinner disables the progress spinner while loading.
	NoSpinner bool
}

// Validate checks that required options are set.
func (o ResolveOptions) Validate() error {
	if o.ManifestPath == "" {
		return oerrors.Wrap(oerrors.ErrValidation, "ManifestPath is required")
	}
	return nil
}

// ResolveResult is the output of a resolve pass.
type ResolveResult struct {
	// Build is the resolved flag set.
	Build *conditionals.Build

	// ManifestPath is the manifest the modules were loaded from.
	ManifestPath string

	// ModuleCount is the number of modules in the manifest.
	ModuleCount int

	// AppModuleCount is the number of app modules features were extracted from.
	AppModuleCount int

	// Components lists the tag names of the app components.
	Components []string
}

// WatchOptions configures Watch.
type WatchOptions struct {
	Resolve ResolveOptions

	// ConfigPath is watched alongside the manifest when set.
	ConfigPath string

	// LoadConfig returns the build configuration. It is called once at
	// start and again whenever ConfigPath changes. Required.
	LoadConfig func() (*config.BuildConfig, error)

	// OnResult is called after the first pass and after every pass whose
	// flag set differs from the previous one. changes is nil on the first
	// call. Returning an error stops the watch. Required.
	OnResult func(res *ResolveResult, changes []conditionals.FlagChange) error

	// Debounce is the quiet period before a burst of file events triggers
	// a pass. Default: DefaultDebounce.
	Debounce time.Duration
}

// DefaultDebounce is the watch debounce period.
const DefaultDebounce = 100 * time.Millisecond

// Validate checks that required options are set.
func (o WatchOptions) Validate() error {
	if err := o.Resolve.Validate(); err != nil {
		return err
	}
	if o.LoadConfig == nil {
		return oerrors.Wrap(oerrors.ErrValidation, "LoadConfig is required")
	}
	if o.OnResult == nil {
		return oerrors.Wrap(oerrors.ErrValidation, "OnResult is required")
	}
	return nil
}
