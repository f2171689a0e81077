// Package pipeline runs build conditional resolution end to end: manifest
// loading, feature extraction, target switches and the conditional update.
package pipeline

import (
	"context"

	"github.com/opmodel/buildcond/internal/conditionals"
	"github.com/opmodel/buildcond/internal/config"
	"github.com/opmodel/buildcond/internal/loader"
	"github.com/opmodel/buildcond/internal/output"
)

// pipeline implements the Pipeline interface.
type pipeline struct {
	cfg *config.BuildConfig
}

// NewPipeline creates a Pipeline resolving against cfg.
// A nil cfg uses config.DefaultConfig().
func NewPipeline(cfg *config.BuildConfig) Pipeline {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &pipeline{cfg: cfg}
}

// Resolve executes the pipeline and returns a newly allocated Build.
//
// Phase sequence:
//  1. LOAD:    loader.LoadManifest() → *loader.ModuleSet
//  2. EXTRACT: conditionals.GetBuildFeatures() → *conditionals.Build
//  3. TARGET:  conditionals.ApplyTarget() copies target switches into the Build
//  4. UPDATE:  conditionals.UpdateBuildConditionals() sets scalars and derived flags
//
// Phase 3 runs before phase 4 since taskQueue and the app exposure flags read lazyLoad.
func (p *pipeline) Resolve(ctx context.Context, opts ResolveOptions) (*ResolveResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	set, err := p.load(ctx, opts)
	if err != nil {
		return nil, err
	}

	b := conditionals.GetBuildFeatures(set.All, set.App)
	p.update(b)

	return p.result(set, b), nil
}

// ResolveInto runs the same phases as Resolve against an existing Build.
func (p *pipeline) ResolveInto(ctx context.Context, opts ResolveOptions, b *conditionals.Build) (*ResolveResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	conditionals.ResetBuildConditionals(b)

	set, err := p.load(ctx, opts)
	if err != nil {
		return nil, err
	}

	b.Features = conditionals.ExtractFeatures(set.All, set.App)
	for _, m := range set.App {
		b.AppModuleFiles = append(b.AppModuleFiles, m.SourceFilePath)
	}
	p.update(b)

	return p.result(set, b), nil
}

func (p *pipeline) load(ctx context.Context, opts ResolveOptions) (*loader.ModuleSet, error) {
	var set *loader.ModuleSet
	load := func() error {
		var err error
		set, err = loader.LoadManifest(opts.ManifestPath, opts.AppModules)
		return err
	}

	var err error
	if opts.NoSpinner {
		err = load()
	} else {
		err = output.RunWithSpinner(ctx, "Loading manifest", load)
	}
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return set, nil
}

func (p *pipeline) update(b *conditionals.Build) {
	conditionals.ApplyTarget(p.cfg.Target, b)
	conditionals.UpdateBuildConditionals(p.cfg, b)
}

func (p *pipeline) result(set *loader.ModuleSet, b *conditionals.Build) *ResolveResult {
	res := &ResolveResult{
		Build:          b,
		ManifestPath:   set.Path,
		ModuleCount:    len(set.All),
		AppModuleCount: len(set.App),
		Components:     set.Components(),
	}

	output.ManifestLogger(set.Path).Debug("build conditionals resolved",
		"modules", res.ModuleCount,
		"appModules", res.AppModuleCount,
		"components", len(res.Components),
		"coreImportPath", b.CoreImportPath,
	)
	return res
}
