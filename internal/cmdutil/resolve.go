package cmdutil

import (
	"context"
	"io"

	"github.com/opmodel/buildcond/internal/config"
	oerrors "github.com/opmodel/buildcond/internal/errors"
	"github.com/opmodel/buildcond/internal/output"
	"github.com/opmodel/buildcond/internal/pipeline"
)

// ResolveManifestOpts holds the inputs for ResolveManifest.
type ResolveManifestOpts struct {
	// ManifestPath is the manifest to resolve.
	ManifestPath string

	// AppModules overrides the manifest's app modules (--app flags).
	AppModules []string

	// Config is the validated build configuration.
	Config *config.BuildConfig

	// ErrOut receives detailed error output.
	ErrOut io.Writer
}

// ResolveManifest executes the resolve pipeline shared by the resolve and
// diff commands.
//
// On failure it returns an *ExitError with the exit code mapped from the
// error and the Printed flag set.
func ResolveManifest(ctx context.Context, opts ResolveManifestOpts) (*pipeline.ResolveResult, error) {
	resolveOpts := pipeline.ResolveOptions{
		ManifestPath: opts.ManifestPath,
		AppModules:   opts.AppModules,
	}
	if err := resolveOpts.Validate(); err != nil {
		return nil, &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err}
	}

	output.Debug("resolving build conditionals",
		"manifest", opts.ManifestPath,
		"appModules", len(opts.AppModules),
	)

	result, err := pipeline.NewPipeline(opts.Config).Resolve(ctx, resolveOpts)
	if err != nil {
		return nil, ReportError(opts.ErrOut, "resolve failed", err)
	}

	output.ManifestLogger(result.ManifestPath).Info("resolved",
		"modules", result.ModuleCount,
		"components", len(result.Components),
	)
	return result, nil
}
