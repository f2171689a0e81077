package conditionals

import (
	"path"
	"strings"

	"github.com/opmodel/buildcond/internal/config"
)

// UpdateBuildConditionals copies the configuration into b and computes the
// derived flags. The primary and environment flags of b must already be set.
func UpdateBuildConditionals(cfg *config.BuildConfig, b *Build) {
	mustConfig(cfg)
	mustBuild(b)

	b.AppNamespace = cfg.Namespace
	b.AppNamespaceLower = cfg.FsNamespace
	b.IsDebug = cfg.IsDebug()
	b.IsDev = cfg.DevMode
	b.IsProd = !cfg.DevMode
	b.HotModuleReplacement = b.IsDev
	b.Profile = cfg.Flags.Profile

	b.Derived = DeriveConditionals(cfg, b)

	b.CoreImportPath = JoinPath(cfg.DistDir, "client", "index.js")
}

// DeriveConditionals computes the derived flags from the primary and
// environment flags of b. taskQueue is computed first since the write queue
// and animation frame exposure flags read it. exposeReadQueue follows the
// config switch alone.
func DeriveConditionals(cfg *config.BuildConfig, b *Build) Derived {
	mustConfig(cfg)
	mustBuild(b)

	var d Derived
	d.TaskQueue = b.Updatable || b.Mode || b.Lifecycle || b.LazyLoad || cfg.ExposeAppOnReady
	d.Refs = b.Updatable || b.Member || b.Lifecycle || b.Listener
	d.ExposeAppOnReady = b.LazyLoad && cfg.ExposeAppOnReady
	d.ExposeAppRegistry = b.LazyLoad && cfg.ExposeAppRegistry
	d.ExposeReadQueue = cfg.ExposeReadQueue
	d.ExposeWriteQueue = d.TaskQueue && cfg.ExposeWriteQueue
	d.ExposeEventListener = b.Listener && cfg.ExposeEventListener
	d.ExposeRequestAnimationFrame = d.TaskQueue && cfg.ExposeRequestAnimationFrame
	return d
}

// ApplyTarget copies the build target switches into the environment flags of b.
func ApplyTarget(target config.Target, b *Build) {
	mustBuild(b)

	b.LazyLoad = target.LazyLoad
	b.ES5 = target.ES5
	b.Polyfills = target.Polyfills
	b.ClientSide = target.ClientSide
	b.ExternalModuleLoader = target.ExternalModuleLoader
	b.SyncQueue = target.SyncQueue
	b.SlotPolyfill = target.SlotPolyfill
	b.PrerenderServerSide = target.PrerenderServerSide
	b.PrerenderClientSide = target.PrerenderClientSide
	b.DevInspector = target.DevInspector
}

// JoinPath joins path elements with forward slashes, whatever separator the
// elements use, and cleans the result.
func JoinPath(elem ...string) string {
	parts := make([]string, len(elem))
	for i, e := range elem {
		parts[i] = strings.ReplaceAll(e, `\`, "/")
	}
	return path.Join(parts...)
}

func mustConfig(cfg *config.BuildConfig) {
	if cfg == nil {
		panic("conditionals: nil build config")
	}
}

func mustBuild(b *Build) {
	if b == nil {
		panic("conditionals: nil build")
	}
}
