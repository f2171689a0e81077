package pipeline

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/buildcond/internal/conditionals"
	"github.com/opmodel/buildcond/internal/config"
	oerrors "github.com/opmodel/buildcond/internal/errors"
	"github.com/opmodel/buildcond/internal/testutil"
)

func testConfig() *config.BuildConfig {
	return (&config.BuildConfig{
		Namespace:           "MyApp",
		DistDir:             "www/build",
		ExposeEventListener: true,
		ExposeReadQueue:     true,
		Target:              config.Target{LazyLoad: true},
	}).WithDefaults()
}

// TestNewPipeline verifies the constructor returns a non-nil Pipeline.
func TestNewPipeline(t *testing.T) {
	assert.NotNil(t, NewPipeline(nil))
}

func TestResolveOptionsValidate(t *testing.T) {
	assert.NoError(t, ResolveOptions{ManifestPath: "m.yaml"}.Validate())
	err := ResolveOptions{}.Validate()
	assert.ErrorContains(t, err, "ManifestPath is required")
	assert.ErrorIs(t, err, oerrors.ErrValidation)
}

func TestWatchOptionsValidate(t *testing.T) {
	valid := WatchOptions{
		Resolve:    ResolveOptions{ManifestPath: "m.yaml"},
		LoadConfig: func() (*config.BuildConfig, error) { return testConfig(), nil },
		OnResult:   func(*ResolveResult, []conditionals.FlagChange) error { return nil },
	}
	assert.NoError(t, valid.Validate())

	noConfig := valid
	noConfig.LoadConfig = nil
	assert.ErrorContains(t, noConfig.Validate(), "LoadConfig")

	noResult := valid
	noResult.OnResult = nil
	assert.ErrorContains(t, noResult.Validate(), "OnResult")
}

func TestPipeline_Resolve(t *testing.T) {
	p := NewPipeline(testConfig())

	res, err := p.Resolve(context.Background(), ResolveOptions{
		ManifestPath: testutil.ManifestPath(t, "app.yaml"),
		NoSpinner:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, res.ModuleCount)
	assert.Equal(t, 1, res.AppModuleCount)
	assert.Equal(t, []string{"app-root"}, res.Components)

	b := res.Build
	assert.Equal(t, "MyApp", b.AppNamespace)
	assert.Equal(t, "myapp", b.AppNamespaceLower)
	assert.Equal(t, "www/build/client/index.js", b.CoreImportPath)
	assert.Equal(t, []string{"src/components/app-root/app-root.tsx"}, b.AppModuleFiles)

	// Component flags come from the app module only.
	assert.True(t, b.ShadowDom)
	assert.False(t, b.Scoped, "icon is imported but not an app module")
	assert.True(t, b.CmpDidLoad)
	assert.True(t, b.Listener)

	// Tree flags follow imports.
	assert.True(t, b.Slot)
	assert.True(t, b.Svg)
	assert.True(t, b.VdomText)
	assert.True(t, b.VdomAttribute)

	// lazyLoad from the target reaches the derived flags.
	assert.True(t, b.LazyLoad)
	assert.True(t, b.TaskQueue)
	assert.True(t, b.ExposeReadQueue)
	assert.True(t, b.ExposeEventListener)
	assert.False(t, b.ExposeAppOnReady)
}

func TestPipeline_Resolve_AppOverride(t *testing.T) {
	p := NewPipeline(testConfig())

	res, err := p.Resolve(context.Background(), ResolveOptions{
		ManifestPath: testutil.ManifestPath(t, "app.yaml"),
		AppModules:   []string{"src/components/icon/icon.tsx"},
		NoSpinner:    true,
	})
	require.NoError(t, err)

	assert.True(t, res.Build.Scoped)
	assert.False(t, res.Build.ShadowDom)
	assert.False(t, res.Build.Slot)
	assert.Equal(t, []string{"app-icon"}, res.Components)
}

func TestPipeline_Resolve_LoaderFailure(t *testing.T) {
	p := NewPipeline(testConfig())

	res, err := p.Resolve(context.Background(), ResolveOptions{ManifestPath: "/nonexistent/m.yaml", NoSpinner: true})

	assert.Nil(t, res)
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))
}

func TestPipeline_Resolve_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPipeline(testConfig()).Resolve(ctx, ResolveOptions{
		ManifestPath: testutil.ManifestPath(t, "app.yaml"),
		NoSpinner:    true,
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipeline_ResolveInto_MatchesResolve(t *testing.T) {
	p := NewPipeline(testConfig())
	opts := ResolveOptions{ManifestPath: testutil.ManifestPath(t, "app.yaml"), NoSpinner: true}

	fresh, err := p.Resolve(context.Background(), opts)
	require.NoError(t, err)

	// Dirty a recycled Build first.
	b := conditionals.DefaultBuildConditionals()
	b.AppModuleFiles = append(b.AppModuleFiles, "stale.tsx")
	b.Svg = false
	b.AppNamespace = "Stale"
	ptr := b

	res, err := p.ResolveInto(context.Background(), opts, b)
	require.NoError(t, err)

	assert.Same(t, ptr, res.Build)
	if diff := cmp.Diff(*fresh.Build, *b); diff != "" {
		t.Errorf("recycled build differs (-fresh +recycled):\n%s", diff)
	}
}

func TestWatch_ReportsChanges(t *testing.T) {
	dir := t.TempDir()
	manifest := testutil.CopyManifest(t, "app.yaml", dir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reports := make(chan report, 4)

	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, WatchOptions{
			Resolve:    ResolveOptions{ManifestPath: manifest, NoSpinner: true},
			LoadConfig: func() (*config.BuildConfig, error) { return testConfig(), nil },
			OnResult: func(res *ResolveResult, changes []conditionals.FlagChange) error {
				reports <- report{res: res, changes: changes}
				return nil
			},
			Debounce: 20 * time.Millisecond,
		})
	}()

	first := waitReport(t, reports)
	assert.Nil(t, first.changes)
	assert.True(t, first.res.Build.Svg)

	data, err := os.ReadFile(manifest)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(manifest, []byte(strings.Replace(string(data), "[svg, path]", "[path]", 1)), 0o644))

	second := waitReport(t, reports)
	assert.Equal(t, []conditionals.FlagChange{{Name: "svg", From: true, To: false}}, second.changes)
	assert.False(t, second.res.Build.Svg)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatch_FirstPassFailure(t *testing.T) {
	dir := t.TempDir()
	manifest := testutil.WriteFile(t, dir, "broken.yaml", "modules: [")

	err := Watch(context.Background(), WatchOptions{
		Resolve:    ResolveOptions{ManifestPath: manifest, NoSpinner: true},
		LoadConfig: func() (*config.BuildConfig, error) { return testConfig(), nil },
		OnResult: func(*ResolveResult, []conditionals.FlagChange) error {
			t.Fatal("OnResult must not be called")
			return nil
		},
	})

	assert.True(t, errors.Is(err, oerrors.ErrValidation))
}

type report struct {
	res     *ResolveResult
	changes []conditionals.FlagChange
}

func waitReport(t *testing.T, ch <-chan report) report {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch result")
	}
	return report{}
}
