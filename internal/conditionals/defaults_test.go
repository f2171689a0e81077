package conditionals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/buildcond/internal/core"
)

func TestDefaultBuildConditionals(t *testing.T) {
	b := DefaultBuildConditionals()

	assert.Equal(t, "App", b.AppNamespace)
	assert.Equal(t, "app", b.AppNamespaceLower)
	assert.Equal(t, ".", b.CoreImportPath)
	require.NotNil(t, b.AppModuleFiles)
	assert.Empty(t, b.AppModuleFiles)

	off := map[string]bool{
		"allRenderFn": true, "noRenderFn": true, "noVdomRender": true,
		"isDebug": true, "isProd": true, "profile": true, "polyfills": true,
		"es5": true, "lazyLoad": true, "clientSide": true,
		"externalModuleLoader": true, "syncQueue": true,
	}
	for _, f := range b.Flags() {
		assert.Equal(t, !off[f.Name], f.Value, "default of %s", f.Name)
	}
}

func TestDefaultBuildConditionals_Fresh(t *testing.T) {
	a := DefaultBuildConditionals()
	b := DefaultBuildConditionals()

	assert.NotSame(t, a, b)
	a.AppModuleFiles = append(a.AppModuleFiles, "x.tsx")
	a.Svg = false
	assert.Empty(t, b.AppModuleFiles)
	assert.True(t, b.Svg)
}

func TestResetBuildConditionals(t *testing.T) {
	all := []*core.Module{{
		SourceFilePath: "a.tsx",
		CmpMeta:        &core.ComponentMeta{HasRenderFn: true},
	}}
	b := GetBuildFeatures(all, all)
	b.AppNamespace = "Other"
	b.CoreImportPath = "dist/client/index.js"
	b.TaskQueue = false
	ptr := b

	ResetBuildConditionals(b)

	assert.Same(t, ptr, b)
	assert.Equal(t, *DefaultBuildConditionals(), *b)

	// Idempotent.
	ResetBuildConditionals(b)
	assert.Equal(t, *DefaultBuildConditionals(), *b)
}

func TestResetBuildConditionals_ReusesAppModuleFiles(t *testing.T) {
	b := DefaultBuildConditionals()
	b.AppModuleFiles = make([]string, 2, 8)

	ResetBuildConditionals(b)

	assert.Empty(t, b.AppModuleFiles)
	assert.Equal(t, 8, cap(b.AppModuleFiles))
}

func TestResetBuildConditionals_NilPanics(t *testing.T) {
	assert.PanicsWithValue(t, "conditionals: nil build", func() {
		ResetBuildConditionals(nil)
	})
}

func TestBaseline(t *testing.T) {
	base := Baseline()
	assert.Equal(t, *DefaultBuildConditionals(), base)

	base.AppModuleFiles = append(base.AppModuleFiles, "leak.tsx")
	base.Svg = false

	again := Baseline()
	assert.Empty(t, again.AppModuleFiles)
	assert.True(t, again.Svg)
}
