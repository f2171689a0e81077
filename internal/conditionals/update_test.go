package conditionals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opmodel/buildcond/internal/config"
	"github.com/opmodel/buildcond/internal/core"
)

func TestUpdateBuildConditionals_Scalars(t *testing.T) {
	cfg := &config.BuildConfig{
		Namespace:   "MyApp",
		FsNamespace: "myapp",
		LogLevel:    config.LogLevelDebug,
		DevMode:     false,
		DistDir:     "www/build",
		Flags:       config.Flags{Profile: true},
	}
	b := &Build{}

	UpdateBuildConditionals(cfg, b)

	assert.Equal(t, "MyApp", b.AppNamespace)
	assert.Equal(t, "myapp", b.AppNamespaceLower)
	assert.Equal(t, "www/build/client/index.js", b.CoreImportPath)
	assert.True(t, b.IsDebug)
	assert.False(t, b.IsDev)
	assert.True(t, b.IsProd)
	assert.False(t, b.HotModuleReplacement)
	assert.True(t, b.Profile)
}

func TestUpdateBuildConditionals_DevMode(t *testing.T) {
	cfg := (&config.BuildConfig{DevMode: true}).WithDefaults()
	b := &Build{}

	UpdateBuildConditionals(cfg, b)

	assert.True(t, b.IsDev)
	assert.False(t, b.IsProd)
	assert.True(t, b.HotModuleReplacement)
	assert.False(t, b.IsDebug)
}

func TestDeriveConditionals(t *testing.T) {
	tests := []struct {
		name  string
		build Build
		cfg   config.BuildConfig
		want  Derived
	}{
		{
			name:  "nothing set",
			build: Build{},
			cfg:   config.BuildConfig{},
			want:  Derived{},
		},
		{
			name:  "updatable drives task queue and refs",
			build: Build{Features: Features{Updatable: true}},
			cfg:   config.BuildConfig{ExposeReadQueue: true, ExposeRequestAnimationFrame: true},
			want: Derived{
				TaskQueue:                   true,
				Refs:                        true,
				ExposeReadQueue:             true,
				ExposeRequestAnimationFrame: true,
			},
		},
		{
			name:  "app on ready switch alone enables task queue",
			build: Build{},
			cfg:   config.BuildConfig{ExposeAppOnReady: true, ExposeWriteQueue: true},
			want:  Derived{TaskQueue: true, ExposeWriteQueue: true},
		},
		{
			name:  "lazy load exposes app",
			build: Build{Environment: Environment{LazyLoad: true}},
			cfg:   config.BuildConfig{ExposeAppOnReady: true, ExposeAppRegistry: true},
			want:  Derived{TaskQueue: true, ExposeAppOnReady: true, ExposeAppRegistry: true},
		},
		{
			name:  "listener without switch",
			build: Build{Features: Features{Listener: true}},
			cfg:   config.BuildConfig{},
			want:  Derived{Refs: true},
		},
		{
			name:  "listener with switch",
			build: Build{Features: Features{Listener: true}},
			cfg:   config.BuildConfig{ExposeEventListener: true},
			want:  Derived{Refs: true, ExposeEventListener: true},
		},
		{
			name:  "mode needs a queue but not refs",
			build: Build{Features: Features{Mode: true}},
			cfg:   config.BuildConfig{},
			want:  Derived{TaskQueue: true},
		},
		{
			name:  "member needs refs but not a queue",
			build: Build{Features: Features{Member: true}},
			cfg:   config.BuildConfig{ExposeWriteQueue: true},
			want:  Derived{Refs: true},
		},
		{
			name:  "read queue follows the switch without a task queue",
			build: Build{},
			cfg:   config.BuildConfig{ExposeReadQueue: true, ExposeWriteQueue: true},
			want:  Derived{ExposeReadQueue: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveConditionals(&tt.cfg, &tt.build)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveConditionals_Pure(t *testing.T) {
	b := &Build{Features: Features{Lifecycle: true}}
	before := *b.Clone()

	DeriveConditionals(&config.BuildConfig{ExposeReadQueue: true}, b)

	assert.Equal(t, before, *b)
}

func TestApplyTarget(t *testing.T) {
	b := DefaultBuildConditionals()

	ApplyTarget(config.Target{LazyLoad: true, ES5: true, ClientSide: true}, b)

	assert.True(t, b.LazyLoad)
	assert.True(t, b.ES5)
	assert.True(t, b.ClientSide)
	assert.False(t, b.Polyfills)
	assert.False(t, b.SlotPolyfill)
	assert.False(t, b.PrerenderServerSide)
	assert.False(t, b.PrerenderClientSide)
	assert.False(t, b.DevInspector)
	// Primary flags are left alone.
	assert.True(t, b.Updatable)
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		elem []string
		want string
	}{
		{[]string{"www/build", "client", "index.js"}, "www/build/client/index.js"},
		{[]string{"/abs/dist/", "client", "index.js"}, "/abs/dist/client/index.js"},
		{[]string{`C:\app\dist`, "client", "index.js"}, "C:/app/dist/client/index.js"},
		{[]string{"dist/../out", "client", "index.js"}, "out/client/index.js"},
		{[]string{"", "client", "index.js"}, "client/index.js"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinPath(tt.elem...))
		})
	}
}

func TestUpdate_NilPanics(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Panics(t, func() { UpdateBuildConditionals(nil, &Build{}) })
	assert.Panics(t, func() { UpdateBuildConditionals(cfg, nil) })
	assert.Panics(t, func() { DeriveConditionals(cfg, nil) })
	assert.Panics(t, func() { ApplyTarget(config.Target{}, nil) })
}

func TestResolve_ShadowComponentWithSvgImport(t *testing.T) {
	app := &core.Module{
		SourceFilePath: "src/my-cmp.tsx",
		LocalImports:   []string{"./icons"},
		HasVdomRender:  true,
		CmpMeta: &core.ComponentMeta{
			TagName:       "my-cmp",
			Encapsulation: core.EncapsulationShadow,
			HasRenderFn:   true,
			HasListener:   true,
		},
	}
	icons := &core.Module{
		SourceFilePath: "./icons.ts",
		HTMLTagNames:   []string{"svg", "path"},
	}
	cfg := (&config.BuildConfig{
		Namespace:           "MyApp",
		DistDir:             "dist",
		ExposeEventListener: true,
		ExposeReadQueue:     true,
	}).WithDefaults()

	b := GetBuildFeatures([]*core.Module{app, icons}, []*core.Module{app})
	ApplyTarget(cfg.Target, b)
	UpdateBuildConditionals(cfg, b)

	assert.True(t, b.ShadowDom)
	assert.False(t, b.Scoped)
	assert.True(t, b.Svg)
	assert.False(t, b.Slot)
	assert.True(t, b.VdomRender)
	assert.False(t, b.NoVdomRender)
	assert.True(t, b.AllRenderFn)
	assert.False(t, b.NoRenderFn)

	assert.True(t, b.Refs)
	assert.False(t, b.TaskQueue)
	assert.True(t, b.ExposeReadQueue)
	assert.True(t, b.ExposeEventListener)

	assert.Equal(t, "MyApp", b.AppNamespace)
	assert.Equal(t, "myapp", b.AppNamespaceLower)
	assert.Equal(t, "dist/client/index.js", b.CoreImportPath)
	assert.Equal(t, []string{"src/my-cmp.tsx"}, b.AppModuleFiles)
}

func TestResolve_SingleShadowComponent(t *testing.T) {
	app := &core.Module{
		SourceFilePath: "src/my-cmp.tsx",
		CmpMeta: &core.ComponentMeta{
			TagName:       "my-cmp",
			Encapsulation: core.EncapsulationShadow,
			HasRenderFn:   true,
		},
	}
	cfg := (&config.BuildConfig{Namespace: "MyApp", DistDir: "dist"}).WithDefaults()

	b := GetBuildFeatures([]*core.Module{app}, []*core.Module{app})
	ApplyTarget(cfg.Target, b)
	UpdateBuildConditionals(cfg, b)

	assert.Equal(t, Features{ShadowDom: true, HasRenderFn: true, AllRenderFn: true, NoVdomRender: true}, b.Features)
	assert.Equal(t, Derived{}, b.Derived)
	assert.Equal(t, Environment{IsProd: true}, b.Environment)
	assert.Equal(t, "dist/client/index.js", b.CoreImportPath)
}
