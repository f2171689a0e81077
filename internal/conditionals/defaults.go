package conditionals

// baseline is the shared default flag set. It is never handed out by pointer.
var baseline = *DefaultBuildConditionals()

// Baseline returns a copy of the shared default flag set.
func Baseline() Build {
	return *baseline.Clone()
}

// DefaultBuildConditionals returns a new maximal flag set: every capability
// is assumed present so nothing is stripped before extraction has run.
func DefaultBuildConditionals() *Build {
	return &Build{
		AppNamespace:      "App",
		AppNamespaceLower: "app",
		CoreImportPath:    ".",
		AppModuleFiles:    []string{},

		Features: Features{
			AllRenderFn:          false,
			AsyncLifecycle:       true,
			CmpDidLoad:           true,
			CmpDidUnload:         true,
			CmpDidUpdate:         true,
			CmpWillLoad:          true,
			CmpWillUpdate:        true,
			ConnectedCallback:    true,
			DisconnectedCallback: true,
			Element:              true,
			Event:                true,
			HasRenderFn:          true,
			HostData:             true,
			Lifecycle:            true,
			Listener:             true,
			Member:               true,
			Method:               true,
			Mode:                 true,
			NoRenderFn:           false,
			NoVdomRender:         false,
			ObserveAttr:          true,
			Prop:                 true,
			PropMutable:          true,
			ReflectToAttr:        true,
			Scoped:               true,
			ShadowDom:            true,
			Slot:                 true,
			State:                true,
			Style:                true,
			Svg:                  true,
			Updatable:            true,
			VdomAttribute:        true,
			VdomClass:            true,
			VdomFunctional:       true,
			VdomKey:              true,
			VdomListener:         true,
			VdomRef:              true,
			VdomRender:           true,
			VdomStyle:            true,
			VdomText:             true,
			WatchCallback:        true,
		},

		Environment: Environment{
			IsDebug:              false,
			IsDev:                true,
			IsProd:               false,
			Profile:              false,
			HotModuleReplacement: true,
			Polyfills:            false,
			ES5:                  false,
			LazyLoad:             false,
			ClientSide:           false,
			ExternalModuleLoader: false,
			SyncQueue:            false,
			SlotPolyfill:         true,
			PrerenderServerSide:  true,
			PrerenderClientSide:  true,
			DevInspector:         true,
		},

		Derived: Derived{
			TaskQueue:                   true,
			Refs:                        true,
			ExposeAppOnReady:            true,
			ExposeAppRegistry:           true,
			ExposeReadQueue:             true,
			ExposeWriteQueue:            true,
			ExposeEventListener:         true,
			ExposeRequestAnimationFrame: true,
		},
	}
}

// ResetBuildConditionals restores every field of b to the default flag set.
// b keeps its identity and the backing array of AppModuleFiles.
func ResetBuildConditionals(b *Build) {
	mustBuild(b)

	files := b.AppModuleFiles[:0]
	if files == nil {
		files = []string{}
	}
	*b = *DefaultBuildConditionals()
	b.AppModuleFiles = files
}
