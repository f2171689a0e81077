// Package conditionals resolves the build conditionals of an app: the flag
// set that tells the bundler which optional runtime capabilities to keep.
//
// Resolution is a two-stage pipeline over a Build:
//
//  1. EXTRACT: ExtractFeatures walks the app modules and their import tree
//     and returns the primary Features.
//  2. UPDATE:  UpdateBuildConditionals copies configuration into the Build
//     and computes the Derived flags from the primary ones.
//
// DefaultBuildConditionals supplies the maximal baseline, and
// ResetBuildConditionals restores an existing Build to it in place so one
// instance can be recycled between incremental passes.
//
// Nothing in this package synchronizes access to a Build; callers run the
// stages one at a time.
package conditionals

import "slices"

// Features are the primary flags, derived only from module and component
// metadata. See capabilities for how each one is computed.
type Features struct {
	AllRenderFn          bool `json:"allRenderFn" yaml:"allRenderFn"`
	AsyncLifecycle       bool `json:"asyncLifecycle" yaml:"asyncLifecycle"`
	CmpDidLoad           bool `json:"cmpDidLoad" yaml:"cmpDidLoad"`
	CmpDidUnload         bool `json:"cmpDidUnload" yaml:"cmpDidUnload"`
	CmpDidUpdate         bool `json:"cmpDidUpdate" yaml:"cmpDidUpdate"`
	CmpWillLoad          bool `json:"cmpWillLoad" yaml:"cmpWillLoad"`
	CmpWillUpdate        bool `json:"cmpWillUpdate" yaml:"cmpWillUpdate"`
	ConnectedCallback    bool `json:"connectedCallback" yaml:"connectedCallback"`
	DisconnectedCallback bool `json:"disconnectedCallback" yaml:"disconnectedCallback"`
	Element              bool `json:"element" yaml:"element"`
	Event                bool `json:"event" yaml:"event"`
	HasRenderFn          bool `json:"hasRenderFn" yaml:"hasRenderFn"`
	HostData             bool `json:"hostData" yaml:"hostData"`
	Lifecycle            bool `json:"lifecycle" yaml:"lifecycle"`
	Listener             bool `json:"listener" yaml:"listener"`
	Member               bool `json:"member" yaml:"member"`
	Method               bool `json:"method" yaml:"method"`
	Mode                 bool `json:"mode" yaml:"mode"`
	NoRenderFn           bool `json:"noRenderFn" yaml:"noRenderFn"`
	NoVdomRender         bool `json:"noVdomRender" yaml:"noVdomRender"`
	ObserveAttr          bool `json:"observeAttr" yaml:"observeAttr"`
	Prop                 bool `json:"prop" yaml:"prop"`
	PropMutable          bool `json:"propMutable" yaml:"propMutable"`
	ReflectToAttr        bool `json:"reflectToAttr" yaml:"reflectToAttr"`
	Scoped               bool `json:"scoped" yaml:"scoped"`
	ShadowDom            bool `json:"shadowDom" yaml:"shadowDom"`
	Slot                 bool `json:"slot" yaml:"slot"`
	State                bool `json:"state" yaml:"state"`
	Style                bool `json:"style" yaml:"style"`
	Svg                  bool `json:"svg" yaml:"svg"`
	Updatable            bool `json:"updatable" yaml:"updatable"`
	VdomAttribute        bool `json:"vdomAttribute" yaml:"vdomAttribute"`
	VdomClass            bool `json:"vdomClass" yaml:"vdomClass"`
	VdomFunctional       bool `json:"vdomFunctional" yaml:"vdomFunctional"`
	VdomKey              bool `json:"vdomKey" yaml:"vdomKey"`
	VdomListener         bool `json:"vdomListener" yaml:"vdomListener"`
	VdomRef              bool `json:"vdomRef" yaml:"vdomRef"`
	VdomRender           bool `json:"vdomRender" yaml:"vdomRender"`
	VdomStyle            bool `json:"vdomStyle" yaml:"vdomStyle"`
	VdomText             bool `json:"vdomText" yaml:"vdomText"`
	WatchCallback        bool `json:"watchCallback" yaml:"watchCallback"`
}

// Environment flags mirror the build configuration and target.
type Environment struct {
	IsDebug              bool `json:"isDebug" yaml:"isDebug"`
	IsDev                bool `json:"isDev" yaml:"isDev"`
	IsProd               bool `json:"isProd" yaml:"isProd"`
	Profile              bool `json:"profile" yaml:"profile"`
	HotModuleReplacement bool `json:"hotModuleReplacement" yaml:"hotModuleReplacement"`
	Polyfills            bool `json:"polyfills" yaml:"polyfills"`
	ES5                  bool `json:"es5" yaml:"es5"`
	LazyLoad             bool `json:"lazyLoad" yaml:"lazyLoad"`
	ClientSide           bool `json:"clientSide" yaml:"clientSide"`
	ExternalModuleLoader bool `json:"externalModuleLoader" yaml:"externalModuleLoader"`
	SyncQueue            bool `json:"syncQueue" yaml:"syncQueue"`
	SlotPolyfill         bool `json:"slotPolyfill" yaml:"slotPolyfill"`
	PrerenderServerSide  bool `json:"prerenderServerSide" yaml:"prerenderServerSide"`
	PrerenderClientSide  bool `json:"prerenderClientSide" yaml:"prerenderClientSide"`
	DevInspector         bool `json:"devInspector" yaml:"devInspector"`
}

// Derived flags are boolean combinations of Features, Environment and
// configuration switches.
type Derived struct {
	TaskQueue                   bool `json:"taskQueue" yaml:"taskQueue"`
	Refs                        bool `json:"refs" yaml:"refs"`
	ExposeAppOnReady            bool `json:"exposeAppOnReady" yaml:"exposeAppOnReady"`
	ExposeAppRegistry           bool `json:"exposeAppRegistry" yaml:"exposeAppRegistry"`
	ExposeReadQueue             bool `json:"exposeReadQueue" yaml:"exposeReadQueue"`
	ExposeWriteQueue            bool `json:"exposeWriteQueue" yaml:"exposeWriteQueue"`
	ExposeEventListener         bool `json:"exposeEventListener" yaml:"exposeEventListener"`
	ExposeRequestAnimationFrame bool `json:"exposeRequestAnimationFrame" yaml:"exposeRequestAnimationFrame"`
}

// Build is the resolved flag set read by the bundler. Field names in the
// JSON/YAML encoding are the stable contract.
type Build struct {
	AppNamespace      string `json:"appNamespace" yaml:"appNamespace"`
	AppNamespaceLower string `json:"appNamespaceLower" yaml:"appNamespaceLower"`
	CoreImportPath    string `json:"coreImportPath" yaml:"coreImportPath"`

	// AppModuleFiles are the source paths of the app modules the features were extracted from.
	AppModuleFiles []string `json:"appModuleFiles" yaml:"appModuleFiles"`

	Features    `yaml:",inline"`
	Environment `yaml:",inline"`
	Derived     `yaml:",inline"`
}

// Clone returns a deep copy of b.
func (b *Build) Clone() *Build {
	c := *b
	c.AppModuleFiles = slices.Clone(b.AppModuleFiles)
	if c.AppModuleFiles == nil {
		c.AppModuleFiles = []string{}
	}
	return &c
}

// Flag groups reported by Build.Flags.
const (
	GroupFeatures    = "features"
	GroupEnvironment = "environment"
	GroupDerived     = "derived"
)

// Flag is one named boolean of a Build.
type Flag struct {
	Name  string
	Group string
	Value bool
}

type buildFlag struct {
	name  string
	field func(*Build) *bool
}

var environmentFlags = []buildFlag{
	{"isDebug", func(b *Build) *bool { return &b.IsDebug }},
	{"isDev", func(b *Build) *bool { return &b.IsDev }},
	{"isProd", func(b *Build) *bool { return &b.IsProd }},
	{"profile", func(b *Build) *bool { return &b.Profile }},
	{"hotModuleReplacement", func(b *Build) *bool { return &b.HotModuleReplacement }},
	{"polyfills", func(b *Build) *bool { return &b.Polyfills }},
	{"es5", func(b *Build) *bool { return &b.ES5 }},
	{"lazyLoad", func(b *Build) *bool { return &b.LazyLoad }},
	{"clientSide", func(b *Build) *bool { return &b.ClientSide }},
	{"externalModuleLoader", func(b *Build) *bool { return &b.ExternalModuleLoader }},
	{"syncQueue", func(b *Build) *bool { return &b.SyncQueue }},
	{"slotPolyfill", func(b *Build) *bool { return &b.SlotPolyfill }},
	{"prerenderServerSide", func(b *Build) *bool { return &b.PrerenderServerSide }},
	{"prerenderClientSide", func(b *Build) *bool { return &b.PrerenderClientSide }},
	{"devInspector", func(b *Build) *bool { return &b.DevInspector }},
}

var derivedFlags = []buildFlag{
	{"taskQueue", func(b *Build) *bool { return &b.TaskQueue }},
	{"refs", func(b *Build) *bool { return &b.Refs }},
	{"exposeAppOnReady", func(b *Build) *bool { return &b.ExposeAppOnReady }},
	{"exposeAppRegistry", func(b *Build) *bool { return &b.ExposeAppRegistry }},
	{"exposeReadQueue", func(b *Build) *bool { return &b.ExposeReadQueue }},
	{"exposeWriteQueue", func(b *Build) *bool { return &b.ExposeWriteQueue }},
	{"exposeEventListener", func(b *Build) *bool { return &b.ExposeEventListener }},
	{"exposeRequestAnimationFrame", func(b *Build) *bool { return &b.ExposeRequestAnimationFrame }},
}

// Flags returns every boolean of b in a stable order: features, environment, derived.
func (b *Build) Flags() []Flag {
	flags := make([]Flag, 0, len(capabilities)+len(environmentFlags)+len(derivedFlags))
	for _, c := range capabilities {
		flags = append(flags, Flag{Name: c.name, Group: GroupFeatures, Value: *c.field(&b.Features)})
	}
	for _, f := range environmentFlags {
		flags = append(flags, Flag{Name: f.name, Group: GroupEnvironment, Value: *f.field(b)})
	}
	for _, f := range derivedFlags {
		flags = append(flags, Flag{Name: f.name, Group: GroupDerived, Value: *f.field(b)})
	}
	return flags
}

// FlagChange is a flag whose value differs between two builds.
type FlagChange struct {
	Name string
	From bool
	To   bool
}

// Changes lists the flags whose values differ from from to to.
func Changes(from, to *Build) []FlagChange {
	fromFlags := from.Flags()
	toFlags := to.Flags()

	var changes []FlagChange
	for i, f := range fromFlags {
		if f.Value != toFlags[i].Value {
			changes = append(changes, FlagChange{Name: f.Name, From: f.Value, To: toFlags[i].Value})
		}
	}
	return changes
}
