package conditionals

import "github.com/opmodel/buildcond/internal/core"

// quantifier decides how a predicate is folded over its source.
type quantifier int

const (
	// some is true when at least one element matches. Empty sources are false.
	some quantifier = iota
	// every is true when all elements match. Empty sources are true.
	every
)

// capability maps one primary flag to the predicate that computes it.
// Exactly one of cmp and mod is set: cmp reads the app components, mod reads
// the module tree reachable from the app modules.
type capability struct {
	name  string
	quant quantifier
	cmp   func(*core.ComponentMeta) bool
	mod   func(*core.Module) bool
	field func(*Features) *bool
}

func someComponent(name string, field func(*Features) *bool, pred func(*core.ComponentMeta) bool) capability {
	return capability{name: name, quant: some, cmp: pred, field: field}
}

func everyComponent(name string, field func(*Features) *bool, pred func(*core.ComponentMeta) bool) capability {
	return capability{name: name, quant: every, cmp: pred, field: field}
}

func someModule(name string, field func(*Features) *bool, pred func(*core.Module) bool) capability {
	return capability{name: name, quant: some, mod: pred, field: field}
}

func everyModule(name string, field func(*Features) *bool, pred func(*core.Module) bool) capability {
	return capability{name: name, quant: every, mod: pred, field: field}
}

// capabilities lists every primary flag. Build.Flags reports features in
// this order.
var capabilities = []capability{
	everyComponent("allRenderFn", func(f *Features) *bool { return &f.AllRenderFn },
		func(c *core.ComponentMeta) bool { return c.HasRenderFn }),
	someComponent("asyncLifecycle", func(f *Features) *bool { return &f.AsyncLifecycle },
		func(c *core.ComponentMeta) bool { return c.HasAsyncLifecycle }),
	someComponent("cmpDidLoad", func(f *Features) *bool { return &f.CmpDidLoad },
		func(c *core.ComponentMeta) bool { return c.HasComponentDidLoadFn }),
	someComponent("cmpDidUnload", func(f *Features) *bool { return &f.CmpDidUnload },
		func(c *core.ComponentMeta) bool { return c.HasComponentWillUnloadFn }),
	someComponent("cmpDidUpdate", func(f *Features) *bool { return &f.CmpDidUpdate },
		func(c *core.ComponentMeta) bool { return c.HasComponentDidUpdateFn }),
	someComponent("cmpWillLoad", func(f *Features) *bool { return &f.CmpWillLoad },
		func(c *core.ComponentMeta) bool { return c.HasComponentWillLoadFn }),
	someComponent("cmpWillUpdate", func(f *Features) *bool { return &f.CmpWillUpdate },
		func(c *core.ComponentMeta) bool { return c.HasComponentWillUpdateFn }),
	someComponent("connectedCallback", func(f *Features) *bool { return &f.ConnectedCallback },
		func(c *core.ComponentMeta) bool { return c.HasConnectedCallbackFn }),
	someComponent("disconnectedCallback", func(f *Features) *bool { return &f.DisconnectedCallback },
		func(c *core.ComponentMeta) bool { return c.HasDisconnectedCallbackFn }),
	someComponent("element", func(f *Features) *bool { return &f.Element },
		func(c *core.ComponentMeta) bool { return c.HasElement }),
	someComponent("event", func(f *Features) *bool { return &f.Event },
		func(c *core.ComponentMeta) bool { return c.HasEvent }),
	someComponent("hasRenderFn", func(f *Features) *bool { return &f.HasRenderFn },
		func(c *core.ComponentMeta) bool { return c.HasRenderFn || c.HasHostDataFn }),
	someComponent("hostData", func(f *Features) *bool { return &f.HostData },
		func(c *core.ComponentMeta) bool { return c.HasHostDataFn }),
	someComponent("lifecycle", func(f *Features) *bool { return &f.Lifecycle },
		func(c *core.ComponentMeta) bool { return c.HasLifecycle }),
	someComponent("listener", func(f *Features) *bool { return &f.Listener },
		func(c *core.ComponentMeta) bool { return c.HasListener }),
	someComponent("member", func(f *Features) *bool { return &f.Member },
		func(c *core.ComponentMeta) bool { return c.HasMember }),
	someComponent("method", func(f *Features) *bool { return &f.Method },
		func(c *core.ComponentMeta) bool { return c.HasMethod }),
	someComponent("mode", func(f *Features) *bool { return &f.Mode },
		func(c *core.ComponentMeta) bool { return c.HasMode }),
	everyComponent("noRenderFn", func(f *Features) *bool { return &f.NoRenderFn },
		func(c *core.ComponentMeta) bool { return !c.HasRenderFn }),
	everyModule("noVdomRender", func(f *Features) *bool { return &f.NoVdomRender },
		func(m *core.Module) bool { return !m.HasVdomRender }),
	someComponent("observeAttr", func(f *Features) *bool { return &f.ObserveAttr },
		func(c *core.ComponentMeta) bool { return c.HasAttr }),
	someComponent("prop", func(f *Features) *bool { return &f.Prop },
		func(c *core.ComponentMeta) bool { return c.HasProp }),
	someComponent("propMutable", func(f *Features) *bool { return &f.PropMutable },
		func(c *core.ComponentMeta) bool { return c.HasPropMutable }),
	someComponent("reflectToAttr", func(f *Features) *bool { return &f.ReflectToAttr },
		func(c *core.ComponentMeta) bool { return c.HasReflectToAttr }),
	someComponent("scoped", func(f *Features) *bool { return &f.Scoped },
		func(c *core.ComponentMeta) bool { return c.HasEncapsulation(core.EncapsulationScoped) }),
	someComponent("shadowDom", func(f *Features) *bool { return &f.ShadowDom },
		func(c *core.ComponentMeta) bool { return c.HasEncapsulation(core.EncapsulationShadow) }),
	someModule("slot", func(f *Features) *bool { return &f.Slot },
		func(m *core.Module) bool { return m.HasTagName("slot") }),
	someComponent("state", func(f *Features) *bool { return &f.State },
		func(c *core.ComponentMeta) bool { return c.HasState }),
	someComponent("style", func(f *Features) *bool { return &f.Style },
		func(c *core.ComponentMeta) bool { return c.HasStyle }),
	someModule("svg", func(f *Features) *bool { return &f.Svg },
		func(m *core.Module) bool { return m.HasTagName("svg") }),
	someComponent("updatable", func(f *Features) *bool { return &f.Updatable },
		func(c *core.ComponentMeta) bool { return c.IsUpdateable }),
	someModule("vdomAttribute", func(f *Features) *bool { return &f.VdomAttribute },
		func(m *core.Module) bool { return m.HasVdomAttribute }),
	someModule("vdomClass", func(f *Features) *bool { return &f.VdomClass },
		func(m *core.Module) bool { return m.HasVdomClass }),
	someModule("vdomFunctional", func(f *Features) *bool { return &f.VdomFunctional },
		func(m *core.Module) bool { return m.HasVdomFunctional }),
	someModule("vdomKey", func(f *Features) *bool { return &f.VdomKey },
		func(m *core.Module) bool { return m.HasVdomKey }),
	someModule("vdomListener", func(f *Features) *bool { return &f.VdomListener },
		func(m *core.Module) bool { return m.HasVdomListener }),
	someModule("vdomRef", func(f *Features) *bool { return &f.VdomRef },
		func(m *core.Module) bool { return m.HasVdomRef }),
	someModule("vdomRender", func(f *Features) *bool { return &f.VdomRender },
		func(m *core.Module) bool { return m.HasVdomRender }),
	someModule("vdomStyle", func(f *Features) *bool { return &f.VdomStyle },
		func(m *core.Module) bool { return m.HasVdomStyle }),
	someModule("vdomText", func(f *Features) *bool { return &f.VdomText },
		func(m *core.Module) bool { return m.HasVdomText }),
	someComponent("watchCallback", func(f *Features) *bool { return &f.WatchCallback },
		func(c *core.ComponentMeta) bool { return c.HasWatchCallback }),
}

func (c capability) eval(cmps []*core.ComponentMeta, tree []*core.Module) bool {
	if c.cmp != nil {
		return quantify(c.quant, cmps, c.cmp)
	}
	return quantify(c.quant, tree, c.mod)
}

func quantify[T any](q quantifier, items []T, pred func(T) bool) bool {
	if q == every {
		for _, item := range items {
			if !pred(item) {
				return false
			}
		}
		return true
	}
	for _, item := range items {
		if pred(item) {
			return true
		}
	}
	return false
}
