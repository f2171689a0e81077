package conditionals

import (
	"fmt"

	"github.com/opmodel/buildcond/internal/core"
)

// importSuffixes are tried, in order, when an import specifier does not
// match a module path exactly.
var importSuffixes = []string{"", ".ts", ".tsx", ".js"}

// GetBuildFeatures extracts the primary flags of the app and returns a Build
// holding them together with the app module paths. Every other field is zero
// until the Build is updated.
func GetBuildFeatures(allModules, appModules []*core.Module) *Build {
	features := ExtractFeatures(allModules, appModules)

	files := make([]string, 0, len(appModules))
	for _, m := range appModules {
		files = append(files, m.SourceFilePath)
	}

	return &Build{
		AppModuleFiles: files,
		Features:       features,
	}
}

// ExtractFeatures computes the primary flags from the components defined by
// appModules and from every module reachable from them through local imports.
// Imports are resolved against allModules.
//
// A nil module in either slice panics.
func ExtractFeatures(allModules, appModules []*core.Module) Features {
	mustModules("allModules", allModules)
	mustModules("appModules", appModules)

	cmps := components(appModules)
	tree := moduleFileTree(newModuleIndex(allModules), appModules)

	var f Features
	for _, c := range capabilities {
		*c.field(&f) = c.eval(cmps, tree)
	}
	return f
}

func mustModules(arg string, modules []*core.Module) {
	for i, m := range modules {
		if m == nil {
			panic(fmt.Sprintf("conditionals: %s[%d] is nil", arg, i))
		}
	}
}

func components(appModules []*core.Module) []*core.ComponentMeta {
	var cmps []*core.ComponentMeta
	for _, m := range appModules {
		if m.IsComponent() {
			cmps = append(cmps, m.CmpMeta)
		}
	}
	return cmps
}

// moduleIndex resolves import specifiers to modules. When several modules
// share a path the first one wins.
type moduleIndex map[string]*core.Module

func newModuleIndex(modules []*core.Module) moduleIndex {
	idx := make(moduleIndex, len(modules))
	for _, m := range modules {
		if _, ok := idx[m.SourceFilePath]; !ok {
			idx[m.SourceFilePath] = m
		}
	}
	return idx
}

// resolve tries the specifier as is, then with each fallback extension, and
// returns the first candidate present anywhere in the build. The candidate
// order wins over module order: when both "x" and "x.ts" exist, "x" resolves
// to the module named "x" even if "x.ts" comes first in the manifest.
func (idx moduleIndex) resolve(specifier string) *core.Module {
	for _, suffix := range importSuffixes {
		if m, ok := idx[specifier+suffix]; ok {
			return m
		}
	}
	return nil
}

// moduleFileTree returns the app modules and everything they import,
// depth-first in discovery order, each module once.
func moduleFileTree(idx moduleIndex, appModules []*core.Module) []*core.Module {
	var tree []*core.Module
	seen := make(map[*core.Module]struct{})

	var visit func(m *core.Module)
	visit = func(m *core.Module) {
		if _, ok := seen[m]; ok {
			return
		}
		seen[m] = struct{}{}
		tree = append(tree, m)

		for _, specifier := range m.LocalImports {
			if imported := idx.resolve(specifier); imported != nil {
				visit(imported)
			}
		}
	}

	for _, m := range appModules {
		visit(m)
	}
	return tree
}
