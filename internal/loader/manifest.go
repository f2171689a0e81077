// Package loader reads module manifests: the compiled module descriptors of
// an app, as written by the compiler, in YAML or JSON.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/opmodel/buildcond/internal/core"
	oerrors "github.com/opmodel/buildcond/internal/errors"
	"github.com/opmodel/buildcond/internal/output"
)

// Manifest is the on-disk module manifest.
type Manifest struct {
	// AppModules lists the source paths of the app modules.
	// When empty every module is an app module.
	AppModules []string `json:"appModules,omitempty"`

	// Modules are the compiled module descriptors.
	Modules []*core.Module `json:"modules"`
}

// ModuleSet is a validated manifest split into the inputs of feature extraction.
type ModuleSet struct {
	// Path is the manifest file the set was loaded from, if any.
	Path string

	// All holds every module, in manifest order.
	All []*core.Module

	// App holds the app modules, in selection order.
	App []*core.Module
}

// LoadManifest reads and validates the manifest at path. A non-empty
// appModules replaces the manifest's own app module selection.
func LoadManifest(path string, appModules []string) (*ModuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, oerrors.NewNotFoundError("manifest file not found", path,
				"Pass the manifest written by the compiler, or run from its directory.")
		case errors.Is(err, fs.ErrPermission):
			return nil, oerrors.NewPermissionError("cannot read manifest file", path, "")
		default:
			return nil, fmt.Errorf("reading manifest %s: %w", path, err)
		}
	}

	m, err := ParseManifest(data, path)
	if err != nil {
		return nil, err
	}

	set, err := m.ModuleSet(path, appModules)
	if err != nil {
		return nil, err
	}

	output.ManifestLogger(path).Debug("loaded manifest",
		"modules", len(set.All), "appModules", len(set.App))
	return set, nil
}

// ParseManifest decodes a YAML or JSON manifest. Unknown fields are rejected.
// location is only used in error messages.
func ParseManifest(data []byte, location string) (*Manifest, error) {
	var m Manifest
	if err := yaml.UnmarshalStrict(data, &m); err != nil {
		return nil, &oerrors.DetailError{
			Type:     "validation failed",
			Message:  fmt.Sprintf("malformed manifest: %v", err),
			Location: location,
			Hint:     "The manifest must be a YAML or JSON document with a modules list.",
			Cause:    oerrors.ErrValidation,
		}
	}

	if err := m.Validate(location); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks every module descriptor and normalizes component encapsulation.
func (m *Manifest) Validate(location string) error {
	seen := make(map[string]int, len(m.Modules))

	for i, mod := range m.Modules {
		field := fmt.Sprintf("modules[%d]", i)

		if mod == nil {
			return oerrors.NewValidationError("module entry is empty", location, field, "")
		}
		if mod.SourceFilePath == "" {
			return oerrors.NewValidationError("sourceFilePath is required", location, field+".sourceFilePath", "")
		}
		if prev, ok := seen[mod.SourceFilePath]; ok {
			return oerrors.NewValidationError(
				fmt.Sprintf("duplicate sourceFilePath %q (first defined at modules[%d])", mod.SourceFilePath, prev),
				location, field+".sourceFilePath", "Each module must appear once in the manifest.")
		}
		seen[mod.SourceFilePath] = i

		if err := mod.Validate(); err != nil {
			return oerrors.NewValidationError(err.Error(), location, field+".component.encapsulation", "")
		}
	}
	return nil
}

// ModuleSet selects the app modules. appModules, when non-empty, replaces the
// manifest's selection. Every selected path must name a module exactly;
// repeated paths are selected once.
func (m *Manifest) ModuleSet(location string, appModules []string) (*ModuleSet, error) {
	byPath := make(map[string]*core.Module, len(m.Modules))
	for _, mod := range m.Modules {
		byPath[mod.SourceFilePath] = mod
	}

	field := "appModules"
	selection := m.AppModules
	if len(appModules) > 0 {
		field = "--app"
		selection = appModules
	}

	set := &ModuleSet{Path: location, All: m.Modules}
	if len(selection) == 0 {
		set.App = m.Modules
		return set, nil
	}

	picked := make(map[string]bool, len(selection))
	for _, p := range selection {
		if picked[p] {
			continue
		}
		mod, ok := byPath[p]
		if !ok {
			return nil, &oerrors.DetailError{
				Type:     "not found",
				Message:  fmt.Sprintf("app module %q is not in the manifest", p),
				Location: location,
				Field:    field,
				Hint:     "App modules must match a module sourceFilePath exactly.",
				Cause:    oerrors.ErrNotFound,
			}
		}
		picked[p] = true
		set.App = append(set.App, mod)
	}
	return set, nil
}

// Components returns the tag names of the components defined by the app modules.
func (s *ModuleSet) Components() []string {
	var tags []string
	for _, m := range s.App {
		if m.CmpMeta != nil && m.CmpMeta.TagName != "" {
			tags = append(tags, m.CmpMeta.TagName)
		}
	}
	return tags
}
