package core

import (
	"fmt"
	"slices"
)

// Module describes one compiled source file.
// Modules are produced by an earlier compilation phase and are read-only
// while build conditionals are resolved.
type Module struct {
	// SourceFilePath uniquely identifies the module.
	SourceFilePath string `json:"sourceFilePath"`

	// LocalImports are import specifiers of other modules in this build,
	// with or without a file extension.
	LocalImports []string `json:"localImports,omitempty"`

	// HTMLTagNames are the lowercase tag names referenced by the module's templates.
	HTMLTagNames []string `json:"htmlTagNames,omitempty"`

	HasVdomRender     bool `json:"hasVdomRender,omitempty"`
	HasVdomAttribute  bool `json:"hasVdomAttribute,omitempty"`
	HasVdomClass      bool `json:"hasVdomClass,omitempty"`
	HasVdomStyle      bool `json:"hasVdomStyle,omitempty"`
	HasVdomFunctional bool `json:"hasVdomFunctional,omitempty"`
	HasVdomKey        bool `json:"hasVdomKey,omitempty"`
	HasVdomListener   bool `json:"hasVdomListener,omitempty"`
	HasVdomRef        bool `json:"hasVdomRef,omitempty"`
	HasVdomText       bool `json:"hasVdomText,omitempty"`

	// CmpMeta is set only when the module defines a component.
	CmpMeta *ComponentMeta `json:"component,omitempty"`
}

// HasTagName reports whether the module's templates reference the tag.
func (m *Module) HasTagName(name string) bool {
	return slices.Contains(m.HTMLTagNames, name)
}

// IsComponent reports whether the module defines a component.
func (m *Module) IsComponent() bool {
	return m.CmpMeta != nil
}

// Validate checks that the Module has the fields the resolver relies on.
func (m *Module) Validate() error {
	if m.SourceFilePath == "" {
		return fmt.Errorf("module sourceFilePath is empty")
	}
	if m.CmpMeta != nil {
		if err := m.CmpMeta.Validate(); err != nil {
			return fmt.Errorf("module %s: %w", m.SourceFilePath, err)
		}
	}
	return nil
}
