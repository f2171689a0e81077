package core

import (
	"fmt"
	"strings"
)

// Encapsulation is the style/DOM encapsulation mode of a component.
type Encapsulation string

const (
	// EncapsulationNormal renders into the light DOM with global styles.
	EncapsulationNormal Encapsulation = "normal"

	// EncapsulationScoped renders into the light DOM with scoped styles.
	EncapsulationScoped Encapsulation = "scoped"

	// EncapsulationShadow renders into a shadow root.
	EncapsulationShadow Encapsulation = "shadow"
)

// ParseEncapsulation parses an encapsulation name. An empty string is normal.
func ParseEncapsulation(s string) (Encapsulation, error) {
	switch Encapsulation(strings.ToLower(strings.TrimSpace(s))) {
	case "", EncapsulationNormal:
		return EncapsulationNormal, nil
	case EncapsulationScoped:
		return EncapsulationScoped, nil
	case EncapsulationShadow:
		return EncapsulationShadow, nil
	default:
		return "", fmt.Errorf("unknown encapsulation %q (valid: normal, scoped, shadow)", s)
	}
}

// ComponentMeta is the compiler metadata extracted for a component.
// It is owned by the Module that defines the component.
type ComponentMeta struct {
	TagName       string        `json:"tagName,omitempty"`
	Encapsulation Encapsulation `json:"encapsulation,omitempty"`

	HasRenderFn               bool `json:"hasRenderFn,omitempty"`
	HasHostDataFn             bool `json:"hasHostDataFn,omitempty"`
	HasAsyncLifecycle         bool `json:"hasAsyncLifecycle,omitempty"`
	HasComponentDidLoadFn     bool `json:"hasComponentDidLoadFn,omitempty"`
	HasComponentWillUnloadFn  bool `json:"hasComponentWillUnloadFn,omitempty"`
	HasComponentDidUpdateFn   bool `json:"hasComponentDidUpdateFn,omitempty"`
	HasComponentWillLoadFn    bool `json:"hasComponentWillLoadFn,omitempty"`
	HasComponentWillUpdateFn  bool `json:"hasComponentWillUpdateFn,omitempty"`
	HasConnectedCallbackFn    bool `json:"hasConnectedCallbackFn,omitempty"`
	HasDisconnectedCallbackFn bool `json:"hasDisconnectedCallbackFn,omitempty"`
	HasElement                bool `json:"hasElement,omitempty"`
	HasEvent                  bool `json:"hasEvent,omitempty"`
	HasLifecycle              bool `json:"hasLifecycle,omitempty"`
	HasListener               bool `json:"hasListener,omitempty"`
	HasMember                 bool `json:"hasMember,omitempty"`
	HasMethod                 bool `json:"hasMethod,omitempty"`
	HasMode                   bool `json:"hasMode,omitempty"`
	HasAttr                   bool `json:"hasAttr,omitempty"`
	HasProp                   bool `json:"hasProp,omitempty"`
	HasPropMutable            bool `json:"hasPropMutable,omitempty"`
	HasReflectToAttr          bool `json:"hasReflectToAttr,omitempty"`
	HasState                  bool `json:"hasState,omitempty"`
	HasStyle                  bool `json:"hasStyle,omitempty"`
	HasWatchCallback          bool `json:"hasWatchCallback,omitempty"`
	IsUpdateable              bool `json:"isUpdateable,omitempty"`
}

// HasEncapsulation reports whether the component uses enc. Case and
// surrounding space are ignored, so metadata built in memory without
// Validate still matches. An empty value is normal.
func (c *ComponentMeta) HasEncapsulation(enc Encapsulation) bool {
	got := strings.TrimSpace(string(c.Encapsulation))
	if got == "" {
		got = string(EncapsulationNormal)
	}
	return strings.EqualFold(got, string(enc))
}

// Validate checks the encapsulation value and normalizes an empty one to normal.
func (c *ComponentMeta) Validate() error {
	enc, err := ParseEncapsulation(string(c.Encapsulation))
	if err != nil {
		if c.TagName != "" {
			return fmt.Errorf("component <%s>: %w", c.TagName, err)
		}
		return err
	}
	c.Encapsulation = enc
	return nil
}
