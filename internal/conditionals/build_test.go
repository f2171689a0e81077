package conditionals

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBuild_FlagsCoverEncoding(t *testing.T) {
	b := DefaultBuildConditionals()

	data, err := json.Marshal(b)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))

	bools := make(map[string]bool)
	for k, v := range fields {
		if bv, ok := v.(bool); ok {
			bools[k] = bv
		}
	}

	flags := b.Flags()
	assert.Len(t, flags, len(bools))
	for _, f := range flags {
		v, ok := bools[f.Name]
		if assert.True(t, ok, "flag %s missing from JSON", f.Name) {
			assert.Equal(t, v, f.Value, f.Name)
		}
	}
}

func TestBuild_FlagGroups(t *testing.T) {
	counts := make(map[string]int)
	for _, f := range DefaultBuildConditionals().Flags() {
		counts[f.Group]++
	}

	assert.Equal(t, 41, counts[GroupFeatures])
	assert.Equal(t, 15, counts[GroupEnvironment])
	assert.Equal(t, 8, counts[GroupDerived])
}

func TestBuild_YAMLInline(t *testing.T) {
	b := DefaultBuildConditionals()

	data, err := yaml.Marshal(b)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, yaml.Unmarshal(data, &fields))

	assert.Equal(t, "App", fields["appNamespace"])
	assert.Equal(t, true, fields["shadowDom"])
	assert.Equal(t, false, fields["lazyLoad"])
	assert.Equal(t, true, fields["taskQueue"])
	assert.NotContains(t, fields, "features")
}

func TestBuild_Clone(t *testing.T) {
	b := DefaultBuildConditionals()
	b.AppModuleFiles = append(b.AppModuleFiles, "a.tsx")

	c := b.Clone()
	c.AppModuleFiles[0] = "b.tsx"
	c.Slot = false

	assert.Equal(t, "a.tsx", b.AppModuleFiles[0])
	assert.True(t, b.Slot)
}

func TestChanges(t *testing.T) {
	from := DefaultBuildConditionals()
	to := from.Clone()
	to.Svg = false
	to.LazyLoad = true

	changes := Changes(from, to)

	assert.Equal(t, []FlagChange{
		{Name: "svg", From: true, To: false},
		{Name: "lazyLoad", From: false, To: true},
	}, changes)
	assert.Empty(t, Changes(from, from.Clone()))
}

func TestFingerprint(t *testing.T) {
	a := DefaultBuildConditionals()
	b := DefaultBuildConditionals()

	assert.Equal(t, Fingerprint(a), Fingerprint(b))

	b.VdomKey = false
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))

	b.VdomKey = true
	b.AppModuleFiles = append(b.AppModuleFiles, "a.tsx")
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}
