package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_String(t *testing.T) {
	out := NewTable("A", "B").Row("one", "two").Row("three", "four").String()

	assert.Contains(t, out, "A")
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "four")
}

func TestRenderFlagTable(t *testing.T) {
	out := RenderFlagTable(
		[]ScalarRow{{Name: "appNamespace", Value: "App"}},
		[]FlagRow{
			{Name: "shadowDom", Group: "features", Value: true},
			{Name: "taskQueue", Group: "derived", Value: false},
		},
	)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "appNamespace")
	assert.Contains(t, out, "scalar")
	assert.Contains(t, out, "shadowDom")
	assert.Contains(t, out, "features")
	assert.Contains(t, out, "taskQueue")
	assert.Contains(t, out, "derived")
	assert.Contains(t, out, "false")
}
