package templates

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_LoadCaches(t *testing.T) {
	tm := NewTemplateManager()

	first, err := tm.LoadTemplate("dashboard")
	require.NoError(t, err)
	second, err := tm.LoadTemplate("dashboard")
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestTemplateManager_Missing(t *testing.T) {
	_, err := NewTemplateManager().LoadTemplate("nope")
	assert.Error(t, err)
}

func TestTemplateManager_RenderFailureWritesNothing(t *testing.T) {
	var buf bytes.Buffer

	// A nil Summary cannot be dereferenced by the dashboard
	err := NewTemplateManager().Render(&buf, "dashboard", struct{ Summary *struct{} }{})
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
