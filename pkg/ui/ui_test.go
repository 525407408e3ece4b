package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/bub/pkg/errors"
	"github.com/arthur-debert/bub/pkg/executor"
	"github.com/arthur-debert/bub/pkg/types"
	"github.com/arthur-debert/bub/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan() *types.Plan {
	return &types.Plan{
		Package: "/p/vim",
		Target:  "/t",
		Links: []types.PlannedLink{
			{Src: "/p/vim/.vimrc", Dest: "/t/.vimrc"},
		},
		CreateMissingDirs: true,
	}
}

func TestNewRenderer(t *testing.T) {
	for _, f := range []ui.Format{ui.FormatAuto, ui.FormatTerminal, ui.FormatText, ui.FormatJSON} {
		t.Run(f.String(), func(t *testing.T) {
			r, err := ui.NewRenderer(f, &bytes.Buffer{})
			require.NoError(t, err)
			assert.NotNil(t, r)
		})
	}

	_, err := ui.NewRenderer(ui.Format(42), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderPlan(samplePlan()))
	assert.Contains(t, buf.String(), "Here's the unboxing plan:")
	assert.Contains(t, buf.String(), ".vimrc -> .vimrc")
	assert.NotContains(t, buf.String(), "\x1b[")

	buf.Reset()
	require.NoError(t, r.RenderResult("/p/vim", executor.Result{Created: 1}))
	assert.Equal(t, "/p/vim: 1 link created\n", buf.String())

	buf.Reset()
	require.NoError(t, r.RenderError(errors.New(errors.ErrEmptyPlan, "nothing to link")))
	assert.Contains(t, buf.String(), "Error:")
	assert.Contains(t, buf.String(), "nothing to link")
}

func TestTerminalRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatTerminal, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderPlan(samplePlan()))
	assert.Contains(t, buf.String(), ".vimrc")
	require.NoError(t, r.RenderMessage("done"))
	assert.Contains(t, buf.String(), "done\n")
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderPlan(samplePlan()))
	var plan types.Plan
	require.NoError(t, json.Unmarshal(buf.Bytes(), &plan))
	assert.Equal(t, samplePlan().Links, plan.Links)
	assert.True(t, plan.CreateMissingDirs)

	buf.Reset()
	require.NoError(t, r.RenderError(
		errors.New(errors.ErrTargetExists, "target exists").WithDetail("dest", "/t/.vimrc")))
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.Equal(t, "TARGET_EXISTS", payload["code"])
	assert.Equal(t, "/t/.vimrc", payload["details"].(map[string]interface{})["dest"])
}
