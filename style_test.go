package gizmo

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gekko3d/gizmo/draw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStyleOverridesDefaults(t *testing.T) {
	doc := `
hit_radius: 20
view_transition: 0.25
colors:
  selection: [1, 0, 0, 1]
`
	s, err := LoadStyle(strings.NewReader(doc))
	require.NoError(t, err)

	want := DefaultStyle()
	want.HitRadius = 20
	want.ViewTransition = 0.25
	want.Colors.Selection = draw.Color{1, 0, 0, 1}
	assert.Equal(t, want, s)
}

func TestLoadStyleEmpty(t *testing.T) {
	s, err := LoadStyle(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultStyle(), s)
}

func TestLoadStyleRejectsUnknownKeys(t *testing.T) {
	_, err := LoadStyle(strings.NewReader("hit_radious: 3\n"))
	assert.ErrorContains(t, err, "decode style")
}

func TestLoadStyleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tie_epsilon: 2\n"), 0o644))
	s, err := LoadStyleFile(path)
	require.NoError(t, err)
	assert.Equal(t, float32(2), s.TieEpsilon)

	_, err = LoadStyleFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, "gizmo", false)
	l.Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("shown %d", 2)
	l.Warnf("careful")
	out := buf.String()
	assert.Contains(t, out, "[gizmo] DEBUG: shown 2")
	assert.Contains(t, out, "[gizmo] WARN: careful")

	nop := NewNopLogger()
	nop.SetDebug(true)
	assert.False(t, nop.DebugEnabled())
}
