package style

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanderheijden86/treekit/pkg/draw"
)

func TestPresets(t *testing.T) {
	cell, err := Preset("cell")
	require.NoError(t, err)
	assert.Equal(t, 3, cell.ConnectorWidth)
	assert.True(t, cell.ShowRoot)

	pixel, err := Preset("pixel")
	require.NoError(t, err)
	assert.Equal(t, 17, pixel.ConnectorWidth)
	assert.Equal(t, ConnectorDotted, pixel.ConnectorStyle)

	_, err = Preset("nope")
	assert.Error(t, err)
}

func TestParseEmptyUsesCellPreset(t *testing.T) {
	p, err := Parse([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, Cell(), p)

	p, err = Parse([]byte("# only a comment\n"))
	require.NoError(t, err)
	assert.Equal(t, Cell(), p)
}

func TestParseOverlay(t *testing.T) {
	doc := `
preset: pixel
label:
  fg: "#102030"
  bold: true
connector:
  style: solid
  width: 9
selection:
  mode: multi
  reselect: always
margins:
  left: 2
  line_spacing: 0
icons:
  open: "v"
  closed: ">"
  width: 9
sort: descending
show_root: false
widget_mode: inline
`
	p, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, draw.RGB(0x10, 0x20, 0x30), p.LabelFG)
	assert.True(t, p.LabelFont.Bold)
	assert.Equal(t, 12, p.LabelFont.Size, "unset fields keep the preset")
	assert.Equal(t, ConnectorSolid, p.ConnectorStyle)
	assert.Equal(t, 9, p.ConnectorWidth)
	assert.Equal(t, SelectMulti, p.SelectMode)
	assert.Equal(t, SelectableAlways, p.ReselectMode)
	assert.Equal(t, 2, p.MarginLeft)
	assert.Equal(t, 0, p.LineSpacing)
	assert.Equal(t, "v", p.OpenIcon.Glyph)
	assert.Equal(t, 9, p.CloseIcon.W)
	assert.Equal(t, 0, p.UserIcon.W, "empty icons do not take a size")
	assert.Equal(t, SortDescending, p.SortOrder)
	assert.False(t, p.ShowRoot)
	assert.Equal(t, DrawLabelAndWidget, p.ItemDrawMode)
}

func TestParseRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"unknown key":     "colour: red\n",
		"bad color":       "label:\n  fg: \"#zz\"\n",
		"bad mode":        "selection:\n  mode: several\n",
		"bad sort":        "sort: sideways\n",
		"bad connector":   "connector:\n  style: wavy\n",
		"bad widget mode": "widget_mode: floating\n",
		"bad preset":      "preset: holographic\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.yaml")
	require.NoError(t, os.WriteFile(path, []byte("show_root: false\n"), 0o644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.False(t, p.ShowRoot)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadReader(t *testing.T) {
	p, err := Load(strings.NewReader("sort: ascending\n"))
	require.NoError(t, err)
	assert.Equal(t, SortAscending, p.SortOrder)
}

func TestCloneIsIndependent(t *testing.T) {
	p := Cell()
	c := p.Clone()
	c.ShowRoot = false
	assert.True(t, p.ShowRoot)
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sort: none\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Prefs, 4)
	require.NoError(t, Watch(ctx, path, func(p *Prefs) { got <- p }))

	require.NoError(t, os.WriteFile(path, []byte("sort: descending\n"), 0o644))

	select {
	case p := <-got:
		assert.Equal(t, SortDescending, p.SortOrder)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for style reload")
	}
}
