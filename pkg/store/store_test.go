package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(gs []*Group) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = g.Name()
	}
	return out
}

func TestGroupBuilders(t *testing.T) {
	root := New("")
	a := root.AddGroup("a")
	assert.Same(t, a, root.AddGroup("a"), "AddGroup returns the existing group")
	b := a.AddGroup("b/c")
	b.Set("k", "1")
	b.Set("k", "2")
	b.Set("j", "3")

	assert.Equal(t, "a/b/c", b.Path())
	assert.Equal(t, "", root.Path())
	assert.Equal(t, []Entry{{"k", "2"}, {"j", "3"}}, b.Entries())

	v, ok := b.Value("j")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
	_, ok = b.Value("missing")
	assert.False(t, ok)
	assert.Nil(t, root.Group("missing"))
}

func TestWalkSkipsChildren(t *testing.T) {
	root := New("")
	root.AddGroup("a").AddGroup("deep")
	root.AddGroup("b")

	var seen []string
	root.Walk(func(g *Group) bool {
		seen = append(seen, g.Name())
		return g.Name() != "a"
	})
	assert.Equal(t, []string{"", "a", "b"}, seen)
}

func TestParseYAMLKeepsOrder(t *testing.T) {
	doc := `
zeta: 1
alpha:
  nested: "x"
  empty:
  list:
    - one
    - two
mid: true
`
	g, err := ParseYAML([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []Entry{{"zeta", "1"}, {"mid", "true"}}, g.Entries())
	assert.Equal(t, []string{"alpha"}, names(g.Groups()))

	alpha := g.Group("alpha")
	require.NotNil(t, alpha)
	assert.Equal(t, []Entry{{"nested", "x"}, {"empty", ""}}, alpha.Entries())

	list := alpha.Group("list")
	require.NotNil(t, list)
	assert.Equal(t, []Entry{{"0", "one"}, {"1", "two"}}, list.Entries())
}

func TestParseYAMLEmptyAndInvalid(t *testing.T) {
	g, err := ParseYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, g.Groups())

	_, err = ParseYAML([]byte("just a scalar"))
	assert.Error(t, err)

	_, err = ParseYAML([]byte("a: [unterminated"))
	assert.Error(t, err)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	root := New("")
	root.Set("top", "v")
	sub := root.AddGroup("sub")
	sub.Set("k", "with: colon")

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, root))

	back, err := ParseYAML(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, root.Entries(), back.Entries())
	assert.Equal(t, sub.Entries(), back.Group("sub").Entries())
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a:\n  b: c\n"), 0o644))

	g, err := LoadYAMLFile(path)
	require.NoError(t, err)
	v, _ := g.Group("a").Value("b")
	assert.Equal(t, "c", v)

	_, err = LoadYAMLFile(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	root := New("")
	root.Set("version", "3")
	app := root.AddGroup("app")
	app.Set("theme", "dark")
	app.AddGroup("a/b").Set("slash", "ok")
	root.AddGroup("empty")

	require.NoError(t, SaveSQLite(ctx, db, root))

	back, err := LoadSQLite(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"version", "3"}}, back.Entries())
	assert.Equal(t, []string{"app", "empty"}, names(back.Groups()))
	assert.Equal(t, []Entry{{"theme", "dark"}}, back.Group("app").Entries())

	slashed := back.Group("app").Group("a/b")
	require.NotNil(t, slashed, "group names with slashes survive")
	assert.Equal(t, []Entry{{"slash", "ok"}}, slashed.Entries())

	// Saving again replaces rather than appends.
	require.NoError(t, SaveSQLite(ctx, db, New("")))
	back, err = LoadSQLite(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, back.Groups())
	assert.Empty(t, back.Entries())
}

func TestSQLiteRejectsEmptyKey(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	root := New("")
	root.Set("keep", "1")
	require.NoError(t, SaveSQLite(ctx, db, root))

	bad := New("")
	bad.Set("", "x")
	assert.Error(t, SaveSQLite(ctx, db, bad))

	back, err := LoadSQLite(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"keep", "1"}}, back.Entries(), "failed save rolls back")
}

func TestLoadSQLiteFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")
	db, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	root := New("")
	root.AddGroup("g").Set("k", "v")
	require.NoError(t, SaveSQLite(ctx, db, root))
	require.NoError(t, db.Close())

	g, err := LoadSQLiteFile(ctx, path)
	require.NoError(t, err)
	v, ok := g.Group("g").Value("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
