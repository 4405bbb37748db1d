package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanderheijden86/treekit/pkg/logging"
	"github.com/vanderheijden86/treekit/pkg/style"
)

// execute runs tk with args and returns what it printed to stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "tk", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.True(t, cmd.SilenceUsage)

	found := map[string]bool{}
	for _, c := range cmd.Commands() {
		found[c.Name()] = true
	}
	for _, name := range []string{"view", "export", "paths", "version"} {
		assert.True(t, found[name], "missing subcommand %q", name)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "tk version dev\n", out)

	out, err = execute(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, "tk version dev\n", out)
}

func TestPathsFromList(t *testing.T) {
	src := writeFile(t, "fruit.txt", "Fruit/Apple\nFruit/Banana\n# comment\n\nVeg/Carrot\nFruit/Apple\n")

	out, err := execute(t, "", "paths", src)
	require.NoError(t, err)
	assert.Equal(t, "Fruit\nFruit/Apple\nFruit/Banana\nVeg\nVeg/Carrot\n", out)
}

func TestPathsFromStdin(t *testing.T) {
	out, err := execute(t, "a\\/b/c\n", "paths", "-")
	require.NoError(t, err)
	assert.Equal(t, "a\\/b\na\\/b/c\n", out)

	out, err = execute(t, "x/y\n", "paths", "--show-root", "-")
	require.NoError(t, err)
	assert.Equal(t, "ROOT\nROOT/x\nROOT/x/y\n", out)
}

func TestPathsVisibleHonoursState(t *testing.T) {
	src := writeFile(t, "fruit.txt", "Fruit/Apple\nVeg/Carrot\n")
	state := writeFile(t, "state.json", `{"version":1,"open":{"Fruit":false}}`)

	out, err := execute(t, "", "paths", "--visible", "--state", state, src)
	require.NoError(t, err)
	assert.Equal(t, "Fruit\nVeg\nVeg/Carrot\n", out)

	out, err = execute(t, "", "paths", "--state", state, src)
	require.NoError(t, err)
	assert.Equal(t, "Fruit\nFruit/Apple\nVeg\nVeg/Carrot\n", out)
}

func TestPathsFromYAMLStore(t *testing.T) {
	src := writeFile(t, "prefs.yaml", "net:\n  host: a/b\ntheme: dark\n")

	out, err := execute(t, "", "paths", src)
	require.NoError(t, err)
	assert.Equal(t, "net\nnet/host = a\\/b\ntheme = dark\n", out)
}

func TestPathsErrors(t *testing.T) {
	_, err := execute(t, "", "paths", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	_, err = execute(t, "a\n", "paths", "--select", "sometimes", "-")
	assert.ErrorContains(t, err, "--select")

	_, err = execute(t, "a\n", "--log-level", "loud", "paths", "-")
	assert.Error(t, err)
}

func TestExportText(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "Fruit/Apple\nFruit/Banana\nVeg/Carrot\n",
		"export", "--out", dir, "--width", "80", "-")
	require.NoError(t, err)

	path := filepath.Join(dir, "tree.txt")
	assert.Equal(t, "wrote "+path+"\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "│  ├─── Apple", lines[1])
	assert.Equal(t, "│  └─── Banana", lines[2])
	assert.Equal(t, "   └─── Carrot", lines[4])
}

func TestExportAllFormats(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, "fruit.txt", "Fruit/Apple\nFruit/Banana\n")

	out, err := execute(t, "", "export", "-f", "text,png,svg", "-o", dir, "--name", "fruit", src)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"wrote " + filepath.Join(dir, "fruit.txt"),
		"wrote " + filepath.Join(dir, "fruit.png"),
		"wrote " + filepath.Join(dir, "fruit.svg"),
	}, strings.Split(strings.TrimSpace(out), "\n"))

	png, err := os.ReadFile(filepath.Join(dir, "fruit.png"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	svg, err := os.ReadFile(filepath.Join(dir, "fruit.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), "Banana")
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "a\n", "export", "-f", "gif", "-o", t.TempDir(), "-")
	assert.ErrorContains(t, err, "unknown format")
}

func TestTreeFlagOverrides(t *testing.T) {
	newCmd := func(args ...string) (*cobra.Command, *treeFlags) {
		var tf treeFlags
		cmd := &cobra.Command{Use: "x"}
		tf.register(cmd)
		require.NoError(t, cmd.ParseFlags(args))
		return cmd, &tf
	}

	cmd, tf := newCmd("--select", "multi", "--show-root")
	adjust, err := tf.overrides(cmd)
	require.NoError(t, err)
	p := style.Cell()
	p.ShowRoot = false
	adjust(p)
	assert.Equal(t, style.SelectMulti, p.SelectMode)
	assert.True(t, p.ShowRoot)

	// unset flags leave the style file's values alone
	cmd, tf = newCmd()
	adjust, err = tf.overrides(cmd)
	require.NoError(t, err)
	p = style.Cell()
	p.SelectMode = style.SelectNone
	adjust(p)
	assert.Equal(t, style.SelectNone, p.SelectMode)
	assert.True(t, p.ShowRoot)

	cmd, tf = newCmd("--select", "many")
	_, err = tf.overrides(cmd)
	assert.ErrorContains(t, err, "--select")
}

func TestDefaultStatePathWarnsWithoutCacheDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("user cache dir follows XDG only on linux")
	}
	var logs bytes.Buffer
	logging.InitForCLI(logging.LevelWarn, &logs)
	t.Cleanup(logging.Discard)

	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "")
	assert.Empty(t, defaultStatePath("tree.yaml"))
	assert.Contains(t, logs.String(), "not kept")

	logs.Reset()
	assert.Empty(t, defaultStatePath("-"))
	assert.Empty(t, logs.String(), "stdin has no state and needs no warning")

	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	assert.NotEmpty(t, defaultStatePath("tree.yaml"))
	assert.Empty(t, logs.String())
}
