package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/treekit/pkg/logging"
	"github.com/vanderheijden86/treekit/pkg/store"
	"github.com/vanderheijden86/treekit/pkg/style"
	"github.com/vanderheijden86/treekit/pkg/tree"
)

// loadTree builds a tree from src. The format follows the extension:
// .yaml/.yml and .db/.sqlite/.sqlite3 are stores, anything else is a
// list of paths, one per line. "-" reads a path list from stdin.
func loadTree(ctx context.Context, src string, prefs *style.Prefs, stdin io.Reader) (*tree.Tree, error) {
	t := tree.New(prefs)
	switch strings.ToLower(filepath.Ext(src)) {
	case ".yaml", ".yml":
		g, err := store.LoadYAMLFile(src)
		if err != nil {
			return nil, err
		}
		return t, t.Load(g)
	case ".db", ".sqlite", ".sqlite3":
		g, err := store.LoadSQLiteFile(ctx, src)
		if err != nil {
			return nil, err
		}
		return t, t.Load(g)
	}

	r := stdin
	if src != "-" {
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("open paths: %w", err)
		}
		defer f.Close()
		r = f
	}
	if err := addPaths(t, r); err != nil {
		return nil, fmt.Errorf("read paths %s: %w", src, err)
	}
	return t, nil
}

// addPaths adds one item per line. Blank lines and lines starting with
// '#' are skipped; duplicates are ignored.
func addPaths(t *tree.Tree, r io.Reader) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		if t.Add(s) == nil {
			logging.Debug("source", "line %d: %q already present", line, s)
		}
	}
	return sc.Err()
}
