package tree

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/treekit/pkg/logging"
)

// State is the persisted open/closed state of a tree.
//
// File format (JSON):
//
//	{
//	  "version": 1,
//	  "open": {
//	    "Fruit": true,
//	    "Fruit/Citrus": false
//	  }
//	}
//
// Keys are item paths as returned by ItemPathname. Only items with
// children are recorded; paths that no longer resolve are ignored.
type State struct {
	Version int             `json:"version"`
	Open    map[string]bool `json:"open"`
}

// StateVersion is the current schema version.
const StateVersion = 1

// CaptureState records the open state of every item that has children.
func (t *Tree) CaptureState() *State {
	s := &State{Version: StateVersion, Open: make(map[string]bool)}
	for n := t.root; n != nil; n = n.Next() {
		if !n.HasChildren() || (n == t.root && !t.prefs.ShowRoot) {
			continue
		}
		path, err := t.ItemPathname(n)
		if err != nil || path == "" {
			continue
		}
		s.Open[path] = n.IsOpen()
	}
	return s
}

// ApplyState opens and closes items to match s without invoking the
// callback. It returns the number of paths that resolved.
func (t *Tree) ApplyState(s *State) int {
	if s == nil {
		return 0
	}
	applied := 0
	for path, open := range s.Open {
		n := t.FindItem(path)
		if n == nil {
			continue
		}
		if open {
			n.Open()
		} else {
			n.Close()
		}
		applied++
	}
	return applied
}

// SaveState writes the captured state to w as indented JSON.
func (t *Tree) SaveState(w io.Writer) error {
	data, err := json.MarshalIndent(t.CaptureState(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tree state: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write tree state: %w", err)
	}
	return nil
}

// LoadState reads a state document from r and applies it.
func (t *Tree) LoadState(r io.Reader) error {
	var s State
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return fmt.Errorf("decode tree state: %w", err)
	}
	if s.Version > StateVersion {
		return fmt.Errorf("tree state version %d is newer than %d", s.Version, StateVersion)
	}
	t.ApplyState(&s)
	return nil
}

// SaveStateFile writes the state to path, creating its directory.
func (t *Tree) SaveStateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create state file: %w", err)
	}
	if err := t.SaveState(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadStateFile applies the state saved at path. A missing file leaves
// the tree as it is; a corrupt one is logged and ignored.
func (t *Tree) LoadStateFile(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open state file: %w", err)
	}
	defer f.Close()
	if err := t.LoadState(f); err != nil {
		logging.Warn("state", "ignoring tree state %s: %v", path, err)
	}
	return nil
}
