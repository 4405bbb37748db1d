package tree

import (
	"errors"

	"github.com/vanderheijden86/treekit/pkg/store"
	"github.com/vanderheijden86/treekit/pkg/treepath"
)

// maxEntryValue is the longest entry value shown in full by Load.
const maxEntryValue = 40

// Load mirrors the groups and entries of g below the root. Each group
// becomes an item named after the group and each entry a leaf labelled
// "key = value". Names containing slashes are escaped, so they arrive as
// literal labels. Items that already exist are kept.
func (t *Tree) Load(g *store.Group) error {
	if g == nil {
		return errors.New("tree: load from nil group")
	}
	if g.Name() != "" {
		t.SetRootLabel(g.Name())
	}
	t.loadGroup(g, "")
	return nil
}

func (t *Tree) loadGroup(g *store.Group, prefix string) {
	for _, sub := range g.Groups() {
		path := prefix + treepath.Escape(sub.Name())
		t.Add(path) // nil when it already exists
		t.loadGroup(sub, path+string(treepath.Separator))
	}
	for _, e := range g.Entries() {
		t.Add(prefix + treepath.Escape(entryLabel(e)))
	}
}

func entryLabel(e store.Entry) string {
	v := e.Value
	if r := []rune(v); len(r) > maxEntryValue {
		v = string(r[:maxEntryValue]) + "..."
	}
	return e.Key + " = " + v
}
