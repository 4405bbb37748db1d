// Package store is a small hierarchical key/value namespace: named groups
// that hold ordered entries and nested groups. It is the data source the
// tree can mirror with (*tree.Tree).Load.
//
// Groups are read from YAML documents or from a SQLite table; both keep
// the order in which groups and keys were written.
package store

import "strings"

// Entry is a single key/value pair inside a group.
type Entry struct {
	Key   string
	Value string
}

// Group is a named node of the namespace.
type Group struct {
	name    string
	parent  *Group
	groups  []*Group
	entries []Entry
}

// New returns an empty root group.
func New(name string) *Group {
	return &Group{name: name}
}

// Name is the group's own name.
func (g *Group) Name() string { return g.name }

// Path is the slash-joined chain of group names below the root. The root
// group has an empty path. Names are joined verbatim; use treepath to
// escape them when they must round-trip.
func (g *Group) Path() string {
	var parts []string
	for n := g; n.parent != nil; n = n.parent {
		parts = append(parts, n.name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// Groups returns the nested groups in insertion order.
func (g *Group) Groups() []*Group { return g.groups }

// Entries returns the key/value pairs in insertion order.
func (g *Group) Entries() []Entry { return g.entries }

// Group returns the nested group with the given name, or nil.
func (g *Group) Group(name string) *Group {
	for _, c := range g.groups {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Value returns the value stored under key.
func (g *Group) Value(key string) (string, bool) {
	for _, e := range g.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// AddGroup returns the nested group with the given name, creating it at
// the end when it does not exist yet.
func (g *Group) AddGroup(name string) *Group {
	if c := g.Group(name); c != nil {
		return c
	}
	c := &Group{name: name, parent: g}
	g.groups = append(g.groups, c)
	return c
}

// Set stores value under key, replacing an existing value in place.
func (g *Group) Set(key, value string) {
	for i := range g.entries {
		if g.entries[i].Key == key {
			g.entries[i].Value = value
			return
		}
	}
	g.entries = append(g.entries, Entry{Key: key, Value: value})
}

// Walk visits g and every nested group depth-first, parents before
// children. Returning false from fn skips that group's children.
func (g *Group) Walk(fn func(*Group) bool) {
	if !fn(g) {
		return
	}
	for _, c := range g.groups {
		c.Walk(fn)
	}
}
