package tree

import (
	"slices"

	"github.com/vanderheijden86/treekit/pkg/treepath"
)

// ItemPathname returns the escaped path of n, suitable for FindItem. The
// root's label is included only when the root is shown; the hidden root
// itself has the empty path.
func (t *Tree) ItemPathname(n *Node) (string, error) {
	if !t.owns(n) {
		return "", ErrNotFound
	}
	return treepath.Join(t.pathLabels(n)), nil
}

// ItemPathnameBuf writes n's path into buf and returns the number of
// bytes written. If the path does not fit, nothing is written and
// ErrBufferTooSmall is returned along with a zero count.
func (t *Tree) ItemPathnameBuf(buf []byte, n *Node) (int, error) {
	if !t.owns(n) {
		return 0, ErrNotFound
	}
	labels := t.pathLabels(n)
	need := max(len(labels)-1, 0)
	for _, l := range labels {
		need += treepath.EscapedLen(l)
	}
	if need > len(buf) {
		return 0, ErrBufferTooSmall
	}
	// Fill right to left, walking from n up to the root.
	end := need
	for i := len(labels) - 1; i >= 0; i-- {
		seg := treepath.Escape(labels[i])
		start := end - len(seg)
		copy(buf[start:end], seg)
		end = start
		if i > 0 {
			end--
			buf[end] = byte(treepath.Separator)
		}
	}
	return need, nil
}

func (t *Tree) pathLabels(n *Node) []string {
	var labels []string
	for p := n; p != nil; p = p.parent {
		if p == t.root && !t.prefs.ShowRoot {
			break
		}
		labels = append(labels, p.label)
	}
	slices.Reverse(labels)
	return labels
}
