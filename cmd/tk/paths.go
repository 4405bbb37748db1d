package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/treekit/pkg/tree"
)

func newPathsCmd() *cobra.Command {
	var (
		tf        treeFlags
		visible   bool
		statePath string
	)
	cmd := &cobra.Command{
		Use:   "paths <source>",
		Short: "List the path of every item",
		Long: `Prints the escaped path of every item of the tree built from
<source>, depth first. The output can be fed back to tk as a path list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := tf.prefs(cmd, "cell")
			if err != nil {
				return err
			}
			t, err := loadTree(cmd.Context(), args[0], prefs, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if statePath != "" {
				if err := t.LoadStateFile(statePath); err != nil {
					return err
				}
			}
			return writePaths(cmd.OutOrStdout(), t, visible)
		},
	}
	tf.register(cmd)
	cmd.Flags().BoolVar(&visible, "visible", false, "only list items not hidden by a closed parent")
	cmd.Flags().StringVar(&statePath, "state", "", "apply the open/closed state saved by view")
	return cmd
}

// writePaths prints one path per line. The root is listed only when it
// is shown.
func writePaths(w io.Writer, t *tree.Tree, visibleOnly bool) error {
	bw := bufio.NewWriter(w)
	start, next := t.First(), t.Next
	if visibleOnly {
		start = t.FirstVisibleItem()
		next = func(n *tree.Node) *tree.Node { return t.NextVisibleItem(n, 1) }
	}
	for n := start; n != nil; n = next(n) {
		path, err := t.ItemPathname(n)
		if err != nil {
			return err
		}
		if path == "" { // hidden root
			continue
		}
		if _, err := fmt.Fprintln(bw, path); err != nil {
			return err
		}
	}
	return bw.Flush()
}
