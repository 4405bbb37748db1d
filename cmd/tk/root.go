package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/treekit/pkg/logging"
	"github.com/vanderheijden86/treekit/pkg/style"
)

// treeFlags are shared by every command that builds a tree.
type treeFlags struct {
	stylePath  string
	selectMode string
	showRoot   bool
}

func (f *treeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.stylePath, "style", "", "style file (YAML) overlaid on the default preset")
	cmd.Flags().StringVar(&f.selectMode, "select", "", "selection mode: none, single or multi")
	cmd.Flags().BoolVar(&f.showRoot, "show-root", false, "draw the root item")
}

// prefs builds preferences from preset, then the style file, then the
// flags the user set explicitly.
func (f *treeFlags) prefs(cmd *cobra.Command, preset string) (*style.Prefs, error) {
	adjust, err := f.overrides(cmd)
	if err != nil {
		return nil, err
	}
	var p *style.Prefs
	if f.stylePath != "" {
		p, err = style.LoadFile(f.stylePath)
	} else {
		p, err = style.Preset(preset)
	}
	if err != nil {
		return nil, err
	}
	if f.stylePath == "" {
		p.ShowRoot = false
	}
	adjust(p)
	return p, nil
}

// overrides returns a function applying the flags the user set
// explicitly. It is also applied to preferences reloaded from the style
// file so that the command line keeps precedence.
func (f *treeFlags) overrides(cmd *cobra.Command) (func(*style.Prefs), error) {
	showRoot, setShowRoot := f.showRoot, cmd.Flags().Changed("show-root")
	var (
		mode    style.SelectMode
		setMode bool
	)
	if f.selectMode != "" {
		m, err := style.ParseSelectMode(f.selectMode)
		if err != nil {
			return nil, fmt.Errorf("--select: %w", err)
		}
		mode, setMode = m, true
	}
	return func(p *style.Prefs) {
		if setShowRoot {
			p.ShowRoot = showRoot
		}
		if setMode {
			p.SelectMode = mode
		}
	}, nil
}

func newRootCmd() *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:   "tk",
		Short: "Browse and export path-addressed trees",
		Long: `tk builds a tree from a list of slash separated paths, a YAML
document or a SQLite key/value store, then lets you browse it in the
terminal, list its item paths or export it as text, PNG or SVG.

A slash inside a label is written as \/.`,
		Version: version,
		// Errors are reported by the command; usage only adds noise.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logging.InitForCLI(level, cmd.ErrOrStderr())
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	root.SetVersionTemplate(`{{printf "tk version %s\n" .Version}}`)

	root.AddCommand(newViewCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newPathsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of tk",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tk version %s\n", version)
		},
	}
}
