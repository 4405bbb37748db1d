package main

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/treekit/pkg/config"
	"github.com/vanderheijden86/treekit/pkg/logging"
	"github.com/vanderheijden86/treekit/pkg/ui"
)

var errNoTerminal = errors.New("view needs a terminal; use paths or export instead")

func newViewCmd() *cobra.Command {
	var (
		tf        treeFlags
		statePath string
		noState   bool
		logFile   string
	)
	cmd := &cobra.Command{
		Use:   "view <source>",
		Short: "Browse a tree in the terminal",
		Long: `Opens an interactive viewer for the tree built from <source>.

The open/closed state of the items is restored from --state and saved
there on quit. It defaults to a file per source in the user cache
directory.

Without --style, the style file is taken from $TK_STYLE, .tk/style.yaml
in the current directory or a parent, or tk/style.yaml in the user
config directory. The style file is watched and changes are applied
while the viewer runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errNoTerminal
			}
			if tf.stylePath == "" {
				if p, ok := config.DiscoverStyle("."); ok {
					tf.stylePath = p
				}
			}
			if statePath == "" && !noState {
				statePath = defaultStatePath(args[0])
			}
			prefs, err := tf.prefs(cmd, "cell")
			if err != nil {
				return err
			}
			adjust, err := tf.overrides(cmd)
			if err != nil {
				return err
			}
			t, err := loadTree(cmd.Context(), args[0], prefs, cmd.InOrStdin())
			if err != nil {
				return err
			}

			// The terminal belongs to the UI from here on.
			level, _ := logging.ParseLevel(cmd.Flag("log-level").Value.String())
			if logFile != "" {
				if err := logging.InitForFile(level, logFile); err != nil {
					return err
				}
				defer logging.Close()
			} else {
				logging.Discard()
			}

			m := ui.NewModel(t, ui.Options{
				Title:     args[0],
				StatePath: statePath,
				StylePath: tf.stylePath,
				Adjust:    adjust,
				Context:   cmd.Context(),
			})
			opts := []tea.ProgramOption{
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(cmd.Context()),
			}
			if args[0] == "-" {
				// stdin carried the paths; read keys from the terminal.
				opts = append(opts, tea.WithInputTTY())
			}
			_, err = tea.NewProgram(m, opts...).Run()
			if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				logging.Error("view", err, "viewer stopped")
				return err
			}
			return nil
		},
	}
	tf.register(cmd)
	cmd.Flags().StringVar(&statePath, "state", "", "file the open/closed state is restored from and saved to")
	cmd.Flags().BoolVar(&noState, "no-state", false, "neither restore nor save the open/closed state")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file while the viewer runs")
	return cmd
}

// defaultStatePath is where the state of src is kept when --state is not
// given. It is empty for stdin or when there is no user cache directory.
func defaultStatePath(src string) string {
	p, ok := config.StatePath(src)
	if !ok && src != "-" {
		logging.Warn("view", "no user cache directory; open/closed state of %s is not kept", src)
	}
	return p
}
