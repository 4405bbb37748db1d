package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/vanderheijden86/treekit/pkg/draw"
	"github.com/vanderheijden86/treekit/pkg/logging"
	"github.com/vanderheijden86/treekit/pkg/tree"
)

var exportFormats = []string{"text", "png", "svg"}

// measureWidth bounds the viewport while measuring content.
const measureWidth = 1 << 14

type exportOptions struct {
	tf        treeFlags
	formats   []string
	outDir    string
	name      string
	width     int
	statePath string
}

func newExportCmd() *cobra.Command {
	var o exportOptions
	cmd := &cobra.Command{
		Use:   "export <source>",
		Short: "Render a tree to text, PNG or SVG files",
		Long: `Lays out the whole tree built from <source> and writes one file per
format into --out, named <name>.txt, <name>.png and <name>.svg.

Text uses terminal cells; PNG and SVG use the pixel preset unless a
style file is given. Formats are rendered concurrently.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := runExport(cmd, args[0], o)
			for _, p := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", p)
			}
			return err
		},
	}
	o.tf.register(cmd)
	cmd.Flags().StringSliceVarP(&o.formats, "format", "f", []string{"text"}, "formats to write: "+strings.Join(exportFormats, ", "))
	cmd.Flags().StringVarP(&o.outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&o.name, "name", "tree", "base name of the output files")
	cmd.Flags().IntVar(&o.width, "width", 0, "clip text output to this many columns (default: terminal width, or unclipped)")
	cmd.Flags().StringVar(&o.statePath, "state", "", "apply the open/closed state saved by view")
	return cmd
}

// runExport renders every requested format and returns the files written,
// in format order.
func runExport(cmd *cobra.Command, src string, o exportOptions) ([]string, error) {
	for _, f := range o.formats {
		if !slices.Contains(exportFormats, f) {
			return nil, fmt.Errorf("unknown format %q (want %s)", f, strings.Join(exportFormats, ", "))
		}
	}
	if err := os.MkdirAll(o.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	// Each format gets its own tree, so stdin is read once up front.
	var input []byte
	if src == "-" {
		var err error
		if input, err = io.ReadAll(cmd.InOrStdin()); err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
	}

	width := o.width
	if width == 0 {
		if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
			if w, _, err := term.GetSize(fd); err == nil {
				width = w
			}
		}
	}

	paths := make([]string, len(o.formats))
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, format := range o.formats {
		g.Go(func() error {
			preset := "pixel"
			if format == "text" {
				preset = "cell"
			}
			prefs, err := o.tf.prefs(cmd, preset)
			if err != nil {
				return err
			}
			t, err := loadTree(ctx, src, prefs, bytes.NewReader(input))
			if err != nil {
				return err
			}
			if o.statePath != "" {
				if err := t.LoadStateFile(o.statePath); err != nil {
					logging.Warn("export", "state not applied: %v", err)
				}
			}
			path := filepath.Join(o.outDir, o.name+extension(format))
			if err := writeFormat(path, format, t, width); err != nil {
				return fmt.Errorf("export %s: %w", format, err)
			}
			logging.Info("export", "wrote %s", path)
			paths[i] = path
			return nil
		})
	}
	err := g.Wait()
	return slices.DeleteFunc(paths, func(p string) bool { return p == "" }), err
}

func extension(format string) string {
	if format == "text" {
		return ".txt"
	}
	return "." + format
}

func writeFormat(path, format string, t *tree.Tree, width int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	switch format {
	case "text":
		err = writeText(f, t, width)
	case "png":
		err = writePNG(f, t)
	case "svg":
		writeSVG(f, t)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// contentSize lays t out on s with an unbounded viewport and returns the
// extent of the whole tree.
func contentSize(t *tree.Tree, s draw.Surface) (w, h int) {
	t.SetViewport(draw.R(0, 0, measureWidth, 1))
	t.Layout(s)
	w, h = t.ContentSize()
	return max(w, 1), max(h, 1)
}

func renderText(t *tree.Tree, width int) string {
	w, h := contentSize(t, draw.NewCanvas(1, 1))
	if width > 0 {
		w = min(w, width)
	}
	c := draw.NewCanvas(w, h)
	t.SetViewport(draw.R(0, 0, w, h))
	t.Draw(c)
	return c.String()
}

func writeText(w io.Writer, t *tree.Tree, width int) error {
	_, err := io.WriteString(w, renderText(t, width)+"\n")
	return err
}

func writePNG(w io.Writer, t *tree.Tree) error {
	cw, ch := contentSize(t, draw.NewPNG(1, 1))
	p := draw.NewPNG(cw, ch)
	t.SetViewport(draw.R(0, 0, cw, ch))
	t.Draw(p)
	return p.Encode(w)
}

func writeSVG(w io.Writer, t *tree.Tree) {
	var measure bytes.Buffer
	cw, ch := contentSize(t, draw.NewSVG(&measure, 1, 1))
	s := draw.NewSVG(w, cw, ch)
	t.SetViewport(draw.R(0, 0, cw, ch))
	t.Draw(s)
	s.Close()
}

