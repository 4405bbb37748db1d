package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# Tree viewer

Items are addressed by **path**: labels joined with ` + "`/`" + `.
A slash inside a label is written ` + "`\\/`" + `.

## Keys

| Key | Action |
|-----|--------|
| ↑ ↓ / k j | move focus |
| ← / h | close the item, or go to its parent |
| → / l | open the item, or go to its first child |
| g / G | first / last item |
| pgup / pgdn | page |
| space | toggle selection (multi mode) |
| enter | select only the focused item |
| ctrl+a | select everything (multi mode) |
| o | open or close |
| a | add an item by path |
| x | remove the focused item |
| y | copy the focused item's path |
| q | quit, saving the open state |

## Mouse

Click a label to select it and the arrow to open or close. Double click
toggles. In multi mode ctrl+click toggles and shift+click extends from
the last clicked item; dragging extends the selection and scrolls at the
edges.
`

// renderHelpPage renders the help page for the given width. Rendering
// failures fall back to the raw markdown.
func renderHelpPage(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width-2, 20)),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return strings.TrimRight(out, "\n")
}
