package report

import (
	"github.com/charmbracelet/glamour"
	"github.com/rotisserie/eris"
)

// Preview renders Markdown for the terminal, wrapped at width columns.
func Preview(markdown string, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", eris.Wrap(err, "report: create renderer")
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", eris.Wrap(err, "report: render preview")
	}
	return out, nil
}
