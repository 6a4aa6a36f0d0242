package layouts

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Base wraps page content in the application shell. The shell loads htmx so
// calendar navigation swaps the grid without full page reloads.
func Base(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`+
				`<meta name="viewport" content="width=device-width, initial-scale=1"/>`+
				`<title>%s</title>`+
				`<script src="/static/js/htmx.min.js"></script>`+
				`<link rel="stylesheet" href="/static/css/app.css"/>`+
				`</head><body><main id="content">`,
			templ.EscapeString(title),
		); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}
