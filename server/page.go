package server

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/pthm/imagediff/lib/dom"
)

// HTMXVersion is the htmx release Page loads.
const HTMXVersion = "2.0.4"

// htmxConfig lets 422 responses swap, so a rejected action still shows the
// previous state and its error toast.
const htmxConfig = `{"responseHandling":[` +
	`{"code":"204","swap":false},` +
	`{"code":"[23]..","swap":true},` +
	`{"code":"422","swap":true,"error":false},` +
	`{"code":"[45]..","swap":false,"error":true}]}`

// Page renders a complete HTML document around body, with htmx, the widget
// stylesheet and the toast container.
func Page(title string, body ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := `<!DOCTYPE html><html><head><meta charset="utf-8">` +
			`<title>` + templ.EscapeString(title) + `</title>` +
			`<meta name="htmx-config" content="` + templ.EscapeString(htmxConfig) + `">` +
			`<script src="https://unpkg.com/htmx.org@` + HTMXVersion + `"></script>`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if err := dom.Stylesheet().Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</head><body>`); err != nil {
			return err
		}
		for _, c := range body {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		if err := ToastContainer().Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}
