package dom

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

var voidElements = map[string]bool{
	"img": true, "br": true, "hr": true, "input": true, "meta": true, "link": true,
}

// Component renders the subtree rooted at n.
func (n *Node) Component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, n.HTML())
		return err
	})
}

// HTML returns the subtree rooted at n as an HTML string.
func (n *Node) HTML() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	tag := strings.ToLower(n.Tag)
	sb.WriteString("<")
	sb.WriteString(tag)
	for _, a := range n.attrs {
		sb.WriteString(" ")
		sb.WriteString(a.key)
		sb.WriteString(`="`)
		sb.WriteString(templ.EscapeString(a.value))
		sb.WriteString(`"`)
	}
	if len(n.style) > 0 {
		sb.WriteString(` style="`)
		for i, p := range n.style {
			if i > 0 {
				sb.WriteString("; ")
			}
			sb.WriteString(templ.EscapeString(p.key + ": " + p.value))
		}
		sb.WriteString(`"`)
	}
	sb.WriteString(">")
	if voidElements[tag] {
		return
	}
	sb.WriteString(templ.EscapeString(n.Text))
	for _, c := range n.Children {
		c.write(sb)
	}
	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteString(">")
}
