package dom

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pthm/imagediff"
)

func TestQuerySelector_StructuralContract(t *testing.T) {
	root := ImageDiff("diff")
	tests := []struct {
		selector string
		check    func(n *Node) bool
	}{
		{imagediff.SelectorBefore, func(n *Node) bool { v, _ := n.Attribute("alt"); return n.Tag == "img" && v == "before" }},
		{imagediff.SelectorAfter, func(n *Node) bool { v, _ := n.Attribute("alt"); return n.Tag == "img" && v == "after" }},
		{imagediff.SelectorBeforeWrapper, func(n *Node) bool { return n.HasClass("image-diff__before") }},
		{imagediff.SelectorAfterWrapper, func(n *Node) bool { return n.HasClass("image-diff__after") }},
		{imagediff.SelectorWrapper, func(n *Node) bool { return n.HasClass("image-diff__wrapper") }},
		{imagediff.SelectorInner, func(n *Node) bool { return n.HasClass("image-diff__inner") }},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			el, ok := root.QuerySelector(tt.selector)
			if !ok {
				t.Fatalf("QuerySelector(%q) not found", tt.selector)
			}
			if !tt.check(el.(*Node)) {
				t.Errorf("QuerySelector(%q) matched the wrong node: %s", tt.selector, el.(*Node).HTML())
			}
		})
	}
}

func TestQuerySelector_Misses(t *testing.T) {
	root := El("div", "a", El("span", "b"))
	for _, sel := range []string{"", ".", ".c", "span.c", ".b img", "div"} {
		if _, ok := root.QuerySelector(sel); ok {
			t.Errorf("QuerySelector(%q) should not match", sel)
		}
	}
	if root.Find("span.b") == nil {
		t.Error("span.b should match")
	}
}

func TestQuerySelector_DocumentOrder(t *testing.T) {
	first := El("img", "x")
	second := El("img", "x")
	root := El("div", "", El("div", "outer", El("div", "", first)), second)
	if got := root.Find(".outer img"); got != first {
		t.Error("expected the nested image under .outer")
	}
	if got := root.Find("img.x"); got != first {
		t.Error("expected the first image in document order")
	}
}

func TestStyleAndAttributes(t *testing.T) {
	n := El("div", "a")
	n.SetStyle("width", "10px")
	n.SetStyle("opacity", "1")
	n.SetStyle("width", "20px")
	n.SetStyle("opacity", "")
	n.SetAttribute("style", "color: red")

	if got := n.Style("width"); got != "20px" {
		t.Errorf("width = %q, want 20px", got)
	}
	if got := n.Style("opacity"); got != "" {
		t.Errorf("opacity = %q, want cleared", got)
	}
	if _, ok := n.Attribute("style"); ok {
		t.Error("style attribute should be managed by SetStyle")
	}

	n.SetAttribute("class", "b c")
	if n.HasClass("a") || !n.HasClass("c") {
		t.Error("class attribute should be replaced")
	}
}

func TestRender(t *testing.T) {
	root := El("div", "box", El("img", ""))
	root.Children[0].SetAttribute("src", `a.png?x=1&y="2"`)
	root.SetStyle("width", "300px")
	root.SetStyle("height", "200px")

	var buf bytes.Buffer
	if err := root.Component().Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := `<div class="box" style="width: 300px; height: 200px"><img src="a.png?x=1&amp;y=&#34;2&#34;"></div>`
	if buf.String() != want {
		t.Errorf("HTML =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestRender_Text(t *testing.T) {
	sel := El("select", "").Attr("name", "mode").Append(
		El("option", "").Attr("value", "a").SetText("A & B"),
	)
	want := `<select name="mode"><option value="a">A &amp; B</option></select>`
	if got := sel.HTML(); got != want {
		t.Errorf("HTML = %s, want %s", got, want)
	}
}

func TestWidgetOnTree(t *testing.T) {
	root := ImageDiff("cmp")
	w, err := imagediff.New(root, "a.png", "b.png", imagediff.ModeSwipe)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	w.ImageLoaded(imagediff.LoadEvent{Generation: w.Generation(), Width: 300, Height: 200})
	if err := w.Swipe(0.5); err != nil {
		t.Fatalf("Swipe() error = %v", err)
	}

	html := root.HTML()
	for _, s := range []string{
		`id="cmp" style="width: 300px; height: 200px"`,
		`class="image-diff__inner image-diff__inner--swipe"`,
		`src="a.png"`,
		`src="b.png"`,
		`class="image-diff__wrapper" style="opacity: 1; width: 150px; height: 200px"`,
	} {
		if !strings.Contains(html, s) {
			t.Errorf("HTML missing %q:\n%s", s, html)
		}
	}
}

func TestStylesheet(t *testing.T) {
	var buf bytes.Buffer
	if err := Stylesheet().Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "mix-blend-mode: difference") {
		t.Error("stylesheet should composite difference mode")
	}
}
