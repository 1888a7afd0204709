package dom

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ImageDiff builds the element tree an imagediff.Widget binds to:
//
//	div.image-diff
//	  div.image-diff__inner
//	    div.image-diff__before > img
//	    div.image-diff__wrapper
//	      div.image-diff__after > img
//
// The after image sits inside the wrapper so that narrowing the wrapper
// (swipe) clips it and lowering the wrapper opacity (fade) blends it.
func ImageDiff(id string) *Node {
	before := El("img", "")
	before.SetAttribute("alt", "before")
	before.SetAttribute("data-image", "before")

	after := El("img", "")
	after.SetAttribute("alt", "after")
	after.SetAttribute("data-image", "after")

	root := El("div", "image-diff",
		El("div", "image-diff__inner",
			El("div", "image-diff__before", before),
			El("div", "image-diff__wrapper",
				El("div", "image-diff__after", after),
			),
		),
	)
	if id != "" {
		root.SetAttribute("id", id)
	}
	return root
}

const stylesheet = `<style>
.image-diff { position: relative; overflow: hidden; }
.image-diff__inner { position: relative; }
.image-diff__before, .image-diff__wrapper { position: absolute; top: 0; left: 0; }
.image-diff__wrapper { overflow: hidden; }
.image-diff__before img, .image-diff__after img { display: block; }
.image-diff__inner--difference .image-diff__wrapper { mix-blend-mode: difference; }
</style>`

// Stylesheet renders the CSS the tree relies on. Difference mode is
// composited entirely by the browser through mix-blend-mode.
func Stylesheet() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, stylesheet)
		return err
	})
}
