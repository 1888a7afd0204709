package server

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/a-h/templ"

	"github.com/pthm/imagediff"
	"github.com/pthm/imagediff/lib/dom"
)

// Render returns the viewer markup for props: the widget's element tree in
// its restored state, followed by the controls. The container is the swap
// target of every action, so each response replaces it whole.
func (v *Viewer) Render(props imagediff.Props) (templ.Component, error) {
	tree := newTree()
	if _, err := imagediff.Restore(tree, props); err != nil {
		return nil, err
	}
	token, err := v.encode(props)
	if err != nil {
		return nil, err
	}
	if !props.Sized {
		v.wireLoaded(tree, props, token)
	}

	container := dom.El("div", "image-diff-viewer").
		Attr("id", v.name).
		Attr("data-imagediff", strconv.FormatUint(props.Generation, 10)).
		Attr("hx-target", "this").
		Attr("hx-swap", string(SwapOuter))
	container.Append(tree, v.updateForm(props, token))
	if props.Mode.Tunable() {
		container.Append(v.slider(props, token))
	}
	return container.Component(), nil
}

// wireLoaded makes both images report their natural size once loaded. The
// requests are tagged with the generation so a late report for a replaced
// pair is discarded, and only one report is in flight at a time.
func (v *Viewer) wireLoaded(tree *dom.Node, props imagediff.Props, token string) {
	quotedToken, _ := json.Marshal(token)
	for _, b := range []struct {
		sel   string
		image imagediff.Image
	}{
		{imagediff.SelectorBefore, imagediff.ImageBefore},
		{imagediff.SelectorAfter, imagediff.ImageAfter},
	} {
		img := tree.Find(b.sel)
		if img == nil {
			continue
		}
		img.SetAttribute("onload", "htmx.trigger(this, 'imagediff:loaded')")
		img.SetAttribute("hx-post", v.actionPath("loaded"))
		img.SetAttribute("hx-trigger", "imagediff:loaded")
		img.SetAttribute("hx-sync", "closest [data-imagediff]:drop")
		img.SetAttribute("hx-vals", fmt.Sprintf(
			"js:{p: %s, image: '%s', generation: %d, width: this.naturalWidth, height: this.naturalHeight}",
			quotedToken, b.image, props.Generation,
		))
	}
}

func (v *Viewer) updateForm(props imagediff.Props, token string) *dom.Node {
	form := dom.El("form", "image-diff-viewer__update")
	setAttrs(form, WireAttrs(v.actionPath("update"), "POST", token))

	sel := dom.El("select", "").Attr("name", "mode")
	for _, m := range imagediff.Modes() {
		opt := dom.El("option", "").Attr("value", string(m)).SetText(string(m))
		if m == props.Mode {
			opt.SetAttribute("selected", "selected")
		}
		sel.Append(opt)
	}

	return form.Append(
		dom.El("input", "").Attr("name", "before").Attr("type", "url").Attr("value", props.Before.URL),
		dom.El("input", "").Attr("name", "after").Attr("type", "url").Attr("value", props.After.URL),
		sel,
		dom.El("button", "").Attr("type", "submit").SetText("Compare"),
	)
}

// slider drives the action matching the current mode.
func (v *Viewer) slider(props imagediff.Props, token string) *dom.Node {
	input := dom.El("input", "image-diff-viewer__value").
		Attr("type", "range").
		Attr("name", "value").
		Attr("min", "0").
		Attr("max", "1").
		Attr("step", "0.01").
		Attr("value", strconv.FormatFloat(props.Value, 'f', -1, 64))
	setAttrs(input, WireAttrs(v.actionPath(string(props.Mode)), "POST", token))
	input.SetAttribute("hx-trigger", "change")
	return input
}

// setAttrs copies attrs onto n in key order.
func setAttrs(n *dom.Node, attrs templ.Attributes) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		n.SetAttribute(k, fmt.Sprint(attrs[k]))
	}
}
