package imagediff

// Element is a render sink target. Writes are declarative: the latest value
// for a property or attribute replaces any earlier one. An empty style value
// clears the property.
type Element interface {
	SetAttribute(name, value string)
	SetStyle(property, value string)
}

// Root is the widget's container. Sub-elements are resolved through it once,
// when the widget is bound.
type Root interface {
	Element
	QuerySelector(selector string) (Element, bool)
}

// Selectors of the structural contract, relative to the root.
const (
	SelectorBefore        = ".image-diff__before img"
	SelectorAfter         = ".image-diff__after img"
	SelectorBeforeWrapper = ".image-diff__before"
	SelectorAfterWrapper  = ".image-diff__after"
	SelectorWrapper       = ".image-diff__wrapper"
	SelectorInner         = ".image-diff__inner"
)

const classInner = "image-diff__inner"

// elements holds the bound sub-elements of one widget.
type elements struct {
	before        Element
	after         Element
	beforeWrapper Element
	afterWrapper  Element
	wrapper       Element
	inner         Element
	self          Element
}

func bind(root Root) (*elements, error) {
	if root == nil {
		return nil, &Error{Op: "bind", Kind: KindStructure, Selector: ":root"}
	}
	els := &elements{self: root}
	for _, b := range []struct {
		sel string
		dst *Element
	}{
		{SelectorBefore, &els.before},
		{SelectorAfter, &els.after},
		{SelectorBeforeWrapper, &els.beforeWrapper},
		{SelectorAfterWrapper, &els.afterWrapper},
		{SelectorWrapper, &els.wrapper},
		{SelectorInner, &els.inner},
	} {
		el, ok := root.QuerySelector(b.sel)
		if !ok || el == nil {
			return nil, &Error{Op: "bind", Kind: KindStructure, Selector: b.sel}
		}
		*b.dst = el
	}
	return els, nil
}

// sized returns the elements resized together when dimensions resolve.
func (e *elements) sized() []Element {
	return []Element{e.afterWrapper, e.beforeWrapper, e.wrapper, e.inner, e.self}
}
