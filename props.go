package imagediff

// Epsilon is the tolerance applied to the [0,1] bounds of a control value.
const Epsilon = 1e-6

// ImageProps describes one side of the comparison.
type ImageProps struct {
	Width  int    `msgpack:"w,omitempty"`
	Height int    `msgpack:"h,omitempty"`
	URL    string `msgpack:"u"`
}

// Props is the complete observable state of a widget.
//
// Width and Height are meaningful only when Sized is true. A zero size is a
// legitimate resolved size, so Sized rather than the zero value marks
// whether the first load has been seen.
type Props struct {
	Mode       Mode       `msgpack:"m"`
	Value      float64    `msgpack:"v"`
	Width      int        `msgpack:"w"`
	Height     int        `msgpack:"h"`
	Sized      bool       `msgpack:"s,omitempty"`
	Before     ImageProps `msgpack:"b"`
	After      ImageProps `msgpack:"a"`
	Generation uint64     `msgpack:"g"`

	// Effect is the value last written to the sink by Swipe or Fade.
	// EffectSet is false until then and after every mode install.
	Effect    float64 `msgpack:"e,omitempty"`
	EffectSet bool    `msgpack:"es,omitempty"`
}

// DefaultProps returns a freshly allocated default state.
func DefaultProps() Props {
	return Props{
		Mode:  ModeDifference,
		Value: 1,
	}
}

// InRange reports whether v lies in [0,1] within Epsilon.
func InRange(v float64) bool {
	return v >= 0-Epsilon && v <= 1+Epsilon
}

// Validate checks the invariants a decoded Props must satisfy before a
// widget can be restored from it.
func (p Props) Validate() error {
	if !p.Mode.Valid() {
		return &Error{Op: "restore", Kind: KindInvalidMode, Mode: p.Mode}
	}
	if !InRange(p.Value) {
		return &Error{Op: "restore", Kind: KindOutOfRange, Value: p.Value}
	}
	return nil
}
