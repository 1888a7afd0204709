package imagediff

// Mode selects how the two images are presented.
type Mode string

const (
	// ModeDifference composites the images with a pixel difference blend.
	// It has no continuous control.
	ModeDifference Mode = "difference"

	// ModeFade cross-fades the after image over the before image.
	ModeFade Mode = "fade"

	// ModeSwipe reveals the before image by narrowing the after wrapper.
	ModeSwipe Mode = "swipe"
)

var modes = []Mode{ModeDifference, ModeFade, ModeSwipe}

// Modes returns the valid modes in their canonical order.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	copy(out, modes)
	return out
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	for _, v := range modes {
		if m == v {
			return true
		}
	}
	return false
}

// Tunable reports whether the mode accepts a control value.
func (m Mode) Tunable() bool {
	return m == ModeFade || m == ModeSwipe
}

func (m Mode) String() string {
	return string(m)
}

// ParseMode converts s to a Mode, failing with KindInvalidMode for
// anything outside Modes().
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", &Error{Op: "parse", Kind: KindInvalidMode, Mode: m}
	}
	return m, nil
}

// innerClass is the class attribute written to the inner container.
func innerClass(m Mode) string {
	return classInner + " " + classInner + "--" + string(m)
}
