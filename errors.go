package imagediff

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the category of a widget error.
type Kind int

const (
	// KindUnknown is returned by KindOf for errors not produced by this package.
	KindUnknown Kind = iota
	// KindInvalidMode indicates a mode outside Modes().
	KindInvalidMode
	// KindOutOfRange indicates a control value outside [0,1].
	KindOutOfRange
	// KindModeMismatch indicates a mode-specific call while another mode is active.
	KindModeMismatch
	// KindNotTunable indicates a tuning call in difference mode.
	KindNotTunable
	// KindStructure indicates the root is missing a required sub-element.
	KindStructure
)

func (k Kind) String() string {
	switch k {
	case KindInvalidMode:
		return "invalid mode"
	case KindOutOfRange:
		return "out of range"
	case KindModeMismatch:
		return "mode mismatch"
	case KindNotTunable:
		return "not tunable"
	case KindStructure:
		return "structure"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per Kind. Every *Error matches its sentinel with errors.Is.
var (
	ErrInvalidMode  = errors.New("imagediff: invalid mode")
	ErrOutOfRange   = errors.New("imagediff: value out of range")
	ErrModeMismatch = errors.New("imagediff: mode mismatch")
	ErrNotTunable   = errors.New("imagediff: mode not tunable")
	ErrStructure    = errors.New("imagediff: structural contract violated")
)

// Error is a structured widget failure. Fields not relevant to the Kind are
// left zero; the message is derived from them on demand.
type Error struct {
	// Op is the public operation that failed (update, tune, swipe, fade, ...).
	Op   string
	Kind Kind
	// Mode is the offending mode for KindInvalidMode and the current mode
	// for KindModeMismatch and KindNotTunable.
	Mode Mode
	// Required is the mode demanded by Swipe or Fade.
	Required Mode
	// Value is the rejected control value.
	Value float64
	// Selector names the missing sub-element for KindStructure.
	Selector string
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindInvalidMode:
		msg = fmt.Sprintf("mode %q not contained in [%s]", e.Mode, joinModes())
	case KindOutOfRange:
		msg = fmt.Sprintf("value must be within 0..1, but given: %g", e.Value)
	case KindModeMismatch:
		msg = fmt.Sprintf("current mode is %s, not %s", e.Mode, e.Required)
	case KindNotTunable:
		msg = fmt.Sprintf("current mode (%s) is not tunable", e.Mode)
	case KindStructure:
		msg = fmt.Sprintf("element %q not found", e.Selector)
	default:
		msg = e.Kind.String()
	}
	if e.Op == "" {
		return "imagediff: " + msg
	}
	return "imagediff: " + e.Op + ": " + msg
}

// Unwrap returns the sentinel for the error's Kind.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindInvalidMode:
		return ErrInvalidMode
	case KindOutOfRange:
		return ErrOutOfRange
	case KindModeMismatch:
		return ErrModeMismatch
	case KindNotTunable:
		return ErrNotTunable
	case KindStructure:
		return ErrStructure
	}
	return nil
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func joinModes() string {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
