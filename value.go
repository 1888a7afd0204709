package imagediff

import "strconv"

// applyValue validates v against the current mode and stores it.
// required is empty for Tune. Props are untouched on failure.
func (w *Widget) applyValue(op string, required Mode, v float64) error {
	if !InRange(v) {
		return &Error{Op: op, Kind: KindOutOfRange, Value: v}
	}
	if required != "" && w.props.Mode != required {
		return &Error{Op: op, Kind: KindModeMismatch, Mode: w.props.Mode, Required: required}
	}
	if !w.props.Mode.Tunable() {
		return &Error{Op: op, Kind: KindNotTunable, Mode: w.props.Mode}
	}
	w.props.Value = v
	return nil
}

// writeEffect writes the derived style of v for the current mode. v may sit
// up to Epsilon outside [0,1]; the written style is clamped to its valid range.
func (w *Widget) writeEffect(v float64) {
	switch w.props.Mode {
	case ModeSwipe:
		width := float64(w.props.Width)
		w.els.wrapper.SetStyle("width", pxf(max(0, min(width, width*(1-v)))))
	case ModeFade:
		w.els.wrapper.SetStyle("opacity", opacity(max(0, min(1, 1-v))))
	default:
		return
	}
	w.props.Effect, w.props.EffectSet = v, true
}

func opacity(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
