package imagediff

// install validates mode and makes it current. An invalid mode leaves the
// props and the sink untouched.
func (w *Widget) install(op string, mode Mode) error {
	if !mode.Valid() {
		return &Error{Op: op, Kind: KindInvalidMode, Mode: mode}
	}
	w.installMode(mode)
	return nil
}

// Install switches the widget to mode, keeping images, size and value.
// The wrapper returns to full opacity and width so no partial fade or swipe
// from the previous mode stays visible.
func (w *Widget) Install(mode Mode) error {
	return w.install("install", mode)
}

func (w *Widget) installMode(mode Mode) {
	w.props.Mode = mode
	w.props.EffectSet = false
	w.els.inner.SetAttribute("class", innerClass(mode))
	w.els.wrapper.SetStyle("opacity", "1")
	if w.props.Sized {
		w.els.wrapper.SetStyle("width", px(w.props.Width))
	} else {
		w.els.wrapper.SetStyle("width", "")
	}
}
