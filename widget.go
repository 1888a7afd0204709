package imagediff

// Widget is the image comparison state machine. It owns its Props and
// writes every visual change to the sub-elements bound at construction.
//
// A Widget is not safe for concurrent use. Load events from concurrent
// sources must be funnelled to ImageLoaded from a single goroutine.
type Widget struct {
	els   *elements
	props Props
}

// New binds the widget to root and loads the two images in the given mode.
//
// A root lacking any sub-element of the structural contract fails with
// KindStructure before anything is written. An invalid mode fails with
// KindInvalidMode after the URLs have been assigned; the returned widget is
// then usable in difference mode.
func New(root Root, before, after string, mode Mode) (*Widget, error) {
	els, err := bind(root)
	if err != nil {
		return nil, err
	}
	w := &Widget{els: els}
	if err := w.Update(before, after, mode); err != nil {
		return w, err
	}
	return w, nil
}

// Restore binds a widget to root and re-applies previously captured props
// without resetting them. Use it to rebuild a widget whose state outlived
// its element tree, such as props carried through a URL.
func Restore(root Root, props Props) (*Widget, error) {
	if err := props.Validate(); err != nil {
		return nil, err
	}
	els, err := bind(root)
	if err != nil {
		return nil, err
	}
	w := &Widget{els: els, props: props}
	w.writeSources()

	effect, effectSet := props.Effect, props.EffectSet
	w.installMode(props.Mode)
	if w.props.Sized {
		w.writeSize()
	}
	if effectSet {
		w.writeEffect(effect)
	}
	return w, nil
}

// Update loads a new image pair and switches to mode. All previous state is
// discarded, including the resolved size, so the next load event resizes
// the widget again. Load events started before this call are stale from
// here on if they carry a generation.
func (w *Widget) Update(before, after string, mode Mode) error {
	gen := w.props.Generation + 1
	w.props = DefaultProps()
	w.props.Generation = gen
	w.props.Before.URL = before
	w.props.After.URL = after
	w.writeSources()
	return w.install("update", mode)
}

// Tune sets the control value without writing any derived style.
func (w *Widget) Tune(v float64) error {
	return w.applyValue("tune", "", v)
}

// Swipe sets the control value in swipe mode and narrows the wrapper to
// Width*(1-v) pixels.
func (w *Widget) Swipe(v float64) error {
	if err := w.applyValue("swipe", ModeSwipe, v); err != nil {
		return err
	}
	w.writeEffect(v)
	return nil
}

// Fade sets the control value in fade mode and sets the wrapper opacity
// to 1-v.
func (w *Widget) Fade(v float64) error {
	if err := w.applyValue("fade", ModeFade, v); err != nil {
		return err
	}
	w.writeEffect(v)
	return nil
}

// Props returns a copy of the current state.
func (w *Widget) Props() Props {
	return w.props
}

func (w *Widget) Mode() Mode {
	return w.props.Mode
}

func (w *Widget) Value() float64 {
	return w.props.Value
}

// Size returns the resolved dimensions; ok is false until the first load
// event of the current generation has been applied.
func (w *Widget) Size() (width, height int, ok bool) {
	return w.props.Width, w.props.Height, w.props.Sized
}

// Generation identifies the current image pair. Tag load events with it so
// that late events for a replaced pair are discarded.
func (w *Widget) Generation() uint64 {
	return w.props.Generation
}

func (w *Widget) writeSources() {
	w.els.before.SetAttribute("src", w.props.Before.URL)
	w.els.after.SetAttribute("src", w.props.After.URL)
}
