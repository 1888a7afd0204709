package imagediff

import "strconv"

// Image identifies which side of the comparison a load event belongs to.
type Image string

const (
	ImageBefore Image = "before"
	ImageAfter  Image = "after"
)

// LoadEvent reports the natural dimensions of one loaded image.
//
// Generation is the value of Widget.Generation when the load was started.
// Zero means untagged: the event is applied to whatever state is current.
type LoadEvent struct {
	Image      Image
	Generation uint64
	Width      int
	Height     int
}

// ImageLoaded feeds a load event to the sizing resolver and reports whether
// it fixed the widget's size.
//
// The first accepted event per generation wins; later events only record the
// per-image dimensions. Events tagged with a superseded generation are
// dropped entirely.
func (w *Widget) ImageLoaded(ev LoadEvent) bool {
	if ev.Generation != 0 && ev.Generation != w.props.Generation {
		return false
	}
	switch ev.Image {
	case ImageBefore:
		w.props.Before.Width, w.props.Before.Height = ev.Width, ev.Height
	case ImageAfter:
		w.props.After.Width, w.props.After.Height = ev.Width, ev.Height
	}
	if w.props.Sized {
		return false
	}
	w.props.Width, w.props.Height = ev.Width, ev.Height
	w.props.Sized = true
	w.writeSize()
	if w.props.Mode == ModeSwipe {
		// the resize overwrote the swiped wrapper width
		w.props.EffectSet = false
	}
	return true
}

func (w *Widget) writeSize() {
	width, height := px(w.props.Width), px(w.props.Height)
	for _, el := range w.els.sized() {
		el.SetStyle("width", width)
		el.SetStyle("height", height)
	}
}

func px(n int) string {
	return strconv.Itoa(n) + "px"
}

func pxf(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64) + "px"
}
