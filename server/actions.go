package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pthm/imagediff"
	"github.com/pthm/imagediff/lib/dom"
)

// newTree builds a fresh element tree for one request.
func newTree() *dom.Node {
	return dom.ImageDiff("")
}

// handleUpdate loads a new image pair. With a probe source configured the
// sizes are resolved before responding; otherwise the rendered images report
// them back through the loaded action. A failed probe adds a warning toast.
func (v *Viewer) handleUpdate(ctx context.Context, w *imagediff.Widget, r *http.Request) Result {
	prev := w.Props()
	mode := imagediff.Mode(r.FormValue("mode"))
	if err := w.Update(r.FormValue("before"), r.FormValue("after"), mode); err != nil {
		return Err(prev, err)
	}
	if err := v.resolve(ctx, w); err != nil {
		return sized(w.Props()).Flash(FlashWarning, "Image sizes unavailable, waiting for the browser")
	}
	return sized(w.Props())
}

func (v *Viewer) handleTune(ctx context.Context, w *imagediff.Widget, r *http.Request) Result {
	return applyValue(w, r, w.Tune)
}

func (v *Viewer) handleSwipe(ctx context.Context, w *imagediff.Widget, r *http.Request) Result {
	return applyValue(w, r, w.Swipe)
}

func (v *Viewer) handleFade(ctx context.Context, w *imagediff.Widget, r *http.Request) Result {
	return applyValue(w, r, w.Fade)
}

func applyValue(w *imagediff.Widget, r *http.Request, apply func(float64) error) Result {
	prev := w.Props()
	value, err := strconv.ParseFloat(r.FormValue("value"), 64)
	if err != nil {
		return Err(prev, fmt.Errorf("%w: value: %v", ErrBadRequest, err))
	}
	if err := apply(value); err != nil {
		return Err(prev, err)
	}
	return OK(w.Props())
}

// handleLoaded applies a load event reported by the browser. An event that
// sizes the widget announces the size. One that only records the image's own
// dimensions re-renders so the token carries them. Anything else produces no
// swap.
func (v *Viewer) handleLoaded(ctx context.Context, w *imagediff.Widget, r *http.Request) Result {
	prev := w.Props()
	ev, err := parseLoadEvent(r)
	if err != nil {
		return Err(prev, err)
	}
	if w.ImageLoaded(ev) {
		return sized(w.Props())
	}
	if w.Props() != prev {
		return OK(w.Props())
	}
	return Skip().Header("HX-Reswap", string(SwapNone)).Status(http.StatusNoContent)
}

func parseLoadEvent(r *http.Request) (imagediff.LoadEvent, error) {
	var ev imagediff.LoadEvent
	switch img := imagediff.Image(r.FormValue("image")); img {
	case imagediff.ImageBefore, imagediff.ImageAfter:
		ev.Image = img
	default:
		return ev, fmt.Errorf("%w: image %q", ErrBadRequest, img)
	}

	gen, err := strconv.ParseUint(r.FormValue("generation"), 10, 64)
	if err != nil {
		return ev, fmt.Errorf("%w: generation: %v", ErrBadRequest, err)
	}
	ev.Generation = gen

	if ev.Width, err = formDim(r, "width"); err != nil {
		return ev, err
	}
	if ev.Height, err = formDim(r, "height"); err != nil {
		return ev, err
	}
	return ev, nil
}

func formDim(r *http.Request, key string) (int, error) {
	n, err := strconv.Atoi(r.FormValue(key))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrBadRequest, key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", ErrBadRequest, key)
	}
	return n, nil
}

// sized renders props and announces the resolved size, if any.
func sized(props imagediff.Props) Result {
	res := OK(props)
	if props.Sized {
		res = res.Trigger("imagediff:sized", map[string]any{
			"width":  props.Width,
			"height": props.Height,
		})
	}
	return res
}
