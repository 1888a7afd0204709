package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/valyala/bytebufferpool"

	"github.com/pthm/imagediff"
)

// ServeHTTP routes GET requests under the prefix to a render and POST
// requests to the named action.
//
// Mutating requests must carry HX-Request: true. Browsers do not send that
// header on cross-site form posts, so it doubles as a CSRF guard.
func (v *Viewer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead && !IsHTMX(r) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if !strings.HasPrefix(r.URL.Path, v.prefix) {
		http.NotFound(w, r)
		return
	}
	action := strings.Trim(strings.TrimPrefix(r.URL.Path, v.prefix), "/")

	var handle actionFunc
	switch {
	case action == "" && (r.Method == http.MethodGet || r.Method == http.MethodHead):
	case r.Method == http.MethodPost && v.actions[action] != nil:
		handle = v.actions[action]
	default:
		http.NotFound(w, r)
		return
	}

	widget, err := v.restore(r)
	if err != nil {
		v.OnError(w, r, err)
		return
	}
	if handle == nil {
		v.handleResult(w, r, OK(widget.Props()))
		return
	}
	v.handleResult(w, r, handle(r.Context(), widget, r))
}

// restore decodes the props token and rebuilds the widget it describes.
func (v *Viewer) restore(r *http.Request) (*imagediff.Widget, error) {
	token := r.FormValue("p")
	if token == "" {
		return nil, fmt.Errorf("%w: missing p", ErrBadRequest)
	}
	props, err := v.encoder.Decode(token, v.sensitive)
	if err != nil {
		return nil, wrapEncodingError(err)
	}
	w, err := imagediff.Restore(newTree(), props)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return w, nil
}

// handleResult writes an action's result. Widget errors are rendered: the
// props carried by the result are shown again with an error toast and a 422
// status. Any other error goes to OnError.
func (v *Viewer) handleResult(w http.ResponseWriter, r *http.Request, result Result) {
	if err := result.Error(); err != nil {
		if StatusFor(err) != http.StatusUnprocessableEntity {
			v.OnError(w, r, err)
			return
		}
		result = result.
			Flash(FlashError, err.Error()).
			Trigger("imagediff:error", map[string]any{
				"kind":    imagediff.KindOf(err).String(),
				"message": err.Error(),
			}).
			Status(http.StatusUnprocessableEntity)
	}

	for k, val := range result.headers {
		w.Header().Set(k, val)
	}
	if h := BuildTriggerHeader(result.trigger, result.triggerData); h != "" {
		w.Header().Set("HX-Trigger", h)
	}
	if result.ShouldSkip() {
		status := result.status
		if status == 0 {
			status = http.StatusNoContent
		}
		w.WriteHeader(status)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	view, err := v.Render(result.props)
	if err == nil {
		err = view.Render(r.Context(), buf)
	}
	if err != nil {
		v.OnError(w, r, fmt.Errorf("render: %w", err))
		return
	}
	buf.WriteString(RenderFlashesOOB(result.flashes))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if result.status != 0 {
		w.WriteHeader(result.status)
	}
	if r.Method != http.MethodHead {
		w.Write(buf.B)
	}
}
