package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pthm/imagediff"
	"github.com/pthm/imagediff/lib/encoding"
	"github.com/pthm/imagediff/lib/probe"
)

// actionFunc handles one named action against a restored widget.
type actionFunc func(ctx context.Context, w *imagediff.Widget, r *http.Request) Result

// Viewer serves one image comparison widget as an HTMX component. It keeps
// no state between requests: the widget's props travel in the "p"
// parameter, signed or encrypted by the encoder.
//
//	enc, _ := encoding.NewEncoder(key)
//	v := server.New("compare", enc, server.WithSource(probe.New()))
//	http.Handle(v.Prefix()+"/", v)
type Viewer struct {
	name      string
	base      string
	prefix    string
	sensitive bool
	encoder   *encoding.Encoder
	source    *probe.Source
	logger    echo.Logger
	actions   map[string]actionFunc

	// OnError writes the response for errors that cannot be rendered as
	// widget state: undecodable props and malformed form values.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithPath sets the base path the viewer's prefix is built on. Defaults to "/_c/".
func WithPath(base string) Option {
	return func(v *Viewer) {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		v.base = base
	}
}

// WithSensitive encrypts props instead of signing them.
func WithSensitive() Option {
	return func(v *Viewer) {
		v.sensitive = true
	}
}

// WithSource lets the viewer probe image sizes itself after every update.
// Without a source, sizes are reported by the browser through the loaded action.
func WithSource(s *probe.Source) Option {
	return func(v *Viewer) {
		v.source = s
	}
}

// WithLogger sets the logger for probe failures.
func WithLogger(l echo.Logger) Option {
	return func(v *Viewer) {
		v.logger = l
	}
}

// New creates a viewer. The URL prefix is derived from name and the source
// location of the call, so two viewers with the same name do not collide.
func New(name string, enc *encoding.Encoder, opts ...Option) *Viewer {
	v := &Viewer{
		name:    name,
		base:    "/_c/",
		encoder: enc,
	}
	v.actions = map[string]actionFunc{
		"update": v.handleUpdate,
		"tune":   v.handleTune,
		"swipe":  v.handleSwipe,
		"fade":   v.handleFade,
		"loaded": v.handleLoaded,
	}
	v.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		switch StatusFor(err) {
		case http.StatusBadRequest:
			http.Error(w, "Bad request", http.StatusBadRequest)
		default:
			http.Error(w, "Internal error", http.StatusInternalServerError)
		}
	}
	for _, opt := range opts {
		opt(v)
	}
	v.prefix = v.base + name + "-" + componentHash(name, 1)
	return v
}

// Name returns the viewer's name.
func (v *Viewer) Name() string {
	return v.name
}

// Prefix returns the URL prefix all actions are mounted under.
func (v *Viewer) Prefix() string {
	return v.prefix
}

// IsSensitive returns whether props are encrypted.
func (v *Viewer) IsSensitive() bool {
	return v.sensitive
}

// Initial creates a widget for the page's first render, probing sizes when
// a source is configured.
func (v *Viewer) Initial(ctx context.Context, before, after string, mode imagediff.Mode) (imagediff.Props, error) {
	w, err := imagediff.New(newTree(), before, after, mode)
	if err != nil {
		return imagediff.Props{}, err
	}
	v.resolve(ctx, w)
	return w.Props(), nil
}

// resolve sizes w from the configured source. A failure is logged and
// returned; the browser still reports sizes through the loaded action.
func (v *Viewer) resolve(ctx context.Context, w *imagediff.Widget) error {
	if v.source == nil {
		return nil
	}
	err := probe.Resolve(ctx, v.source, w)
	if err != nil {
		v.logf("imagediff %s: probe: %v", v.name, err)
	}
	return err
}

func (v *Viewer) logf(format string, args ...any) {
	if v.logger != nil {
		v.logger.Warnf(format, args...)
	}
}

func (v *Viewer) actionPath(action string) string {
	return v.prefix + "/" + action
}

func (v *Viewer) encode(props imagediff.Props) (string, error) {
	token, err := v.encoder.Encode(props, v.sensitive)
	if err != nil {
		return "", fmt.Errorf("encode props: %w", err)
	}
	return token, nil
}

// componentHash generates a deterministic hash from the name and the
// file:line of the caller skip frames up.
func componentHash(name string, skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	input := name
	if ok {
		input = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:4])
}
