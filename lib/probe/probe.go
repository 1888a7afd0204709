// Package probe is a load event source for imagediff widgets. It fetches
// images over HTTP or from a filesystem and decodes only their headers to
// learn the natural dimensions.
package probe

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrUnsupported is returned for URLs the source cannot fetch.
	ErrUnsupported = errors.New("probe: unsupported url")
	// ErrUnknownFormat is returned when no registered decoder recognises the data.
	ErrUnknownFormat = errors.New("probe: unknown image format")
	// ErrHostNotAllowed is returned for http and https URLs, and redirects,
	// whose host is not in the allow list.
	ErrHostNotAllowed = errors.New("probe: host not allowed")
)

const maxRedirects = 10

const (
	DefaultTimeout  = 5 * time.Second
	DefaultMaxBytes = 32 << 20
)

// Info describes a decoded image header.
type Info struct {
	Width  int
	Height int
	Format string
}

// Source resolves image URLs to their dimensions.
type Source struct {
	client   *http.Client
	fsys     fs.FS
	timeout  time.Duration
	maxBytes int64
	allow    map[string]bool
}

// Option configures a Source.
type Option func(*Source)

// WithClient sets the HTTP client used for http and https URLs.
func WithClient(c *http.Client) Option {
	return func(s *Source) {
		s.client = c
	}
}

// WithAllowHosts permits http and https URLs on the given hosts, matched
// against the URL's hostname. "*" permits any host. Without it only
// filesystem URLs are resolved.
func WithAllowHosts(hosts ...string) Option {
	return func(s *Source) {
		for _, h := range hosts {
			if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
				s.allow[h] = true
			}
		}
	}
}

// WithFS serves relative and file URLs from fsys. Without it they fail
// with ErrUnsupported.
func WithFS(fsys fs.FS) Option {
	return func(s *Source) {
		s.fsys = fsys
	}
}

// WithTimeout bounds each Arm call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.timeout = d
	}
}

// WithMaxBytes caps how much of an image is read while decoding its header.
func WithMaxBytes(n int64) Option {
	return func(s *Source) {
		s.maxBytes = n
	}
}

// New creates a Source.
func New(opts ...Option) *Source {
	s := &Source{
		client:   http.DefaultClient,
		timeout:  DefaultTimeout,
		maxBytes: DefaultMaxBytes,
		allow:    map[string]bool{},
	}
	for _, opt := range opts {
		opt(s)
	}

	c := *s.client
	next := c.CheckRedirect
	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if !s.allowed(req.URL) {
			return fmt.Errorf("%w: redirect to %s", ErrHostNotAllowed, req.URL.Host)
		}
		if next != nil {
			return next(req, via)
		}
		if len(via) >= maxRedirects {
			return fmt.Errorf("probe: stopped after %d redirects", maxRedirects)
		}
		return nil
	}
	s.client = &c
	return s
}

func (s *Source) allowed(u *url.URL) bool {
	return s.allow["*"] || s.allow[strings.ToLower(u.Hostname())]
}

// Dimensions fetches rawURL and decodes its image header.
func (s *Source) Dimensions(ctx context.Context, rawURL string) (Info, error) {
	rc, err := s.open(ctx, rawURL)
	if err != nil {
		return Info{}, err
	}
	defer rc.Close()

	cfg, format, err := image.DecodeConfig(io.LimitReader(rc, s.maxBytes))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Info{}, fmt.Errorf("%w: %s", ErrUnknownFormat, rawURL)
		}
		return Info{}, fmt.Errorf("probe: decode %s: %w", rawURL, err)
	}
	return Info{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

func (s *Source) open(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	switch u.Scheme {
	case "http", "https":
		if !s.allowed(u) {
			return nil, fmt.Errorf("%w: %s", ErrHostNotAllowed, u.Host)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("probe: %w", err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("probe: GET %s: %w", rawURL, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("probe: GET %s: %s", rawURL, resp.Status)
		}
		return resp.Body, nil
	case "", "file":
		if s.fsys == nil || u.Path == "" {
			return nil, fmt.Errorf("%w: %s", ErrUnsupported, rawURL)
		}
		name := path.Clean(strings.TrimPrefix(u.Path, "/"))
		f, err := s.fsys.Open(name)
		if err != nil {
			return nil, fmt.Errorf("probe: open %s: %w", rawURL, err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, rawURL)
	}
}
