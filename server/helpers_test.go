package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pthm/imagediff"
	"github.com/pthm/imagediff/lib/encoding"
)

func TestIsHTMX(t *testing.T) {
	tests := []struct {
		name   string
		header string
		expect bool
	}{
		{"with HX-Request true", "true", true},
		{"with HX-Request false", "false", false},
		{"without header", "", false},
		{"with other value", "yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("HX-Request", tt.header)
			}
			if got := IsHTMX(req); got != tt.expect {
				t.Errorf("IsHTMX() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestBuildTriggerHeader(t *testing.T) {
	tests := []struct {
		name        string
		trigger     string
		triggerData map[string]any
		expect      string
	}{
		{
			name:   "empty",
			expect: "",
		},
		{
			name:    "simple trigger",
			trigger: "imagediff:sized",
			expect:  "imagediff:sized",
		},
		{
			name:        "trigger with data",
			trigger:     "imagediff:sized",
			triggerData: map[string]any{"height": 200, "width": 300},
			expect:      `{"imagediff:sized":{"height":200,"width":300}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildTriggerHeader(tt.trigger, tt.triggerData); got != tt.expect {
				t.Errorf("BuildTriggerHeader() = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestWireAttrs(t *testing.T) {
	tests := []struct {
		method string
		key    string
		value  string
		vals   bool
	}{
		{http.MethodGet, "hx-get", "/c?p=tok", false},
		{"", "hx-get", "/c?p=tok", false},
		{http.MethodPost, "hx-post", "/c", true},
		{http.MethodPut, "hx-put", "/c", true},
		{http.MethodDelete, "hx-delete", "/c", true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			attrs := WireAttrs("/c", tt.method, "tok")
			if attrs[tt.key] != tt.value {
				t.Errorf("%s = %v, want %q", tt.key, attrs[tt.key], tt.value)
			}
			_, hasVals := attrs["hx-vals"]
			if hasVals != tt.vals {
				t.Errorf("hx-vals present = %v, want %v", hasVals, tt.vals)
			}
			if tt.vals && attrs["hx-vals"] != `{"p":"tok"}` {
				t.Errorf("hx-vals = %v", attrs["hx-vals"])
			}
		})
	}
}

func TestRenderFlashesOOB(t *testing.T) {
	if got := RenderFlashesOOB(nil); got != "" {
		t.Errorf("RenderFlashesOOB(nil) = %q, want empty string", got)
	}

	got := RenderFlashesOOB([]Flash{
		{Level: FlashError, Message: "<script>alert('xss')</script>"},
		{Level: FlashWarning, Message: "second"},
	})
	for _, s := range []string{
		`<div id="toasts" hx-swap-oob="beforeend">`,
		`class="toast toast-error"`,
		`class="toast toast-warning"`,
		"&lt;script&gt;",
	} {
		if !strings.Contains(got, s) {
			t.Errorf("flashes missing %q: %s", s, got)
		}
	}
	if strings.Contains(got, "<script>") {
		t.Error("HTML should be escaped - found raw <script> tag")
	}
}

func TestResultChaining(t *testing.T) {
	props := imagediff.DefaultProps()
	r := OK(props).
		Flash(FlashWarning, "saved").
		Trigger("imagediff:sized", map[string]any{"width": 1}).
		Header("X-Test", "1").
		Status(http.StatusAccepted)

	if r.Props() != props {
		t.Errorf("Props() = %+v", r.Props())
	}
	if r.Error() != nil || r.ShouldSkip() {
		t.Error("OK result should carry no error and render")
	}
	if len(r.Flashes()) != 1 || r.Flashes()[0].Message != "saved" {
		t.Errorf("Flashes() = %+v", r.Flashes())
	}
	if r.trigger != "imagediff:sized" || r.triggerData["width"] != 1 {
		t.Errorf("trigger = %q %v", r.trigger, r.triggerData)
	}
	if r.headers["X-Test"] != "1" || r.status != http.StatusAccepted {
		t.Errorf("headers = %v, status = %d", r.headers, r.status)
	}

	if !Skip().ShouldSkip() {
		t.Error("Skip() should suppress rendering")
	}
	boom := errors.New("boom")
	if Err(props, boom).Error() != boom {
		t.Error("Err() should carry its error")
	}
}

func TestWrapEncodingError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectWrapped  error
		isDecryptError bool
	}{
		{"nil error", nil, nil, false},
		{"encoding.ErrInvalidFormat", encoding.ErrInvalidFormat, ErrInvalidFormat, false},
		{"encoding.ErrSignatureInvalid", encoding.ErrSignatureInvalid, ErrSignatureInvalid, true},
		{"encoding.ErrDecryptFailed", encoding.ErrDecryptFailed, ErrDecryptFailed, true},
		{"other error", errors.New("other"), ErrInvalidFormat, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapEncodingError(tt.err)
			if tt.expectWrapped == nil {
				if got != nil {
					t.Errorf("wrapEncodingError(nil) = %v", got)
				}
				return
			}
			if !errors.Is(got, tt.expectWrapped) {
				t.Errorf("wrapEncodingError(%v) = %v, want %v", tt.err, got, tt.expectWrapped)
			}
			if IsDecryptionError(got) != tt.isDecryptError {
				t.Errorf("IsDecryptionError(%v) = %v, want %v", got, !tt.isDecryptError, tt.isDecryptError)
			}
		})
	}
}
