package imagediff

import (
	"errors"
	"math"
	"testing"
)

func TestTune_AcceptsRange(t *testing.T) {
	values := []float64{-Epsilon, 0, 1e-9, 0.25, 0.5, 0.999999, 1, 1 + Epsilon}
	for _, mode := range []Mode{ModeFade, ModeSwipe} {
		for _, v := range values {
			w, _ := mustNew(t, mode)
			if err := w.Tune(v); err != nil {
				t.Errorf("%s Tune(%v) error = %v", mode, v, err)
				continue
			}
			if w.Value() != v {
				t.Errorf("%s Tune(%v): Value() = %v", mode, v, w.Value())
			}
		}
	}
}

func TestValue_RejectsOutOfRange(t *testing.T) {
	values := []float64{-2e-6, -1, 1 + 2e-6, 2, math.Inf(1), math.Inf(-1)}
	ops := []struct {
		name string
		mode Mode
		call func(w *Widget, v float64) error
	}{
		{"tune", ModeFade, (*Widget).Tune},
		{"swipe", ModeSwipe, (*Widget).Swipe},
		{"fade", ModeFade, (*Widget).Fade},
	}

	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			for _, v := range values {
				w, root := mustNew(t, op.mode)
				if err := w.Tune(0.4); err != nil {
					t.Fatalf("Tune(0.4) error = %v", err)
				}
				before := w.Props()
				styles := len(root.el(SelectorWrapper).styles)

				err := op.call(w, v)
				if !errors.Is(err, ErrOutOfRange) {
					t.Errorf("%s(%v) error = %v, want ErrOutOfRange", op.name, v, err)
				}
				var e *Error
				if errors.As(err, &e) && (e.Op != op.name || e.Value != v) {
					t.Errorf("error fields = %+v", e)
				}
				if w.Props() != before {
					t.Errorf("%s(%v) changed props", op.name, v)
				}
				if len(root.el(SelectorWrapper).styles) != styles {
					t.Errorf("%s(%v) wrote styles", op.name, v)
				}
			}
		})
	}
}

func TestValue_NaNRejected(t *testing.T) {
	w, _ := mustNew(t, ModeFade)
	if err := w.Tune(math.NaN()); KindOf(err) != KindOutOfRange {
		t.Errorf("Tune(NaN) kind = %v, want out of range", KindOf(err))
	}
}

func TestValue_ModeMismatch(t *testing.T) {
	w, _ := mustNew(t, ModeFade)
	err := w.Swipe(0.5)
	var e *Error
	if !errors.As(err, &e) || e.Kind != KindModeMismatch {
		t.Fatalf("Swipe in fade: error = %v", err)
	}
	if e.Mode != ModeFade || e.Required != ModeSwipe {
		t.Errorf("error modes = %q/%q", e.Mode, e.Required)
	}
	if w.Value() != 1 {
		t.Errorf("Value() = %v, want 1", w.Value())
	}

	w, _ = mustNew(t, ModeSwipe)
	if err := w.Fade(0.5); !errors.Is(err, ErrModeMismatch) {
		t.Errorf("Fade in swipe: error = %v, want ErrModeMismatch", err)
	}
}

func TestValue_DifferenceNotTunable(t *testing.T) {
	tests := []struct {
		name string
		call func(w *Widget, v float64) error
		kind Kind
	}{
		{"tune", (*Widget).Tune, KindNotTunable},
		// the required mode is checked first
		{"swipe", (*Widget).Swipe, KindModeMismatch},
		{"fade", (*Widget).Fade, KindModeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range []float64{0, 0.2, 1} {
				w, _ := mustNew(t, ModeDifference)
				if err := tt.call(w, v); KindOf(err) != tt.kind {
					t.Errorf("%s(%v) kind = %v, want %v", tt.name, v, KindOf(err), tt.kind)
				}
			}
		})
	}
}

func TestSwipe_WritesWrapperWidth(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "300px"},
		{0.5, "150px"},
		{1, "0px"},
		{0.25, "225px"},
		{1 + Epsilon/2, "0px"},
		{-Epsilon / 2, "300px"},
	}
	for _, tt := range tests {
		w, root := mustNew(t, ModeSwipe)
		w.ImageLoaded(LoadEvent{Width: 300, Height: 200})
		if err := w.Swipe(tt.value); err != nil {
			t.Fatalf("Swipe(%v) error = %v", tt.value, err)
		}
		if got := root.el(SelectorWrapper).styles["width"]; got != tt.want {
			t.Errorf("Swipe(%v) width = %q, want %q", tt.value, got, tt.want)
		}
		if w.Value() != tt.value {
			t.Errorf("Value() = %v, want %v", w.Value(), tt.value)
		}
	}
}

func TestFade_WritesOpacity(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "1"},
		{0.5, "0.5"},
		{1, "0"},
		{0.75, "0.25"},
		{1 + Epsilon/2, "0"},
		{-Epsilon / 2, "1"},
	}
	for _, tt := range tests {
		w, root := mustNew(t, ModeFade)
		if err := w.Fade(tt.value); err != nil {
			t.Fatalf("Fade(%v) error = %v", tt.value, err)
		}
		if got := root.el(SelectorWrapper).styles["opacity"]; got != tt.want {
			t.Errorf("Fade(%v) opacity = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestTune_WritesNothing(t *testing.T) {
	w, root := mustNew(t, ModeFade)
	if err := w.Tune(0.1); err != nil {
		t.Fatalf("Tune() error = %v", err)
	}
	if got := root.el(SelectorWrapper).styles["opacity"]; got != "1" {
		t.Errorf("opacity = %q, want untouched 1", got)
	}
}
