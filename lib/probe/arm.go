package probe

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pthm/imagediff"
)

// Pending is an in-flight pair of loads.
type Pending struct {
	events chan imagediff.LoadEvent
	done   chan struct{}
	err    error
}

// Events yields one event per image that loaded, in completion order. The
// channel is closed once both loads have finished.
func (p *Pending) Events() <-chan imagediff.LoadEvent {
	return p.events
}

// Wait blocks until both loads finish and returns the first failure.
func (p *Pending) Wait() error {
	<-p.done
	return p.err
}

// Arm starts loading both images concurrently. Every event is tagged with
// gen so a widget that has moved on to another pair discards it.
func (s *Source) Arm(ctx context.Context, gen uint64, before, after string) *Pending {
	cancel := context.CancelFunc(func() {})
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
	}

	p := &Pending{
		events: make(chan imagediff.LoadEvent, 2),
		done:   make(chan struct{}),
	}

	// A failed load must not cancel its sibling: the other image can still
	// size the widget.
	var g errgroup.Group
	for _, img := range []struct {
		which imagediff.Image
		url   string
	}{
		{imagediff.ImageBefore, before},
		{imagediff.ImageAfter, after},
	} {
		img := img
		g.Go(func() error {
			info, err := s.Dimensions(ctx, img.url)
			if err != nil {
				return fmt.Errorf("%s image: %w", img.which, err)
			}
			p.events <- imagediff.LoadEvent{
				Image:      img.which,
				Generation: gen,
				Width:      info.Width,
				Height:     info.Height,
			}
			return nil
		})
	}

	go func() {
		p.err = g.Wait()
		cancel()
		close(p.events)
		close(p.done)
	}()
	return p
}

// Resolve arms loads for the widget's current images and applies every
// event from the calling goroutine. It returns once both loads finished;
// the error reports loads that failed, even if the widget got sized.
func Resolve(ctx context.Context, s *Source, w *imagediff.Widget) error {
	props := w.Props()
	p := s.Arm(ctx, w.Generation(), props.Before.URL, props.After.URL)
	for ev := range p.Events() {
		w.ImageLoaded(ev)
	}
	return p.Wait()
}

// IsTimeout reports whether err came from the Arm deadline or a cancelled context.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
