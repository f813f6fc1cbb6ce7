// Package geo wraps a platform location capability behind a small state
// machine: Idle -> Locating -> Located | Failed. Callers trigger a request,
// observe the Located transition, and react (for example by running a nearby
// directory lookup); the tracker itself never triggers discovery.
package geo

import (
	"context"
	"errors"
	"sync"
	"time"

	"coffee_finder/internal/domain"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLocating
	PhaseLocated
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLocating:
		return "locating"
	case PhaseLocated:
		return "located"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// Failure kinds a LocationSource may report.
var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
)

// Update is a snapshot of the tracker: the lifecycle phase (drives any busy
// indicator), the last coordinates if any, and the last human-readable error.
type Update struct {
	Phase  Phase
	Coords *domain.Coordinates
	ErrMsg string
}

type Tracker struct {
	src     domain.LocationSource
	timeout time.Duration

	mu     sync.Mutex
	phase  Phase
	coords *domain.Coordinates
	errMsg string
	done   chan struct{} // closed when the current cycle reaches a terminal phase

	updates chan Update
}

func NewTracker(src domain.LocationSource, timeout time.Duration) *Tracker {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Tracker{
		src:     src,
		timeout: timeout,
		phase:   PhaseIdle,
		updates: make(chan Update, 4),
	}
}

// RequestLocation starts a single asynchronous platform request and returns
// true. While a request is already in flight it is a no-op and returns false:
// at most one outstanding platform request per tracker. Callable again from
// Located or Failed to restart the process.
func (t *Tracker) RequestLocation() bool {
	t.mu.Lock()
	if t.phase == PhaseLocating {
		t.mu.Unlock()
		return false
	}
	t.phase = PhaseLocating
	t.errMsg = ""
	t.done = make(chan struct{})
	t.mu.Unlock()

	t.publish(Update{Phase: PhaseLocating})
	go t.locate()
	return true
}

func (t *Tracker) locate() {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	coords, err := t.src.Locate(ctx)
	if err == nil {
		err = coords.Validate()
	}

	t.mu.Lock()
	if err != nil {
		t.phase = PhaseFailed
		t.coords = nil
		t.errMsg = failureMessage(err)
	} else {
		t.phase = PhaseLocated
		c := coords
		t.coords = &c
		t.errMsg = ""
	}
	u := t.snapshotLocked()
	done := t.done
	t.mu.Unlock()

	t.publish(u)
	close(done)
}

// Wait blocks until the most recently started cycle reaches Located or Failed
// and returns that state. A terminal update from a previous cycle is never
// returned: RequestLocation moves the tracker to Locating before it returns,
// so a Wait that follows it always observes its own cycle. On a tracker that
// was never triggered, Wait returns the Idle snapshot immediately.
func (t *Tracker) Wait(ctx context.Context) (Update, error) {
	for {
		t.mu.Lock()
		u := t.snapshotLocked()
		done := t.done
		t.mu.Unlock()

		if u.Phase == PhaseLocated || u.Phase == PhaseFailed || done == nil {
			return u, nil
		}
		select {
		case <-ctx.Done():
			return Update{}, ctx.Err()
		case <-done:
		}
	}
}

// Snapshot returns the current read state.
func (t *Tracker) Snapshot() Update {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// Updates delivers phase transitions. The channel is buffered and the oldest
// update is dropped when nobody is reading; the latest state always wins.
func (t *Tracker) Updates() <-chan Update {
	return t.updates
}

func (t *Tracker) snapshotLocked() Update {
	u := Update{Phase: t.phase, ErrMsg: t.errMsg}
	if t.coords != nil {
		c := *t.coords
		u.Coords = &c
	}
	return u
}

func (t *Tracker) publish(u Update) {
	select {
	case t.updates <- u:
	default:
		select {
		case <-t.updates:
		default:
		}
		select {
		case t.updates <- u:
		default:
		}
	}
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return "location permission was denied"
	case errors.Is(err, ErrPositionUnavailable):
		return "your position could not be determined"
	case errors.Is(err, context.DeadlineExceeded):
		return "the location request timed out"
	default:
		return err.Error()
	}
}
