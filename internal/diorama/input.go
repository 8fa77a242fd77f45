package diorama

import "time"

// ButtonSource reports the debounced state of the combined logical
// button (two physical momentary inputs ORed together, active-low at
// the pin, true here when held).
type ButtonSource interface {
	Pressed() bool
}

// NullButton is a ButtonSource that is never pressed, used for
// headless runs.
type NullButton struct{}

func (NullButton) Pressed() bool { return false }

// Gesture is the classified outcome of one press/release cycle, or of
// two quick cycles for a double tap.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureTap
	GestureDoubleTap
	GestureMediumHold
	GestureLongHold
)

func (g Gesture) String() string {
	switch g {
	case GestureTap:
		return "tap"
	case GestureDoubleTap:
		return "double-tap"
	case GestureMediumHold:
		return "medium-hold"
	case GestureLongHold:
		return "long-hold"
	}
	return "none"
}

// GestureEvent carries a classification plus the timestamps it was
// derived from, mostly for logging.
type GestureEvent struct {
	Gesture  Gesture
	Released time.Duration
	Held     time.Duration
}

// GestureReader edge-detects the button and classifies each completed
// release into exactly one gesture. No gesture is ever emitted while
// the button is down.
type GestureReader struct {
	src      ButtonSource
	down     bool
	pressAt  time.Duration
	lastTap  time.Duration
	haveTap  bool
	tapCount int
}

func NewGestureReader(src ButtonSource) *GestureReader {
	return &GestureReader{src: src}
}

// Poll samples the button once. On a release edge it returns the
// classified gesture; otherwise GestureNone. systemOn gates double-tap
// recognition: taps are still counted while off, but the gesture only
// fires on a powered system.
func (g *GestureReader) Poll(now time.Duration, systemOn bool) GestureEvent {
	down := g.src.Pressed()
	defer func() { g.down = down }()

	if down && !g.down {
		g.pressAt = now
		return GestureEvent{Gesture: GestureNone}
	}
	if down || !g.down {
		return GestureEvent{Gesture: GestureNone}
	}

	// Release edge.
	held := now - g.pressAt
	ev := GestureEvent{Released: now, Held: held}

	doubled := false
	if g.haveTap && now-g.lastTap < DoubleTapWindow {
		g.tapCount++
		if g.tapCount == 2 && systemOn {
			doubled = true
			g.tapCount = 0
		}
	} else {
		g.tapCount = 1
	}
	g.lastTap = now
	g.haveTap = true

	switch {
	case doubled:
		ev.Gesture = GestureDoubleTap
	case held >= LongHoldMin:
		ev.Gesture = GestureLongHold
	case held >= MediumHoldMin:
		ev.Gesture = GestureMediumHold
	default:
		ev.Gesture = GestureTap
	}
	return ev
}
