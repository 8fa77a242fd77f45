package diorama

import (
	"testing"
	"time"
)

// pressRelease runs one full cycle through the reader and returns the
// release classification.
func pressRelease(g *GestureReader, b *scriptButton, at, hold time.Duration, on bool) GestureEvent {
	b.down = true
	g.Poll(at, on)
	b.down = false
	return g.Poll(at+hold, on)
}

func TestGestureHoldBuckets(t *testing.T) {
	cases := []struct {
		hold time.Duration
		want Gesture
	}{
		{50 * time.Millisecond, GestureTap},
		{2999 * time.Millisecond, GestureTap},
		{3000 * time.Millisecond, GestureMediumHold},
		{4999 * time.Millisecond, GestureMediumHold},
		{5000 * time.Millisecond, GestureLongHold},
		{9 * time.Second, GestureLongHold},
	}
	for _, on := range []bool{false, true} {
		for _, c := range cases {
			b := &scriptButton{}
			g := NewGestureReader(b)
			// Hold classification must not depend on system state.
			ev := pressRelease(g, b, 10*time.Second, c.hold, on)
			if ev.Gesture != c.want {
				t.Errorf("hold %v (on=%v): got %v, want %v", c.hold, on, ev.Gesture, c.want)
			}
			if ev.Held != c.hold {
				t.Errorf("hold %v: reported held %v", c.hold, ev.Held)
			}
		}
	}
}

func TestGestureNoEmissionWhileHeld(t *testing.T) {
	b := &scriptButton{}
	g := NewGestureReader(b)

	b.down = true
	for i := 0; i < 100; i++ {
		ev := g.Poll(time.Duration(i)*10*time.Millisecond, true)
		if ev.Gesture != GestureNone {
			t.Fatalf("gesture %v emitted while held", ev.Gesture)
		}
	}
}

func TestGestureDoubleTap(t *testing.T) {
	b := &scriptButton{}
	g := NewGestureReader(b)

	ev := pressRelease(g, b, 0, 50*time.Millisecond, true)
	if ev.Gesture != GestureTap {
		t.Fatalf("first release: got %v", ev.Gesture)
	}
	// Second release 500 ms after the first: inside the window.
	ev = pressRelease(g, b, 300*time.Millisecond, 250*time.Millisecond, true)
	if ev.Gesture != GestureDoubleTap {
		t.Fatalf("second release: got %v, want double-tap", ev.Gesture)
	}
	// Third quick release restarts counting at 1, so no second
	// double-tap fires.
	ev = pressRelease(g, b, 900*time.Millisecond, 50*time.Millisecond, true)
	if ev.Gesture != GestureTap {
		t.Fatalf("third release: got %v, want tap", ev.Gesture)
	}
}

func TestGestureDoubleTapWindowBoundary(t *testing.T) {
	b := &scriptButton{}
	g := NewGestureReader(b)

	pressRelease(g, b, 0, 50*time.Millisecond, true)
	// Gap of exactly 1000 ms is outside the window.
	ev := pressRelease(g, b, 1000*time.Millisecond, 50*time.Millisecond, true)
	if ev.Gesture != GestureTap {
		t.Fatalf("gap at window edge: got %v, want tap", ev.Gesture)
	}

	pressRelease(g, b, 5*time.Second, 50*time.Millisecond, true)
	ev = pressRelease(g, b, 5*time.Second+999*time.Millisecond, 1*time.Millisecond, true)
	if ev.Gesture != GestureDoubleTap {
		t.Fatalf("gap inside window: got %v, want double-tap", ev.Gesture)
	}
}

func TestGestureDoubleTapRequiresPower(t *testing.T) {
	b := &scriptButton{}
	g := NewGestureReader(b)

	pressRelease(g, b, 0, 50*time.Millisecond, false)
	ev := pressRelease(g, b, 300*time.Millisecond, 50*time.Millisecond, false)
	if ev.Gesture != GestureTap {
		t.Fatalf("double tap while off: got %v, want tap", ev.Gesture)
	}
}
