//go:build ws2811

package diorama

import (
	"fmt"
	"time"

	"github.com/stianeikeland/go-rpio/v4"
)

const (
	buttonPinA = 23
	buttonPinB = 24
	// Contact bounce settles well under this; state changes faster
	// than the window are ignored.
	debounceWindow = 8 * time.Millisecond
)

// GPIOButtons reads the two momentary inputs with pull-ups (active
// low) and debounces the ORed result.
type GPIOButtons struct {
	a, b      rpio.Pin
	clock     Clock
	state     bool
	changedAt time.Duration
}

func NewGPIOButtons(clock Clock) (*GPIOButtons, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("gpio open: %w", err)
	}
	g := &GPIOButtons{
		a:     rpio.Pin(buttonPinA),
		b:     rpio.Pin(buttonPinB),
		clock: clock,
	}
	for _, p := range []rpio.Pin{g.a, g.b} {
		p.Input()
		p.PullUp()
	}
	return g, nil
}

func (g *GPIOButtons) Pressed() bool {
	raw := g.a.Read() == rpio.Low || g.b.Read() == rpio.Low
	now := g.clock.Now()
	if raw != g.state && now-g.changedAt >= debounceWindow {
		g.state = raw
		g.changedAt = now
	}
	return g.state
}
