package diorama

import (
	"log/slog"
	"time"
)

// Mode is the single mutually-exclusive operating state of the device.
// The controller is its only writer.
type Mode int

const (
	ModeOff Mode = iota
	ModePoweringOn
	ModeStandby
	ModePoweringOff
	ModeEffectBattle
	ModeEffectQuantum
	ModeSelfDestruct
)

func (m Mode) String() string {
	switch m {
	case ModeOff:
		return "off"
	case ModePoweringOn:
		return "powering-on"
	case ModeStandby:
		return "standby"
	case ModePoweringOff:
		return "powering-off"
	case ModeEffectBattle:
		return "effect-battle"
	case ModeEffectQuantum:
		return "effect-quantum"
	case ModeSelfDestruct:
		return "self-destruct"
	}
	return "unknown"
}

// stepper is a resumable mode routine: step is called once per
// scheduler tick and reports completion, outcome names the mode to
// adopt after a natural finish, and halt releases the routine's
// resources when the controller forces a transition mid-run.
type stepper interface {
	step(now time.Duration) bool
	outcome() Mode
	halt()
}

// runContext is the shared plumbing handed to every mode routine.
type runContext struct {
	assets  AssetOpener
	out     OutputStream
	lights  *Lights
	rand    *Rand
	pressed func() bool
}

// Controller owns the current mode and dispatches gestures to mode
// transitions. Exactly one of {active routine, standby idle step} runs
// per tick.
type Controller struct {
	rc     runContext
	reader *GestureReader
	idle   *standbyIdle
	mode   Mode
	active stepper
	log    *slog.Logger
}

func NewController(assets AssetOpener, out OutputStream, lights *Lights, src ButtonSource, rnd *Rand, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	rc := runContext{
		assets:  assets,
		out:     out,
		lights:  lights,
		rand:    rnd,
		pressed: src.Pressed,
	}
	return &Controller{
		rc:     rc,
		reader: NewGestureReader(src),
		idle:   newStandbyIdle(rc),
		mode:   ModeOff,
		log:    log,
	}
}

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) SystemOn() bool { return c.mode != ModeOff }

func (c *Controller) InSelfDestruct() bool { return c.mode == ModeSelfDestruct }

func (c *Controller) PoweringOff() bool { return c.mode == ModePoweringOff }

// InStandby reports standby idling with no routine mid-run.
func (c *Controller) InStandby() bool { return c.mode == ModeStandby && c.active == nil }

// Tick runs one scheduler pass: poll the button, act on a completed
// gesture, then advance the active routine or the standby idle step.
func (c *Controller) Tick(now time.Duration) {
	ev := c.reader.Poll(now, c.SystemOn())
	if ev.Gesture != GestureNone {
		c.handleGesture(ev, now)
	}

	switch {
	case c.active != nil:
		if c.active.step(now) {
			next := c.active.outcome()
			c.active = nil
			c.enter(next, now)
		}
	case c.mode == ModeStandby:
		c.idle.step(now)
	}
}

func (c *Controller) handleGesture(ev GestureEvent, now time.Duration) {
	c.log.Debug("gesture", "kind", ev.Gesture.String(), "held", ev.Held, "mode", c.mode.String())

	switch ev.Gesture {
	case GestureTap:
		if c.mode == ModeOff {
			c.start(newPowerOnRoutine(c.rc), ModePoweringOn, now)
			return
		}
		if c.mode == ModePoweringOff || c.mode == ModeSelfDestruct {
			return
		}
		name, quantum := PickEffect(c.rc.rand)
		if quantum {
			c.start(newQuantumRoutine(c.rc, name), ModeEffectQuantum, now)
		} else {
			c.start(newBattleRoutine(c.rc, name), ModeEffectBattle, now)
		}

	case GestureDoubleTap:
		// Deliberately not gated on self-destruct: a double tap can
		// call the sequence off.
		if !c.SystemOn() {
			return
		}
		c.start(newStandbyFade(c.rc), ModeStandby, now)

	case GestureMediumHold:
		if !c.SystemOn() || c.mode == ModeSelfDestruct {
			return
		}
		c.start(newSelfDestructRoutine(c.rc), ModeSelfDestruct, now)

	case GestureLongHold:
		if c.mode == ModePoweringOff {
			c.start(newPowerOnRoutine(c.rc), ModePoweringOn, now)
			return
		}
		if !c.SystemOn() {
			return
		}
		c.start(newPowerOffRoutine(c.rc), ModePoweringOff, now)
	}
}

// start force-stops whatever is running, then installs the routine.
func (c *Controller) start(s stepper, m Mode, now time.Duration) {
	if c.active != nil {
		c.active.halt()
	}
	if c.mode == ModeStandby {
		c.idle.halt()
	}
	c.log.Debug("mode", "from", c.mode.String(), "to", m.String(), "at", now)
	c.active = s
	c.mode = m
}

func (c *Controller) enter(m Mode, now time.Duration) {
	if m != c.mode {
		c.log.Debug("mode", "from", c.mode.String(), "to", m.String())
	}
	c.mode = m
	if m == ModeStandby {
		c.idle.enter(now)
	}
}
