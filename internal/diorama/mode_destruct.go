package diorama

import "time"

// selfDestructRoutine runs the ~95 s staged sequence: siren audio and
// escalating red flashes, a white-out, a long ember-flicker afterglow,
// then lights out and full power-off. From the abort arm point a press
// starts a 5 s fade straight to off instead of waiting out the embers.
type selfDestructRoutine struct {
	rc        runContext
	started   bool
	start     time.Duration
	session   *playbackSession
	startBlue uint8
	lastLight time.Duration

	flashOn    bool
	lastToggle time.Duration

	nextEmber  time.Duration
	emberColor RGB

	aborting   bool
	abortAt    time.Duration
	abortPixel RGB
}

func newSelfDestructRoutine(rc runContext) *selfDestructRoutine {
	return &selfDestructRoutine{rc: rc}
}

func (d *selfDestructRoutine) step(now time.Duration) bool {
	if !d.started {
		d.started = true
		d.start = now
		d.startBlue = d.rc.lights.Blue()
		d.session = newPlaybackSession(d.rc.assets, AssetSelfDestruct, d.rc.out, now)
	}
	d.session.pump(now)

	t := now - d.start

	if d.aborting {
		return d.stepAbortFade(now)
	}
	if t >= DestructAbortArm && d.rc.pressed() {
		d.aborting = true
		d.abortAt = now
		d.abortPixel = d.rc.lights.Pixel()
		d.session.stop()
		return false
	}

	switch {
	case t >= DestructEmberEnd:
		// Extinguished: hold dark until the power-off point.
		if now-d.lastLight >= LightInterval {
			d.lastLight = now
			d.rc.lights.SetBlue(0)
			d.rc.lights.SetRed(0)
			d.rc.lights.SetPixel(Palette.Off)
			d.rc.lights.Flush()
		}
	case t >= DestructEmberStart:
		d.stepEmber(now, t)
	default:
		if now-d.lastLight >= LightInterval {
			d.lastLight = now
			d.applyStage(now, t)
		}
	}

	if t >= DestructTotal {
		d.session.stop()
		d.rc.lights.Off()
		return true
	}
	return false
}

// applyStage covers the choreographed phases outside the ember idle.
func (d *selfDestructRoutine) applyStage(now time.Duration, t time.Duration) {
	// Blue: hold, then ramp out.
	switch {
	case t >= DestructBlueFadeEnd:
		d.rc.lights.SetBlue(0)
	case t >= DestructBlueFadeStart:
		u := float64(t-DestructBlueFadeStart) / float64(DestructBlueFadeEnd-DestructBlueFadeStart)
		d.rc.lights.SetBlue(lerpU8(d.startBlue, 0, u))
	}

	// Red channel: accelerating flash across the siren window.
	if t >= DestructFlashStart && t < DestructFlashEnd {
		u := float64(t-DestructFlashStart) / float64(DestructFlashEnd-DestructFlashStart)
		interval := time.Duration(lerpF(float64(DestructFlashSlowest), float64(DestructFlashFastest), u))
		if now-d.lastToggle >= interval {
			d.lastToggle = now
			d.flashOn = !d.flashOn
		}
		if d.flashOn {
			d.rc.lights.SetRed(255)
		} else {
			d.rc.lights.SetRed(0)
		}
	} else {
		d.rc.lights.SetRed(0)
	}

	// Pixel phases.
	switch {
	case t >= DestructFlickerStart:
		base := Palette.EmberRed
		if d.rc.rand.Intn(2) == 0 {
			base = Palette.EmberOrange
		}
		jit := d.rc.rand.RangeF(0.55, 1.0)
		d.rc.lights.SetPixel(base.Scale(jit))
	case t >= DestructWhiteFlashEnd:
		d.rc.lights.SetPixel(Palette.White)
	case t >= DestructPixelPulseEnd:
		// One second of hard white strobing before the hold.
		if (t/(100*time.Millisecond))%2 == 0 {
			d.rc.lights.SetPixel(Palette.White)
		} else {
			d.rc.lights.SetPixel(Palette.Off)
		}
	case t >= DestructFlashStart:
		d.rc.lights.SetPixel(Palette.FullRed.Scale(0.2 + 0.8*triWave(t-DestructFlashStart, 800*time.Millisecond)))
	default:
		d.rc.lights.SetPixel(standbyPixel())
	}
	d.rc.lights.Flush()
}

// stepEmber runs the long afterglow on its own randomized cadence.
func (d *selfDestructRoutine) stepEmber(now time.Duration, t time.Duration) {
	if now < d.nextEmber {
		return
	}
	d.nextEmber = now + time.Duration(d.rc.rand.Range(30, 120))*time.Millisecond

	fade := 1.0
	if t >= DestructFinalFadeStart {
		fade = 1 - float64(t-DestructFinalFadeStart)/float64(DestructEmberEnd-DestructFinalFadeStart)
		fade = clampF(fade, 0, 1)
	}
	base := Palette.EmberRed
	if d.rc.rand.Intn(2) == 0 {
		base = Palette.EmberOrange
	}
	glow := d.rc.rand.RangeF(0.3, 1.0) * fade
	d.rc.lights.SetBlue(0)
	d.rc.lights.SetRed(uint8(30 * glow))
	d.rc.lights.SetPixel(base.Scale(glow))
	d.rc.lights.Flush()
}

// stepAbortFade dims everything to black over the abort window, then
// reports completion so the controller lands in off.
func (d *selfDestructRoutine) stepAbortFade(now time.Duration) bool {
	u := float64(now-d.abortAt) / float64(DestructAbortFade)
	if u >= 1 {
		d.rc.lights.Off()
		return true
	}
	if now-d.lastLight >= LightInterval {
		d.lastLight = now
		scale := 1 - u
		d.rc.lights.SetRed(uint8(30 * scale))
		d.rc.lights.SetPixel(d.abortPixel.Scale(scale))
		d.rc.lights.Flush()
	}
	return false
}

func (d *selfDestructRoutine) outcome() Mode { return ModeOff }

func (d *selfDestructRoutine) halt() {
	if d.session != nil {
		d.session.stop()
	}
}
