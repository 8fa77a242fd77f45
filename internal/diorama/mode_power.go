package diorama

import "time"

// powerOnRoutine plays the power-up sound while the blue channel ramps
// to full and the pixel runs its green neon warm-up before settling on
// the standby amber.
type powerOnRoutine struct {
	rc        runContext
	started   bool
	start     time.Duration
	session   *playbackSession
	lastLight time.Duration
}

func newPowerOnRoutine(rc runContext) *powerOnRoutine {
	return &powerOnRoutine{rc: rc}
}

func (p *powerOnRoutine) step(now time.Duration) bool {
	if !p.started {
		p.started = true
		p.start = now
		p.session = newPlaybackSession(p.rc.assets, AssetPowerOn, p.rc.out, now)
		p.rc.lights.SetRed(0)
		p.rc.lights.SetBlue(0)
		p.rc.lights.Flush()
	}
	p.session.pump(now)

	t := now - p.start
	if now-p.lastLight >= LightInterval {
		p.lastLight = now

		if t < PowerOnRampDur {
			p.rc.lights.SetBlue(uint8(255 * t / PowerOnRampDur))
		} else {
			p.rc.lights.SetBlue(255)
		}

		switch {
		case t >= PowerOnCrossEnd:
			p.rc.lights.SetPixel(standbyPixel())
		case t >= PowerOnNeonEnd:
			u := float64(t-PowerOnNeonEnd) / float64(PowerOnCrossEnd-PowerOnNeonEnd)
			p.rc.lights.SetPixel(lerpRGB(Palette.NeonGreen, standbyPixel(), u))
		case t >= PowerOnNeonStart:
			// Neon tube striking: oscillate brightness, never fully dark.
			v := 0.25 + 0.75*triWave(t-PowerOnNeonStart, PowerOnNeonPeriod)
			p.rc.lights.SetPixel(Palette.NeonGreen.Scale(v))
		}
		p.rc.lights.Flush()
	}

	if t >= PowerOnCrossEnd && !p.session.playing() {
		p.session.stop()
		p.rc.lights.SetBlue(255)
		p.rc.lights.SetPixel(standbyPixel())
		p.rc.lights.Flush()
		return true
	}
	return false
}

func (p *powerOnRoutine) outcome() Mode { return ModeStandby }

func (p *powerOnRoutine) halt() {
	if p.session != nil {
		p.session.stop()
	}
}

// powerOffRoutine goes full red, plays the power-down sound to the
// end, then steps everything down to dark.
type powerOffRoutine struct {
	rc        runContext
	started   bool
	session   *playbackSession
	fading    bool
	fadeStart time.Duration
	startBlue uint8
	startRed  uint8
	pixel     RGB
}

func newPowerOffRoutine(rc runContext) *powerOffRoutine {
	return &powerOffRoutine{rc: rc}
}

func (p *powerOffRoutine) step(now time.Duration) bool {
	if !p.started {
		p.started = true
		p.rc.lights.SetRed(255)
		p.rc.lights.SetPixel(Palette.FullRed)
		p.rc.lights.Flush()
		p.session = newPlaybackSession(p.rc.assets, AssetPowerOff, p.rc.out, now)
	}

	if !p.fading {
		p.session.pump(now)
		if p.session.playing() {
			return false
		}
		p.session.stop()
		p.fading = true
		p.fadeStart = now
		p.startBlue = p.rc.lights.Blue()
		p.startRed = p.rc.lights.Red()
		p.pixel = p.rc.lights.Pixel()
		return false
	}

	steps := int((now - p.fadeStart) / FadeStepDelay)
	dec := steps * FadeStep
	blue := clamp(int(p.startBlue)-dec, 0, 255)
	red := clamp(int(p.startRed)-dec, 0, 255)
	p.rc.lights.SetBlue(uint8(blue))
	p.rc.lights.SetRed(uint8(red))
	if p.startRed > 0 {
		p.rc.lights.SetPixel(p.pixel.Scale(float64(red) / float64(p.startRed)))
	} else {
		p.rc.lights.SetPixel(Palette.Off)
	}
	p.rc.lights.Flush()

	if blue == 0 && red == 0 {
		p.rc.lights.Off()
		return true
	}
	return false
}

func (p *powerOffRoutine) outcome() Mode { return ModeOff }

func (p *powerOffRoutine) halt() {
	if p.session != nil {
		p.session.stop()
	}
}

// standbyFade is the double-tap entry into standby: a short blue ramp
// down to the idle floor. No audio.
type standbyFade struct {
	rc        runContext
	started   bool
	lastLight time.Duration
}

func newStandbyFade(rc runContext) *standbyFade {
	return &standbyFade{rc: rc}
}

func (f *standbyFade) step(now time.Duration) bool {
	if !f.started {
		f.started = true
		f.rc.lights.SetPixel(standbyPixel())
	}
	if now-f.lastLight < LightInterval {
		return false
	}
	f.lastLight = now

	blue := int(f.rc.lights.Blue())
	if blue <= StandbyFloor {
		f.rc.lights.SetBlue(StandbyFloor)
		f.rc.lights.Flush()
		return true
	}
	f.rc.lights.SetBlue(uint8(clamp(blue-StandbyFadeStep, StandbyFloor, 255)))
	f.rc.lights.Flush()
	return false
}

func (f *standbyFade) outcome() Mode { return ModeStandby }

func (f *standbyFade) halt() {}

// standbyPixel is the warm amber the pixel holds whenever the device
// is idling.
func standbyPixel() RGB {
	return Palette.StandbyAmber.Mul(StandbyAmberDim)
}
