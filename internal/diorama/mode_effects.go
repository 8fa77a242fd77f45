package diorama

import (
	"math"
	"time"
)

// battleRoutine plays one battle asset with the blue channel pinned to
// full while the red channel and pixel chase the audio amplitude
// through an envelope follower.
type battleRoutine struct {
	rc        runContext
	asset     string
	started   bool
	session   *playbackSession
	env       float64
	peakAcc   int
	lastLight time.Duration
}

func newBattleRoutine(rc runContext, asset string) *battleRoutine {
	return &battleRoutine{rc: rc, asset: asset}
}

func (b *battleRoutine) step(now time.Duration) bool {
	if !b.started {
		b.started = true
		b.session = newPlaybackSession(b.rc.assets, b.asset, b.rc.out, now)
		b.rc.lights.SetBlue(255)
		b.rc.lights.Flush()
	}

	if b.rc.pressed() {
		return b.finish()
	}

	if peak := b.session.pump(now); peak > b.peakAcc {
		b.peakAcc = peak
	}

	if now-b.lastLight >= ReactiveLightInterval {
		b.lastLight = now
		// Fast attack, slow release.
		peak := float64(b.peakAcc)
		b.peakAcc = 0
		if peak > b.env {
			b.env += EnvAttack * (peak - b.env)
		} else {
			b.env *= EnvRelease
		}
		v := 0
		if b.env >= EnvNoiseGate {
			v = clamp(int(b.env/EnvFullScale*255), 0, 255)
		}
		b.rc.lights.SetRed(uint8(v))
		b.rc.lights.SetPixel(RGB{R: uint8(v), G: uint8(v * 2 / 5)})
		b.rc.lights.Flush()
	}

	if !b.session.playing() {
		return b.finish()
	}
	return false
}

func (b *battleRoutine) finish() bool {
	b.session.stop()
	dimStandbyLook(b.rc.lights)
	return true
}

func (b *battleRoutine) outcome() Mode { return ModeStandby }

func (b *battleRoutine) halt() {
	if b.session != nil {
		b.session.stop()
	}
}

// quantumRoutine is the one-of-a-kind effect: a fixed ~27 s staged
// light show over its asset, all stages pure functions of elapsed
// time.
type quantumRoutine struct {
	rc        runContext
	asset     string
	started   bool
	start     time.Duration
	session   *playbackSession
	lastLight time.Duration
}

func newQuantumRoutine(rc runContext, asset string) *quantumRoutine {
	return &quantumRoutine{rc: rc, asset: asset}
}

func (q *quantumRoutine) step(now time.Duration) bool {
	if !q.started {
		q.started = true
		q.start = now
		q.session = newPlaybackSession(q.rc.assets, q.asset, q.rc.out, now)
	}

	if q.rc.pressed() {
		return q.finish()
	}
	q.session.pump(now)

	t := now - q.start
	if now-q.lastLight >= LightInterval {
		q.lastLight = now
		q.applyStage(t)
	}

	if t >= QuantumTotal && !q.session.playing() {
		return q.finish()
	}
	return false
}

func (q *quantumRoutine) applyStage(t time.Duration) {
	ts := t.Seconds()
	switch {
	case t < QuantumDimEnd:
		// Dim down from wherever standby left the blue channel.
		u := float64(t) / float64(QuantumDimEnd)
		q.rc.lights.SetBlue(lerpU8(255, StandbyFloor, u))
		q.rc.lights.SetPixel(standbyPixel())

	case t < QuantumFlickerEnd:
		u := float64(t-QuantumDimEnd) / float64(QuantumFlickerEnd-QuantumDimEnd)
		base := lerpF(float64(StandbyFloor), 180, u)
		amp := u * 70
		v := base + amp*math.Sin(2*math.Pi*3*ts)
		q.rc.lights.SetBlue(uint8(clampF(v, 0, 255)))
		q.rc.lights.SetPixel(lerpRGB(standbyPixel(), Palette.SkyBlue, u*0.5))

	case t < QuantumPeakEnd:
		q.rc.lights.SetBlue(255)
		q.rc.lights.SetPixel(Palette.SkyBlue)

	case t < QuantumPulseEnd:
		v := 150 + 80*math.Sin(2*math.Pi*1.5*ts)
		q.rc.lights.SetBlue(uint8(clampF(v, 0, 255)))
		q.rc.lights.SetPixel(Palette.SkyBlue.Scale(0.4 + 0.6*triWave(t-QuantumPeakEnd, time.Second)))

	default:
		u := float64(t-QuantumPulseEnd) / float64(QuantumTotal-QuantumPulseEnd)
		q.rc.lights.SetBlue(lerpU8(150, StandbyFloor, u))
		q.rc.lights.SetPixel(lerpRGB(Palette.SkyBlue, standbyPixel(), u))
	}
	q.rc.lights.Flush()
}

func (q *quantumRoutine) finish() bool {
	q.session.stop()
	dimStandbyLook(q.rc.lights)
	return true
}

func (q *quantumRoutine) outcome() Mode { return ModeStandby }

func (q *quantumRoutine) halt() {
	if q.session != nil {
		q.session.stop()
	}
}

// dimStandbyLook is the shared effect exit: dimmed idle levels until
// the standby pulse takes over.
func dimStandbyLook(l *Lights) {
	l.SetBlue(StandbyFloor)
	l.SetRed(0)
	l.SetPixel(Palette.DimAmber)
	l.Flush()
}
