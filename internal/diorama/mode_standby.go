package diorama

import "time"

// standbyIdle is the per-tick idle step while no routine runs: a slow
// blue triangle pulse, the pixel held at warm amber, and the ambient
// asset once per interval. It is not a stepper: it never finishes, and
// the controller drives it directly.
type standbyIdle struct {
	rc          runContext
	level       int
	dir         int
	lastLight   time.Duration
	lastAmbient time.Duration
	session     *playbackSession
}

func newStandbyIdle(rc runContext) *standbyIdle {
	return &standbyIdle{rc: rc, dir: 1}
}

// enter re-arms the idle step when the controller lands in standby.
func (s *standbyIdle) enter(now time.Duration) {
	s.level = clamp(int(s.rc.lights.Blue()), StandbyFloor, StandbyCeil)
	if s.level >= StandbyCeil {
		s.dir = -1
	} else {
		s.dir = 1
	}
	s.lastLight = now
	s.lastAmbient = now
	s.rc.lights.SetPixel(standbyPixel())
	s.rc.lights.SetRed(0)
	s.rc.lights.Flush()
}

func (s *standbyIdle) step(now time.Duration) {
	if s.session != nil {
		// A press kills the ambient sound immediately; the release
		// classifies into whatever gesture follows.
		if s.rc.pressed() {
			s.session.stop()
			s.session = nil
			s.lastAmbient = now
		} else {
			s.session.pump(now)
			if !s.session.playing() {
				s.session.stop()
				s.session = nil
				s.lastAmbient = now
			}
		}
	} else if now-s.lastAmbient >= AmbientInterval {
		s.session = newPlaybackSession(s.rc.assets, AssetAmbient, s.rc.out, now)
		s.lastAmbient = now
		if !s.session.playing() {
			// Missing or unreadable asset: stay silent until the next
			// interval rather than retrying every tick.
			s.session.stop()
			s.session = nil
		}
	}

	if now-s.lastLight >= LightInterval {
		s.lastLight = now
		s.level += s.dir * StandbyStep
		if s.level >= StandbyCeil {
			s.level = StandbyCeil
			s.dir = -1
		} else if s.level <= StandbyFloor {
			s.level = StandbyFloor
			s.dir = 1
		}
		s.rc.lights.SetBlue(uint8(s.level))
		s.rc.lights.Flush()
	}
}

// halt stops the ambient session when the controller leaves standby.
func (s *standbyIdle) halt() {
	if s.session != nil {
		s.session.stop()
		s.session = nil
	}
}
