package diorama

import "time"

// playbackSession is the per-routine audio state: one open source, one
// begun output stream, alive until the asset drains or the routine
// stops it. A failed open or an unsupported format yields an inert
// session so the routine's visuals still run without audio.
type playbackSession struct {
	src     SampleSource
	out     OutputStream
	rate    int
	active  bool
	begun   bool
	startAt time.Duration
	written int
}

func newPlaybackSession(assets AssetOpener, name string, out OutputStream, now time.Duration) *playbackSession {
	rc, err := assets.Open(name)
	if err != nil {
		return &playbackSession{}
	}
	src := NewWaveSource(rc)
	rate, err := src.Start()
	if err != nil {
		src.Close()
		return &playbackSession{}
	}
	if err := out.Begin(rate); err != nil {
		src.Close()
		return &playbackSession{}
	}
	return &playbackSession{
		src:     src,
		out:     out,
		rate:    rate,
		active:  true,
		begun:   true,
		startAt: now,
	}
}

func (s *playbackSession) playing() bool { return s.active }

// pump moves the stream far enough ahead of now to cover the lead
// window, then services the source's read-ahead if it asks. Returns
// the peak rebiased amplitude of the louder channel across the batch
// (0 when nothing was pumped).
func (s *playbackSession) pump(now time.Duration) int {
	if !s.active {
		return 0
	}
	target := int(float64(s.rate)*(now-s.startAt).Seconds()) + PumpLeadFrames
	n := target - s.written
	if n <= 0 {
		return 0
	}
	if n > PumpBatchMax {
		n = PumpBatchMax
	}

	peak := 0
	for i := 0; i < n; i++ {
		lu, ru, st := s.src.Next()
		if st != SourceOK {
			// End of stream and read error both end playback here;
			// the choreography finishes on its own clock.
			s.active = false
			break
		}
		l := int16(float64(int32(lu)-32768) * MasterVolume)
		r := int16(float64(int32(ru)-32768) * MasterVolume)
		s.out.Write(l, r)
		s.written++
		if a := peakAmp(l, r); a > peak {
			peak = a
		}
	}
	if s.active && s.src.NeedsService() {
		if s.src.ServiceReadahead() == SourceReadError {
			s.active = false
		}
	}
	return peak
}

// stop releases the source and ends the stream. Safe to call on any
// exit path, any number of times, and on inert sessions.
func (s *playbackSession) stop() {
	if s.src != nil {
		s.src.Close()
		s.src = nil
	}
	if s.begun {
		s.out.End()
		s.begun = false
	}
	s.active = false
}

func peakAmp(l, r int16) int {
	a := int(l)
	if a < 0 {
		a = -a
	}
	b := int(r)
	if b < 0 {
		b = -b
	}
	if b > a {
		return b
	}
	return a
}
