package diorama

import (
	"bytes"
	"io"
	"testing"
	"time"
)

func newTestSource(t *testing.T, rate, frames int, amp float64) *WaveSource {
	t.Helper()
	return NewWaveSource(io.NopCloser(bytes.NewReader(makeWAV(rate, frames, amp))))
}

func TestWaveSourceDecodesHeader(t *testing.T) {
	src := newTestSource(t, 44100, 100, 0)
	rate, err := src.Start()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if rate != 44100 {
		t.Fatalf("sample rate = %d, want 44100", rate)
	}
	src.Close()
}

func TestWaveSourceDrainsAllFrames(t *testing.T) {
	const frames = 10000
	src := newTestSource(t, testRate, frames, 0.5)
	if _, err := src.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer src.Close()

	n := 0
	for {
		l, r, st := src.Next()
		if st == SourceEndOfStream {
			break
		}
		if st != SourceOK {
			t.Fatalf("frame %d: status %v", n, st)
		}
		// Constant 0.5 amplitude lands near 3/4 of the unsigned range.
		want := 49151
		if abs16(int(l)-want) > 8 || abs16(int(r)-want) > 8 {
			t.Fatalf("frame %d: sample %d/%d, want ~%d", n, l, r, want)
		}
		n++
		if src.NeedsService() {
			if st := src.ServiceReadahead(); st == SourceReadError {
				t.Fatalf("frame %d: read error on service", n)
			}
		}
	}
	if n != frames {
		t.Fatalf("drained %d frames, want %d", n, frames)
	}
}

func TestWaveSourceReadahead(t *testing.T) {
	src := newTestSource(t, testRate, 10000, 0.1)
	if _, err := src.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer src.Close()

	if src.NeedsService() {
		t.Fatal("fresh source already below low water")
	}
	for i := 0; i < readaheadCap-readaheadLowWater+1; i++ {
		src.Next()
	}
	if !src.NeedsService() {
		t.Fatal("source not signalling service below low water")
	}
	if st := src.ServiceReadahead(); st != SourceOK {
		t.Fatalf("service: status %v", st)
	}
	if src.NeedsService() {
		t.Fatal("service did not refill above low water")
	}
}

func TestWaveSourceFullScaleMapping(t *testing.T) {
	// Full-scale PCM must span the whole unsigned range after decode,
	// not half of it, or the envelope follower tops out at half
	// brightness.
	cases := []struct {
		amp  float64
		want int
	}{
		{1.0, 65535},
		{0.5, 49151},
		{0.0, 32768},
	}
	for _, c := range cases {
		src := newTestSource(t, testRate, 16, c.amp)
		if _, err := src.Start(); err != nil {
			t.Fatalf("amp %v: start: %v", c.amp, err)
		}
		l, r, st := src.Next()
		if st != SourceOK {
			t.Fatalf("amp %v: status %v", c.amp, st)
		}
		if abs16(int(l)-c.want) > 8 || abs16(int(r)-c.want) > 8 {
			t.Errorf("amp %v: sample %d/%d, want ~%d", c.amp, l, r, c.want)
		}
		src.Close()
	}
}

func TestWaveSourceRejectsGarbage(t *testing.T) {
	src := NewWaveSource(io.NopCloser(bytes.NewReader([]byte("not a wav file at all"))))
	if _, err := src.Start(); err == nil {
		t.Fatal("garbage input accepted")
	}
	src.Close()
}

func TestSessionRebiasesSamples(t *testing.T) {
	assets := &memAssets{files: map[string][]byte{
		"a.wav": makeWAV(testRate, 2000, 0.5),
	}}
	stream := NewSimStream()
	s := newPlaybackSession(assets, "a.wav", stream, 0)
	if !s.playing() {
		t.Fatal("session not active")
	}
	peak := s.pump(100 * time.Millisecond)
	if peak == 0 {
		t.Fatal("pumped nothing")
	}
	// 0.5 amplitude rebiased to signed lands near 16383.
	if abs16(peak-16383) > 8 {
		t.Fatalf("peak = %d, want ~16383", peak)
	}
	s.stop()
	if stream.Begins != 1 || stream.Ends != 1 {
		t.Fatalf("stream begin/end = %d/%d", stream.Begins, stream.Ends)
	}
}

func TestSessionSilentSkipOnMissingAsset(t *testing.T) {
	assets := &memAssets{files: map[string][]byte{}}
	stream := NewSimStream()
	s := newPlaybackSession(assets, "missing.wav", stream, 0)
	if s.playing() {
		t.Fatal("missing asset reported as playing")
	}
	if s.pump(time.Second) != 0 {
		t.Fatal("inert session pumped frames")
	}
	s.stop()
	s.stop() // must be idempotent
	if stream.Begins != 0 {
		t.Fatalf("stream begun for missing asset")
	}
}

func TestSessionSilentSkipOnStreamRefusal(t *testing.T) {
	assets := &memAssets{files: map[string][]byte{
		"a.wav": makeWAV(testRate, 100, 0),
	}}
	stream := NewSimStream()
	stream.FailBegin = true
	s := newPlaybackSession(assets, "a.wav", stream, 0)
	if s.playing() {
		t.Fatal("refused stream reported as playing")
	}
	s.stop()
	if assets.opens != assets.closes {
		t.Fatalf("file handle leaked: %d/%d", assets.opens, assets.closes)
	}
}

func TestSessionPacesToClock(t *testing.T) {
	assets := &memAssets{files: map[string][]byte{
		"a.wav": makeWAV(testRate, testRate*2, 0.2), // 2 s
	}}
	stream := NewSimStream()
	s := newPlaybackSession(assets, "a.wav", stream, 0)

	// Pump at 100 ms of elapsed time: roughly that much audio plus the
	// lead window should be queued, not the whole asset.
	for i := 0; i < 10; i++ {
		s.pump(100 * time.Millisecond)
	}
	want := testRate/10 + PumpLeadFrames
	if abs16(stream.Frames-want) > PumpBatchMax {
		t.Fatalf("queued %d frames at 100ms, want ~%d", stream.Frames, want)
	}
	s.stop()
}

func abs16(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
