package diorama

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"
)

// scriptButton is a ButtonSource the test mutates directly.
type scriptButton struct {
	down bool
}

func (s *scriptButton) Pressed() bool { return s.down }

// memAssets serves WAV bytes from memory and counts open/close pairs
// so tests can assert that no routine leaks a file handle.
type memAssets struct {
	files  map[string][]byte
	opens  int
	closes int
}

func (m *memAssets) Open(name string) (io.ReadCloser, error) {
	b, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("no asset %s", name)
	}
	m.opens++
	return &countedReader{Reader: bytes.NewReader(b), assets: m}, nil
}

type countedReader struct {
	*bytes.Reader
	assets *memAssets
	closed bool
}

func (c *countedReader) Close() error {
	if !c.closed {
		c.closed = true
		c.assets.closes++
	}
	return nil
}

// makeWAV builds a 16-bit stereo PCM WAV with every sample at the
// given amplitude (0..1).
func makeWAV(rate, frames int, amp float64) []byte {
	var buf bytes.Buffer
	dataSize := uint32(frames * 4)

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint32(rate))
	binary.Write(&buf, binary.LittleEndian, uint32(rate*4))
	binary.Write(&buf, binary.LittleEndian, uint16(4))
	binary.Write(&buf, binary.LittleEndian, uint16(16))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataSize)
	s := int16(amp * 32767)
	for i := 0; i < frames; i++ {
		binary.Write(&buf, binary.LittleEndian, s)
		binary.Write(&buf, binary.LittleEndian, s)
	}
	return buf.Bytes()
}

const testRate = 22050

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// rig wires a controller to simulated peripherals and a manual clock.
type rig struct {
	t      *testing.T
	assets *memAssets
	sink   *SimLights
	lights *Lights
	stream *SimStream
	button *scriptButton
	ctrl   *Controller
	now    time.Duration
}

func newRig(t *testing.T, seed uint64) *rig {
	t.Helper()
	assets := &memAssets{files: map[string][]byte{}}
	std := makeWAV(testRate, testRate*2, 0.5) // 2 s
	for _, name := range []string{AssetPowerOn, AssetPowerOff, AssetSelfDestruct, AssetAmbient} {
		assets.files[name] = std
	}
	for _, name := range EffectAssets {
		assets.files[name] = std
	}

	sink := NewSimLights()
	lights := NewLights(sink)
	stream := NewSimStream()
	button := &scriptButton{}
	ctrl := NewController(assets, stream, lights, button, NewRand(seed), testLogger())
	return &rig{
		t:      t,
		assets: assets,
		sink:   sink,
		lights: lights,
		stream: stream,
		button: button,
		ctrl:   ctrl,
	}
}

// advance runs the tick loop forward by d of simulated time.
func (r *rig) advance(d time.Duration) {
	end := r.now + d
	for r.now < end {
		r.now += TickInterval
		r.ctrl.Tick(r.now)
	}
}

// advanceUntil ticks until cond holds, failing after the timeout.
func (r *rig) advanceUntil(timeout time.Duration, what string, cond func() bool) {
	r.t.Helper()
	end := r.now + timeout
	for r.now < end {
		r.now += TickInterval
		r.ctrl.Tick(r.now)
		if cond() {
			return
		}
	}
	r.t.Fatalf("timed out after %v waiting for %s (mode=%v)", timeout, what, r.ctrl.Mode())
}

// tap is one short press/release plus a tick to let the release edge
// classify.
func (r *rig) tap() {
	r.button.down = true
	r.advance(60 * time.Millisecond)
	r.button.down = false
	r.advance(2 * TickInterval)
}

// hold presses for d before releasing.
func (r *rig) hold(d time.Duration) {
	r.button.down = true
	r.advance(d)
	r.button.down = false
	r.advance(2 * TickInterval)
}

// powerOn taps from off and waits for standby.
func (r *rig) powerOn() {
	r.t.Helper()
	if r.ctrl.Mode() != ModeOff {
		r.t.Fatalf("powerOn from mode %v", r.ctrl.Mode())
	}
	r.tap()
	if r.ctrl.Mode() != ModePoweringOn {
		r.t.Fatalf("tap from off gave mode %v", r.ctrl.Mode())
	}
	r.advanceUntil(10*time.Second, "standby", r.ctrl.InStandby)
}

// checkBalanced asserts no leaked file handles or output streams.
func (r *rig) checkBalanced() {
	r.t.Helper()
	if r.assets.opens != r.assets.closes {
		r.t.Fatalf("asset handles leaked: %d opened, %d closed", r.assets.opens, r.assets.closes)
	}
	if r.stream.Begins != r.stream.Ends {
		r.t.Fatalf("output streams leaked: %d begun, %d ended", r.stream.Begins, r.stream.Ends)
	}
}
