package diorama

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/oto/v2"
)

// OutputStream is the push side of audio output: Begin opens the
// stream at a sample rate, Write queues one rebiased stereo frame,
// End tears the stream down. Every mode routine that begins a stream
// must end it on every exit path.
type OutputStream interface {
	Begin(sampleRate int) error
	Write(left, right int16)
	End()
}

// maxQueuedBytes bounds the FIFO so a stalled device can't grow memory
// without limit. 4 bytes per frame.
const maxQueuedBytes = 1 << 20

// OtoStream plays queued frames through an oto context. The oto player
// pulls from the FIFO on its own goroutine; an empty FIFO reads as
// silence so the device keeps a live stream between writes.
type OtoStream struct {
	mu     sync.Mutex
	ctx    *oto.Context
	rate   int
	player oto.Player
	fifo   []byte
}

func NewOtoStream() *OtoStream { return &OtoStream{} }

func (o *OtoStream) Begin(sampleRate int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ctx == nil {
		// oto allows a single context per process; all assets on the
		// volume share one rate, so the first Begin fixes it.
		ctx, ready, err := oto.NewContext(sampleRate, 2, 2)
		if err != nil {
			return fmt.Errorf("oto context: %w", err)
		}
		<-ready
		o.ctx = ctx
		o.rate = sampleRate
	}
	o.fifo = o.fifo[:0]
	if o.player == nil {
		o.player = o.ctx.NewPlayer(o)
		o.player.Play()
	}
	return nil
}

func (o *OtoStream) Write(left, right int16) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.fifo) >= maxQueuedBytes {
		return
	}
	o.fifo = append(o.fifo,
		byte(uint16(left)), byte(uint16(left)>>8),
		byte(uint16(right)), byte(uint16(right)>>8),
	)
}

func (o *OtoStream) End() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fifo = o.fifo[:0]
}

// Read feeds the oto player, padding with silence when the FIFO runs
// dry.
func (o *OtoStream) Read(p []byte) (int, error) {
	o.mu.Lock()
	n := copy(p, o.fifo)
	o.fifo = o.fifo[n:]
	o.mu.Unlock()
	for i := n; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}

func (o *OtoStream) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	o.fifo = nil
}

// SimStream is an in-memory OutputStream for headless runs and tests.
// It counts Begin/End pairs so tests can assert that every routine
// exit path tears its stream down.
type SimStream struct {
	Begins    int
	Ends      int
	Frames    int
	Rate      int
	Open      bool
	FailBegin bool
}

func NewSimStream() *SimStream { return &SimStream{} }

func (s *SimStream) Begin(sampleRate int) error {
	if s.FailBegin {
		return fmt.Errorf("sim stream: begin refused")
	}
	s.Begins++
	s.Rate = sampleRate
	s.Open = true
	return nil
}

func (s *SimStream) Write(left, right int16) {
	if s.Open {
		s.Frames++
	}
}

func (s *SimStream) End() {
	if s.Open {
		s.Ends++
		s.Open = false
	}
}
