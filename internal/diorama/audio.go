package diorama

import (
	"fmt"
	"io"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// SourceStatus reports the outcome of pulling samples from a source.
type SourceStatus int

const (
	SourceOK SourceStatus = iota
	SourceEndOfStream
	SourceReadError
)

// SampleSource yields a stream of stereo sample pairs decoded from a
// stored asset. Samples are unsigned 16-bit, midpoint 32768; the pump
// rebiases them before writing to the output stream. The source owns a
// read-ahead buffer which the caller services when NeedsService
// reports true. That is a separate signal, never folded into the pull
// status.
type SampleSource interface {
	Start() (sampleRate int, err error)
	Next() (left, right uint16, status SourceStatus)
	NeedsService() bool
	ServiceReadahead() SourceStatus
	Close() error
}

// Read-ahead sizing, in frames.
const (
	readaheadCap      = 8192
	readaheadLowWater = 2048
)

// WaveSource decodes a WAV asset into the read-ahead buffer.
type WaveSource struct {
	rc      io.ReadCloser
	stream  beep.StreamSeekCloser
	format  beep.Format
	ring    [][2]float64
	head    int
	n       int
	drained bool
	readErr bool
	scratch [][2]float64
}

func NewWaveSource(rc io.ReadCloser) *WaveSource {
	return &WaveSource{rc: rc}
}

// Start parses the WAV container and primes the read-ahead buffer.
func (w *WaveSource) Start() (int, error) {
	stream, format, err := wav.Decode(w.rc)
	if err != nil {
		return 0, fmt.Errorf("wav decode: %w", err)
	}
	w.stream = stream
	w.format = format
	w.ring = make([][2]float64, readaheadCap)
	w.scratch = make([][2]float64, 512)
	if st := w.ServiceReadahead(); st == SourceReadError {
		return 0, fmt.Errorf("wav read: %w", stream.Err())
	}
	return int(format.SampleRate), nil
}

// Next pops one stereo pair. An empty buffer that is neither drained
// nor errored is serviced inline rather than reported as a failure.
func (w *WaveSource) Next() (uint16, uint16, SourceStatus) {
	if w.n == 0 {
		switch {
		case w.readErr:
			return 0, 0, SourceReadError
		case w.drained:
			return 0, 0, SourceEndOfStream
		default:
			if st := w.ServiceReadahead(); st != SourceOK || w.n == 0 {
				return 0, 0, st
			}
		}
	}
	s := w.ring[w.head]
	w.head = (w.head + 1) % len(w.ring)
	w.n--
	return toU16(s[0]), toU16(s[1]), SourceOK
}

// NeedsService reports whether the read-ahead buffer has fallen below
// its low-water mark and more file data should be decoded.
func (w *WaveSource) NeedsService() bool {
	return !w.drained && !w.readErr && w.n < readaheadLowWater
}

// ServiceReadahead refills the buffer from the decoder.
func (w *WaveSource) ServiceReadahead() SourceStatus {
	if w.readErr {
		return SourceReadError
	}
	for !w.drained && w.n < len(w.ring) {
		want := len(w.ring) - w.n
		if want > len(w.scratch) {
			want = len(w.scratch)
		}
		got, ok := w.stream.Stream(w.scratch[:want])
		for i := 0; i < got; i++ {
			w.ring[(w.head+w.n)%len(w.ring)] = w.scratch[i]
			w.n++
		}
		if !ok {
			if w.stream.Err() != nil {
				w.readErr = true
				return SourceReadError
			}
			w.drained = true
		}
	}
	if w.drained && w.n == 0 {
		return SourceEndOfStream
	}
	return SourceOK
}

func (w *WaveSource) Close() error {
	var err error
	if w.stream != nil {
		err = w.stream.Close()
		w.stream = nil
	}
	if w.rc != nil {
		if cerr := w.rc.Close(); err == nil {
			err = cerr
		}
		w.rc = nil
	}
	return err
}

// toU16 maps a decoded float sample onto the unsigned 16-bit range.
// The decoder normalizes 16-bit PCM against the full 65535 span, so a
// full-scale sample arrives as +-0.5.
func toU16(s float64) uint16 {
	v := int(clampF(s, -0.5, 0.5) * 65535)
	return uint16(v + 32768)
}
