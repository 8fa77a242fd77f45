package diorama

// Channel identifies one of the two monochrome LED strips.
type Channel int

const (
	ChannelBlue Channel = iota
	ChannelRed
)

// LightSink is the output side of the lighting layer: two monochrome
// brightness channels plus one addressable RGB pixel. Writes take
// effect on Flush.
type LightSink interface {
	SetChannel(ch Channel, level uint8)
	SetPixel(c RGB)
	Flush()
}

// Lights wraps a sink with a shadow copy of the last written values so
// mode routines can fade relative to whatever the previous mode left
// behind.
type Lights struct {
	sink  LightSink
	blue  uint8
	red   uint8
	pixel RGB
}

func NewLights(sink LightSink) *Lights {
	return &Lights{sink: sink}
}

func (l *Lights) SetBlue(v uint8) {
	l.blue = v
	l.sink.SetChannel(ChannelBlue, v)
}

func (l *Lights) SetRed(v uint8) {
	l.red = v
	l.sink.SetChannel(ChannelRed, v)
}

func (l *Lights) SetPixel(c RGB) {
	l.pixel = c
	l.sink.SetPixel(c)
}

func (l *Lights) Flush() { l.sink.Flush() }

func (l *Lights) Blue() uint8 { return l.blue }
func (l *Lights) Red() uint8  { return l.red }
func (l *Lights) Pixel() RGB  { return l.pixel }

// Off blanks everything in one flush.
func (l *Lights) Off() {
	l.SetBlue(0)
	l.SetRed(0)
	l.SetPixel(Palette.Off)
	l.Flush()
}

// SimLights is an in-memory sink for headless runs and tests.
type SimLights struct {
	Blue    uint8
	Red     uint8
	Pixel   RGB
	Flushes int
}

func NewSimLights() *SimLights { return &SimLights{} }

func (s *SimLights) SetChannel(ch Channel, level uint8) {
	switch ch {
	case ChannelBlue:
		s.Blue = level
	case ChannelRed:
		s.Red = level
	}
}

func (s *SimLights) SetPixel(c RGB) { s.Pixel = c }
func (s *SimLights) Flush()         { s.Flushes++ }
