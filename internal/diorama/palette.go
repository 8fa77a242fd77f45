package diorama

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

// Scale multiplies all channels by t in [0,1].
func (c RGB) Scale(t float64) RGB {
	t = clampF(t, 0, 1)
	return RGB{
		R: uint8(float64(c.R) * t),
		G: uint8(float64(c.G) * t),
		B: uint8(float64(c.B) * t),
	}
}

var Palette = struct {
	Off          RGB
	StandbyAmber RGB
	DimAmber     RGB
	NeonGreen    RGB
	SkyBlue      RGB
	FullRed      RGB
	White        RGB
	EmberRed     RGB
	EmberOrange  RGB
}{
	Off:          RGB{},
	StandbyAmber: RGB{R: 255, G: 120, B: 10},
	DimAmber:     RGB{R: 90, G: 42, B: 4},
	NeonGreen:    RGB{R: 30, G: 255, B: 40},
	SkyBlue:      RGB{R: 80, G: 170, B: 255},
	FullRed:      RGB{R: 255, G: 0, B: 0},
	White:        RGB{R: 255, G: 255, B: 255},
	EmberRed:     RGB{R: 200, G: 30, B: 0},
	EmberOrange:  RGB{R: 255, G: 110, B: 10},
}

func rgbEq(a, b RGB) bool { return a.R == b.R && a.G == b.G && a.B == b.B }
