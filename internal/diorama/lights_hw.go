//go:build ws2811

package diorama

import (
	"fmt"

	ws2811 "github.com/rpi-ws281x/rpi-ws281x-go"
	"github.com/stianeikeland/go-rpio/v4"
)

// GPIO layout for the installed prop hardware.
const (
	pixelPin        = 18 // NeoPixel data
	blueLEDPin      = 12 // PWM0
	redLEDPin       = 13 // PWM1
	pwmCycleLen     = 256
	pwmFreq         = 76800 // cycle length * 300 Hz
	pixelBrightness = 255
)

// HardwareLights drives the single NeoPixel over the ws281x DMA driver
// and the two monochrome strips over hardware PWM.
type HardwareLights struct {
	dev   *ws2811.WS2811
	blue  rpio.Pin
	red   rpio.Pin
	pixel RGB
}

func NewHardwareLights() (*HardwareLights, error) {
	opt := ws2811.DefaultOptions
	opt.Channels[0].GpioPin = pixelPin
	opt.Channels[0].LedCount = 1
	opt.Channels[0].Brightness = pixelBrightness

	dev, err := ws2811.MakeWS2811(&opt)
	if err != nil {
		return nil, fmt.Errorf("ws2811 setup: %w", err)
	}
	if err := dev.Init(); err != nil {
		return nil, fmt.Errorf("ws2811 init: %w", err)
	}

	if err := rpio.Open(); err != nil {
		dev.Fini()
		return nil, fmt.Errorf("gpio open: %w", err)
	}
	h := &HardwareLights{
		dev:  dev,
		blue: rpio.Pin(blueLEDPin),
		red:  rpio.Pin(redLEDPin),
	}
	for _, p := range []rpio.Pin{h.blue, h.red} {
		p.Mode(rpio.Pwm)
		p.Freq(pwmFreq)
		p.DutyCycle(0, pwmCycleLen)
	}
	return h, nil
}

func (h *HardwareLights) SetChannel(ch Channel, level uint8) {
	switch ch {
	case ChannelBlue:
		h.blue.DutyCycle(uint32(level), pwmCycleLen)
	case ChannelRed:
		h.red.DutyCycle(uint32(level), pwmCycleLen)
	}
}

func (h *HardwareLights) SetPixel(c RGB) {
	h.pixel = c
}

func (h *HardwareLights) Flush() {
	h.dev.Leds(0)[0] = uint32(h.pixel.R)<<16 | uint32(h.pixel.G)<<8 | uint32(h.pixel.B)
	// Render pushes the DMA buffer; errors here are transient glitches
	// with nothing useful to do about them mid-choreography.
	_ = h.dev.Render()
}

func (h *HardwareLights) Close() {
	h.blue.DutyCycle(0, pwmCycleLen)
	h.red.DutyCycle(0, pwmCycleLen)
	h.dev.Leds(0)[0] = 0
	_ = h.dev.Render()
	h.dev.Fini()
	rpio.Close()
}
