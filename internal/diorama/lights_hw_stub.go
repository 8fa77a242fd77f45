//go:build !ws2811

package diorama

import "errors"

// HardwareLights is only available when built with the ws2811 tag on a
// Raspberry Pi; this stub keeps non-Pi builds compiling.
type HardwareLights struct{}

func NewHardwareLights() (*HardwareLights, error) {
	return nil, errors.New("built without ws2811 support")
}

func (h *HardwareLights) SetChannel(ch Channel, level uint8) {}
func (h *HardwareLights) SetPixel(c RGB)                     {}
func (h *HardwareLights) Flush()                             {}
func (h *HardwareLights) Close()                             {}
