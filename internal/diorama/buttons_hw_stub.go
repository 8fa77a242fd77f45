//go:build !ws2811

package diorama

import "errors"

type GPIOButtons struct{}

func NewGPIOButtons(clock Clock) (*GPIOButtons, error) {
	return nil, errors.New("built without gpio support")
}

func (g *GPIOButtons) Pressed() bool { return false }
