package diorama

import (
	"context"
	"log/slog"
	"time"
)

// Run drives the controller on the real scheduler until ctx is
// cancelled. One tick polls the button and advances whichever of the
// active routine or the idle step owns the device.
func Run(ctx context.Context, c *Controller, clock Clock, log *slog.Logger) {
	log.Info("tick loop running", "interval", TickInterval)
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("tick loop stopped")
			return
		case <-ticker.C:
			c.Tick(clock.Now())
		}
	}
}

// DiagnosticBlink is the terminal fault state entered when the asset
// volume is missing at startup: a red blink forever, no mode machine.
func DiagnosticBlink(ctx context.Context, lights *Lights) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	on := false
	for {
		select {
		case <-ctx.Done():
			lights.Off()
			return
		case <-ticker.C:
			on = !on
			if on {
				lights.SetRed(255)
				lights.SetPixel(Palette.FullRed)
			} else {
				lights.SetRed(0)
				lights.SetPixel(Palette.Off)
			}
			lights.Flush()
		}
	}
}
