package diorama

import "time"

// Scheduler.
const (
	TickInterval  = 5 * time.Millisecond
	LightInterval = 20 * time.Millisecond
	// Amplitude-reactive modes refresh twice as fast so the envelope
	// follower doesn't visibly stair-step.
	ReactiveLightInterval = 10 * time.Millisecond
)

// Audio pump.
const (
	// Frames kept ahead of real time in the output stream. ~90 ms at
	// 22050 Hz; an underrun here is audible.
	PumpLeadFrames = 2048
	// Upper bound on frames moved per step so one step never stalls
	// the lighting cadence.
	PumpBatchMax = 4096
	MasterVolume = 1.0
)

// Button gesture classification (milliseconds of hold / gap).
const (
	DoubleTapWindow = 1000 * time.Millisecond
	MediumHoldMin   = 3000 * time.Millisecond
	LongHoldMin     = 5000 * time.Millisecond
)

// Power-on choreography.
const (
	PowerOnRampDur    = 2 * time.Second
	PowerOnNeonStart  = 1 * time.Second
	PowerOnNeonEnd    = 4 * time.Second
	PowerOnCrossEnd   = 5 * time.Second
	PowerOnNeonPeriod = 600 * time.Millisecond
)

// Power-off fade: one step of FadeStep per FadeStepDelay.
const (
	FadeStep      = 5
	FadeStepDelay = 15 * time.Millisecond
)

// Standby idle.
const (
	StandbyFloor    = 40
	StandbyCeil     = 200
	StandbyStep     = 2
	StandbyFadeStep = 8
	AmbientInterval = 8 * time.Second
	StandbyAmberDim = 160 // pixel brightness scale in standby, 0-255
)

// Battle effect envelope follower.
const (
	EnvAttack    = 0.55  // per-update approach toward a louder peak
	EnvRelease   = 0.93  // per-update retention while decaying
	EnvNoiseGate = 1500  // amplitude floor below which the lights stay dark
	EnvFullScale = 32768 // peak amplitude of rebiased 16-bit samples
)

// Quantum effect stages (elapsed time from routine start).
const (
	QuantumDimEnd     = 3 * time.Second
	QuantumFlickerEnd = 12 * time.Second
	QuantumPeakEnd    = 14 * time.Second
	QuantumPulseEnd   = 24 * time.Second
	QuantumTotal      = 27 * time.Second
)

// Self-destruct stages (elapsed time from routine start).
const (
	DestructBlueFadeStart  = 6 * time.Second
	DestructBlueFadeEnd    = 9 * time.Second
	DestructFlashStart     = 4 * time.Second
	DestructFlashEnd       = 25 * time.Second
	DestructFlashSlowest   = 600 * time.Millisecond
	DestructFlashFastest   = 80 * time.Millisecond
	DestructPixelPulseEnd  = 23 * time.Second
	DestructWhiteFlashEnd  = 24 * time.Second
	DestructFlickerStart   = 25 * time.Second
	DestructEmberStart     = 31 * time.Second
	DestructAbortArm       = 32 * time.Second
	DestructAbortFade      = 5 * time.Second
	DestructFinalFadeStart = 86 * time.Second
	DestructEmberEnd       = 91 * time.Second
	DestructTotal          = 95 * time.Second
)
