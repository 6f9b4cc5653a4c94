// Package hal defines the hardware capabilities consumed by the glove
// and the vehicle. Drivers live outside this module; the simulator in
// pkg/sim implements all of them.
package hal

import (
	"github.com/robotalks/glovebot/pkg/quadrature"
)

// Wheel identifies one of the two driven wheels.
type Wheel int

// Wheels
const (
	WheelLeft Wheel = iota
	WheelRight
	NumWheels
)

// String implements fmt.Stringer.
func (w Wheel) String() string {
	switch w {
	case WheelLeft:
		return "left"
	case WheelRight:
		return "right"
	}
	return "unknown"
}

// Output names a digital output.
type Output string

// Vehicle outputs.
const (
	OutputTurnLeft   Output = "turn-left"
	OutputTurnRight  Output = "turn-right"
	OutputBrake      Output = "brake"
	OutputReverse    Output = "reverse"
	OutputHeadlights Output = "headlights"
)

// Outputs lists all vehicle outputs.
var Outputs = []Output{
	OutputTurnLeft,
	OutputTurnRight,
	OutputBrake,
	OutputReverse,
	OutputHeadlights,
}

// Motors drives the wheels, duty is in [-1, 1], negative for reverse.
type Motors interface {
	SetMotorDuty(w Wheel, duty float64) error
}

// DigitalOutputs switches lights.
type DigitalOutputs interface {
	SetDigitalOutput(name Output, on bool) error
}

// Speaker plays a fixed tone.
type Speaker interface {
	SetSpeakerTone(on bool) error
}

// RangeSensor is a time-of-flight distance sensor.
// ok is false when no reading is available.
type RangeSensor interface {
	ReadRangeMm() (mm uint32, ok bool)
}

// LightSensor reads normalized ambient light in [0, 1].
type LightSensor interface {
	ReadAmbientLight() float64
}

// EncoderLines reports the wheel encoder phase lines.
type EncoderLines interface {
	ReadEncoderPhase() quadrature.Phase
	// OnEncoderEdge registers fn to be called with the phase
	// after every edge of either line. fn must not block.
	OnEncoderEdge(fn func(quadrature.Phase))
}

// Vehicle is the full set of vehicle capabilities.
type Vehicle interface {
	Motors
	DigitalOutputs
	Speaker
	RangeSensor
	LightSensor
	EncoderLines
}

// DirectionAxes reports thresholded tilt, each in {-1, 0, +1}.
type DirectionAxes interface {
	// ReadDirectionAxisX is the lateral axis (forward/back).
	ReadDirectionAxisX() int
	// ReadDirectionAxisY is the longitudinal axis (left/right).
	ReadDirectionAxisY() int
}

// GripSensor reads normalized flex sensor pressure in [0, 1],
// lower is tighter.
type GripSensor interface {
	ReadGripPressure() float64
}

// Button names a glove push button.
type Button int

// Glove buttons.
const (
	ButtonNavLeft Button = iota
	ButtonNavRight
	ButtonNavFire
)

// String implements fmt.Stringer.
func (b Button) String() string {
	switch b {
	case ButtonNavLeft:
		return "nav-left"
	case ButtonNavRight:
		return "nav-right"
	case ButtonNavFire:
		return "nav-fire"
	}
	return "unknown"
}

// Buttons reports button releases.
type Buttons interface {
	// OnButtonRelease registers fn to be called when a button is
	// released. fn must not block.
	OnButtonRelease(fn func(Button))
}

// Glove is the full set of glove capabilities.
type Glove interface {
	// Start brings up the sensors.
	Start() error
	DirectionAxes
	GripSensor
	Buttons
}
