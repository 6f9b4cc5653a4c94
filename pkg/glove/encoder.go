// Package glove implements the gesture glove: it samples tilt and
// grip, encodes them into commands and transmits them to the vehicle.
package glove

import (
	"github.com/robotalks/glovebot/pkg/protocol"
)

// Grip thresholds on the normalized flex reading, lower is tighter.
const (
	GripNone  = 0.27
	GripTier1 = 0.21
	GripTier2 = 0.15
)

// DefaultDeadband is the raw accelerometer deadband around zero.
const DefaultDeadband = 4000

// SpeedTier quantizes a grip reading into a speed tier.
func SpeedTier(grip float64) byte {
	switch {
	case grip > GripNone:
		return protocol.SpeedNone
	case grip > GripTier1:
		return protocol.Speed1
	case grip > GripTier2:
		return protocol.Speed2
	}
	return protocol.Speed3
}

// LateralDirection maps the lateral axis: tilting down (-1) is
// forward, tilting up (+1) is back.
func LateralDirection(x int) protocol.Action {
	switch {
	case x < 0:
		return protocol.ActionForward
	case x > 0:
		return protocol.ActionBack
	}
	return protocol.ActionStop
}

// LongitudinalDirection maps the longitudinal axis: +1 is left,
// -1 is right.
func LongitudinalDirection(y int) protocol.Action {
	switch {
	case y > 0:
		return protocol.ActionLeft
	case y < 0:
		return protocol.ActionRight
	}
	return protocol.ActionStop
}

// Encode produces the movement command from both axes and the speed
// tier. No grip or no tilt is a stop. The lateral axis wins when
// both are tilted.
func Encode(x, y int, tier byte) protocol.Command {
	lateral, longitudinal := LateralDirection(x), LongitudinalDirection(y)
	if tier == protocol.SpeedNone || (lateral == protocol.ActionStop && longitudinal == protocol.ActionStop) {
		return protocol.Stop
	}
	if lateral != protocol.ActionStop {
		return protocol.Move(lateral, tier)
	}
	return protocol.Move(longitudinal, tier)
}

// Threshold maps a raw axis reading to {-1, 0, +1}.
func Threshold(v, deadband int) int {
	switch {
	case v > deadband:
		return 1
	case v < -deadband:
		return -1
	}
	return 0
}
