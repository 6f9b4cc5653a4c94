package vehicle

import "time"

// Range sensor.
const (
	// RangeFloorMm is the shortest distance the time-of-flight sensor
	// reports reliably; readings at or below it are noise.
	RangeFloorMm uint32 = 150
	// RangeFarMm replaces noise readings and missing readings. It is
	// above CountMax so a corrected reading never trips the interlock.
	RangeFarMm uint32 = 1000
)

// Encoder count bounds, in pulses. The clamped count is compared
// directly to the range in millimeters, so the bounds are the
// shortest and longest stopping distances: CountMin sits just above
// RangeFloorMm and CountMax just below RangeFarMm.
const (
	CountInitial int64 = 200
	CountMin     int64 = 200
	CountMax     int64 = 800
)

// Safety maneuver.
const (
	SafetyInterval = 20 * time.Millisecond
	BrakeHold      = 500 * time.Millisecond
	ReverseHold    = time.Second
	ReverseDuty    = -0.5
)

// Signals.
const (
	SignalInterval = 100 * time.Millisecond

	// TurnSignalToggles half periods make one blink sequence,
	// starting with the light on.
	TurnSignalToggles    = 6
	TurnSignalHalfPeriod = 500 * time.Millisecond

	HornPulse  = 500 * time.Millisecond
	HornToneHz = 300

	HeadlightsInterval = 3 * time.Second
	// Headlights are on when the ambient light is below this.
	HeadlightsThreshold = 0.65
)

// tierDuty maps speed tiers to wheel duties, index 0 is no tier.
var tierDuty = [...]float64{0, 0.33, 0.66, 1.0}

// TierDuty gets the wheel duty of a speed tier 1..3, 0 otherwise.
func TierDuty(tier int) float64 {
	if tier > 0 && tier < len(tierDuty) {
		return tierDuty[tier]
	}
	return 0
}
