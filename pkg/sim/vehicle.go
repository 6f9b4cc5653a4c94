// Package sim simulates the vehicle hardware: a differential drive
// in a walled arena with a forward range sensor and a wheel encoder.
package sim

import (
	"math"
	"sync"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/glovebot/pkg/framework"
	"github.com/robotalks/glovebot/pkg/hal"
	"github.com/robotalks/glovebot/pkg/quadrature"
)

// forwardPhases is the phase sequence of forward rotation.
var forwardPhases = [4]quadrature.Phase{0, 2, 3, 1}

// Vehicle implements hal.Vehicle. Time advances only when Control
// is called.
type Vehicle struct {
	Arena     Rect
	Obstacles []Rect

	Track         float64 // mm between wheels
	MaxWheelSpeed float64 // mm/s at duty 1
	Accel         float64 // mm/s^2, 0 for instant
	MmPerPulse    float64 // encoder resolution
	MaxRangeMm    float64 // beyond this there's no reading

	lock    sync.Mutex
	pose    Pose2D
	wheels  [hal.NumWheels]wheelState
	duties  [hal.NumWheels]float64
	outputs map[hal.Output]bool
	tone    bool
	light   float64
	travel  float64
	pulses  int64
	edgeFn  func(quadrature.Phase)
	last    time.Time
	bumps   int
}

// NewVehicle creates a Vehicle in an empty arena.
func NewVehicle(arena Rect) *Vehicle {
	return &Vehicle{
		Arena:         arena,
		Track:         DefaultTrack,
		MaxWheelSpeed: DefaultMaxWheelSpeed,
		Accel:         DefaultAccel,
		MmPerPulse:    DefaultMmPerPulse,
		MaxRangeMm:    DefaultMaxRange,
		outputs:       make(map[hal.Output]bool),
		light:         1,
		pose: Pose2D{Pos2D: Pos2D{
			X: arena.X + arena.CX/2,
			Y: arena.Y + arena.CY/2,
		}},
	}
}

// Name implements Named.
func (v *Vehicle) Name() string {
	return "sim"
}

// SetMotorDuty implements hal.Motors.
func (v *Vehicle) SetMotorDuty(w hal.Wheel, duty float64) error {
	duty = math.Max(-1, math.Min(1, duty))
	v.lock.Lock()
	defer v.lock.Unlock()
	v.duties[w] = duty
	v.wheels[w].target = duty * v.MaxWheelSpeed
	return nil
}

// SetDigitalOutput implements hal.DigitalOutputs.
func (v *Vehicle) SetDigitalOutput(name hal.Output, on bool) error {
	v.lock.Lock()
	defer v.lock.Unlock()
	if v.outputs[name] != on {
		glog.V(2).Infof("sim: %s %v", name, on)
	}
	v.outputs[name] = on
	return nil
}

// SetSpeakerTone implements hal.Speaker.
func (v *Vehicle) SetSpeakerTone(on bool) error {
	v.lock.Lock()
	defer v.lock.Unlock()
	v.tone = on
	return nil
}

// ReadRangeMm implements hal.RangeSensor. The sensor looks straight
// ahead; the nearest wall or obstacle is reported.
func (v *Vehicle) ReadRangeMm() (uint32, bool) {
	v.lock.Lock()
	pose := v.pose
	v.lock.Unlock()
	dist := math.Inf(1)
	if _, exit, ok := v.Arena.RayHit(pose.Pos2D, pose.Orientation); ok {
		dist = exit
	}
	for _, obstacle := range v.Obstacles {
		if enter, _, ok := obstacle.RayHit(pose.Pos2D, pose.Orientation); ok && enter >= 0 && enter < dist {
			dist = enter
		}
	}
	if dist > v.MaxRangeMm {
		return 0, false
	}
	return uint32(dist), true
}

// ReadAmbientLight implements hal.LightSensor.
func (v *Vehicle) ReadAmbientLight() float64 {
	v.lock.Lock()
	defer v.lock.Unlock()
	return v.light
}

// ReadEncoderPhase implements hal.EncoderLines.
func (v *Vehicle) ReadEncoderPhase() quadrature.Phase {
	v.lock.Lock()
	defer v.lock.Unlock()
	return phaseAt(v.pulses)
}

// OnEncoderEdge implements hal.EncoderLines.
func (v *Vehicle) OnEncoderEdge(fn func(quadrature.Phase)) {
	v.lock.Lock()
	defer v.lock.Unlock()
	v.edgeFn = fn
}

// SetLight sets the ambient light.
func (v *Vehicle) SetLight(light float64) {
	v.lock.Lock()
	defer v.lock.Unlock()
	v.light = light
}

// SetPose places the vehicle.
func (v *Vehicle) SetPose(pose Pose2D) {
	v.lock.Lock()
	defer v.lock.Unlock()
	v.pose = pose
}

// Pose gets the current pose.
func (v *Vehicle) Pose() Pose2D {
	v.lock.Lock()
	defer v.lock.Unlock()
	return v.pose
}

// Output gets the state of an output.
func (v *Vehicle) Output(name hal.Output) bool {
	v.lock.Lock()
	defer v.lock.Unlock()
	return v.outputs[name]
}

// Tone indicates the speaker is on.
func (v *Vehicle) Tone() bool {
	v.lock.Lock()
	defer v.lock.Unlock()
	return v.tone
}

// Duty gets the duty of a wheel.
func (v *Vehicle) Duty(w hal.Wheel) float64 {
	v.lock.Lock()
	defer v.lock.Unlock()
	return v.duties[w]
}

// Bumps counts moves blocked by a wall or an obstacle.
func (v *Vehicle) Bumps() int {
	v.lock.Lock()
	defer v.lock.Unlock()
	return v.bumps
}

// Control implements Controller. It advances the simulation to the
// iteration time.
func (v *Vehicle) Control(cc fx.ControlContext) error {
	now := cc.Time()
	edges := v.step(now)
	if fn := v.edgeHandler(); fn != nil {
		for _, p := range edges {
			fn(p)
		}
	}
	return nil
}

func (v *Vehicle) edgeHandler() func(quadrature.Phase) {
	v.lock.Lock()
	defer v.lock.Unlock()
	return v.edgeFn
}

func (v *Vehicle) step(now time.Time) (edges []quadrature.Phase) {
	v.lock.Lock()
	defer v.lock.Unlock()
	if v.last.IsZero() || !now.After(v.last) {
		v.last = now
		return nil
	}
	dt := now.Sub(v.last).Seconds()
	v.last = now

	left := v.wheels[hal.WheelLeft].step(dt, v.Accel)
	right := v.wheels[hal.WheelRight].step(dt, v.Accel)
	pose := advance(v.pose, left, right, v.Track)
	if v.blocked(pose.Pos2D) {
		// the wheels slip, only the heading changes.
		v.bumps++
		pose.Pos2D = v.pose.Pos2D
	}
	v.pose = pose

	// the encoder is on the left wheel.
	v.travel += left
	for v.travel >= v.MmPerPulse {
		v.travel -= v.MmPerPulse
		v.pulses++
		edges = append(edges, phaseAt(v.pulses))
	}
	for v.travel <= -v.MmPerPulse {
		v.travel += v.MmPerPulse
		v.pulses--
		edges = append(edges, phaseAt(v.pulses))
	}
	return
}

func (v *Vehicle) blocked(p Pos2D) bool {
	if !v.Arena.Contains(p) {
		return true
	}
	for _, obstacle := range v.Obstacles {
		if obstacle.Contains(p) {
			return true
		}
	}
	return false
}

func phaseAt(pulses int64) quadrature.Phase {
	return forwardPhases[pulses&3]
}
