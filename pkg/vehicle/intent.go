package vehicle

import (
	"math"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/robotalks/glovebot/pkg/hal"
)

// Flag is a boolean intent.
type Flag int

// Flags
const (
	FlagTurnLeft Flag = iota
	FlagTurnRight
	FlagHorn
	FlagBrake
	FlagReverse
	FlagHeadlights
	numFlags
)

var flagNames = [...]string{
	FlagTurnLeft:   "turn-left",
	FlagTurnRight:  "turn-right",
	FlagHorn:       "horn",
	FlagBrake:      "brake",
	FlagReverse:    "reverse",
	FlagHeadlights: "headlights",
}

// String implements fmt.Stringer.
func (f Flag) String() string {
	if f >= 0 && f < numFlags {
		return flagNames[f]
	}
	return "unknown"
}

// Intent is the shared vehicle state. Every flag and duty is its own
// atomic slot: producers write single slots, consumers read a slot
// or a Snapshot once per tick.
type Intent struct {
	flags  [numFlags]atomic.Bool
	duties [hal.NumWheels]atomic.Uint64
}

// NewIntent creates the initial Intent: stopped with brakelights on.
func NewIntent() *Intent {
	i := &Intent{}
	i.Set(FlagBrake, true)
	return i
}

// Set writes a flag.
func (i *Intent) Set(f Flag, on bool) {
	i.flags[f].Store(on)
}

// Get reads a flag.
func (i *Intent) Get(f Flag) bool {
	return i.flags[f].Load()
}

// Raise sets a flag which is not set. It returns false if the flag
// was already set.
func (i *Intent) Raise(f Flag) bool {
	return i.flags[f].CompareAndSwap(false, true)
}

// SetDuty records the duty of a wheel.
func (i *Intent) SetDuty(w hal.Wheel, duty float64) {
	i.duties[w].Store(math.Float64bits(duty))
}

// Duty reads the duty of a wheel.
func (i *Intent) Duty(w hal.Wheel) float64 {
	return math.Float64frombits(i.duties[w].Load())
}

// Snapshot is a copy of Intent.
type Snapshot struct {
	Left, Right float64

	TurnLeft   bool
	TurnRight  bool
	Horn       bool
	Brake      bool
	Reverse    bool
	Headlights bool
}

// Snapshot reads all slots. Slots are read one by one, a concurrent
// writer may land between two reads.
func (i *Intent) Snapshot() Snapshot {
	return Snapshot{
		Left:       i.Duty(hal.WheelLeft),
		Right:      i.Duty(hal.WheelRight),
		TurnLeft:   i.Get(FlagTurnLeft),
		TurnRight:  i.Get(FlagTurnRight),
		Horn:       i.Get(FlagHorn),
		Brake:      i.Get(FlagBrake),
		Reverse:    i.Get(FlagReverse),
		Headlights: i.Get(FlagHeadlights),
	}
}

// wheels writes duties to both the Intent and the motors.
type wheels struct {
	intent *Intent
	motors hal.Motors
}

func (w wheels) drive(left, right float64) {
	w.set(hal.WheelLeft, left)
	w.set(hal.WheelRight, right)
}

func (w wheels) set(wheel hal.Wheel, duty float64) {
	w.intent.SetDuty(wheel, duty)
	if w.motors == nil {
		return
	}
	if err := w.motors.SetMotorDuty(wheel, duty); err != nil {
		glog.Warningf("set %s motor duty %.2f error: %v", wheel, duty, err)
	}
}

func setOutput(outs hal.DigitalOutputs, name hal.Output, on bool) {
	if outs == nil {
		return
	}
	if err := outs.SetDigitalOutput(name, on); err != nil {
		glog.Warningf("set output %s=%v error: %v", name, on, err)
	}
}
