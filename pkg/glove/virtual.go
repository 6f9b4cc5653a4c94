package glove

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/robotalks/glovebot/pkg/hal"
)

// Accelerometer reads the raw lateral and longitudinal acceleration.
type Accelerometer interface {
	ReadAccel() (ax, ay int)
}

// ThresholdAxes adapts an Accelerometer to hal.DirectionAxes.
type ThresholdAxes struct {
	Accel    Accelerometer
	Deadband int
}

// ReadDirectionAxisX implements hal.DirectionAxes.
func (a *ThresholdAxes) ReadDirectionAxisX() int {
	ax, _ := a.Accel.ReadAccel()
	return Threshold(ax, a.deadband())
}

// ReadDirectionAxisY implements hal.DirectionAxes.
func (a *ThresholdAxes) ReadDirectionAxisY() int {
	_, ay := a.Accel.ReadAccel()
	return Threshold(ay, a.deadband())
}

func (a *ThresholdAxes) deadband() int {
	if a.Deadband > 0 {
		return a.Deadband
	}
	return DefaultDeadband
}

// Virtual is a glove without sensors, driven by setters, e.g. from
// a shell.
type Virtual struct {
	// StartErr is returned by Start.
	StartErr error

	ax, ay atomic.Int64
	grip   atomic.Uint64
	axes   ThresholdAxes

	lock     sync.Mutex
	onButton func(hal.Button)
}

// NewVirtual creates a Virtual glove, level and relaxed.
func NewVirtual() *Virtual {
	v := &Virtual{}
	v.axes.Accel = v
	v.SetGrip(1)
	return v
}

// Start implements hal.Glove.
func (v *Virtual) Start() error {
	return v.StartErr
}

// SetAccel sets the raw acceleration.
func (v *Virtual) SetAccel(ax, ay int) {
	v.ax.Store(int64(ax))
	v.ay.Store(int64(ay))
}

// Tilt sets the acceleration just past the deadband for
// directions in {-1, 0, +1}.
func (v *Virtual) Tilt(x, y int) {
	v.SetAccel(x*(DefaultDeadband+1), y*(DefaultDeadband+1))
}

// SetGrip sets the normalized grip reading.
func (v *Virtual) SetGrip(grip float64) {
	v.grip.Store(math.Float64bits(grip))
}

// Release simulates a button release.
func (v *Virtual) Release(b hal.Button) {
	v.lock.Lock()
	fn := v.onButton
	v.lock.Unlock()
	if fn != nil {
		fn(b)
	}
}

// ReadAccel implements Accelerometer.
func (v *Virtual) ReadAccel() (int, int) {
	return int(v.ax.Load()), int(v.ay.Load())
}

// ReadDirectionAxisX implements hal.DirectionAxes.
func (v *Virtual) ReadDirectionAxisX() int {
	return v.axes.ReadDirectionAxisX()
}

// ReadDirectionAxisY implements hal.DirectionAxes.
func (v *Virtual) ReadDirectionAxisY() int {
	return v.axes.ReadDirectionAxisY()
}

// ReadGripPressure implements hal.GripSensor.
func (v *Virtual) ReadGripPressure() float64 {
	return math.Float64frombits(v.grip.Load())
}

// OnButtonRelease implements hal.Buttons.
func (v *Virtual) OnButtonRelease(fn func(hal.Button)) {
	v.lock.Lock()
	defer v.lock.Unlock()
	v.onButton = fn
}
