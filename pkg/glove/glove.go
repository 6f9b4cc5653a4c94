package glove

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/glog"

	fx "github.com/robotalks/glovebot/pkg/framework"
	"github.com/robotalks/glovebot/pkg/hal"
	"github.com/robotalks/glovebot/pkg/protocol"
)

// Periods
const (
	SampleInterval   = 50 * time.Millisecond
	TransmitInterval = 10 * time.Millisecond
)

// ErrSensorInit indicates the glove sensors failed to start.
// It is fatal, there is no retry.
var ErrSensorInit = errors.New("sensor init failed")

// alerts sent once per button release, in this order.
var alerts = [...]struct {
	button hal.Button
	cmd    protocol.Command
}{
	{hal.ButtonNavLeft, protocol.TurnSignal(protocol.TurnLeft)},
	{hal.ButtonNavRight, protocol.TurnSignal(protocol.TurnRight)},
	{hal.ButtonNavFire, protocol.Horn()},
}

// Glove runs two activities: the sampler encodes the sensors into
// the current movement command, the transmitter sends it when it
// changes, plus pending button alerts.
type Glove struct {
	Hardware    hal.Glove
	Transmitter *Transmitter

	SampleLoop   *fx.Loop
	TransmitLoop *fx.Loop

	current atomic.Value
	pending [len(alerts)]atomic.Bool
}

// New creates a Glove.
func New(hw hal.Glove, sender CommandSender) *Glove {
	g := &Glove{Hardware: hw, Transmitter: NewTransmitter(sender)}
	g.SampleLoop = fx.NewLoop("sample", SampleInterval).
		AddController(fx.ControlFunc(g.Sample))
	g.TransmitLoop = fx.NewLoop("transmit", TransmitInterval).
		AddController(fx.ControlFunc(g.Transmit))
	return g
}

// WithClock sets the clock of both loops.
func (g *Glove) WithClock(c clock.Clock) *Glove {
	g.SampleLoop.WithClock(c)
	g.TransmitLoop.WithClock(c)
	return g
}

// Name implements Named.
func (g *Glove) Name() string {
	return "glove"
}

// Start starts the sensors and hooks the buttons.
func (g *Glove) Start() error {
	if err := g.Hardware.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrSensorInit, err)
	}
	g.Hardware.OnButtonRelease(g.Press)
	return nil
}

// Press latches the alert of a button until it's transmitted.
func (g *Glove) Press(b hal.Button) {
	for n := range alerts {
		if alerts[n].button == b {
			g.pending[n].Store(true)
		}
	}
}

// Current gets the last sampled movement command.
func (g *Glove) Current() (protocol.Command, bool) {
	cmd, ok := g.current.Load().(protocol.Command)
	return cmd, ok
}

// Sample reads the sensors and updates the current command.
func (g *Glove) Sample(cc fx.ControlContext) error {
	hw := g.Hardware
	cmd := Encode(hw.ReadDirectionAxisX(), hw.ReadDirectionAxisY(), SpeedTier(hw.ReadGripPressure()))
	g.current.Store(cmd)
	return nil
}

// Transmit sends the current command if changed, then the pending
// alerts.
func (g *Glove) Transmit(cc fx.ControlContext) error {
	var errs fx.AggregatedError
	if cmd, ok := g.Current(); ok {
		errs.Add(g.Transmitter.Move(cmd))
	}
	for n := range alerts {
		if g.pending[n].CompareAndSwap(true, false) {
			errs.Add(g.Transmitter.Sender.Send(alerts[n].cmd))
		}
	}
	return errs.Aggregate()
}

// Run implements Runnable. ErrSensorInit is returned if the sensors
// can't start.
func (g *Glove) Run(ctx context.Context) error {
	if err := g.Start(); err != nil {
		return err
	}
	glog.Info("glove started")
	return fx.NewRunnerWith(ctx).Go(g.SampleLoop, g.TransmitLoop).Wait()
}
