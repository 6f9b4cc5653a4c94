// Package vehicle implements the vehicle controller: command intake,
// motion, the obstacle interlock and the signal lights.
package vehicle

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/golang/glog"

	fx "github.com/robotalks/glovebot/pkg/framework"
	"github.com/robotalks/glovebot/pkg/hal"
	"github.com/robotalks/glovebot/pkg/protocol"
	"github.com/robotalks/glovebot/pkg/quadrature"
)

// Vehicle wires all activities of the vehicle controller to the
// hardware:
//
//	intake    received bytes -> Parser -> HandleCommand
//	encoder   encoder edges -> Decoder
//	safety    SafetyMonitor every SafetyInterval
//	turn-left, turn-right, horn, movement-lights
//	          every SignalInterval
//	headlights
//	          every HeadlightsInterval
type Vehicle struct {
	Hardware hal.Vehicle
	Intent   *Intent
	Intake   *protocol.Receiver
	Encoder  *quadrature.Decoder
	Motion   *MotionController
	Safety   *SafetyMonitor

	SafetyLoop *fx.Loop
	Loops      []*fx.Loop
}

// New creates a Vehicle on the hardware.
func New(hw hal.Vehicle) *Vehicle {
	v := &Vehicle{
		Hardware: hw,
		Intent:   NewIntent(),
		Encoder:  quadrature.NewDecoder(CountInitial, hw.ReadEncoderPhase()),
	}
	v.Intake = protocol.NewReceiver(v)
	v.Motion = NewMotionController(v.Intent, hw)
	v.Safety = &SafetyMonitor{
		Intent:  v.Intent,
		Motors:  hw,
		Range:   hw,
		Encoder: v.Encoder,
		Gate:    v.Intake,
	}
	v.SafetyLoop = fx.NewLoop("safety", SafetyInterval).AddController(v.Safety)
	v.Loops = []*fx.Loop{
		v.SafetyLoop,
		fx.NewLoop("turn-left", SignalInterval).
			AddController(NewTurnSignal(v.Intent, FlagTurnLeft, hw)),
		fx.NewLoop("turn-right", SignalInterval).
			AddController(NewTurnSignal(v.Intent, FlagTurnRight, hw)),
		fx.NewLoop("horn", SignalInterval).
			AddController(&Horn{Intent: v.Intent, Speaker: hw}),
		fx.NewLoop("movement-lights", SignalInterval).
			AddController(&MovementLights{Intent: v.Intent, Outputs: hw}),
		fx.NewLoop("headlights", HeadlightsInterval).
			AddController(&Headlights{Intent: v.Intent, Sensor: hw, Outputs: hw}),
	}
	return v
}

// WithClock sets the clock of all loops.
func (v *Vehicle) WithClock(c clock.Clock) *Vehicle {
	for _, l := range v.Loops {
		l.WithClock(c)
	}
	return v
}

// AddLoop adds an extra loop started with the vehicle.
func (v *Vehicle) AddLoop(l *fx.Loop) *Vehicle {
	v.Loops = append(v.Loops, l)
	return v
}

// Name implements Named.
func (v *Vehicle) Name() string {
	return "vehicle"
}

// HandleCommand implements protocol.CommandHandler.
func (v *Vehicle) HandleCommand(ctx context.Context, cmd protocol.Command) {
	switch cmd.Action {
	case protocol.ActionTurnSignal:
		switch cmd.Arg {
		case protocol.TurnLeft:
			v.Intent.Raise(FlagTurnLeft)
		case protocol.TurnRight:
			v.Intent.Raise(FlagTurnRight)
		}
	case protocol.ActionHorn:
		v.Intent.Raise(FlagHorn)
	default:
		v.Motion.Apply(cmd)
	}
}

// Init puts the hardware in the initial state: motors stopped,
// brakelights on, all other outputs off.
func (v *Vehicle) Init() error {
	var errs fx.AggregatedError
	for w := hal.WheelLeft; w < hal.NumWheels; w++ {
		v.Intent.SetDuty(w, 0)
		errs.Add(v.Hardware.SetMotorDuty(w, 0))
	}
	for _, out := range hal.Outputs {
		errs.Add(v.Hardware.SetDigitalOutput(out, out == hal.OutputBrake))
	}
	errs.Add(v.Hardware.SetSpeakerTone(false))
	return errs.Aggregate()
}

// Run implements Runnable. It initializes the hardware and runs all
// activities until ctx is canceled.
func (v *Vehicle) Run(ctx context.Context) error {
	if err := v.Init(); err != nil {
		glog.Warningf("vehicle init: %v", err)
	}
	v.Hardware.OnEncoderEdge(func(p quadrature.Phase) {
		v.Encoder.Edge(p)
	})
	runner := fx.NewRunnerWith(ctx).Go(v.Intake, v.Encoder)
	for _, l := range v.Loops {
		runner.Go(l)
	}
	glog.Infof("vehicle started, %d loops", len(v.Loops))
	return runner.Wait()
}
