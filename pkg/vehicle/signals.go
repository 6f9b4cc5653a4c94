package vehicle

import (
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/glovebot/pkg/framework"
	"github.com/robotalks/glovebot/pkg/hal"
)

// TurnSignal is a one-shot blinker. Once its flag is raised it
// blinks the output TurnSignalToggles half periods, then turns the
// output off and clears the flag. Raising the flag while blinking
// has no effect.
type TurnSignal struct {
	Intent  *Intent
	Flag    Flag
	Output  hal.Output
	Outputs hal.DigitalOutputs

	active bool
	start  time.Time
	lit    bool
}

// NewTurnSignal creates a TurnSignal for FlagTurnLeft or FlagTurnRight.
func NewTurnSignal(intent *Intent, flag Flag, outs hal.DigitalOutputs) *TurnSignal {
	s := &TurnSignal{Intent: intent, Flag: flag, Outputs: outs, Output: hal.OutputTurnLeft}
	if flag == FlagTurnRight {
		s.Output = hal.OutputTurnRight
	}
	return s
}

// Name implements Named.
func (s *TurnSignal) Name() string {
	return string(s.Output)
}

// Active indicates a blink sequence is running.
func (s *TurnSignal) Active() bool {
	return s.active
}

// Control implements Controller.
func (s *TurnSignal) Control(cc fx.ControlContext) error {
	now := cc.Time()
	if !s.active {
		if !s.Intent.Get(s.Flag) {
			return nil
		}
		glog.V(2).Infof("%s: blink", s.Output)
		s.active, s.start = true, now
		s.light(true)
		return nil
	}
	elapsed := now.Sub(s.start)
	if elapsed >= TurnSignalToggles*TurnSignalHalfPeriod {
		s.light(false)
		s.Intent.Set(s.Flag, false)
		s.active = false
		return nil
	}
	toggles := int(elapsed/TurnSignalHalfPeriod) + 1
	s.light(toggles%2 == 1)
	return nil
}

func (s *TurnSignal) light(on bool) {
	if s.lit == on {
		return
	}
	s.lit = on
	setOutput(s.Outputs, s.Output, on)
}

// Horn is a one-shot tone of HornPulse once FlagHorn is raised.
type Horn struct {
	Intent  *Intent
	Speaker hal.Speaker

	active bool
	start  time.Time
}

// Name implements Named.
func (h *Horn) Name() string {
	return "horn"
}

// Control implements Controller.
func (h *Horn) Control(cc fx.ControlContext) error {
	now := cc.Time()
	if !h.active {
		if !h.Intent.Get(FlagHorn) {
			return nil
		}
		h.active, h.start = true, now
		h.tone(true)
		return nil
	}
	if now.Sub(h.start) >= HornPulse {
		h.tone(false)
		h.Intent.Set(FlagHorn, false)
		h.active = false
	}
	return nil
}

func (h *Horn) tone(on bool) {
	if h.Speaker == nil {
		return
	}
	if err := h.Speaker.SetSpeakerTone(on); err != nil {
		glog.Warningf("set speaker tone %v error: %v", on, err)
	}
}

// MovementLights mirrors the brake and reverse flags to their outputs
// on every tick. It is the only writer of those outputs.
type MovementLights struct {
	Intent  *Intent
	Outputs hal.DigitalOutputs
}

// Name implements Named.
func (l *MovementLights) Name() string {
	return "movement-lights"
}

// Control implements Controller.
func (l *MovementLights) Control(cc fx.ControlContext) error {
	setOutput(l.Outputs, hal.OutputBrake, l.Intent.Get(FlagBrake))
	setOutput(l.Outputs, hal.OutputReverse, l.Intent.Get(FlagReverse))
	return nil
}

// Headlights turns the headlights on in low ambient light.
type Headlights struct {
	Intent  *Intent
	Sensor  hal.LightSensor
	Outputs hal.DigitalOutputs
}

// Name implements Named.
func (l *Headlights) Name() string {
	return "headlights"
}

// Control implements Controller.
func (l *Headlights) Control(cc fx.ControlContext) error {
	if l.Sensor == nil {
		return nil
	}
	on := l.Sensor.ReadAmbientLight() < HeadlightsThreshold
	l.Intent.Set(FlagHeadlights, on)
	setOutput(l.Outputs, hal.OutputHeadlights, on)
	return nil
}
