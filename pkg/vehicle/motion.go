package vehicle

import (
	"github.com/robotalks/glovebot/pkg/hal"
	"github.com/robotalks/glovebot/pkg/protocol"
)

// MotionController maps movement commands to wheel duties and
// brake/reverse intent.
type MotionController struct {
	Intent *Intent
	Motors hal.Motors
}

// NewMotionController creates a MotionController.
func NewMotionController(intent *Intent, motors hal.Motors) *MotionController {
	return &MotionController{Intent: intent, Motors: motors}
}

// Apply executes a movement or stop command. A movement with an
// invalid speed tier leaves the wheels alone but still updates the
// lights. Only stop clears the reverse lights, a glove always sends
// stop between two directions. Other actions are ignored.
func (m *MotionController) Apply(cmd protocol.Command) {
	w := wheels{intent: m.Intent, motors: m.Motors}
	duty := TierDuty(cmd.Tier())
	switch cmd.Action {
	case protocol.ActionForward:
		m.Intent.Set(FlagBrake, false)
		if duty != 0 {
			w.drive(duty, duty)
		}
	case protocol.ActionBack:
		m.Intent.Set(FlagReverse, true)
		m.Intent.Set(FlagBrake, false)
		if duty != 0 {
			w.drive(-duty, -duty)
		}
	case protocol.ActionLeft:
		m.Intent.Set(FlagBrake, false)
		if duty != 0 {
			w.drive(-duty, duty)
		}
	case protocol.ActionRight:
		m.Intent.Set(FlagBrake, false)
		if duty != 0 {
			w.drive(duty, -duty)
		}
	case protocol.ActionStop:
		m.Intent.Set(FlagReverse, false)
		m.Intent.Set(FlagBrake, true)
		w.drive(0, 0)
	}
}
