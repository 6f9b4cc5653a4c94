package protocol

import (
	"io"
)

// Action is the first byte of a command.
type Action byte

// Actions
const (
	ActionForward    Action = 'F'
	ActionBack       Action = 'B'
	ActionLeft       Action = 'L'
	ActionRight      Action = 'R'
	ActionStop       Action = '0'
	ActionTurnSignal Action = 'T'
	ActionHorn       Action = 'H'
)

// Speed tiers used as the argument of movement actions.
const (
	SpeedNone byte = '0'
	Speed1    byte = '1'
	Speed2    byte = '2'
	Speed3    byte = '3'
)

// Arguments of non-movement actions.
const (
	TurnLeft  byte = 'L'
	TurnRight byte = 'R'
	HornArg   byte = '1'
	StopArg   byte = '0'
)

// CommandSize is the fixed size of a command on the wire.
const CommandSize = 2

// BaudRate is the rate of the serial radio link.
const BaudRate = 9600

// IsMove indicates the action drives the wheels.
func (a Action) IsMove() bool {
	switch a {
	case ActionForward, ActionBack, ActionLeft, ActionRight:
		return true
	}
	return false
}

// Command is a decoded 2-byte command.
type Command struct {
	Action Action
	Arg    byte
}

// Stop is the stop command.
var Stop = Command{Action: ActionStop, Arg: StopArg}

// Move creates a movement command.
func Move(a Action, speed byte) Command {
	return Command{Action: a, Arg: speed}
}

// TurnSignal creates a turn signal command, dir is TurnLeft or TurnRight.
func TurnSignal(dir byte) Command {
	return Command{Action: ActionTurnSignal, Arg: dir}
}

// Horn creates a horn command.
func Horn() Command {
	return Command{Action: ActionHorn, Arg: HornArg}
}

// Tier returns the speed tier 1..3 of a movement command,
// or 0 if the argument is not a valid tier.
func (c Command) Tier() int {
	if c.Arg >= Speed1 && c.Arg <= Speed3 {
		return int(c.Arg - SpeedNone)
	}
	return 0
}

// Bytes returns encoded bytes for sending.
func (c Command) Bytes() []byte {
	return []byte{byte(c.Action), c.Arg}
}

// String implements fmt.Stringer.
func (c Command) String() string {
	return string(c.Bytes())
}

// WriteTo writes encoded bytes in a single Write.
func (c Command) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c.Bytes())
	if err == nil && n < CommandSize {
		err = io.ErrShortWrite
	}
	return int64(n), err
}
