package protocol

// State is the state of Parser.
type State int

// States
const (
	StateWaiting State = iota // waiting for an action byte
	StateExpectTurnDir
	StateExpectHornArg
	StateExpectForwardSpeed
	StateExpectBackSpeed
	StateExpectLeftSpeed
	StateExpectRightSpeed
	StateExpectOffArg
)

var stateNames = [...]string{
	StateWaiting:            "Waiting",
	StateExpectTurnDir:      "ExpectTurnDir",
	StateExpectHornArg:      "ExpectHornArg",
	StateExpectForwardSpeed: "ExpectForwardSpeed",
	StateExpectBackSpeed:    "ExpectBackSpeed",
	StateExpectLeftSpeed:    "ExpectLeftSpeed",
	StateExpectRightSpeed:   "ExpectRightSpeed",
	StateExpectOffArg:       "ExpectOffArg",
}

// String implements fmt.Stringer.
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// ParseResult indicates the result after one parsing step.
type ParseResult struct {
	State   State
	Command *Command
}

// Parser parses bytes received. The zero value is ready to use.
type Parser struct {
	state State
}

// State gets the current state.
func (p *Parser) State() State {
	return p.state
}

// Reset drops any partially received command.
func (p *Parser) Reset() {
	p.state = StateWaiting
}

// Parse consumes one byte. A Command is returned once its second
// byte is consumed, whatever the value of that byte.
func (p *Parser) Parse(b byte) (pr ParseResult) {
	if p.state == StateWaiting {
		p.state = expectState(Action(b))
	} else {
		pr.Command = &Command{Action: stateAction(p.state), Arg: b}
		p.state = StateWaiting
	}
	pr.State = p.state
	return
}

func expectState(a Action) State {
	switch a {
	case ActionTurnSignal:
		return StateExpectTurnDir
	case ActionHorn:
		return StateExpectHornArg
	case ActionForward:
		return StateExpectForwardSpeed
	case ActionBack:
		return StateExpectBackSpeed
	case ActionLeft:
		return StateExpectLeftSpeed
	case ActionRight:
		return StateExpectRightSpeed
	case ActionStop:
		return StateExpectOffArg
	}
	return StateWaiting
}

func stateAction(s State) Action {
	switch s {
	case StateExpectTurnDir:
		return ActionTurnSignal
	case StateExpectHornArg:
		return ActionHorn
	case StateExpectForwardSpeed:
		return ActionForward
	case StateExpectBackSpeed:
		return ActionBack
	case StateExpectLeftSpeed:
		return ActionLeft
	case StateExpectRightSpeed:
		return ActionRight
	}
	return ActionStop
}
