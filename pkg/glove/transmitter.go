package glove

import (
	"sync"

	"github.com/robotalks/glovebot/pkg/protocol"
)

// CommandSender sends commands on the link.
// protocol.Sender implements it.
type CommandSender interface {
	Send(cmds ...protocol.Command) error
}

// Transmitter sends movement commands when they change. Moving from
// one direction straight to another is split by a stop command.
// It's safe for concurrent use.
type Transmitter struct {
	Sender CommandSender

	lock    sync.Mutex
	last    protocol.Command
	hasLast bool
}

// NewTransmitter creates a Transmitter.
func NewTransmitter(s CommandSender) *Transmitter {
	return &Transmitter{Sender: s}
}

// Last returns the last command transmitted.
func (t *Transmitter) Last() (protocol.Command, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.last, t.hasLast
}

// Move transmits cmd unless it's the same as the last one.
// The link is unacknowledged, a failed send is not retried.
func (t *Transmitter) Move(cmd protocol.Command) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.hasLast && cmd == t.last {
		return nil
	}
	cmds := make([]protocol.Command, 0, 2)
	if t.hasLast && t.last.Action != protocol.ActionStop &&
		cmd.Action != protocol.ActionStop && cmd.Action != t.last.Action {
		cmds = append(cmds, protocol.Stop)
	}
	cmds = append(cmds, cmd)
	t.last, t.hasLast = cmd, true
	return t.Sender.Send(cmds...)
}
