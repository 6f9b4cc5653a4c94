package protocol

import (
	"io"
	"sync"

	"github.com/golang/glog"
)

// Sender writes commands to the link. It's safe for concurrent use;
// the 2 bytes of a command are never interleaved with another one.
type Sender struct {
	w    io.Writer
	lock sync.Mutex
}

// NewSender creates a Sender.
func NewSender(w io.Writer) *Sender {
	return &Sender{w: w}
}

// Send writes commands in order. It stops at the first error.
func (s *Sender) Send(cmds ...Command) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	for _, cmd := range cmds {
		if _, err := cmd.WriteTo(s.w); err != nil {
			return err
		}
		glog.V(2).Infof("SND %s", cmd)
	}
	return nil
}
