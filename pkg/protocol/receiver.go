package protocol

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/golang/glog"

	fx "github.com/robotalks/glovebot/pkg/framework"
)

// CommandHandler is called when a command is received.
type CommandHandler interface {
	HandleCommand(context.Context, Command)
}

// HandleCommandFunc is func type of CommandHandler.
type HandleCommandFunc func(context.Context, Command)

// HandleCommand implements CommandHandler.
func (f HandleCommandFunc) HandleCommand(ctx context.Context, cmd Command) {
	f(ctx, cmd)
}

// DefaultQueueSize is the capacity of the receive queue.
const DefaultQueueSize = 64

// Receiver is the command intake. Bytes are fed from the transport
// into a bounded queue and drained by Run into the Parser; decoded
// commands go to Handler.
//
// Intake can be suspended. While suspended, bytes are drained and
// discarded, not queued, and the parser state is left untouched.
type Receiver struct {
	Handler CommandHandler

	queue  chan byte
	parser Parser
	state  int32

	// gate is read-locked for each byte processed, and write-locked
	// while intake is suspended.
	gate      sync.RWMutex
	suspended atomic.Bool
	discarded atomic.Uint64
	overflow  atomic.Uint64
}

// NewReceiver creates a Receiver.
func NewReceiver(h CommandHandler) *Receiver {
	return &Receiver{
		Handler: h,
		queue:   make(chan byte, DefaultQueueSize),
	}
}

// Name implements Named.
func (r *Receiver) Name() string {
	return "intake"
}

// Feed enqueues one received byte without blocking. It returns false
// if the queue is full and the byte is lost.
func (r *Receiver) Feed(b byte) bool {
	select {
	case r.queue <- b:
		return true
	default:
		r.overflow.Add(1)
		return false
	}
}

// Pump reads from rc and feeds all bytes until rc fails or ctx is
// canceled, in which case rc is closed.
func (r *Receiver) Pump(ctx context.Context, rc io.ReadCloser) error {
	return fx.RunWithContextCloser(ctx, rc, func() error {
		buf := make([]byte, 16)
		for {
			n, err := rc.Read(buf)
			for _, b := range buf[:n] {
				if !r.Feed(b) {
					glog.V(2).Infof("intake queue full, dropped %q", b)
				}
			}
			if err != nil {
				return err
			}
		}
	})
}

// Run implements Runnable.
func (r *Receiver) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case b := <-r.queue:
			r.process(ctx, b)
		}
	}
}

func (r *Receiver) process(ctx context.Context, b byte) {
	if !r.gate.TryRLock() {
		r.discarded.Add(1)
		glog.V(2).Infof("intake suspended, discarded %q", b)
		return
	}
	defer r.gate.RUnlock()
	pr := r.parser.Parse(b)
	atomic.StoreInt32(&r.state, int32(pr.State))
	if pr.Command == nil {
		return
	}
	glog.V(2).Infof("RCV %s", pr.Command)
	if h := r.Handler; h != nil {
		h.HandleCommand(ctx, *pr.Command)
	}
}

// Suspend stops command intake. It waits for a command being
// handled to complete, so nothing written by the handler can land
// after Suspend returns.
func (r *Receiver) Suspend() {
	r.gate.Lock()
	r.suspended.Store(true)
}

// Resume restores command intake after Suspend.
func (r *Receiver) Resume() {
	r.suspended.Store(false)
	r.gate.Unlock()
}

// Suspended indicates intake is suspended.
func (r *Receiver) Suspended() bool {
	return r.suspended.Load()
}

// State gets the parser state after the last processed byte.
func (r *Receiver) State() State {
	return State(atomic.LoadInt32(&r.state))
}

// Discarded counts bytes dropped while suspended.
func (r *Receiver) Discarded() uint64 {
	return r.discarded.Load()
}

// Overflow counts bytes dropped because the queue was full.
func (r *Receiver) Overflow() uint64 {
	return r.overflow.Load()
}
