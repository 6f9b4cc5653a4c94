// Package quadrature decodes a 2-phase rotary encoder into a pulse count.
package quadrature

import (
	"context"
	"sync/atomic"
)

/*
  The phase is A<<1 | B, sampled on every edge of either line.
  One full tick steps through 4 phases:

      A  ----+    +----+    +----
             |    |    |    |
             +----+    +----+

      B  -+    +----+    +----+
          |    |    |    |    |
          +----+    +----+    +

  Forward: 00 -> 10 -> 11 -> 01 -> 00, each step +1.
  Reverse: 00 -> 01 -> 11 -> 10 -> 00, each step -1.
*/

// Phase is the 2-bit state of both encoder lines, A<<1 | B.
type Phase uint8

// PhaseOf builds a Phase from both line levels.
func PhaseOf(a, b bool) Phase {
	var p Phase
	if a {
		p |= 2
	}
	if b {
		p |= 1
	}
	return p
}

// Table maps (old<<2 | new) to the count delta.
//
//	+-----------+----+----+----+----+
//	| old \ new | 00 | 01 | 10 | 11 |
//	+-----------+----+----+----+----+
//	|    00     |  0 | -1 | +1 |  0 |
//	|    01     | +1 |  0 |  0 | -1 |
//	|    10     | -1 |  0 |  0 | +1 |
//	|    11     |  0 | +1 | -1 |  0 |
//	+-----------+----+----+----+----+
//
// Both lines changing at once can't be told apart from bounce and
// counts as 0, so does a repeated phase.
var Table = [16]int8{0, -1, 1, 0, 1, 0, 0, -1, -1, 0, 0, 1, 0, 1, -1, 0}

// Delta looks up the count delta of a transition.
func Delta(old, cur Phase) int {
	return int(Table[(old&3)<<2|cur&3])
}

// DefaultQueueSize is the capacity of the edge queue.
const DefaultQueueSize = 256

// Decoder keeps a running pulse count. Update must be called from a
// single goroutine; Count and Clamp are safe from anywhere.
type Decoder struct {
	old   Phase
	count atomic.Int64
	queue chan Phase
	lost  atomic.Uint64
}

// NewDecoder creates a Decoder with the initial count and the phase
// the lines are currently at.
func NewDecoder(initial int64, phase Phase) *Decoder {
	d := &Decoder{old: phase & 3, queue: make(chan Phase, DefaultQueueSize)}
	d.count.Store(initial)
	return d
}

// Name implements Named.
func (d *Decoder) Name() string {
	return "encoder"
}

// Update consumes the phase sampled after an edge and returns the
// delta applied to the count.
func (d *Decoder) Update(p Phase) int {
	p &= 3
	delta := Delta(d.old, p)
	d.old = p
	if delta != 0 {
		d.count.Add(int64(delta))
	}
	return delta
}

// Edge enqueues a phase sample from edge notification without
// blocking. The sample is lost if the queue is full.
func (d *Decoder) Edge(p Phase) bool {
	select {
	case d.queue <- p:
		return true
	default:
		d.lost.Add(1)
		return false
	}
}

// Run implements Runnable, it drains queued edges into Update.
func (d *Decoder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case p := <-d.queue:
			d.Update(p)
		}
	}
}

// Count gets the current count.
func (d *Decoder) Count() int64 {
	return d.count.Load()
}

// Clamp limits the stored count to [lo, hi] and returns the
// clamped value. Concurrent updates are never lost: a delta landing
// between load and store is applied on top of the clamped value.
func (d *Decoder) Clamp(lo, hi int64) int64 {
	for {
		cur := d.count.Load()
		v := cur
		if v > hi {
			v = hi
		}
		if v < lo {
			v = lo
		}
		if v == cur || d.count.CompareAndSwap(cur, v) {
			return v
		}
	}
}

// Lost counts edges dropped because the queue was full.
func (d *Decoder) Lost() uint64 {
	return d.lost.Load()
}
