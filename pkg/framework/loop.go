package framework

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/glog"
)

// DefaultInterval is used when Loop.Interval is not set.
const DefaultInterval = 100 * time.Millisecond

// Loop runs controllers on a fixed period. Each iteration
// executes every controller once, in the order added,
// with the same iteration time.
type Loop struct {
	Interval time.Duration
	Clock    clock.Clock

	name        string
	controllers []Controller
	runners     []Runnable
	wakeUpCh    chan struct{}
}

type loopIteration struct {
	ctx  context.Context
	time time.Time
}

// NewLoop creates a Loop.
func NewLoop(name string, interval time.Duration) *Loop {
	return &Loop{
		Interval: interval,
		name:     name,
		wakeUpCh: make(chan struct{}, 1),
	}
}

// WithClock replaces the clock, mostly for tests.
func (l *Loop) WithClock(c clock.Clock) *Loop {
	l.Clock = c
	return l
}

// Name implements Named.
func (l *Loop) Name() string {
	return l.name
}

// AddController registers controllers to the loop.
func (l *Loop) AddController(ctls ...Controller) *Loop {
	l.controllers = append(l.controllers, ctls...)
	for _, ctl := range ctls {
		if runner, ok := ctl.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddRunnable adds Runnable implementions which are started
// together with the loop.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// TriggerNext runs the next iteration immediately instead of
// waiting for the tick, e.g. to publish a state change early.
func (l *Loop) TriggerNext() {
	select {
	case l.wakeUpCh <- struct{}{}:
	default:
	}
}

// Run implements Runnable.
func (l *Loop) Run(ctx context.Context) error {
	if l.wakeUpCh == nil {
		l.wakeUpCh = make(chan struct{}, 1)
	}
	clk := l.Clock
	if clk == nil {
		clk = clock.New()
	}

	var runner *Runner
	if len(l.runners) > 0 {
		runner = NewRunnerWith(ctx).Go(l.runners...)
	}

	interval := l.Interval
	if interval == 0 {
		interval = DefaultInterval
	}
	ticker := clk.Ticker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if runner != nil {
				runner.Wait()
			}
			return ctx.Err()
		case <-ticker.C:
			l.runIteration(ctx, clk.Now())
		case <-l.wakeUpCh:
			l.runIteration(ctx, clk.Now())
		}
	}
}

func (l *Loop) runIteration(ctx context.Context, now time.Time) {
	iter := &loopIteration{ctx: ctx, time: now}
	for _, ctl := range l.controllers {
		if err := ctl.Control(iter); err != nil {
			glog.Errorf("%s: controller error: %v", l.name, err)
		}
	}
}

func (t *loopIteration) Context() context.Context {
	return t.ctx
}

func (t *loopIteration) Time() time.Time {
	return t.time
}
