package framework

import (
	"context"
	"time"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// Controller defines the abstract controlling logic
// executed once per loop iteration.
type Controller interface {
	Control(ControlContext) error
}

// ControlFunc defines the func form of Controller.
type ControlFunc func(ControlContext) error

// Control implements Controller.
func (f ControlFunc) Control(cc ControlContext) error {
	return f(cc)
}

// TimeSource provides the time for controlling logic.
type TimeSource interface {
	Time() time.Time
}

// ControlContext provides the context of current control
// iteration.
type ControlContext interface {
	TimeSource
	// Context retrieves context.Context.
	Context() context.Context
}

// NowContext is a ControlContext pinned to a given time.
// It's used when a controller is driven outside a Loop,
// e.g. in tests.
type NowContext struct {
	Now time.Time
	Ctx context.Context
}

// At creates a NowContext.
func At(ctx context.Context, now time.Time) *NowContext {
	return &NowContext{Now: now, Ctx: ctx}
}

// Time implements TimeSource.
func (c *NowContext) Time() time.Time {
	return c.Now
}

// Context implements ControlContext.
func (c *NowContext) Context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// Advance moves the pinned time forward.
func (c *NowContext) Advance(d time.Duration) *NowContext {
	c.Now = c.Now.Add(d)
	return c
}
