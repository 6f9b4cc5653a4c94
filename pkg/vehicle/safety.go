package vehicle

import (
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/glovebot/pkg/framework"
	"github.com/robotalks/glovebot/pkg/hal"
)

// SafetyPhase is the state of the safety maneuver.
type SafetyPhase int32

// Phases
const (
	SafetyIdle SafetyPhase = iota
	SafetyBraking
	SafetyReversing
)

// String implements fmt.Stringer.
func (p SafetyPhase) String() string {
	switch p {
	case SafetyIdle:
		return "Idle"
	case SafetyBraking:
		return "Braking"
	case SafetyReversing:
		return "Reversing"
	}
	return "Unknown"
}

// Gate suspends and resumes command intake.
// protocol.Receiver implements it.
type Gate interface {
	Suspend()
	Resume()
}

// Counter provides the encoder count, clamped in place.
// quadrature.Decoder implements it.
type Counter interface {
	Clamp(lo, hi int64) int64
}

// SafetyEvent reports a safety phase change.
type SafetyEvent struct {
	Time    time.Time
	Phase   SafetyPhase
	RangeMm uint32
	Count   int64
}

// CorrectRange replaces readings at or below RangeFloorMm, and
// missing readings, with RangeFarMm.
func CorrectRange(mm uint32, ok bool) uint32 {
	if !ok || mm <= RangeFloorMm {
		return RangeFarMm
	}
	return mm
}

// Violation indicates the obstacle is within the stopping distance
// given by the clamped encoder count.
func Violation(rangeMm uint32, count int64) bool {
	return int64(rangeMm) <= count
}

// SafetyMonitor is the obstacle interlock. On each tick in Idle it
// compares the corrected range against the clamped encoder count;
// on violation it suspends intake and runs a fixed
// Braking -> Reversing -> Idle maneuver, then resumes intake.
// The maneuver always runs to completion.
type SafetyMonitor struct {
	Intent  *Intent
	Motors  hal.Motors
	Range   hal.RangeSensor
	Encoder Counter
	Gate    Gate

	// OnPhase is called on every phase change from the control loop.
	OnPhase func(SafetyEvent)

	phase     atomic.Int32
	since     time.Time
	rangeMm   atomic.Uint32
	count     atomic.Int64
	maneuvers atomic.Uint64
}

// Name implements Named.
func (s *SafetyMonitor) Name() string {
	return "safety"
}

// Phase gets the current phase.
func (s *SafetyMonitor) Phase() SafetyPhase {
	return SafetyPhase(s.phase.Load())
}

// LastRange gets the corrected range of the last check.
func (s *SafetyMonitor) LastRange() uint32 {
	return s.rangeMm.Load()
}

// LastCount gets the clamped count of the last check.
func (s *SafetyMonitor) LastCount() int64 {
	return s.count.Load()
}

// Maneuvers counts triggered maneuvers.
func (s *SafetyMonitor) Maneuvers() uint64 {
	return s.maneuvers.Load()
}

// Control implements Controller.
func (s *SafetyMonitor) Control(cc fx.ControlContext) error {
	now := cc.Time()
	w := wheels{intent: s.Intent, motors: s.Motors}
	switch s.Phase() {
	case SafetyIdle:
		if !s.check() {
			return nil
		}
		glog.Infof("safety: range %dmm within %d, maneuver begin", s.LastRange(), s.LastCount())
		s.maneuvers.Add(1)
		if s.Gate != nil {
			s.Gate.Suspend()
		}
		w.drive(0, 0)
		s.Intent.Set(FlagBrake, true)
		s.enter(SafetyBraking, now)
	case SafetyBraking:
		if now.Sub(s.since) < BrakeHold {
			return nil
		}
		s.Intent.Set(FlagBrake, false)
		s.Intent.Set(FlagReverse, true)
		w.drive(ReverseDuty, ReverseDuty)
		s.enter(SafetyReversing, now)
	case SafetyReversing:
		if now.Sub(s.since) < ReverseHold {
			return nil
		}
		w.drive(0, 0)
		s.Intent.Set(FlagReverse, false)
		s.Intent.Set(FlagBrake, false)
		s.enter(SafetyIdle, now)
		if s.Gate != nil {
			s.Gate.Resume()
		}
		glog.Infof("safety: maneuver end")
	}
	return nil
}

func (s *SafetyMonitor) check() bool {
	var rangeMm uint32 = RangeFarMm
	if s.Range != nil {
		rangeMm = CorrectRange(s.Range.ReadRangeMm())
	}
	count := CountMin
	if s.Encoder != nil {
		count = s.Encoder.Clamp(CountMin, CountMax)
	}
	s.rangeMm.Store(rangeMm)
	s.count.Store(count)
	return Violation(rangeMm, count)
}

func (s *SafetyMonitor) enter(phase SafetyPhase, now time.Time) {
	glog.V(2).Infof("safety: %s -> %s", s.Phase(), phase)
	s.phase.Store(int32(phase))
	s.since = now
	if fn := s.OnPhase; fn != nil {
		fn(SafetyEvent{
			Time:    now,
			Phase:   phase,
			RangeMm: s.LastRange(),
			Count:   s.LastCount(),
		})
	}
}
