package vehicle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/glovebot/pkg/hal"
	"github.com/robotalks/glovebot/pkg/protocol"
)

func TestMotionApply(t *testing.T) {
	testCases := []struct {
		cmd         string
		left, right float64
		brake       bool
		reverse     bool
	}{
		{"F1", 0.33, 0.33, false, false},
		{"F2", 0.66, 0.66, false, false},
		{"F3", 1, 1, false, false},
		{"B1", -0.33, -0.33, false, true},
		{"B3", -1, -1, false, true},
		{"L1", -0.33, 0.33, false, false},
		{"L3", -1, 1, false, false},
		{"R2", 0.66, -0.66, false, false},
		{"00", 0, 0, true, false},
	}
	for _, tc := range testCases {
		t.Run(tc.cmd, func(t *testing.T) {
			hw := newFakeHardware()
			m := NewMotionController(NewIntent(), hw)
			m.Apply(protocol.Command{Action: protocol.Action(tc.cmd[0]), Arg: tc.cmd[1]})
			s := m.Intent.Snapshot()
			require.Equal(t, tc.left, s.Left)
			require.Equal(t, tc.right, s.Right)
			require.Equal(t, tc.brake, s.Brake)
			require.Equal(t, tc.reverse, s.Reverse)
			require.Equal(t, tc.left, hw.duty(hal.WheelLeft))
			require.Equal(t, tc.right, hw.duty(hal.WheelRight))
		})
	}
}

func TestMotionInvalidTierKeepsWheels(t *testing.T) {
	hw := newFakeHardware()
	m := NewMotionController(NewIntent(), hw)
	m.Apply(protocol.Move(protocol.ActionForward, protocol.Speed2))
	m.Apply(protocol.Stop)
	require.True(t, m.Intent.Get(FlagBrake))

	m.Apply(protocol.Move(protocol.ActionBack, '9'))
	s := m.Intent.Snapshot()
	require.Equal(t, 0.0, s.Left)
	require.Equal(t, 0.0, s.Right)
	require.False(t, s.Brake)
	require.True(t, s.Reverse)

	m.Apply(protocol.Move(protocol.ActionForward, protocol.Speed1))
	m.Apply(protocol.Move(protocol.ActionLeft, 'x'))
	require.Equal(t, 0.33, hw.duty(hal.WheelLeft))
	require.Equal(t, 0.33, hw.duty(hal.WheelRight))
}

func TestMotionStopIdempotent(t *testing.T) {
	hw := newFakeHardware()
	m := NewMotionController(NewIntent(), hw)
	m.Apply(protocol.Move(protocol.ActionBack, protocol.Speed2))
	m.Apply(protocol.Stop)
	first := m.Intent.Snapshot()
	for i := 0; i < 5; i++ {
		m.Apply(protocol.Stop)
		require.Equal(t, first, m.Intent.Snapshot())
	}
	require.Equal(t, 0.0, hw.duty(hal.WheelLeft))
	require.Equal(t, 0.0, hw.duty(hal.WheelRight))
}

func TestMotionOnlyStopClearsReverse(t *testing.T) {
	testCases := []struct {
		name string
		next protocol.Command
		left float64
	}{
		{"forward", protocol.Move(protocol.ActionForward, protocol.Speed1), 0.33},
		{"left", protocol.Move(protocol.ActionLeft, protocol.Speed1), -0.33},
		{"right", protocol.Move(protocol.ActionRight, protocol.Speed1), 0.33},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hw := newFakeHardware()
			m := NewMotionController(NewIntent(), hw)
			m.Apply(protocol.Move(protocol.ActionBack, protocol.Speed1))
			m.Apply(tc.next)
			s := m.Intent.Snapshot()
			require.True(t, s.Reverse)
			require.False(t, s.Brake)
			require.Equal(t, tc.left, s.Left)

			m.Apply(protocol.Stop)
			s = m.Intent.Snapshot()
			require.False(t, s.Reverse)
			require.True(t, s.Brake)
		})
	}
}

func TestMotionIgnoresSignals(t *testing.T) {
	m := NewMotionController(NewIntent(), nil)
	before := m.Intent.Snapshot()
	m.Apply(protocol.Horn())
	m.Apply(protocol.TurnSignal(protocol.TurnLeft))
	require.Equal(t, before, m.Intent.Snapshot())
}

func TestTierDuty(t *testing.T) {
	require.Equal(t, 0.0, TierDuty(0))
	require.Equal(t, 0.33, TierDuty(1))
	require.Equal(t, 0.66, TierDuty(2))
	require.Equal(t, 1.0, TierDuty(3))
	require.Equal(t, 0.0, TierDuty(4))
	require.Equal(t, 0.0, TierDuty(-1))
}

func TestIntent(t *testing.T) {
	i := NewIntent()
	s := i.Snapshot()
	require.True(t, s.Brake)
	require.False(t, s.Reverse)
	require.False(t, s.TurnLeft)

	require.True(t, i.Raise(FlagHorn))
	require.False(t, i.Raise(FlagHorn))
	i.Set(FlagHorn, false)
	require.True(t, i.Raise(FlagHorn))

	i.SetDuty(hal.WheelRight, -0.5)
	require.Equal(t, -0.5, i.Duty(hal.WheelRight))
	require.Equal(t, "headlights", FlagHeadlights.String())
}
