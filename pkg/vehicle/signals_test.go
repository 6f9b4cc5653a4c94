package vehicle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/glovebot/pkg/framework"
	"github.com/robotalks/glovebot/pkg/hal"
)

func TestTurnSignalBlinks(t *testing.T) {
	testCases := []struct {
		flag   Flag
		output hal.Output
	}{
		{FlagTurnLeft, hal.OutputTurnLeft},
		{FlagTurnRight, hal.OutputTurnRight},
	}
	for _, tc := range testCases {
		t.Run(string(tc.output), func(t *testing.T) {
			hw := newFakeHardware()
			intent := NewIntent()
			s := NewTurnSignal(intent, tc.flag, hw)
			cc := fx.At(context.TODO(), time.Unix(0, 0))

			require.NoError(t, s.Control(cc))
			require.False(t, s.Active())
			require.Empty(t, hw.writesOf(tc.output))

			require.True(t, intent.Raise(tc.flag))
			var lit []bool
			for elapsed := time.Duration(0); elapsed < TurnSignalToggles*TurnSignalHalfPeriod; elapsed += SignalInterval {
				require.NoError(t, s.Control(cc))
				require.True(t, s.Active())
				lit = append(lit, hw.output(tc.output))
				cc.Advance(SignalInterval)
			}
			require.True(t, intent.Get(tc.flag))
			require.NoError(t, s.Control(cc))
			require.False(t, s.Active())
			require.False(t, intent.Get(tc.flag))
			require.False(t, hw.output(tc.output))

			require.Equal(t, []bool{true, false, true, false, true, false}, hw.writesOf(tc.output))
			// lit for the first 500ms of every second.
			for n, on := range lit {
				require.Equal(t, (n/5)%2 == 0, on, "tick %d", n)
			}
		})
	}
}

func TestTurnSignalRetriggerIsNoop(t *testing.T) {
	hw := newFakeHardware()
	intent := NewIntent()
	s := NewTurnSignal(intent, FlagTurnLeft, hw)
	cc := fx.At(context.TODO(), time.Unix(0, 0))

	intent.Raise(FlagTurnLeft)
	require.NoError(t, s.Control(cc))
	cc.Advance(1200 * time.Millisecond)
	require.False(t, intent.Raise(FlagTurnLeft))
	require.NoError(t, s.Control(cc))

	cc.Advance(TurnSignalToggles*TurnSignalHalfPeriod - 1200*time.Millisecond)
	require.NoError(t, s.Control(cc))
	require.False(t, s.Active())
	require.False(t, intent.Get(FlagTurnLeft))

	// stays idle until raised again.
	cc.Advance(SignalInterval)
	require.NoError(t, s.Control(cc))
	require.False(t, s.Active())
	require.Empty(t, hw.writesOf(hal.OutputTurnRight))
}

func TestHornPulse(t *testing.T) {
	hw := newFakeHardware()
	intent := NewIntent()
	h := &Horn{Intent: intent, Speaker: hw}
	cc := fx.At(context.TODO(), time.Unix(0, 0))

	intent.Raise(FlagHorn)
	require.NoError(t, h.Control(cc))
	require.Equal(t, []bool{true}, hw.tones)
	require.NoError(t, h.Control(cc.Advance(HornPulse-SignalInterval)))
	require.Equal(t, []bool{true}, hw.tones)
	require.True(t, intent.Get(FlagHorn))
	require.NoError(t, h.Control(cc.Advance(SignalInterval)))
	require.Equal(t, []bool{true, false}, hw.tones)
	require.False(t, intent.Get(FlagHorn))
	require.NoError(t, h.Control(cc.Advance(SignalInterval)))
	require.Len(t, hw.tones, 2)
}

func TestMovementLightsMirror(t *testing.T) {
	hw := newFakeHardware()
	intent := NewIntent()
	l := &MovementLights{Intent: intent, Outputs: hw}
	cc := fx.At(context.TODO(), time.Unix(0, 0))

	require.NoError(t, l.Control(cc))
	require.True(t, hw.output(hal.OutputBrake))
	require.False(t, hw.output(hal.OutputReverse))

	intent.Set(FlagBrake, false)
	intent.Set(FlagReverse, true)
	require.NoError(t, l.Control(cc))
	require.False(t, hw.output(hal.OutputBrake))
	require.True(t, hw.output(hal.OutputReverse))
	require.Len(t, hw.writesOf(hal.OutputBrake), 2)
}

func TestHeadlights(t *testing.T) {
	testCases := []struct {
		light float64
		on    bool
	}{
		{0, true},
		{0.64, true},
		{HeadlightsThreshold, false},
		{0.9, false},
	}
	for _, tc := range testCases {
		hw := newFakeHardware()
		hw.light = tc.light
		intent := NewIntent()
		l := &Headlights{Intent: intent, Sensor: hw, Outputs: hw}
		require.NoError(t, l.Control(fx.At(context.TODO(), time.Unix(0, 0))))
		require.Equal(t, tc.on, hw.output(hal.OutputHeadlights), "light %v", tc.light)
		require.Equal(t, tc.on, intent.Get(FlagHeadlights))
	}
}
