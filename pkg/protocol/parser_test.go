package protocol

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type parserTestSequence struct {
	in     []byte
	expect ParseResult
	final  ParseResult
}

type parserTestSequenceBuilder struct {
	seq []parserTestSequence
}

func parserTestSequences() *parserTestSequenceBuilder {
	return &parserTestSequenceBuilder{}
}

// on feeds bytes expecting to stay in Waiting after each one.
func (b *parserTestSequenceBuilder) on(in ...byte) *parserTestSequenceBuilder {
	s := parserTestSequence{in: in}
	b.seq = append(b.seq, s)
	return b
}

// cmd feeds a 2-byte pair expecting state after the first byte.
func (b *parserTestSequenceBuilder) cmd(first, second byte, state State) *parserTestSequenceBuilder {
	b.seq = append(b.seq, parserTestSequence{
		in:     []byte{first, second},
		expect: ParseResult{State: state},
	})
	return b
}

func (b *parserTestSequenceBuilder) command(action Action, arg byte) *parserTestSequenceBuilder {
	b.seq[len(b.seq)-1].final = ParseResult{State: StateWaiting, Command: &Command{Action: action, Arg: arg}}
	return b
}

func (b *parserTestSequenceBuilder) build() []parserTestSequence {
	return b.seq
}

func TestParser(t *testing.T) {
	testCases := []struct {
		name string
		seq  []parserTestSequence
	}{
		{
			name: "movement",
			seq: parserTestSequences().
				cmd('F', '2', StateExpectForwardSpeed).command(ActionForward, Speed2).
				cmd('B', '1', StateExpectBackSpeed).command(ActionBack, Speed1).
				cmd('L', '3', StateExpectLeftSpeed).command(ActionLeft, Speed3).
				cmd('R', '1', StateExpectRightSpeed).command(ActionRight, Speed1).
				build(),
		},
		{
			name: "stop turn horn",
			seq: parserTestSequences().
				cmd('0', '0', StateExpectOffArg).command(ActionStop, StopArg).
				cmd('T', 'L', StateExpectTurnDir).command(ActionTurnSignal, TurnLeft).
				cmd('T', 'R', StateExpectTurnDir).command(ActionTurnSignal, TurnRight).
				cmd('H', '1', StateExpectHornArg).command(ActionHorn, HornArg).
				build(),
		},
		{
			name: "skip unknown first bytes",
			seq: parserTestSequences().
				on('x', 0, 0xff, '1', '\n').
				cmd('F', '3', StateExpectForwardSpeed).command(ActionForward, Speed3).
				build(),
		},
		{
			name: "unknown argument completes command",
			seq: parserTestSequences().
				cmd('F', '9', StateExpectForwardSpeed).command(ActionForward, '9').
				cmd('T', 'X', StateExpectTurnDir).command(ActionTurnSignal, 'X').
				cmd('B', 'F', StateExpectBackSpeed).command(ActionBack, 'F').
				build(),
		},
		{
			name: "argument is never an action",
			seq: parserTestSequences().
				cmd('F', 'F', StateExpectForwardSpeed).command(ActionForward, 'F').
				cmd('0', 'H', StateExpectOffArg).command(ActionStop, 'H').
				on('1').
				build(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var parser Parser
			for n, s := range tc.seq {
				var pr ParseResult
				for i, b := range s.in {
					pr = parser.Parse(b)
					if i+1 < len(s.in) {
						require.Equalf(t, s.expect, pr, "seq[%d][%d] expect mismatch", n, i)
					}
				}
				require.Equalf(t, s.final, pr, "seq[%d] final mismatch", n)
			}
		})
	}
}

func TestParserReturnsToWaitingForAnyBytes(t *testing.T) {
	for first := 0; first < 256; first++ {
		for second := 0; second < 256; second++ {
			var parser Parser
			pr := parser.Parse(byte(first))
			if pr.State == StateWaiting {
				require.Nil(t, pr.Command)
				continue
			}
			pr = parser.Parse(byte(second))
			require.Equal(t, StateWaiting, pr.State, "%02x %02x", first, second)
			require.NotNil(t, pr.Command)
			require.Equal(t, Action(first), pr.Command.Action)
			require.Equal(t, byte(second), pr.Command.Arg)
		}
	}
}

func TestParserReset(t *testing.T) {
	var parser Parser
	parser.Parse('F')
	require.Equal(t, StateExpectForwardSpeed, parser.State())
	parser.Reset()
	require.Equal(t, StateWaiting, parser.State())
	pr := parser.Parse('2')
	require.Nil(t, pr.Command)
}

func TestStateString(t *testing.T) {
	testCases := []struct {
		state State
		str   string
	}{
		{StateWaiting, "Waiting"},
		{StateExpectTurnDir, "ExpectTurnDir"},
		{StateExpectOffArg, "ExpectOffArg"},
		{State(42), "Unknown"},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d", tc.state), func(t *testing.T) {
			require.Equal(t, tc.str, tc.state.String())
		})
	}
}
