// Package sh provides the interactive shell of the virtual glove.
package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/robotalks/glovebot/pkg/glove"
	"github.com/robotalks/glovebot/pkg/hal"
	"github.com/robotalks/glovebot/pkg/protocol"
)

// Shell provides ishell backed interactive shell driving a virtual
// glove.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell  *ishell.Shell
	Glove  *glove.Glove
	Hand   *glove.Virtual
	Sender glove.CommandSender
}

// Status is the glove state printed by the status command.
type Status struct {
	Current string  `json:"current"`
	Sent    string  `json:"sent"`
	AX      int     `json:"ax"`
	AY      int     `json:"ay"`
	Grip    float64 `json:"grip"`
	Tier    string  `json:"tier"`
}

const (
	shellKey = "$shell"
	prompt   = "glove > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		&TiltCmd,
		&AccelCmd,
		&GripCmd,
		&LeftCmd,
		&RightCmd,
		&HornCmd,
		&SendCmd,
		&StatusCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(g *glove.Glove, hand *glove.Virtual, sender glove.CommandSender) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Glove:  g,
		Hand:   hand,
		Sender: sender,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(prompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Tilt tilts the hand. Each direction is -1, 0 or 1, x is lateral
// (negative forward) and y is longitudinal (positive left).
func (s *Shell) Tilt(args ...string) error {
	if len(args) != 2 {
		return fmt.Errorf("expect X Y")
	}
	var dirs [2]int
	for n, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil || v < -1 || v > 1 {
			return fmt.Errorf("invalid direction %q, expect -1, 0 or 1", arg)
		}
		dirs[n] = v
	}
	s.Hand.Tilt(dirs[0], dirs[1])
	return nil
}

// Accel sets the raw acceleration.
func (s *Shell) Accel(args ...string) error {
	if len(args) != 2 {
		return fmt.Errorf("expect AX AY")
	}
	ax, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid AX %q", args[0])
	}
	ay, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid AY %q", args[1])
	}
	s.Hand.SetAccel(ax, ay)
	return nil
}

// Grip sets the normalized grip reading, lower is a firmer grip.
func (s *Shell) Grip(args ...string) error {
	if len(args) != 1 {
		return fmt.Errorf("expect GRIP")
	}
	grip, err := strconv.ParseFloat(args[0], 64)
	if err != nil || grip < 0 || grip > 1 {
		return fmt.Errorf("invalid grip %q, expect 0 to 1", args[0])
	}
	s.Hand.SetGrip(grip)
	return nil
}

// Send sends raw 2-character commands bypassing the glove.
func (s *Shell) Send(args ...string) error {
	if len(args) == 0 {
		return fmt.Errorf("expect CMD...")
	}
	cmds := make([]protocol.Command, 0, len(args))
	for _, arg := range args {
		if len(arg) != 2 {
			return fmt.Errorf("invalid command %q, expect 2 characters", arg)
		}
		cmds = append(cmds, protocol.Command{Action: protocol.Action(arg[0]), Arg: arg[1]})
	}
	return s.Sender.Send(cmds...)
}

// Status gets the glove state.
func (s *Shell) Status() Status {
	st := Status{Grip: s.Hand.ReadGripPressure()}
	st.AX, st.AY = s.Hand.ReadAccel()
	st.Tier = string(glove.SpeedTier(st.Grip))
	if cmd, ok := s.Glove.Current(); ok {
		st.Current = cmd.String()
	}
	if cmd, ok := s.Glove.Transmitter.Last(); ok {
		st.Sent = cmd.String()
	}
	return st
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			glog.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	glog.Fatalln("command expected")
}

func argsCmd(fn func(*Shell, ...string) error) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if err := fn(ShellFrom(c), c.Args...); err != nil {
			c.Err(err)
		}
	}
}

func releaseCmd(b hal.Button) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		ShellFrom(c).Hand.Release(b)
	}
}

var (
	// TiltCmd tilts the hand.
	TiltCmd = ishell.Cmd{
		Name:    "tilt",
		Aliases: []string{"t"},
		Help:    "X Y, each -1, 0 or 1",
		Func:    argsCmd((*Shell).Tilt),
	}

	// AccelCmd sets the raw acceleration.
	AccelCmd = ishell.Cmd{
		Name:    "accel",
		Aliases: []string{"a"},
		Help:    "AX AY",
		Func:    argsCmd((*Shell).Accel),
	}

	// GripCmd sets the grip.
	GripCmd = ishell.Cmd{
		Name:    "grip",
		Aliases: []string{"g"},
		Help:    "GRIP, 0 (firm) to 1 (relaxed)",
		Func:    argsCmd((*Shell).Grip),
	}

	// LeftCmd releases the left button.
	LeftCmd = ishell.Cmd{
		Name: "left",
		Help: "left turn signal",
		Func: releaseCmd(hal.ButtonNavLeft),
	}

	// RightCmd releases the right button.
	RightCmd = ishell.Cmd{
		Name: "right",
		Help: "right turn signal",
		Func: releaseCmd(hal.ButtonNavRight),
	}

	// HornCmd releases the fire button.
	HornCmd = ishell.Cmd{
		Name:    "horn",
		Aliases: []string{"h"},
		Help:    "sound the horn",
		Func:    releaseCmd(hal.ButtonNavFire),
	}

	// SendCmd sends raw commands.
	SendCmd = ishell.Cmd{
		Name: "send",
		Help: "CMD..., e.g. F2 00",
		Func: argsCmd((*Shell).Send),
	}

	// StatusCmd prints the glove state.
	StatusCmd = ishell.Cmd{
		Name:    "status",
		Aliases: []string{"s"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			st := s.Status()
			if s.OutputJSON {
				out, err := json.Marshal(&st)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			c.Printf("current=%q sent=%q accel=(%d,%d) grip=%.2f tier=%s\n",
				st.Current, st.Sent, st.AX, st.AY, st.Grip, st.Tier)
		},
	}
)
