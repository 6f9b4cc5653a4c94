package vehicle

import (
	"sync"

	"github.com/robotalks/glovebot/pkg/hal"
	"github.com/robotalks/glovebot/pkg/quadrature"
)

type outputWrite struct {
	name hal.Output
	on   bool
}

type fakeHardware struct {
	lock    sync.Mutex
	duties  [hal.NumWheels]float64
	outputs map[hal.Output]bool
	writes  []outputWrite
	tones   []bool
	rangeMm uint32
	rangeOk bool
	light   float64
	phase   quadrature.Phase
	edgeFn  func(quadrature.Phase)
}

func newFakeHardware() *fakeHardware {
	return &fakeHardware{
		outputs: make(map[hal.Output]bool),
		rangeMm: RangeFarMm,
		rangeOk: true,
		light:   1,
	}
}

func (h *fakeHardware) SetMotorDuty(w hal.Wheel, duty float64) error {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.duties[w] = duty
	return nil
}

func (h *fakeHardware) SetDigitalOutput(name hal.Output, on bool) error {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.outputs[name] = on
	h.writes = append(h.writes, outputWrite{name: name, on: on})
	return nil
}

func (h *fakeHardware) SetSpeakerTone(on bool) error {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.tones = append(h.tones, on)
	return nil
}

func (h *fakeHardware) ReadRangeMm() (uint32, bool) {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.rangeMm, h.rangeOk
}

func (h *fakeHardware) ReadAmbientLight() float64 {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.light
}

func (h *fakeHardware) ReadEncoderPhase() quadrature.Phase {
	return h.phase
}

func (h *fakeHardware) OnEncoderEdge(fn func(quadrature.Phase)) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.edgeFn = fn
}

func (h *fakeHardware) edgeHandler() func(quadrature.Phase) {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.edgeFn
}

func (h *fakeHardware) setRange(mm uint32) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.rangeMm = mm
}

func (h *fakeHardware) duty(w hal.Wheel) float64 {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.duties[w]
}

func (h *fakeHardware) output(name hal.Output) bool {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.outputs[name]
}

// writesOf lists the values written to an output.
func (h *fakeHardware) writesOf(name hal.Output) []bool {
	h.lock.Lock()
	defer h.lock.Unlock()
	var vals []bool
	for _, w := range h.writes {
		if w.name == name {
			vals = append(vals, w.on)
		}
	}
	return vals
}

type fakeGate struct {
	suspended bool
	suspends  int
	resumes   int
}

func (g *fakeGate) Suspend() {
	g.suspended = true
	g.suspends++
}

func (g *fakeGate) Resume() {
	g.suspended = false
	g.resumes++
}
