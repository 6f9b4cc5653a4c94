package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
	"github.com/golang/protobuf/proto"
	"github.com/pkg/errors"

	fx "github.com/robotalks/glovebot/pkg/framework"
	"github.com/robotalks/glovebot/pkg/telemetry/msgs"
	"github.com/robotalks/glovebot/pkg/vehicle"
)

// Topics under the vehicle base.
const (
	TopicState  = "state"
	TopicSafety = "safety"
	TopicMeta   = "meta"
)

// Timing
const (
	StateInterval  = 500 * time.Millisecond
	ConnectTimeout = 5 * time.Second
)

// Broker is the publishing side of Queue.
type Broker interface {
	Connect() paho.Token
	PubWith(topic string, payload []byte, qos byte, retain bool) paho.Token
	Close() error
}

// Source provides the state to publish.
type Source interface {
	State() *msgs.VehicleState
}

// SourceFunc is func form of Source.
type SourceFunc func() *msgs.VehicleState

// State implements Source.
func (f SourceFunc) State() *msgs.VehicleState {
	return f()
}

// Meta is published retained as JSON while the vehicle is online.
type Meta struct {
	Type    string    `json:"type"`
	ID      string    `json:"id"`
	Started time.Time `json:"started"`
}

// Publisher publishes the state every StateInterval and forwards
// safety events.
type Publisher struct {
	Broker Broker
	Base   string
	ID     string
	Source Source
	Loop   *fx.Loop

	meta []byte
}

// NewPublisher creates a Publisher. base is the topic base ending
// with "/".
func NewPublisher(b Broker, base, id string, src Source) *Publisher {
	p := &Publisher{Broker: b, Base: base, ID: id, Source: src}
	meta := Meta{ID: id, Type: strings.SplitN(base, "/", 2)[0], Started: time.Now()}
	p.meta, _ = json.Marshal(&meta)
	p.Loop = fx.NewLoop("telemetry", StateInterval).AddController(p)
	return p
}

// Name implements Named.
func (p *Publisher) Name() string {
	return "telemetry"
}

// Attach publishes the state and safety events of a vehicle.
func (p *Publisher) Attach(v *vehicle.Vehicle) {
	p.Source = SourceFunc(func() *msgs.VehicleState { return StateOf(v) })
	v.Safety.OnPhase = p.SafetyEvent
	v.AddLoop(p.Loop)
}

// Run implements Runnable. It connects the broker and clears the
// retained meta when ctx is canceled.
func (p *Publisher) Run(ctx context.Context) error {
	token := p.Broker.Connect()
	if !token.WaitTimeout(ConnectTimeout) {
		glog.Warningf("telemetry: connect timed out")
	} else if err := token.Error(); err != nil {
		glog.Warningf("telemetry: connect error: %v", err)
	}
	<-ctx.Done()
	p.Broker.PubWith(p.Base+TopicMeta, nil, 1, true).WaitTimeout(time.Second)
	p.Broker.Close()
	return ctx.Err()
}

// Control implements Controller.
func (p *Publisher) Control(cc fx.ControlContext) error {
	if p.Source == nil {
		return nil
	}
	st := p.Source.State()
	st.ID = p.ID
	st.TimestampMs = cc.Time().UnixNano() / int64(time.Millisecond)
	return p.publish(TopicState, st, 0)
}

// SafetyEvent publishes a safety event, followed by a state update
// without waiting for the next StateInterval.
func (p *Publisher) SafetyEvent(ev vehicle.SafetyEvent) {
	msg := &msgs.SafetyEvent{
		ID:           p.ID,
		TimestampMs:  ev.Time.UnixNano() / int64(time.Millisecond),
		Phase:        msgs.SafetyPhase(ev.Phase),
		RangeMm:      ev.RangeMm,
		EncoderCount: ev.Count,
	}
	if err := p.publish(TopicSafety, msg, 1); err != nil {
		glog.Warningf("telemetry: %v", err)
	}
	p.Loop.TriggerNext()
}

// PublishMeta publishes the retained meta.
func (p *Publisher) PublishMeta() {
	p.Broker.PubWith(p.Base+TopicMeta, p.meta, 1, true)
}

func (p *Publisher) publish(topic string, msg proto.Message, qos byte) error {
	payload, err := proto.Marshal(msg)
	if err != nil {
		return errors.Wrapf(err, "encode %s", topic)
	}
	p.Broker.PubWith(p.Base+topic, payload, qos, false)
	return nil
}

// StateOf takes a state snapshot of a vehicle.
func StateOf(v *vehicle.Vehicle) *msgs.VehicleState {
	s := v.Intent.Snapshot()
	return &msgs.VehicleState{
		LeftDuty:        s.Left,
		RightDuty:       s.Right,
		TurnLeft:        s.TurnLeft,
		TurnRight:       s.TurnRight,
		Horn:            s.Horn,
		Brake:           s.Brake,
		Reverse:         s.Reverse,
		Headlights:      s.Headlights,
		EncoderCount:    v.Encoder.Count(),
		RangeMm:         v.Safety.LastRange(),
		SafetyPhase:     msgs.SafetyPhase(v.Safety.Phase()),
		IntakeSuspended: v.Intake.Suspended(),
		Discarded:       v.Intake.Discarded(),
		Maneuvers:       v.Safety.Maneuvers(),
	}
}

// Decode decodes a telemetry payload by its topic.
// It returns nil for topics which are not telemetry messages.
func Decode(topic string, payload []byte) (proto.Message, error) {
	var msg proto.Message
	switch {
	case strings.HasSuffix(topic, "/"+TopicState):
		msg = &msgs.VehicleState{}
	case strings.HasSuffix(topic, "/"+TopicSafety):
		msg = &msgs.SafetyEvent{}
	default:
		return nil, nil
	}
	if err := proto.Unmarshal(payload, msg); err != nil {
		return nil, fmt.Errorf("%s: %v", topic, err)
	}
	return msg, nil
}
