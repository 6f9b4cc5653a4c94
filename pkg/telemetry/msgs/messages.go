// Package msgs defines the telemetry messages published by the vehicle.
package msgs

import (
	"github.com/golang/protobuf/proto"
)

// SafetyPhase mirrors the phase of the safety maneuver.
type SafetyPhase int32

// Phases
const (
	PhaseIdle      SafetyPhase = 0
	PhaseBraking   SafetyPhase = 1
	PhaseReversing SafetyPhase = 2
)

var safetyPhaseNames = map[SafetyPhase]string{
	PhaseIdle:      "IDLE",
	PhaseBraking:   "BRAKING",
	PhaseReversing: "REVERSING",
}

// String implements fmt.Stringer.
func (p SafetyPhase) String() string {
	if name, ok := safetyPhaseNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// VehicleState is the periodic vehicle snapshot.
type VehicleState struct {
	ID              string      `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	TimestampMs     int64       `protobuf:"varint,2,opt,name=timestamp_ms,json=timestampMs,proto3" json:"timestamp_ms,omitempty"`
	LeftDuty        float64     `protobuf:"fixed64,3,opt,name=left_duty,json=leftDuty,proto3" json:"left_duty,omitempty"`
	RightDuty       float64     `protobuf:"fixed64,4,opt,name=right_duty,json=rightDuty,proto3" json:"right_duty,omitempty"`
	TurnLeft        bool        `protobuf:"varint,5,opt,name=turn_left,json=turnLeft,proto3" json:"turn_left,omitempty"`
	TurnRight       bool        `protobuf:"varint,6,opt,name=turn_right,json=turnRight,proto3" json:"turn_right,omitempty"`
	Horn            bool        `protobuf:"varint,7,opt,name=horn,proto3" json:"horn,omitempty"`
	Brake           bool        `protobuf:"varint,8,opt,name=brake,proto3" json:"brake,omitempty"`
	Reverse         bool        `protobuf:"varint,9,opt,name=reverse,proto3" json:"reverse,omitempty"`
	Headlights      bool        `protobuf:"varint,10,opt,name=headlights,proto3" json:"headlights,omitempty"`
	EncoderCount    int64       `protobuf:"varint,11,opt,name=encoder_count,json=encoderCount,proto3" json:"encoder_count,omitempty"`
	RangeMm         uint32      `protobuf:"varint,12,opt,name=range_mm,json=rangeMm,proto3" json:"range_mm,omitempty"`
	SafetyPhase     SafetyPhase `protobuf:"varint,13,opt,name=safety_phase,json=safetyPhase,proto3" json:"safety_phase,omitempty"`
	IntakeSuspended bool        `protobuf:"varint,14,opt,name=intake_suspended,json=intakeSuspended,proto3" json:"intake_suspended,omitempty"`
	Discarded       uint64      `protobuf:"varint,15,opt,name=discarded,proto3" json:"discarded,omitempty"`
	Maneuvers       uint64      `protobuf:"varint,16,opt,name=maneuvers,proto3" json:"maneuvers,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *VehicleState) ProtoMessage() {}

// Reset implements proto.Message.
func (m *VehicleState) Reset() { *m = VehicleState{} }

// String implements proto.Message.
func (m *VehicleState) String() string { return proto.CompactTextString(m) }

// SafetyEvent is published on every safety phase change.
type SafetyEvent struct {
	ID           string      `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	TimestampMs  int64       `protobuf:"varint,2,opt,name=timestamp_ms,json=timestampMs,proto3" json:"timestamp_ms,omitempty"`
	Phase        SafetyPhase `protobuf:"varint,3,opt,name=phase,proto3" json:"phase,omitempty"`
	RangeMm      uint32      `protobuf:"varint,4,opt,name=range_mm,json=rangeMm,proto3" json:"range_mm,omitempty"`
	EncoderCount int64       `protobuf:"varint,5,opt,name=encoder_count,json=encoderCount,proto3" json:"encoder_count,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *SafetyEvent) ProtoMessage() {}

// Reset implements proto.Message.
func (m *SafetyEvent) Reset() { *m = SafetyEvent{} }

// String implements proto.Message.
func (m *SafetyEvent) String() string { return proto.CompactTextString(m) }
