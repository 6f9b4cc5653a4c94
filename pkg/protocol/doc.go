// Package protocol provides the glove to vehicle command link.
package protocol

// The link is one-way and fire-and-forget: the glove writes 2-byte
// commands over a 9600 baud serial radio and the vehicle decodes
// them one byte at a time. There is no framing, no checksum, no
// sequence number and no acknowledgment.
//
//	byte 1    byte 2    meaning
//	F/B/L/R   1/2/3     move in direction at speed tier
//	0         0         stop
//	T         L/R       start turn signal
//	H         1         horn pulse
//
// A receiver that loses sync misinterprets at most one byte pair:
// any unrecognized first byte is dropped, and any second byte
// completes the command and returns the parser to waiting.
//
// Producer: glove
// Consumer: vehicle
