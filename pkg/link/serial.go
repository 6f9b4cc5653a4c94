package link

import (
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"go.bug.st/serial"

	"github.com/robotalks/glovebot/pkg/protocol"
)

// serialMode is the fixed radio framing, 8N1 at protocol.BaudRate.
func serialMode() *serial.Mode {
	return &serial.Mode{
		BaudRate: protocol.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// OpenSerial opens the radio serial port.
func OpenSerial(port string) (io.ReadWriteCloser, error) {
	mode := serialMode()
	p, err := serial.Open(port, mode)
	if err != nil {
		return nil, errors.Wrapf(err, "open serial port %s", port)
	}
	glog.Infof("link: serial port %s opened at %d baud", port, mode.BaudRate)
	return p, nil
}
