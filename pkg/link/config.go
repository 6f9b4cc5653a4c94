// Package link provides the byte channel between the glove and the
// vehicle: a serial radio port, or a websocket for simulation.
package link

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
)

// Env vars overriding defaults.
const (
	EnvPort   = "GLOVEBOT_LINK_PORT"
	EnvURL    = "GLOVEBOT_LINK_URL"
	EnvListen = "GLOVEBOT_LINK_LISTEN"
)

// DefaultPath is the HTTP path of the websocket endpoint.
const DefaultPath = "/link"

// ErrNotConfigured indicates neither a serial port nor a websocket
// endpoint is configured.
var ErrNotConfigured = errors.New("link not configured")

// Config defines the link endpoint. Port takes precedence over the
// websocket settings. The serial rate is always protocol.BaudRate.
type Config struct {
	Port   string
	URL    string
	Listen string
}

var defaultConfig Config

func init() {
	if port := os.Getenv(EnvPort); port != "" {
		defaultConfig.Port = port
	}
	if url := os.Getenv(EnvURL); url != "" {
		defaultConfig.URL = url
	}
	if addr := os.Getenv(EnvListen); addr != "" {
		defaultConfig.Listen = addr
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Port, "link-port", defaultConfig.Port, "Serial port of the radio, e.g. /dev/ttyUSB0.")
	flag.StringVar(&defaultConfig.URL, "link-url", defaultConfig.URL, "Websocket URL to dial when no serial port is set, e.g. ws://localhost:8040"+DefaultPath+".")
	flag.StringVar(&defaultConfig.Listen, "link-listen", defaultConfig.Listen, "Address to accept websocket links on when no serial port is set.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Dial opens the link from the sending side.
func (c *Config) Dial() (io.ReadWriteCloser, error) {
	switch {
	case c.Port != "":
		return OpenSerial(c.Port)
	case c.URL != "":
		return DialWebsocket(c.URL)
	}
	return nil, ErrNotConfigured
}

// Serve accepts links on the receiving side and calls handler for
// each one until ctx is canceled. A serial port is a single link.
func (c *Config) Serve(ctx context.Context, handler ConnHandler) error {
	switch {
	case c.Port != "":
		rwc, err := OpenSerial(c.Port)
		if err != nil {
			return err
		}
		defer rwc.Close()
		return handler(ctx, rwc)
	case c.Listen != "":
		return ListenWebsocket(ctx, c.Listen, handler)
	}
	return ErrNotConfigured
}
