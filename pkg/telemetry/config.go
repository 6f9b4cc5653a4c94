// Package telemetry publishes vehicle state and safety events to an
// MQTT broker.
package telemetry

import (
	"flag"
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// Env vars overriding defaults.
const (
	EnvURL = "GLOVEBOT_MQTT_URL"
	EnvID  = "GLOVEBOT_ID"
)

// DefaultType is the vehicle type in topics.
const DefaultType = "glovebot"

// Config defines the telemetry configuration.
// Telemetry is disabled when URL is empty.
type Config struct {
	URL  string
	Type string
	ID   string
}

var defaultConfig = Config{
	Type: DefaultType,
}

func init() {
	defaultConfig.URL = os.Getenv(EnvURL)
	defaultConfig.ID = os.Getenv(EnvID)
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.URL, "mqtt", defaultConfig.URL, "MQTT broker URL for telemetry, e.g. mqtt://localhost:1883/robo/, empty to disable.")
	flag.StringVar(&defaultConfig.Type, "type", defaultConfig.Type, "Vehicle type in telemetry topics.")
	flag.StringVar(&defaultConfig.ID, "id", defaultConfig.ID, "Vehicle ID in telemetry topics, default from machine ID.")
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

// Enabled indicates a broker is configured.
func (c *Config) Enabled() bool {
	return c.URL != ""
}

// VehicleID gets the configured ID, or one derived from the
// machine ID.
func (c *Config) VehicleID() string {
	if c.ID != "" {
		return c.ID
	}
	id, err := machineid.ProtectedID(DefaultType)
	if err != nil {
		glog.Warningf("telemetry: machine ID unavailable: %v", err)
		return "unknown"
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}

// TopicBase is the topic base <type>/<id>/ under the broker prefix.
func TopicBase(typ, id string) string {
	if typ == "" {
		typ = DefaultType
	}
	return typ + "/" + id + "/"
}

// NewPublisher creates a Publisher connected to the broker.
func (c *Config) NewPublisher(src Source) (*Publisher, error) {
	opts, prefix, err := ClientOptionsFromURL(c.URL)
	if err != nil {
		return nil, err
	}
	id := c.VehicleID()
	base := TopicBase(c.Type, id)
	opts.SetBinaryWill(prefix+base+TopicMeta, nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID(DefaultType + ":" + id)
	}
	q := NewQueue(opts, prefix)
	p := NewPublisher(q, base, id, src)
	q.OnConnect = func(*Queue) { p.PublishMeta() }
	return p, nil
}
