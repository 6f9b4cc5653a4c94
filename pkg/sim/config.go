package sim

import (
	"flag"
)

// Defaults
const (
	DefaultArenaSize     float64 = 3000
	DefaultTrack         float64 = 150
	DefaultMaxWheelSpeed float64 = 400
	DefaultAccel         float64 = 2000
	DefaultMmPerPulse    float64 = 1
	DefaultMaxRange      float64 = 1200
	DefaultLight         float64 = 1
)

// Config defines the simulated world.
type Config struct {
	ArenaWidth    float64
	ArenaHeight   float64
	Track         float64
	MaxWheelSpeed float64
	Accel         float64
	Light         float64
	// Obstacle places a square obstacle of this size ahead of the
	// start position, 0 for none.
	Obstacle float64
}

var defaultConfig = Config{
	ArenaWidth:    DefaultArenaSize,
	ArenaHeight:   DefaultArenaSize,
	Track:         DefaultTrack,
	MaxWheelSpeed: DefaultMaxWheelSpeed,
	Accel:         DefaultAccel,
	Light:         DefaultLight,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.Float64Var(&defaultConfig.ArenaWidth, "sim-arena-width", defaultConfig.ArenaWidth, "Arena width (mm).")
	flag.Float64Var(&defaultConfig.ArenaHeight, "sim-arena-height", defaultConfig.ArenaHeight, "Arena height (mm).")
	flag.Float64Var(&defaultConfig.Track, "sim-track", defaultConfig.Track, "Distance (mm) between the wheels.")
	flag.Float64Var(&defaultConfig.MaxWheelSpeed, "sim-wheel-speed", defaultConfig.MaxWheelSpeed, "Wheel speed (mm/s) at full duty.")
	flag.Float64Var(&defaultConfig.Accel, "sim-accel", defaultConfig.Accel, "Wheel acceleration (mm/s^2), 0 for instant.")
	flag.Float64Var(&defaultConfig.Light, "sim-light", defaultConfig.Light, "Ambient light, 0 (dark) to 1 (bright).")
	flag.Float64Var(&defaultConfig.Obstacle, "sim-obstacle", defaultConfig.Obstacle, "Size (mm) of an obstacle ahead of the start position, 0 for none.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates the default configuration.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewVehicle creates the simulated vehicle, placed at the center of
// the arena heading +X.
func (c *Config) NewVehicle() *Vehicle {
	v := NewVehicle(Rect{Size2D: Size2D{CX: c.ArenaWidth, CY: c.ArenaHeight}})
	v.Track, v.MaxWheelSpeed, v.Accel = c.Track, c.MaxWheelSpeed, c.Accel
	v.SetLight(c.Light)
	if size := c.Obstacle; size > 0 {
		center := v.Pose().Pos2D
		v.Obstacles = append(v.Obstacles, Rect{
			Pos2D:  Pos2D{X: center.X + c.ArenaWidth/4, Y: center.Y - size/2},
			Size2D: Size2D{CX: size, CY: size},
		})
	}
	return v
}
