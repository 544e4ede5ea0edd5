// Package config provides configuration loading and access for the effects layer.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all effect configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Device    DeviceConfig    `yaml:"device"`
	Profiles  ProfilesConfig  `yaml:"profiles"`
	Particles ParticlesConfig `yaml:"particles"`
	Trail     TrailConfig     `yaml:"trail"`
	Orbs      OrbsConfig      `yaml:"orbs"`
	Mascot    MascotConfig    `yaml:"mascot"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	TargetFPS     int     `yaml:"target_fps"`
	MaxPixelRatio float64 `yaml:"max_pixel_ratio"` // Render-target DPR cap
}

// DeviceConfig holds the coarse device classification thresholds.
type DeviceConfig struct {
	ConstrainedMaxWidth int  `yaml:"constrained_max_width"` // Viewports this wide or narrower are constrained
	Touch               bool `yaml:"touch"`                 // Treat the input surface as touch
}

// ProfilesConfig holds one capability set per device class.
type ProfilesConfig struct {
	Desktop     Capabilities `yaml:"desktop"`
	Constrained Capabilities `yaml:"constrained"`
}

// Capabilities gates the expensive code paths of the particle field and orbs.
// One value is chosen at construction; nothing re-checks the device at runtime.
type Capabilities struct {
	ParticleCount   int     `yaml:"particle_count"`
	ConnectDistance float64 `yaml:"connect_distance"`
	Links           bool    `yaml:"links"`      // Proximity line overlay
	Glow            bool    `yaml:"glow"`       // Radial glow gradients
	Attraction      bool    `yaml:"attraction"` // Per-particle pointer attraction
	Trails          bool    `yaml:"trails"`     // Pointer trail emission and update
	Orbs            bool    `yaml:"orbs"`       // Floating orb decorator
}

// ConnectDistanceSq returns the squared proximity threshold.
func (c Capabilities) ConnectDistanceSq() float32 {
	d := float32(c.ConnectDistance)
	return d * d
}

// ParticlesConfig holds ambient particle seeding and motion parameters.
type ParticlesConfig struct {
	RadiusMin        float64 `yaml:"radius_min"`
	RadiusMax        float64 `yaml:"radius_max"`
	SpeedRange       float64 `yaml:"speed_range"` // Velocity components drawn from [-range/2, range/2)
	OpacityMin       float64 `yaml:"opacity_min"`
	OpacityMax       float64 `yaml:"opacity_max"`
	PulseSpeedMin    float64 `yaml:"pulse_speed_min"`
	PulseSpeedMax    float64 `yaml:"pulse_speed_max"`
	OpacityBase      float64 `yaml:"opacity_base"`      // Pulse baseline
	OpacityAmplitude float64 `yaml:"opacity_amplitude"` // Pulse sinusoid amplitude
	AttractRadius    float64 `yaml:"attract_radius"`
	AttractForce     float64 `yaml:"attract_force"`
	PointerGlow      float64 `yaml:"pointer_glow_radius"`
	ResizeDebounceMs float64 `yaml:"resize_debounce_ms"`
}

// TrailConfig holds pointer trail parameters.
type TrailConfig struct {
	EmitThreshold float64 `yaml:"emit_threshold"` // Emit when rng > threshold
	RadiusMin     float64 `yaml:"radius_min"`
	RadiusMax     float64 `yaml:"radius_max"`
	SpeedRange    float64 `yaml:"speed_range"`
	DecayMin      float64 `yaml:"decay_min"`
	DecayMax      float64 `yaml:"decay_max"`
	Drag          float64 `yaml:"drag"` // Velocity multiplier per frame
}

// OrbsConfig holds floating orb layout parameters.
type OrbsConfig struct {
	Sections     int     `yaml:"sections"`
	EveryNth     int     `yaml:"every_nth"`
	SizeMin      float64 `yaml:"size_min"`
	SizeMax      float64 `yaml:"size_max"`
	PeriodMinSec float64 `yaml:"period_min_sec"`
	PeriodMaxSec float64 `yaml:"period_max_sec"`
	Drift        float64 `yaml:"drift"` // Peak translation in px (x right, y up)
	Alpha        float64 `yaml:"alpha"`
	ShimmerSpeed float64 `yaml:"shimmer_speed"`
}

// MascotConfig holds the 3D mascot parameters.
type MascotConfig struct {
	Enabled        bool    `yaml:"enabled"`
	FovY           float64 `yaml:"fov_y"`
	Near           float64 `yaml:"near"`
	Far            float64 `yaml:"far"`
	CameraZ        float64 `yaml:"camera_z"`
	Scale          float64 `yaml:"scale"`
	YawScale       float64 `yaml:"yaw_scale"`
	PitchScale     float64 `yaml:"pitch_scale"`
	Smoothing      float64 `yaml:"smoothing"`
	BobAmplitude   float64 `yaml:"bob_amplitude"`
	BobFrequency   float64 `yaml:"bob_frequency"` // radians per millisecond
	AntennaSpin    float64 `yaml:"antenna_spin"`
	RingCount      int     `yaml:"ring_count"`
	RingSpin       float64 `yaml:"ring_spin"`
	RingOpacity    float64 `yaml:"ring_opacity"`
	RingPulse      float64 `yaml:"ring_pulse"`
	RingPulseFreq  float64 `yaml:"ring_pulse_freq"`
	EyeTrack       float64 `yaml:"eye_track"`
	AmbientLight   float64 `yaml:"ambient_light"`
	KeyLight       float64 `yaml:"key_light"`
	FillLight      float64 `yaml:"fill_light"`
	LightRange     float64 `yaml:"light_range"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow     float64 `yaml:"stats_window"`
	ProfileWindow   int     `yaml:"profile_window"`   // frames in the rolling frame profile
	BookmarkHistory int     `yaml:"bookmark_history"` // windows in the rolling baseline
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32       float32 // Screen.Width as float32
	ScreenH32       float32 // Screen.Height as float32
	AttractRadiusSq float32 // Particles.AttractRadius squared
	FrameMs         float64 // Milliseconds per frame at TargetFPS
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects values the simulations cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height))
	}
	if c.Screen.TargetFPS <= 0 {
		errs = append(errs, fmt.Errorf("target_fps must be positive, got %d", c.Screen.TargetFPS))
	}
	for name, p := range map[string]Capabilities{"desktop": c.Profiles.Desktop, "constrained": c.Profiles.Constrained} {
		if p.ParticleCount < 0 {
			errs = append(errs, fmt.Errorf("profiles.%s.particle_count must not be negative", name))
		}
		if p.ConnectDistance <= 0 {
			errs = append(errs, fmt.Errorf("profiles.%s.connect_distance must be positive", name))
		}
	}
	if c.Particles.AttractRadius <= 0 {
		errs = append(errs, errors.New("particles.attract_radius must be positive"))
	}
	if c.Particles.ResizeDebounceMs < 0 {
		errs = append(errs, errors.New("particles.resize_debounce_ms must not be negative"))
	}
	if c.Trail.DecayMin <= 0 || c.Trail.DecayMax < c.Trail.DecayMin {
		errs = append(errs, fmt.Errorf("trail decay range [%g, %g) is invalid", c.Trail.DecayMin, c.Trail.DecayMax))
	}
	if c.Orbs.EveryNth <= 0 {
		errs = append(errs, errors.New("orbs.every_nth must be positive"))
	}
	if c.Mascot.Smoothing <= 0 || c.Mascot.Smoothing > 1 {
		errs = append(errs, fmt.Errorf("mascot.smoothing must be in (0, 1], got %g", c.Mascot.Smoothing))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	r := float32(c.Particles.AttractRadius)
	c.Derived.AttractRadiusSq = r * r
	c.Derived.FrameMs = 1000.0 / float64(c.Screen.TargetFPS)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
