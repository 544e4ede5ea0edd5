package config

import (
	"fmt"
	"strings"
)

// DeviceClass is the coarse classification used to pick a capability profile.
type DeviceClass uint8

const (
	DeviceDesktop DeviceClass = iota
	DeviceConstrained
)

// String returns the profile name for the class.
func (d DeviceClass) String() string {
	switch d {
	case DeviceConstrained:
		return "constrained"
	default:
		return "desktop"
	}
}

// ParseDeviceClass parses a -profile flag value. "auto" and "" return ok=false
// so the caller falls back to Classify.
func ParseDeviceClass(s string) (DeviceClass, bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DeviceDesktop, false, nil
	case "desktop":
		return DeviceDesktop, true, nil
	case "constrained", "mobile":
		return DeviceConstrained, true, nil
	default:
		return DeviceDesktop, false, fmt.Errorf("unknown device profile %q", s)
	}
}

// Classify returns the device class for a viewport width and input surface.
// Narrow viewports and touch surfaces are constrained.
func (c *Config) Classify(viewportWidth int, touch bool) DeviceClass {
	if touch || viewportWidth <= c.Device.ConstrainedMaxWidth {
		return DeviceConstrained
	}
	return DeviceDesktop
}

// Capabilities returns the capability profile for a device class.
func (c *Config) Capabilities(class DeviceClass) Capabilities {
	if class == DeviceConstrained {
		return c.Profiles.Constrained
	}
	return c.Profiles.Desktop
}
