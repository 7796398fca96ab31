package config

import (
	"encoding/json"
	"fmt"

	"stepgo/standalone"
)

// maxAcceleration keeps 7200000 * acceleration inside 32 bits for the ramp
// length formula.
const maxAcceleration = 596

// Load parses a JSON machine configuration and applies defaults.
func Load(data []byte) (*standalone.MachineConfig, error) {
	var cfg standalone.MachineConfig

	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *standalone.MachineConfig) {
	if cfg.Kinematics == "" {
		cfg.Kinematics = "cartesian"
	}
	if cfg.Acceleration == 0 {
		cfg.Acceleration = 100 // mm/s^2
	}
	if cfg.Feedrate == 0 {
		cfg.Feedrate = 3000 // 50 mm/s
	}
	if cfg.Axes == nil {
		cfg.Axes = make(map[string]standalone.AxisConfig)
	}

	for name, axis := range cfg.Axes {
		if axis.StepsPerM == 0 {
			axis.StepsPerM = 80000 // 80 steps/mm
		}
		cfg.Axes[name] = axis
	}
}

// validate rejects configurations that would violate the arithmetic
// preconditions further down. The numeric core itself never checks these.
func validate(cfg *standalone.MachineConfig) error {
	if cfg.Acceleration > maxAcceleration {
		return fmt.Errorf("config: acceleration %d mm/s^2 exceeds limit %d",
			cfg.Acceleration, maxAcceleration)
	}

	for _, name := range []string{"x", "y", "z"} {
		axis, ok := cfg.Axes[name]
		if !ok {
			return fmt.Errorf("config: axis %s not configured", name)
		}
		if axis.StepsPerM == 0 {
			return fmt.Errorf("config: axis %s has zero steps-per-metre", name)
		}
		if axis.MinPosition > axis.MaxPosition {
			return fmt.Errorf("config: axis %s has inverted limits", name)
		}
	}

	switch cfg.Kinematics {
	case "cartesian":
	case "scara":
		if cfg.Scara.InnerArmLength <= 0 || cfg.Scara.OuterArmLength <= 0 {
			return fmt.Errorf("config: scara kinematics needs positive arm lengths")
		}
	default:
		return fmt.Errorf("config: unknown kinematics %q", cfg.Kinematics)
	}

	return nil
}
