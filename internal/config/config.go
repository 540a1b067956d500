package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Drive     DriveConfig     `yaml:"drive"`
	Control   ControlConfig   `yaml:"control"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type DriveConfig struct {
	// Chip is the GPIO character device name, e.g. "gpiochip0".
	Chip string `yaml:"chip"`
	// PWMLine is the output line offset (BCM numbering on Pi).
	PWMLine int `yaml:"pwm_line"`
	// MeasLine is the input line offset watched for rising edges.
	MeasLine int `yaml:"meas_line"`
	// CarrierPeriod is the PWM carrier period.
	CarrierPeriod time.Duration `yaml:"carrier_period"`
	// PWMSteps is the duty resolution per carrier cycle.
	PWMSteps int `yaml:"pwm_steps"`
	// InitialDuty is the startup duty cycle in percent.
	InitialDuty int `yaml:"initial_duty"`
	// RTPriority > 0 requests SCHED_FIFO for the generator thread.
	RTPriority int `yaml:"rt_priority"`
	// LockMemory mlockalls the process at startup.
	LockMemory bool `yaml:"lock_memory"`
}

type ControlConfig struct {
	Listen string `yaml:"listen"`
}

type TelemetryConfig struct {
	Enable   bool          `yaml:"enable"`
	Dest     string        `yaml:"dest"`
	Interval time.Duration `yaml:"interval"`
}

func defaults() Config {
	return Config{
		Drive: DriveConfig{
			Chip:          "gpiochip0",
			PWMLine:       12,
			MeasLine:      16,
			CarrierPeriod: time.Millisecond,
			PWMSteps:      100,
			InitialDuty:   50,
		},
		Control: ControlConfig{
			Listen: ":8080",
		},
		Telemetry: TelemetryConfig{
			Interval: 1 * time.Second,
		},
	}
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	// Unmarshal over the defaults so absent keys keep them; a YAML zero
	// (e.g. initial_duty: 0) is still an explicit setting.
	cfg := defaults()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	if cfg.Drive.Chip == "" {
		return Config{}, fmt.Errorf("drive.chip is required")
	}
	if cfg.Drive.PWMLine < 0 || cfg.Drive.MeasLine < 0 {
		return Config{}, fmt.Errorf("drive.pwm_line and drive.meas_line must be >= 0")
	}
	if cfg.Drive.PWMLine == cfg.Drive.MeasLine {
		return Config{}, fmt.Errorf("drive.pwm_line and drive.meas_line must differ")
	}
	if cfg.Drive.CarrierPeriod <= 0 {
		return Config{}, fmt.Errorf("drive.carrier_period must be > 0")
	}
	if cfg.Drive.PWMSteps < 1 || cfg.Drive.PWMSteps > 1000 {
		return Config{}, fmt.Errorf("drive.pwm_steps must be in 1..1000")
	}
	if cfg.Drive.CarrierPeriod/time.Duration(cfg.Drive.PWMSteps) < time.Microsecond {
		return Config{}, fmt.Errorf("drive.carrier_period/%d yields a sub-microsecond tick", cfg.Drive.PWMSteps)
	}
	if cfg.Drive.InitialDuty < 0 || cfg.Drive.InitialDuty > 100 {
		return Config{}, fmt.Errorf("drive.initial_duty must be in 0..100")
	}
	if cfg.Drive.RTPriority < 0 || cfg.Drive.RTPriority > 99 {
		return Config{}, fmt.Errorf("drive.rt_priority must be in 0..99")
	}

	if cfg.Control.Listen == "" {
		return Config{}, fmt.Errorf("control.listen is required")
	}

	if cfg.Telemetry.Enable {
		if cfg.Telemetry.Dest == "" {
			return Config{}, fmt.Errorf("telemetry.dest is required when telemetry.enable is true")
		}
		if cfg.Telemetry.Interval <= 0 {
			return Config{}, fmt.Errorf("telemetry.interval must be > 0")
		}
	}

	return cfg, nil
}
