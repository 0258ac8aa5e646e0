package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ising-sim/ising-sim/sim"
	"github.com/ising-sim/ising-sim/sim/experiment"
)

// RangeConfig is a temperature range section of the experiment file.
type RangeConfig struct {
	Start float64 `yaml:"t_start"`
	End   float64 `yaml:"t_end"`
	Step  float64 `yaml:"t_step"`
}

// SeriesConfig configures one observable sweep (magnetization or heat).
type SeriesConfig struct {
	Sizes       []int `yaml:"sizes"`
	RangeConfig `yaml:",inline"`
}

// SnapshotConfig configures the spin-configuration snapshots.
type SnapshotConfig struct {
	Sizes        []int     `yaml:"sizes"`
	Temperatures []float64 `yaml:"temperatures"`
}

// ScheduleConfig is the sweep protocol.
type ScheduleConfig struct {
	Sweeps        int `yaml:"sweeps"`
	Equilibration int `yaml:"equilibration"`
	Stride        int `yaml:"stride"`
}

// Config represents the full experiment YAML structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Schedule      ScheduleConfig `yaml:"schedule"`
	Magnetization SeriesConfig   `yaml:"magnetization"`
	Heat          SeriesConfig   `yaml:"heat"`
	Snapshots     SnapshotConfig `yaml:"snapshots"`
}

// DefaultConfig returns the compiled-in experiment.
func DefaultConfig() Config {
	return Config{
		Schedule: ScheduleConfig{Sweeps: 230000, Equilibration: 30000, Stride: 100},
		Magnetization: SeriesConfig{
			Sizes:       []int{5, 10, 30, 60},
			RangeConfig: RangeConfig{Start: 1.5, End: 3.5, Step: 0.01},
		},
		Heat: SeriesConfig{
			Sizes:       []int{8, 16, 36},
			RangeConfig: RangeConfig{Start: 1.0, End: 3.5, Step: 0.01},
		},
		Snapshots: SnapshotConfig{
			Sizes:        []int{8, 16, 35},
			Temperatures: []float64{1.0, 2.26, 10},
		},
	}
}

// LoadConfig overlays the YAML file at path onto DefaultConfig.
// Uses strict field checking: unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading experiment config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing experiment config: %w", err)
	}
	return cfg, nil
}

// Range converts a RangeConfig to an experiment.TemperatureRange.
func (r RangeConfig) Range() experiment.TemperatureRange {
	return experiment.TemperatureRange{Start: r.Start, End: r.End, Step: r.Step}
}

// ExperimentSchedule converts the schedule section.
func (c Config) ExperimentSchedule() experiment.Schedule {
	return experiment.Schedule{
		Sweeps:        c.Schedule.Sweeps,
		Equilibration: c.Schedule.Equilibration,
		Stride:        c.Schedule.Stride,
	}
}

// Series returns the section for obs.
func (c Config) Series(obs sim.Observable) SeriesConfig {
	if obs == sim.ObservableHeat {
		return c.Heat
	}
	return c.Magnetization
}

// Validate checks every section.
func (c Config) Validate() error {
	s := c.ExperimentSchedule()
	// Any valid point exercises the schedule checks.
	if err := s.Params(1, 1).Validate(); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	for _, obs := range []sim.Observable{sim.ObservableMagnetization, sim.ObservableHeat} {
		series := c.Series(obs)
		if err := validateSizes(obs.String()+".sizes", series.Sizes); err != nil {
			return err
		}
		if err := series.Range().Validate(); err != nil {
			return fmt.Errorf("%s: %w", obs, err)
		}
	}
	if err := validateSizes("snapshots.sizes", c.Snapshots.Sizes); err != nil {
		return err
	}
	for i, t := range c.Snapshots.Temperatures {
		if !(t > 0) {
			return fmt.Errorf("snapshots.temperatures[%d] must be positive, got %v", i, t)
		}
	}
	return nil
}

func validateSizes(field string, sizes []int) error {
	for i, l := range sizes {
		if l < 1 {
			return fmt.Errorf("%s[%d] must be >= 1, got %d", field, i, l)
		}
	}
	return nil
}
