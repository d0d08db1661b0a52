package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avasek/smesim/internal/sde"
)

const (
	DefaultDim          = 2
	DefaultCoupling     = 1.0
	DefaultSteps        = 64
	DefaultHorizon      = 1.0
	DefaultTrajectories = 256
)

// Config describes one convergence study: the physical system, the grid,
// and the batch size.
type Config struct {
	Scheme       string  `yaml:"scheme"`
	Dim          int     `yaml:"dim"`
	Coupling     float64 `yaml:"coupling"`
	NTherm       float64 `yaml:"n_therm"`
	MSqRe        float64 `yaml:"m_sq_re"`
	MSqIm        float64 `yaml:"m_sq_im"`
	Omega        float64 `yaml:"omega"`
	InitState    string  `yaml:"init_state"`
	Steps        int     `yaml:"steps"`
	Horizon      float64 `yaml:"horizon"`
	Trajectories int     `yaml:"trajectories"`
	Workers      int     `yaml:"workers"`
	Seed         int64   `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Scheme:       "milstein",
		Dim:          DefaultDim,
		Coupling:     DefaultCoupling,
		InitState:    "excited",
		Steps:        DefaultSteps,
		Horizon:      DefaultHorizon,
		Trajectories: DefaultTrajectories,
		Workers:      1,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the study could not run: the grid needs
// double coarsening, the bath must keep the homodyne coupling normalizable,
// and the Hilbert space needs at least two levels.
func (c *Config) Validate() error {
	if c.Dim < 2 {
		return fmt.Errorf("%w: dim %d, need at least a qubit", sde.ErrDimensionMismatch, c.Dim)
	}
	if c.Steps < 4 || c.Steps%4 != 0 {
		return fmt.Errorf("%w: %d steps, need a positive multiple of 4", sde.ErrInvalidGrid, c.Steps)
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("%w: horizon %g must be positive", sde.ErrInvalidGrid, c.Horizon)
	}
	if c.NTherm < 0 {
		return fmt.Errorf("%w: n_therm %g must be non-negative", sde.ErrDegenerate, c.NTherm)
	}
	if 2*(c.MSqRe+c.NTherm)+1 <= 0 {
		return fmt.Errorf("%w: 2(m_sq_re + n_therm) + 1 must be positive", sde.ErrDegenerate)
	}
	if c.Trajectories < 0 {
		return fmt.Errorf("%w: trajectories %d must be non-negative", sde.ErrDimensionMismatch, c.Trajectories)
	}
	return nil
}

// MSq assembles the complex squeezing parameter from its yaml components.
func (c *Config) MSq() complex128 {
	return complex(c.MSqRe, c.MSqIm)
}
