package server

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/seek-sim/sim"
	"github.com/inference-sim/seek-sim/sim/workload"
)

// Dish request modes for the per-dish comparison endpoint.
const (
	// DishRequestsRandom generates a fresh random request set on every call
	// and ignores the dish id, matching the original mock service.
	DishRequestsRandom = "random"
	// DishRequestsFixture uses the ingredient positions of the dish fixture,
	// making the endpoint deterministic per dish.
	DishRequestsFixture = "fixture"
)

var validDishRequestModes = map[string]bool{"": true, DishRequestsRandom: true, DishRequestsFixture: true}

// Config is the server configuration, loadable from a YAML file.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Addr            string               `yaml:"addr"`
	ShutdownTimeout time.Duration        `yaml:"shutdown_timeout"`
	ComparePolicies []string             `yaml:"compare_policies"`
	Policy          sim.PolicyConfig     `yaml:"policy"`
	Requests        workload.RequestSpec `yaml:"requests"`
	MaxRequestCount int                  `yaml:"max_request_count"` // cap on ?count= and ?requests= length
	MaxListLimit    int                  `yaml:"max_list_limit"`    // cap on /order/recent?limit=
	DishRequests    string               `yaml:"dish_requests"`
	Fixtures        FixtureConfig        `yaml:"fixtures"`
}

// FixtureConfig holds the read-only lookup data served next to the planner.
// Empty sections fall back to the built-in defaults.
type FixtureConfig struct {
	Warehouse map[int]string `yaml:"warehouse"`
	Dishes    []Dish         `yaml:"dishes"`
	Orders    []OrderFixture `yaml:"orders"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Addr:            ":5000",
		ShutdownTimeout: 10 * time.Second,
		ComparePolicies: append([]string(nil), sim.ComparePolicies...),
		Requests:        workload.DefaultRequestSpec(),
		MaxRequestCount: 1000,
		MaxListLimit:    100,
		DishRequests:    DishRequestsRandom,
	}
}

// LoadConfig reads a YAML configuration file over DefaultConfig.
// Unknown keys are rejected so typos surface as errors.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading server config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing server config: %w", err)
	}
	return cfg, nil
}

// Validate checks policy names and parameter ranges against registry.
func (c *Config) Validate(registry *sim.Registry) error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown_timeout must be non-negative, got %s", c.ShutdownTimeout)
	}
	if len(c.ComparePolicies) == 0 {
		return fmt.Errorf("compare_policies must name at least one policy")
	}
	for _, name := range c.ComparePolicies {
		if !registry.IsValid(name) {
			return fmt.Errorf("compare_policies: %w %q", sim.ErrUnknownPolicy, name)
		}
	}
	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("policy: %w", err)
	}
	if err := c.Requests.Validate(); err != nil {
		return fmt.Errorf("requests: %w", err)
	}
	if c.Policy.MaxTrack > 0 && c.Requests.Max > c.Policy.MaxTrack {
		return fmt.Errorf("requests.max (%d) exceeds policy.max_track (%d)", c.Requests.Max, c.Policy.MaxTrack)
	}
	if c.MaxRequestCount <= 0 {
		return fmt.Errorf("max_request_count must be positive, got %d", c.MaxRequestCount)
	}
	if c.Requests.Count > c.MaxRequestCount {
		return fmt.Errorf("requests.count (%d) exceeds max_request_count (%d)", c.Requests.Count, c.MaxRequestCount)
	}
	if c.MaxListLimit <= 0 {
		return fmt.Errorf("max_list_limit must be positive, got %d", c.MaxListLimit)
	}
	if !validDishRequestModes[c.DishRequests] {
		return fmt.Errorf("unknown dish_requests mode %q", c.DishRequests)
	}
	return nil
}
