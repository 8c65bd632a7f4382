package sim

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Visit is one serviced request in a schedule.
// Index is the request's position in the arrival sequence. Via lists the
// track positions the head passes through, in order, before reaching the
// request (sweep boundaries, circular return); nil for a direct move.
type Visit struct {
	Index int
	Via   []int
}

// Policy orders a request set for service starting from head.
// Implementations MUST return every index of requests exactly once and
// MUST NOT modify requests. Ties are broken by arrival index for determinism.
type Policy interface {
	Order(head int, requests []int) []Visit
}

// Direction is the initial sweep direction for SCAN-family policies.
type Direction string

const (
	// DirectionAuto derives the direction from the request distribution.
	DirectionAuto Direction = ""
	// DirectionUp sweeps toward increasing track numbers first.
	DirectionUp Direction = "up"
	// DirectionDown sweeps toward track 0 first.
	DirectionDown Direction = "down"
)

var validDirections = map[Direction]bool{
	DirectionAuto: true,
	DirectionUp:   true,
	DirectionDown: true,
}

// IsValidDirection returns true if the given string is a recognized sweep
// direction, ignoring case.
func IsValidDirection(d string) bool {
	return validDirections[ParseDirection(d)]
}

// ParseDirection normalizes a user-supplied direction: "UP", " Up" and "up"
// are the same direction. Unrecognized input is returned lower-cased.
func ParseDirection(d string) Direction {
	return Direction(strings.ToLower(strings.TrimSpace(d)))
}

// UnmarshalYAML normalizes the direction while decoding, so configuration
// files may spell it in any case.
func (d *Direction) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*d = ParseDirection(raw)
	return nil
}

// PolicyConfig holds the tunable parameters shared by all policy factories.
// Zero values select defaults: automatic direction and an unbounded track space.
type PolicyConfig struct {
	Direction Direction `yaml:"direction"`
	// MaxTrack is the highest addressable track. 0 means unbounded; the upward
	// sweep boundary is then the highest pending request.
	MaxTrack int `yaml:"max_track"`
}

// Validate checks the direction name (case-insensitively) and track bound.
func (c PolicyConfig) Validate() error {
	if !IsValidDirection(string(c.Direction)) {
		return fmt.Errorf("unknown sweep direction %q", c.Direction)
	}
	if c.MaxTrack < 0 {
		return fmt.Errorf("max_track must be non-negative, got %d", c.MaxTrack)
	}
	return nil
}

// PolicyFactory builds a Policy from configuration.
type PolicyFactory func(cfg PolicyConfig) Policy

// Registry maps canonical policy names to their factories.
// Registration happens at startup before concurrent access, so no mutex is needed.
type Registry struct {
	factories map[string]PolicyFactory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]PolicyFactory)}
}

// CanonicalPolicyName normalizes a user-supplied policy name.
// Lookup is case-insensitive: "sstf", "Sstf" and "SSTF" name the same policy.
func CanonicalPolicyName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Register adds a factory under name. Panics on an empty name, a nil factory,
// or a duplicate registration; all three are programming errors.
func (r *Registry) Register(name string, factory PolicyFactory) {
	key := CanonicalPolicyName(name)
	if key == "" {
		panic("policy name must not be empty")
	}
	if factory == nil {
		panic(fmt.Sprintf("nil factory for policy %q", key))
	}
	if _, dup := r.factories[key]; dup {
		panic(fmt.Sprintf("policy %q registered twice", key))
	}
	r.factories[key] = factory
}

// IsValid returns true if name resolves to a registered policy.
func (r *Registry) IsValid(name string) bool {
	_, ok := r.factories[CanonicalPolicyName(name)]
	return ok
}

// New creates the named policy. Unknown names wrap ErrUnknownPolicy.
func (r *Registry) New(name string, cfg PolicyConfig) (Policy, error) {
	factory, ok := r.factories[CanonicalPolicyName(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q; valid policies: %v", ErrUnknownPolicy, name, r.Names())
	}
	return factory(cfg), nil
}

// Names returns the registered policy names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Built-in policy names.
const (
	PolicyFCFS          = "FCFS"
	PolicySSTF          = "SSTF"
	PolicySCAN          = "SCAN"
	PolicySCANAscending = "SCAN-ASC"
	PolicyLOOK          = "LOOK"
	PolicyCSCAN         = "C-SCAN"
	PolicyCLOOK         = "C-LOOK"
)

// ComparePolicies is the fixed policy set evaluated side by side by the
// comparison endpoints and the compare command.
var ComparePolicies = []string{PolicyFCFS, PolicySSTF, PolicySCAN}

// DefaultRegistry returns a new Registry holding every built-in policy.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(PolicyFCFS, func(PolicyConfig) Policy { return &FCFSPolicy{} })
	r.Register(PolicySSTF, func(PolicyConfig) Policy { return &SSTFPolicy{} })
	r.Register(PolicySCAN, func(cfg PolicyConfig) Policy {
		return &SCANPolicy{Direction: cfg.Direction, MaxTrack: cfg.MaxTrack}
	})
	r.Register(PolicySCANAscending, func(PolicyConfig) Policy { return &AscendingSCANPolicy{} })
	r.Register(PolicyLOOK, func(cfg PolicyConfig) Policy {
		return &LOOKPolicy{Direction: cfg.Direction}
	})
	r.Register(PolicyCSCAN, func(cfg PolicyConfig) Policy {
		return &CSCANPolicy{Direction: cfg.Direction, MaxTrack: cfg.MaxTrack}
	})
	r.Register(PolicyCLOOK, func(cfg PolicyConfig) Policy {
		return &CLOOKPolicy{Direction: cfg.Direction}
	})
	return r
}
