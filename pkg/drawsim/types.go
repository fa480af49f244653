package drawsim

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Draw structure constants for the 48-team format: 12 groups of 4, one team
// per pot in each group.
const (
	NumGroups     = 12
	NumPots       = 4
	TeamsPerPot   = 12
	TeamsPerGroup = NumPots
	PoolSize      = NumPots * TeamsPerPot
)

// Pot is a seeding tier, 1 through 4. Pots are drawn in order 1, 4, 3, 2.
type Pot int

// Valid reports whether the pot is in the 1..4 range.
func (p Pot) Valid() bool { return p >= 1 && p <= NumPots }

func (p Pot) String() string { return fmt.Sprintf("Pot %d", int(p)) }

// Group identifies one of the twelve groups A through L.
type Group int

// Valid reports whether the group is in the A..L range.
func (g Group) Valid() bool { return g >= 0 && g < NumGroups }

func (g Group) String() string {
	if !g.Valid() {
		return "?"
	}
	return string(rune('A' + g))
}

// ParseGroup parses a single group letter A-L.
func ParseGroup(s string) (Group, error) {
	if len(s) != 1 || s[0] < 'A' || s[0] > 'A'+NumGroups-1 {
		return 0, fmt.Errorf("unknown group %q (want A-%c)", s, 'A'+NumGroups-1)
	}
	return Group(s[0] - 'A'), nil
}

// MarshalText implements encoding.TextMarshaler.
func (g Group) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("invalid group %d", int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Group) UnmarshalText(text []byte) error {
	parsed, err := ParseGroup(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (g Group) MarshalYAML() (any, error) { return g.String(), nil }

// UnmarshalYAML implements yaml.Unmarshaler.
func (g *Group) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return g.UnmarshalText([]byte(s))
}

// Confederation is a regional federation code. The set is fixed, which keeps
// the per-group tally a small fixed-size array instead of an open map.
type Confederation int

const (
	AFC Confederation = iota
	CAF
	CONCACAF
	CONMEBOL
	OFC
	UEFA

	numConfederations
)

var confederationNames = [numConfederations]string{
	AFC:      "AFC",
	CAF:      "CAF",
	CONCACAF: "CONCACAF",
	CONMEBOL: "CONMEBOL",
	OFC:      "OFC",
	UEFA:     "UEFA",
}

// Valid reports whether the confederation is one of the six known codes.
func (c Confederation) Valid() bool { return c >= 0 && c < numConfederations }

func (c Confederation) String() string {
	if !c.Valid() {
		return "?"
	}
	return confederationNames[c]
}

// ParseConfederation parses a confederation code such as "UEFA" or "CONMEBOL".
func ParseConfederation(s string) (Confederation, error) {
	for i, name := range confederationNames {
		if name == s {
			return Confederation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown confederation %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Confederation) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid confederation %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Confederation) UnmarshalText(text []byte) error {
	parsed, err := ParseConfederation(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Confederation) MarshalYAML() (any, error) { return c.String(), nil }

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Confederation) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return c.UnmarshalText([]byte(s))
}

// Team is one entry of the draw pool. Playoff-derived entries carry two
// confederation codes; everyone else carries one. HostGroup is set only for
// the three hosts, whose group placement is fixed before the draw.
type Team struct {
	Name           string          `json:"name" yaml:"name"`
	Pot            Pot             `json:"pot" yaml:"pot"`
	Confederations []Confederation `json:"confederations" yaml:"confederations"`
	HostGroup      *Group          `json:"host_group,omitempty" yaml:"host_group,omitempty"`
}

// IsHost reports whether the team has a fixed group placement.
func (t Team) IsHost() bool { return t.HostGroup != nil }

// Caps holds the per-group confederation limits: UEFA may appear twice in a
// group, every other confederation at most once.
type Caps struct {
	UEFAMax  int `json:"uefa_max" yaml:"uefa_max"`
	OtherMax int `json:"other_max" yaml:"other_max"`
}

// DefaultCaps returns the FIFA 2026 cap structure.
func DefaultCaps() Caps {
	return Caps{UEFAMax: 2, OtherMax: 1}
}

// For returns the per-group limit for the given confederation.
func (c Caps) For(conf Confederation) int {
	if conf == UEFA {
		return c.UEFAMax
	}
	return c.OtherMax
}

// Combo is the canonical aggregation key for one draw outcome: the target
// team's three groupmates ordered by ascending pot. Because each group has
// exactly one team per pot, pot order is a total canonical order.
type Combo [NumPots - 1]string

// Less orders combos lexicographically slot by slot, giving the deterministic
// tie-break used when ranking equally probable outcomes.
func (c Combo) Less(other Combo) bool {
	for i := range c {
		if c[i] != other[i] {
			return c[i] < other[i]
		}
	}
	return false
}

// SimOptions configures the simulation run beyond the core request fields.
type SimOptions struct {
	// MaxAttempts bounds the engine's internal retries per draw.
	MaxAttempts int `json:"max_attempts"`
	// Workers is the number of parallel simulation workers. 1 preserves
	// replay identity of the full draw sequence; higher values keep the
	// aggregate frequencies deterministic for a fixed seed and worker
	// count, but redistribute which worker produced which draw.
	Workers int `json:"workers"`
	// TopK is the size of the top-combination subset in the result.
	TopK int `json:"top_k"`
	// LogEvery emits a progress log line every LogEvery draws; 0 disables.
	LogEvery int `json:"log_every"`
	// Logger receives progress output. Defaults to a no-op logger.
	Logger *zap.Logger `json:"-"`
}

// DefaultSimOptions returns the options used when the request leaves them
// unset.
func DefaultSimOptions() SimOptions {
	return SimOptions{
		MaxAttempts: 1000,
		Workers:     1,
		TopK:        100,
		LogEvery:    10000,
	}
}

// SimRequest contains everything needed to run a full simulation.
type SimRequest struct {
	Teams       []Team `json:"teams"`
	TargetTeam  string `json:"target_team"`
	Simulations int    `json:"simulations"`
	// Seed selects deterministic mode. A nil seed selects unseeded mode:
	// a fresh high-entropy seed is generated and reported in the result.
	Seed    *int64     `json:"seed,omitempty"`
	Caps    Caps       `json:"caps"`
	Options SimOptions `json:"options"`
}

// ComboProbability is one row of the ranked outcome table.
type ComboProbability struct {
	Combo       Combo   `json:"combo"`
	Frequency   int     `json:"frequency"`
	Probability float64 `json:"probability"`
}

// TeamMarginal is one row of a per-pot marginal table: the probability that
// the team lands in the target's group, regardless of the rest of the combo.
type TeamMarginal struct {
	Team        string  `json:"team"`
	Frequency   int     `json:"frequency"`
	Probability float64 `json:"probability"`
}

// Summary characterizes how concentrated or diffuse the outcome space is.
type Summary struct {
	Simulations         int     `json:"simulations"`
	DistinctCombos      int     `json:"distinct_combos"`
	MeanProbability     float64 `json:"mean_probability"`
	ProbabilityVariance float64 `json:"probability_variance"`
	// NormalizedEntropy is Shannon entropy over the combo distribution
	// divided by log(distinct combos): 0 fully concentrated, 1 uniform.
	NormalizedEntropy float64 `json:"normalized_entropy"`
	// TopKMass is the probability mass of the TopK most likely combos.
	TopKMass float64 `json:"top_k_mass"`
	TopK     int     `json:"top_k"`
	// GiniIndex is the concentration coefficient over combo probabilities:
	// 0 uniform, approaching 1 fully concentrated.
	GiniIndex float64 `json:"gini_index"`
	// UniformProbability is the 1/distinct baseline for comparison.
	UniformProbability float64 `json:"uniform_probability"`
}

// SimResult contains the output of a full simulation run.
type SimResult struct {
	TargetTeam  string `json:"target_team"`
	TargetPot   Pot    `json:"target_pot"`
	Simulations int    `json:"simulations"`
	// Seed is the seed that actually drove the run. Seeded distinguishes
	// an explicitly requested seed from one generated for unseeded mode.
	Seed   int64 `json:"seed"`
	Seeded bool  `json:"seeded"`

	Rankings  []ComboProbability     `json:"rankings"`
	TopK      []ComboProbability     `json:"top_k"`
	Marginals map[Pot][]TeamMarginal `json:"marginals"`
	Summary   Summary                `json:"summary"`

	ProcessingTime time.Duration `json:"processing_time"`
}
