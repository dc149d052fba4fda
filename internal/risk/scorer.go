package risk

import (
	"fmt"

	"github.com/cleared-dev/txrisk/internal/cycle"
	"github.com/cleared-dev/txrisk/internal/model"
)

// CycleMode selects how the cycle penalty is decided.
type CycleMode string

const (
	// CycleModeReachable applies the penalty when a cycle is reachable from
	// the account, whether or not the account is on it.
	CycleModeReachable CycleMode = "reachable"
	// CycleModeMember applies the penalty only to accounts on a cycle.
	CycleModeMember CycleMode = "member"
)

// Defaults used when no configuration is given.
const (
	DefaultThreshold         = 10000.0
	DefaultHighVolumePenalty = 50.0
	DefaultCyclePenalty      = 50.0
)

// Config holds scoring parameters.
type Config struct {
	Threshold         float64
	HighVolumePenalty float64
	CyclePenalty      float64
	Mode              CycleMode
}

// DefaultConfig returns the standard scoring parameters.
func DefaultConfig() Config {
	return Config{
		Threshold:         DefaultThreshold,
		HighVolumePenalty: DefaultHighVolumePenalty,
		CyclePenalty:      DefaultCyclePenalty,
		Mode:              CycleModeReachable,
	}
}

// ParseCycleMode converts a config string to a CycleMode.
func ParseCycleMode(s string) (CycleMode, error) {
	switch CycleMode(s) {
	case "", CycleModeReachable:
		return CycleModeReachable, nil
	case CycleModeMember:
		return CycleModeMember, nil
	default:
		return "", fmt.Errorf("unknown cycle mode %q (want %q or %q)", s, CycleModeReachable, CycleModeMember)
	}
}

// Graph is the read-only view the scorer needs.
type Graph interface {
	cycle.Graph
	Account(i int) model.Account
}

// Score is the risk assessment of one account.
type Score struct {
	Index         int
	Name          string
	TotalOutgoing float64
	HighVolume    bool
	InCycle       bool
	Value         float64
}

// Scorer assigns risk scores to every account of a graph.
type Scorer struct {
	cfg Config
}

// NewScorer creates a Scorer. An empty Mode means CycleModeReachable.
func NewScorer(cfg Config) *Scorer {
	if cfg.Mode == "" {
		cfg.Mode = CycleModeReachable
	}
	return &Scorer{cfg: cfg}
}

// Config returns the parameters the scorer was built with.
func (s *Scorer) Config() Config {
	return s.cfg
}

// Score returns one Score per account, in index order.
func (s *Scorer) Score(g Graph) []Score {
	var members []bool
	if s.cfg.Mode == CycleModeMember {
		members = cycle.Members(g)
	}

	scores := make([]Score, g.Len())
	for i := range scores {
		acct := g.Account(i)
		sc := Score{
			Index:         i,
			Name:          acct.Name,
			TotalOutgoing: acct.TotalOutgoing,
		}

		if acct.TotalOutgoing >= s.cfg.Threshold {
			sc.HighVolume = true
			sc.Value += s.cfg.HighVolumePenalty
		}

		if members != nil {
			sc.InCycle = members[i]
		} else {
			sc.InCycle = cycle.HasCycleFrom(g, i)
		}
		if sc.InCycle {
			sc.Value += s.cfg.CyclePenalty
		}

		scores[i] = sc
	}
	return scores
}
