// Package report assembles analysis results and renders them for people and
// programs.
package report

import (
	"github.com/google/uuid"

	"github.com/cleared-dev/txrisk/internal/cycle"
	"github.com/cleared-dev/txrisk/internal/graph"
	"github.com/cleared-dev/txrisk/internal/risk"
)

// Result is the outcome of one analysis run.
type Result struct {
	RunID         string          `json:"run_id" yaml:"run_id"`
	AccountCount  int             `json:"account_count" yaml:"account_count"`
	EdgeCount     int             `json:"edge_count" yaml:"edge_count"`
	CycleDetected bool            `json:"cycle_detected" yaml:"cycle_detected"`
	Cycle         []string        `json:"cycle,omitempty" yaml:"cycle,omitempty"` // first cycle found, in path order
	CycleMode     string          `json:"cycle_mode" yaml:"cycle_mode"`
	Threshold     float64         `json:"threshold" yaml:"threshold"`
	Accounts      []AccountReport `json:"accounts" yaml:"accounts"`
}

// AccountReport is the per-account line of a Result.
type AccountReport struct {
	Name          string  `json:"name" yaml:"name"`
	TotalOutgoing float64 `json:"total_outgoing" yaml:"total_outgoing"`
	OutDegree     int     `json:"out_degree" yaml:"out_degree"`
	HighVolume    bool    `json:"high_volume" yaml:"high_volume"`
	InCycle       bool    `json:"in_cycle" yaml:"in_cycle"`
	Score         float64 `json:"score" yaml:"score"`
}

// Analyze runs cycle detection and risk scoring over a finished graph.
// The graph is not modified.
func Analyze(g *graph.Graph, scorer *risk.Scorer) Result {
	cfg := scorer.Config()
	res := Result{
		RunID:        uuid.NewString(),
		AccountCount: g.Len(),
		EdgeCount:    g.EdgeCount(),
		CycleMode:    string(cfg.Mode),
		Threshold:    cfg.Threshold,
	}

	if path := cycle.FindCycle(g); path != nil {
		res.CycleDetected = true
		for _, i := range path {
			res.Cycle = append(res.Cycle, g.Account(i).Name)
		}
	}

	scores := scorer.Score(g)
	res.Accounts = make([]AccountReport, len(scores))
	for i, s := range scores {
		res.Accounts[i] = AccountReport{
			Name:          s.Name,
			TotalOutgoing: s.TotalOutgoing,
			OutDegree:     g.Account(i).OutDegree(),
			HighVolume:    s.HighVolume,
			InCycle:       s.InCycle,
			Score:         s.Value,
		}
	}
	return res
}

// Flagged returns the accounts with a non-zero score.
func (r Result) Flagged() []AccountReport {
	var out []AccountReport
	for _, a := range r.Accounts {
		if a.Score > 0 {
			out = append(out, a)
		}
	}
	return out
}
