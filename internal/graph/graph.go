package graph

import (
	"errors"
	"fmt"
	"math"

	"github.com/cleared-dev/txrisk/internal/model"
)

// ErrNonFiniteAmount is returned when an amount, or the sender's running
// outgoing total, is NaN or infinite.
var ErrNonFiniteAmount = errors.New("amount is not finite")

// Graph is a directed multigraph of transactions between accounts.
// Every edge points at a registered account: both endpoints are resolved
// before an edge is appended.
type Graph struct {
	reg   *Registry
	edges int
}

// New creates an empty Graph holding at most maxAccounts accounts (0 = unbounded).
func New(maxAccounts int) *Graph {
	return &Graph{reg: NewRegistry(maxAccounts)}
}

// AddTransaction records a transfer from sender to receiver.
// Self-transfers are allowed and produce a self-loop. A non-finite amount or
// outgoing total is rejected before any account is registered.
func (g *Graph) AddTransaction(sender, receiver string, amount float64) error {
	if !finite(amount) {
		return fmt.Errorf("amount %v: %w", amount, ErrNonFiniteAmount)
	}
	if idx, ok := g.reg.Find(sender); ok {
		if total := g.reg.accounts[idx].TotalOutgoing + amount; !finite(total) {
			return fmt.Errorf("outgoing total of %q: %w", sender, ErrNonFiniteAmount)
		}
	}

	u, err := g.reg.GetOrCreate(sender)
	if err != nil {
		return fmt.Errorf("adding sender: %w", err)
	}
	v, err := g.reg.GetOrCreate(receiver)
	if err != nil {
		return fmt.Errorf("adding receiver: %w", err)
	}

	acct := &g.reg.accounts[u]
	acct.Edges = append(acct.Edges, model.Edge{To: v, Amount: amount})
	acct.TotalOutgoing += amount
	g.edges++
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// AddAll ingests txns in order and stops at the first failure.
func (g *Graph) AddAll(txns []model.Transaction) error {
	for i, tx := range txns {
		if err := g.AddTransaction(tx.Sender, tx.Receiver, tx.Amount); err != nil {
			return fmt.Errorf("transaction %d: %w", i+1, err)
		}
	}
	return nil
}

// Len returns the number of accounts.
func (g *Graph) Len() int {
	return g.reg.Len()
}

// EdgeCount returns the number of edges (one per ingested transaction).
func (g *Graph) EdgeCount() int {
	return g.edges
}

// MaxAccounts returns the account limit, 0 if unbounded.
func (g *Graph) MaxAccounts() int {
	return g.reg.MaxAccounts()
}

// Account returns the account at index i. It panics if i is out of range.
func (g *Graph) Account(i int) model.Account {
	a := g.reg.accounts[i]
	a.Edges = append([]model.Edge(nil), a.Edges...)
	return a
}

// Lookup returns the account with exactly this name.
func (g *Graph) Lookup(name string) (model.Account, bool) {
	idx, ok := g.reg.Find(name)
	if !ok {
		return model.Account{}, false
	}
	return g.Account(idx), true
}

// Accounts returns a copy of all accounts in index order.
func (g *Graph) Accounts() []model.Account {
	out := make([]model.Account, g.Len())
	for i := range out {
		out[i] = g.Account(i)
	}
	return out
}

// Edges returns the outgoing edges of account i in insertion order.
// The returned slice must not be modified.
func (g *Graph) Edges(i int) []model.Edge {
	return g.reg.accounts[i].Edges
}
