package graph

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/txrisk/internal/model"
)

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry(0)

	a, err := r.GetOrCreate("A")
	require.NoError(t, err)
	b, err := r.GetOrCreate("B")
	require.NoError(t, err)
	again, err := r.GetOrCreate("A")
	require.NoError(t, err)

	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
	assert.Equal(t, a, again)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_FindIsCaseSensitive(t *testing.T) {
	r := NewRegistry(0)
	_, err := r.GetOrCreate("alice")
	require.NoError(t, err)

	idx, ok := r.Find("alice")
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = r.Find("Alice")
	assert.False(t, ok)
}

func TestRegistry_Capacity(t *testing.T) {
	r := NewRegistry(2)
	_, err := r.GetOrCreate("A")
	require.NoError(t, err)
	_, err = r.GetOrCreate("B")
	require.NoError(t, err)

	// Existing names still resolve at the limit.
	_, err = r.GetOrCreate("A")
	require.NoError(t, err)

	_, err = r.GetOrCreate("C")
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Contains(t, err.Error(), `"C"`)
	assert.Equal(t, 2, r.Len())
	_, ok := r.Find("C")
	assert.False(t, ok)
}

func TestRegistry_NegativeLimitIsUnbounded(t *testing.T) {
	r := NewRegistry(-5)
	assert.Equal(t, 0, r.MaxAccounts())
	for i := 0; i < 500; i++ {
		_, err := r.GetOrCreate(fmt.Sprintf("acct-%d", i))
		require.NoError(t, err)
	}
	assert.Equal(t, 500, r.Len())
}

func TestAddTransaction_Totals(t *testing.T) {
	g := New(0)
	require.NoError(t, g.AddTransaction("A", "B", 100))
	require.NoError(t, g.AddTransaction("A", "C", 50.5))
	require.NoError(t, g.AddTransaction("B", "A", 20))

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 3, g.EdgeCount())

	a, ok := g.Lookup("A")
	require.True(t, ok)
	assert.InDelta(t, 150.5, a.TotalOutgoing, 1e-9)
	assert.Equal(t, []model.Edge{{To: 1, Amount: 100}, {To: 2, Amount: 50.5}}, a.Edges)

	c, ok := g.Lookup("C")
	require.True(t, ok)
	assert.Zero(t, c.TotalOutgoing)
	assert.Empty(t, c.Edges)
}

func TestAddTransaction_ParallelEdgesKept(t *testing.T) {
	g := New(0)
	require.NoError(t, g.AddTransaction("A", "B", 10))
	require.NoError(t, g.AddTransaction("A", "B", 10))

	assert.Len(t, g.Edges(0), 2)
	assert.InDelta(t, 20.0, g.Account(0).TotalOutgoing, 1e-9)
}

func TestAddTransaction_SelfLoop(t *testing.T) {
	g := New(0)
	require.NoError(t, g.AddTransaction("X", "X", 100))

	assert.Equal(t, 1, g.Len())
	assert.Equal(t, []model.Edge{{To: 0, Amount: 100}}, g.Edges(0))
	assert.InDelta(t, 100.0, g.Account(0).TotalOutgoing, 1e-9)
}

func TestAddTransaction_IndicesInInsertionOrder(t *testing.T) {
	g := New(0)
	require.NoError(t, g.AddTransaction("D", "B", 1))
	require.NoError(t, g.AddTransaction("C", "D", 1))
	require.NoError(t, g.AddTransaction("A", "C", 1))

	var names []string
	for i, a := range g.Accounts() {
		assert.Equal(t, i, a.Index)
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"D", "B", "C", "A"}, names)
}

func TestAddAll_DistinctNameCountAndTotals(t *testing.T) {
	txns := []model.Transaction{
		{Sender: "A", Receiver: "b", Amount: 1},
		{Sender: "a", Receiver: "B", Amount: 2},
		{Sender: "A", Receiver: "B", Amount: 3},
		{Sender: "b", Receiver: "A", Amount: 4},
		{Sender: "A", Receiver: "a", Amount: 5},
	}
	g := New(0)
	require.NoError(t, g.AddAll(txns))

	assert.Equal(t, 4, g.Len())

	want := map[string]float64{}
	for _, tx := range txns {
		want[tx.Sender] += tx.Amount
	}
	for _, a := range g.Accounts() {
		assert.InDelta(t, want[a.Name], a.TotalOutgoing, 1e-9, "account %s", a.Name)
	}
}

func TestAddAll_CapacityBoundary(t *testing.T) {
	g := New(3)
	err := g.AddAll([]model.Transaction{
		{Sender: "A", Receiver: "B", Amount: 1},
		{Sender: "B", Receiver: "C", Amount: 1}, // third account, at the limit
		{Sender: "C", Receiver: "A", Amount: 1},
		{Sender: "C", Receiver: "D", Amount: 1}, // fourth account
		{Sender: "D", Receiver: "A", Amount: 1},
	})
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Contains(t, err.Error(), "transaction 4")
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 3, g.EdgeCount())

	// The failed transaction leaves no partial edge or total behind.
	c, ok := g.Lookup("C")
	require.True(t, ok)
	assert.InDelta(t, 1.0, c.TotalOutgoing, 1e-9)
	assert.Len(t, c.Edges, 1)
}

func TestAddTransaction_NewSenderKeptWhenReceiverOverflows(t *testing.T) {
	g := New(1)
	err := g.AddTransaction("A", "B", 10)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Contains(t, err.Error(), "adding receiver")

	a, ok := g.Lookup("A")
	require.True(t, ok)
	assert.Zero(t, a.TotalOutgoing)
	assert.Empty(t, a.Edges)
}

func TestAccount_ReturnsCopy(t *testing.T) {
	g := New(0)
	require.NoError(t, g.AddTransaction("A", "B", 10))

	a := g.Account(0)
	a.Edges[0].Amount = 999
	a.TotalOutgoing = 999

	assert.InDelta(t, 10.0, g.Edges(0)[0].Amount, 1e-9)
	assert.InDelta(t, 10.0, g.Account(0).TotalOutgoing, 1e-9)
}

func TestAddTransaction_RejectsNonFinite(t *testing.T) {
	g := New(0)
	require.NoError(t, g.AddTransaction("A", "B", 1e308))

	err := g.AddTransaction("A", "C", 1e308)
	require.ErrorIs(t, err, ErrNonFiniteAmount)
	assert.Contains(t, err.Error(), `"A"`)

	// The overflowing transfer leaves no account, edge or total behind.
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, 1, g.EdgeCount())
	_, ok := g.Lookup("C")
	assert.False(t, ok)
	assert.InDelta(t, 1e308, g.Account(0).TotalOutgoing, 1e292)

	require.ErrorIs(t, g.AddTransaction("X", "Y", math.Inf(1)), ErrNonFiniteAmount)
	require.ErrorIs(t, g.AddTransaction("X", "Y", math.NaN()), ErrNonFiniteAmount)
	assert.Equal(t, 2, g.Len())
}
