package model

// Edge is a directed, weighted arc to the account at index To.
type Edge struct {
	To     int
	Amount float64
}

// Account is a named node in the transaction graph.
type Account struct {
	Name          string
	Index         int     // dense, assigned at first insertion
	TotalOutgoing float64 // sum of Amount over Edges
	Edges         []Edge  // insertion order
}

// OutDegree returns the number of outgoing edges.
func (a Account) OutDegree() int {
	return len(a.Edges)
}
