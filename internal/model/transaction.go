package model

// Transaction is one directed transfer from Sender to Receiver.
type Transaction struct {
	Sender   string
	Receiver string
	Amount   float64 // non-negative
}
