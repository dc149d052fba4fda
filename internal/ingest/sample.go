package ingest

import "github.com/cleared-dev/txrisk/internal/model"

// Sample returns the built-in demonstration data: two disjoint three-account
// cycles (one below and one above the volume threshold) and an acyclic
// high-volume fan-out.
func Sample() []model.Transaction {
	return []model.Transaction{
		{Sender: "A", Receiver: "B", Amount: 5000},
		{Sender: "B", Receiver: "C", Amount: 4500},
		{Sender: "C", Receiver: "A", Amount: 4000},

		{Sender: "D", Receiver: "E", Amount: 20000},
		{Sender: "E", Receiver: "F", Amount: 18000},
		{Sender: "F", Receiver: "D", Amount: 15000},

		{Sender: "M", Receiver: "N", Amount: 15000},
		{Sender: "M", Receiver: "O", Amount: 12000},
	}
}
