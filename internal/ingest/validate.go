package ingest

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/txrisk/internal/model"
)

// ValidationError describes a rejected input row.
type ValidationError struct {
	Row    int
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("row %d: %s: %s", e.Row, e.Field, e.Reason)
}

// validate rejects blank account names and negative amounts.
// Zero amounts are accepted. Names are matched exactly, so they are not
// trimmed or case-folded here.
func validate(row int, tx model.Transaction, amount decimal.Decimal) error {
	if strings.TrimSpace(tx.Sender) == "" {
		return ValidationError{Row: row, Field: "sender", Reason: "account name is empty"}
	}
	if strings.TrimSpace(tx.Receiver) == "" {
		return ValidationError{Row: row, Field: "receiver", Reason: "account name is empty"}
	}
	if amount.IsNegative() {
		return ValidationError{Row: row, Field: "amount", Reason: fmt.Sprintf("amount %s is negative", amount)}
	}
	return nil
}

// Validate checks transactions built in code (not parsed from a file).
// Row numbers in errors are 1-based positions in txns.
func Validate(txns []model.Transaction) error {
	for i, tx := range txns {
		if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
			return ValidationError{Row: i + 1, Field: "amount", Reason: "amount is not a finite number"}
		}
		if err := validate(i+1, tx, decimal.NewFromFloat(tx.Amount)); err != nil {
			return err
		}
	}
	return nil
}
