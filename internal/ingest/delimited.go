package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/txrisk/internal/model"
)

// Header is the header row of a transactions file.
const Header = "sender,receiver,amount"

const (
	numFields   = 3
	colSender   = 0
	colReceiver = 1
	colAmount   = 2
)

// DelimitedParser reads header-prefixed sender,receiver,amount rows.
type DelimitedParser struct {
	format string
	comma  rune
}

// NewCSVParser returns a comma-separated parser.
func NewCSVParser() *DelimitedParser {
	return &DelimitedParser{format: "csv", comma: ','}
}

// NewTSVParser returns a tab-separated parser.
func NewTSVParser() *DelimitedParser {
	return &DelimitedParser{format: "tsv", comma: '\t'}
}

// Format returns the parser name.
func (p *DelimitedParser) Format() string { return p.format }

// Parse reads all rows and validates each one.
func (p *DelimitedParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.Comma = p.comma
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p.format, err)
	}

	if len(records) == 0 {
		return nil, nil
	}
	if err := checkHeader(records[0]); err != nil {
		return nil, err
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		tx, err := UnmarshalTransaction(i+2, rec)
		if err != nil {
			return nil, err
		}
		txns = append(txns, tx)
	}
	return txns, nil
}

// checkHeader rejects a first row that is not the expected header, so a
// headerless file does not silently lose its first transaction.
func checkHeader(rec []string) error {
	want := strings.Split(Header, ",")
	for i, col := range want {
		if !strings.EqualFold(strings.TrimSpace(rec[i]), col) {
			return ValidationError{
				Row:    1,
				Field:  "header",
				Reason: fmt.Sprintf("want columns %s, got %s", Header, strings.Join(rec, ",")),
			}
		}
	}
	return nil
}

// UnmarshalTransaction converts a record to a Transaction. row is the
// 1-based line number used in errors.
func UnmarshalTransaction(row int, record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("row %d: expected %d fields, got %d", row, numFields, len(record))
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(record[colAmount]))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("row %d: parsing amount %q: %w", row, record[colAmount], err)
	}

	f := amount.InexactFloat64()
	if math.IsInf(f, 0) {
		return model.Transaction{}, ValidationError{Row: row, Field: "amount", Reason: fmt.Sprintf("amount %s is out of range", record[colAmount])}
	}

	tx := model.Transaction{
		Sender:   record[colSender],
		Receiver: record[colReceiver],
		Amount:   f,
	}
	if err := validate(row, tx, amount); err != nil {
		return model.Transaction{}, err
	}
	return tx, nil
}

// MarshalTransaction converts a Transaction to a record.
func MarshalTransaction(tx model.Transaction) []string {
	row := make([]string, numFields)
	row[colSender] = tx.Sender
	row[colReceiver] = tx.Receiver
	row[colAmount] = decimal.NewFromFloat(tx.Amount).StringFixed(2)
	return row
}

// WriteCSV writes transactions as CSV, including the header.
func WriteCSV(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, tx := range txns {
		if err := cw.Write(MarshalTransaction(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
