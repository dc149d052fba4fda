package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Formats lists the supported output formats.
var Formats = []string{"text", "json", "yaml", "csv"}

// Write renders res in the named format.
func Write(w io.Writer, format string, res Result) error {
	switch strings.ToLower(format) {
	case "", "text":
		return WriteText(w, res)
	case "json":
		return WriteJSON(w, res)
	case "yaml":
		return WriteYAML(w, res)
	case "csv":
		return WriteCSV(w, res)
	default:
		return fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// money formats v with two decimals. Non-finite values cannot become a
// Decimal and are printed as-is.
func money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// WriteText writes the human-readable report.
func WriteText(w io.Writer, res Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Accounts in system: %d\n", res.AccountCount)
	for _, a := range res.Accounts {
		fmt.Fprintf(&b, "Account %-5s | Total Outgoing: %s\n", a.Name, money(a.TotalOutgoing))
	}

	if res.CycleDetected {
		path := append(append([]string(nil), res.Cycle...), res.Cycle[0])
		fmt.Fprintf(&b, "\nSuspicious cycle detected: %s\n", strings.Join(path, " -> "))
	} else {
		b.WriteString("\nNo cycles detected.\n")
	}

	b.WriteString("\n--- Risk Scores ---\n")
	for _, a := range res.Accounts {
		fmt.Fprintf(&b, "Account %-5s | Total Out: %s | Risk Score: %s\n", a.Name, money(a.TotalOutgoing), money(a.Score))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON writes res as indented JSON.
func WriteJSON(w io.Writer, res Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// WriteYAML writes res as YAML.
func WriteYAML(w io.Writer, res Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// CSVHeader is the header row of the per-account CSV report.
const CSVHeader = "account,total_outgoing,out_degree,high_volume,in_cycle,score"

// WriteCSV writes one row per account.
func WriteCSV(w io.Writer, res Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(CSVHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, a := range res.Accounts {
		row := []string{
			a.Name,
			money(a.TotalOutgoing),
			strconv.Itoa(a.OutDegree),
			strconv.FormatBool(a.HighVolume),
			strconv.FormatBool(a.InCycle),
			money(a.Score),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
