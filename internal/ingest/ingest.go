package ingest

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cleared-dev/txrisk/internal/model"
)

// Parser converts an input stream into transactions, preserving order.
type Parser interface {
	Parse(r io.Reader) ([]model.Transaction, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewCSVParser())
	r.Register(NewTSVParser())
	return r
}

// Read parses r with the named format.
func (r *Registry) Read(in io.Reader, format string) ([]model.Transaction, error) {
	p := r.Get(format)
	if p == nil {
		return nil, fmt.Errorf("unknown input format %q", format)
	}
	return p.Parse(in)
}

// ReadFile parses the file at path with the named format.
func (r *Registry) ReadFile(path, format string) ([]model.Transaction, error) {
	if r.Get(format) == nil {
		return nil, fmt.Errorf("unknown input format %q", format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	txns, err := r.Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return txns, nil
}

// FormatFromPath guesses the input format from a file extension,
// defaulting to csv.
func FormatFromPath(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return "tsv"
	}
	return "csv"
}
