package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row is one parsed data line, keyed by header column label.
// Rows are ephemeral: the scanner reuses nothing, but consumers are expected
// to evaluate a row and move on rather than retain the whole dump.
type Row map[string]string

// ParseError reports a structurally invalid dump: a missing header line or
// a data line whose field count does not match the header's.
type ParseError struct {
	Line   int // 1-based line number; 0 when the header itself is missing
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return "parse dump: " + e.Reason
	}
	return fmt.Sprintf("parse dump: line %d: %s", e.Line, e.Reason)
}

// Scanner streams rows from a CSV dump one data line at a time, following
// the bufio.Scanner idiom: Scan advances, Row returns the current record,
// Err reports the first fatal error once Scan returns false.
type Scanner struct {
	r      *csv.Reader
	header []string
	line   int
	row    Row
	err    error
	done   bool
}

// NewScanner returns a Scanner reading the dump from r. The header line is
// consumed on the first call to Scan.
func NewScanner(r io.Reader) *Scanner {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	// Field count consistency is checked against the header manually so the
	// error can carry a line number.
	cr.FieldsPerRecord = -1
	return &Scanner{r: cr}
}

// Scan advances to the next data row. It returns false at end of input or
// on the first error; check Err afterwards.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}

	if s.header == nil {
		if !s.readHeader() {
			return false
		}
	}

	fields, err := s.r.Read()
	if err != nil {
		s.done = true
		if !errors.Is(err, io.EOF) {
			s.err = s.wrap(err)
		}
		return false
	}
	s.line++

	if len(fields) != len(s.header) {
		s.done = true
		s.err = &ParseError{
			Line:   s.line,
			Reason: fmt.Sprintf("%d fields, header has %d", len(fields), len(s.header)),
		}
		return false
	}

	row := make(Row, len(s.header))
	for i, label := range s.header {
		row[label] = strings.TrimSpace(fields[i])
	}
	s.row = row
	return true
}

// Row returns the row read by the last successful Scan.
func (s *Scanner) Row() Row { return s.row }

// Err returns the first error encountered, nil on clean end of input.
func (s *Scanner) Err() error { return s.err }

// Header returns the column labels, or nil before the first Scan.
func (s *Scanner) Header() []string { return s.header }

func (s *Scanner) readHeader() bool {
	fields, err := s.r.Read()
	if err != nil {
		s.done = true
		if errors.Is(err, io.EOF) {
			s.err = &ParseError{Reason: "missing header line"}
		} else {
			s.err = s.wrap(err)
		}
		return false
	}
	s.line = 1
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = strings.TrimSpace(f)
	}
	s.header = header
	return true
}

// wrap converts csv syntax errors into *ParseError and passes transport
// errors from the underlying reader through unchanged.
func (s *Scanner) wrap(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.Line, Reason: csvErr.Err.Error()}
	}
	return fmt.Errorf("read dump: %w", err)
}

// ReadAll collects every row of the dump. Intended for small inputs and
// tests; the pipeline streams through Scanner instead.
func ReadAll(r io.Reader) ([]Row, error) {
	s := NewScanner(r)
	var rows []Row
	for s.Scan() {
		rows = append(rows, s.Row())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
