package table

import (
	"errors"
	"strings"
	"testing"
)

const sampleDump = `Hardware Vendor,System,Processor,Result,Baseline
Dell Inc.,PowerEdge R760,Intel Xeon Gold 6444Y,540,498
HPE,ProLiant DL380,AMD EPYC 9334,1020,980
"Lenovo, Inc.",ThinkSystem SR650,Intel Xeon Platinum,760,710
`

func TestScanner_Rows(t *testing.T) {
	s := NewScanner(strings.NewReader(sampleDump))

	var rows []Row
	for s.Scan() {
		rows = append(rows, s.Row())
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows: got %d, want 3", len(rows))
	}

	// Order is preserved and values keyed by header label.
	if got := rows[0]["Hardware Vendor"]; got != "Dell Inc." {
		t.Errorf("row 0 vendor: got %q", got)
	}
	if got := rows[1]["Result"]; got != "1020" {
		t.Errorf("row 1 result: got %q", got)
	}
	// Quoted field with an embedded comma stays one field.
	if got := rows[2]["Hardware Vendor"]; got != "Lenovo, Inc." {
		t.Errorf("row 2 vendor: got %q", got)
	}

	wantHeader := []string{"Hardware Vendor", "System", "Processor", "Result", "Baseline"}
	header := s.Header()
	if len(header) != len(wantHeader) {
		t.Fatalf("header: got %v", header)
	}
	for i := range wantHeader {
		if header[i] != wantHeader[i] {
			t.Errorf("header[%d]: got %q, want %q", i, header[i], wantHeader[i])
		}
	}
}

func TestScanner_TrimsWhitespace(t *testing.T) {
	s := NewScanner(strings.NewReader("A, B \nx , y\n"))
	if !s.Scan() {
		t.Fatalf("Scan() = false, err = %v", s.Err())
	}
	row := s.Row()
	if got := row["B"]; got != "y" {
		t.Errorf("padded header/value not trimmed: %q", got)
	}
	if got := row["A"]; got != "x" {
		t.Errorf("trailing space not trimmed: %q", got)
	}
}

func TestScanner_MissingHeader(t *testing.T) {
	s := NewScanner(strings.NewReader(""))
	if s.Scan() {
		t.Fatal("Scan() on empty input = true")
	}

	var perr *ParseError
	if !errors.As(s.Err(), &perr) {
		t.Fatalf("Err() = %v, want *ParseError", s.Err())
	}
	if perr.Line != 0 {
		t.Errorf("missing header line number: got %d, want 0", perr.Line)
	}
}

func TestScanner_HeaderOnly(t *testing.T) {
	s := NewScanner(strings.NewReader("Hardware Vendor,System\n"))
	if s.Scan() {
		t.Fatal("Scan() with no data rows = true")
	}
	if err := s.Err(); err != nil {
		t.Fatalf("header-only dump is valid, got %v", err)
	}
}

func TestScanner_RaggedRow(t *testing.T) {
	dump := "A,B,C\n1,2,3\n4,5\n6,7,8\n"
	s := NewScanner(strings.NewReader(dump))

	if !s.Scan() {
		t.Fatalf("first row: Scan() = false, err = %v", s.Err())
	}
	if s.Scan() {
		t.Fatal("ragged row accepted")
	}

	var perr *ParseError
	if !errors.As(s.Err(), &perr) {
		t.Fatalf("Err() = %v, want *ParseError", s.Err())
	}
	if perr.Line != 3 {
		t.Errorf("ragged line number: got %d, want 3", perr.Line)
	}

	// The scan stays failed; no further rows are emitted.
	if s.Scan() {
		t.Fatal("Scan() after failure = true")
	}
}

func TestReadAll(t *testing.T) {
	rows, err := ReadAll(strings.NewReader(sampleDump))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("rows: got %d, want 3", len(rows))
	}

	if _, err := ReadAll(strings.NewReader("A,B\n1\n")); err == nil {
		t.Error("ReadAll() accepted ragged dump")
	}
}
