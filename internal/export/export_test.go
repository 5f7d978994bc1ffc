package export

import (
	"strings"
	"testing"
	"time"

	"github.com/michelderooij/exchangepqt/internal/sizing"
)

// sliceSource serves records from memory; it stands in for *pipeline.Results.
type sliceSource struct {
	recs []sizing.Record
	i    int
}

func (s *sliceSource) Next() bool {
	if s.i >= len(s.recs) {
		return false
	}
	s.i++
	return true
}

func (s *sliceSource) Record() sizing.Record { return s.recs[s.i-1] }

func sampleRecords() []sizing.Record {
	return []sizing.Record{
		{
			Vendor: "Dell Inc.", System: "PowerEdge R760", CPU: "Intel Xeon Gold 6444Y",
			Cores: 16, Chips: 2, CoresPerChip: 8, SpeedMHz: 2000,
			OS: "Windows Server 2022", Result: 540, ResultPerCore: 33.75,
			Baseline: 498, MCyclesPerCore: 2000, MCyclesTotal: 32000,
			Published: time.Date(2017, time.July, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Vendor: "HPE", System: "ProLiant DL380 Gen11", CPU: "AMD EPYC 9334",
			Cores: 32, Chips: 1, CoresPerChip: 32, SpeedMHz: 2700,
			OS: "Windows Server 2022", Result: 1080, ResultPerCore: 33.75,
			Baseline: 1010, MCyclesPerCore: 2000, MCyclesTotal: 64000,
			Published: time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestWriteCSV_DefaultFields(t *testing.T) {
	var buf strings.Builder
	n, err := WriteCSV(&buf, sizing.DefaultFields, &sliceSource{recs: sampleRecords()})
	if err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if n != 2 {
		t.Errorf("records written: got %d, want 2", n)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines: got %d, want header + 2 records", len(lines))
	}
	if lines[0] != "Vendor,System,Cores,Chips,CoresPerChip,Speed,Result,Published" {
		t.Errorf("header: got %q", lines[0])
	}
	if lines[1] != "Dell Inc.,PowerEdge R760,16,2,8,2000,540.00,2017-07-01" {
		t.Errorf("record 0: got %q", lines[1])
	}
}

func TestWriteCSV_AllFields(t *testing.T) {
	var buf strings.Builder
	if _, err := WriteCSV(&buf, sizing.AllFields, &sliceSource{recs: sampleRecords()}); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	out := buf.String()

	// Non-default fields appear too.
	for _, want := range []string{"MCyclesTotal", "32000.00", "64000.00", "Windows Server 2022"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestWriteTable(t *testing.T) {
	var buf strings.Builder
	n, err := WriteTable(&buf, sizing.DefaultFields, &sliceSource{recs: sampleRecords()})
	if err != nil {
		t.Fatalf("WriteTable() error = %v", err)
	}
	if n != 2 {
		t.Errorf("records written: got %d, want 2", n)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines: got %d, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Vendor") || !strings.Contains(lines[0], "Published") {
		t.Errorf("header row: got %q", lines[0])
	}
	if !strings.Contains(lines[2], "ProLiant DL380 Gen11") {
		t.Errorf("record row: got %q", lines[2])
	}
}

func TestWrite_EmptyStream(t *testing.T) {
	var buf strings.Builder
	n, err := WriteCSV(&buf, sizing.DefaultFields, &sliceSource{})
	if err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if n != 0 {
		t.Errorf("records written: got %d, want 0", n)
	}
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Errorf("empty stream should still render the header, got %d lines", got)
	}
}
