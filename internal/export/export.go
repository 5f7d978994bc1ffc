package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/michelderooij/exchangepqt/internal/sizing"
)

// Source is the stream of records to render. *pipeline.Results satisfies it.
type Source interface {
	Next() bool
	Record() sizing.Record
}

// WriteCSV renders the stream as CSV with one column per requested field,
// header first. It returns the number of records written.
func WriteCSV(w io.Writer, fields []string, recs Source) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(fields); err != nil {
		return 0, fmt.Errorf("export: write header: %w", err)
	}

	var n int
	line := make([]string, len(fields))
	for recs.Next() {
		rec := recs.Record()
		for i, f := range fields {
			line[i] = rec.Field(f)
		}
		if err := cw.Write(line); err != nil {
			return n, fmt.Errorf("export: write record: %w", err)
		}
		n++
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return n, fmt.Errorf("export: flush: %w", err)
	}
	return n, nil
}

// WriteTable renders the stream as an aligned text table. It returns the
// number of records written.
func WriteTable(w io.Writer, fields []string, recs Source) (int, error) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(fields, "\t"))

	var n int
	line := make([]string, len(fields))
	for recs.Next() {
		rec := recs.Record()
		for i, f := range fields {
			line[i] = rec.Field(f)
		}
		fmt.Fprintln(tw, strings.Join(line, "\t"))
		n++
	}
	if err := tw.Flush(); err != nil {
		return n, fmt.Errorf("export: flush: %w", err)
	}
	return n, nil
}
