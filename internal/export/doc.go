// Package export renders sizing records as CSV or an aligned text table.
// Rendering is a display concern only: callers pick a field selection
// (typically sizing.DefaultFields or sizing.AllFields) and the writers pull
// records lazily from any Source, so the pipeline stays streaming end to end.
package export
