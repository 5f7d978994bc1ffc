// Package table streams the delimited benchmark dump into row records.
//
// The dump is CSV text whose first line names the columns; every following
// line is one benchmark result. Scanner yields one Row per data line, in
// file order, as a map from header label to raw string value.
//
// Parsing is strict: a missing header or a data line whose field count does
// not match the header fails the whole scan with *ParseError. Row-level
// value problems (unparseable numbers, empty scores) are not the parser's
// concern — the sizing engine skips those rows individually.
package table
