// Package sizing converts benchmark dump rows into Exchange capacity
// records and filters them against a requirement.
//
// engine.go provides Engine, built once per requirement from
// config.Computation. Engine.Evaluate is a pure function of (row, config):
// it parses the row's score and hardware fields, optionally rescales the
// result to a vCPU allocation, derives per-core score, megacycles per core
// and total megacycles, and classifies the row as Pass, SkipInvalid
// (unusable benchmark data) or SkipFiltered (valid but below requirement).
//
// Reference constants per era: cpu2006 uses a 3333 megacycle baseline with
// an 18.75 per-core reference score; cpu2017 uses 2000 and 33.75.
//
// record.go defines the emitted Record plus the exportable field metadata:
// AllFields in canonical order and the default-visible subset DefaultFields.
// Score-derived values are rounded half-to-even to two decimals.
package sizing
