package sizing

import (
	"strconv"
	"time"
)

// Record is one system that passed the sizing filter. It is immutable once
// emitted: every field is computed or copied exactly once per row.
type Record struct {
	Vendor       string
	System       string
	CPU          string
	Cores        int
	Chips        int
	CoresPerChip int
	SpeedMHz     float64
	OS           string

	// Result is the benchmark result, rescaled to the configured vCPU
	// allocation when vCPU sizing is requested.
	Result float64

	// ResultPerCore is Result divided by the row's core count.
	ResultPerCore float64

	// Baseline is the row's base benchmark score, unmodified.
	Baseline float64

	// MCyclesPerCore is the normalized per-core megacycle capacity.
	MCyclesPerCore float64

	// MCyclesTotal is MCyclesPerCore scaled by the row's core count.
	MCyclesTotal float64

	// Published is the result's publication date, date only.
	Published time.Time
}

// Exportable field names, in canonical column order.
const (
	FieldVendor         = "Vendor"
	FieldSystem         = "System"
	FieldCPU            = "CPU"
	FieldCores          = "Cores"
	FieldChips          = "Chips"
	FieldCoresPerChip   = "CoresPerChip"
	FieldSpeed          = "Speed"
	FieldOS             = "OS"
	FieldResult         = "Result"
	FieldResultPerCore  = "ResultPerCore"
	FieldBaseline       = "Baseline"
	FieldMCyclesPerCore = "MCyclesPerCore"
	FieldMCyclesTotal   = "MCyclesTotal"
	FieldPublished      = "Published"
)

// AllFields lists every exportable column in canonical order.
var AllFields = []string{
	FieldVendor, FieldSystem, FieldCPU, FieldCores, FieldChips,
	FieldCoresPerChip, FieldSpeed, FieldOS, FieldResult, FieldResultPerCore,
	FieldBaseline, FieldMCyclesPerCore, FieldMCyclesTotal, FieldPublished,
}

// DefaultFields is the default-visible column subset attached to rendered
// output. The remaining fields stay accessible on the Record; this is
// display metadata only.
var DefaultFields = []string{
	FieldVendor, FieldSystem, FieldCores, FieldChips, FieldCoresPerChip,
	FieldSpeed, FieldResult, FieldPublished,
}

// Field returns the formatted value of the named column, or "" for an
// unknown name. Scores and megacycles render with two decimals, the speed
// with none, the date as YYYY-MM-DD.
func (r Record) Field(name string) string {
	switch name {
	case FieldVendor:
		return r.Vendor
	case FieldSystem:
		return r.System
	case FieldCPU:
		return r.CPU
	case FieldCores:
		return strconv.Itoa(r.Cores)
	case FieldChips:
		return strconv.Itoa(r.Chips)
	case FieldCoresPerChip:
		return strconv.Itoa(r.CoresPerChip)
	case FieldSpeed:
		return strconv.FormatFloat(r.SpeedMHz, 'f', 0, 64)
	case FieldOS:
		return r.OS
	case FieldResult:
		return strconv.FormatFloat(r.Result, 'f', 2, 64)
	case FieldResultPerCore:
		return strconv.FormatFloat(r.ResultPerCore, 'f', 2, 64)
	case FieldBaseline:
		return strconv.FormatFloat(r.Baseline, 'f', 2, 64)
	case FieldMCyclesPerCore:
		return strconv.FormatFloat(r.MCyclesPerCore, 'f', 2, 64)
	case FieldMCyclesTotal:
		return strconv.FormatFloat(r.MCyclesTotal, 'f', 2, 64)
	case FieldPublished:
		if r.Published.IsZero() {
			return ""
		}
		return r.Published.Format("2006-01-02")
	default:
		return ""
	}
}
