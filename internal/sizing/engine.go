package sizing

import (
	"math"
	"strconv"
	"time"

	"github.com/michelderooij/exchangepqt/internal/config"
	"github.com/michelderooij/exchangepqt/internal/table"
)

// Column labels used by the osgresults CSV dump.
const (
	colVendor       = "Hardware Vendor"
	colSystem       = "System"
	colProcessor    = "Processor"
	colMHz          = "Processor MHz"
	colCores        = "# Cores"
	colChips        = "# Chips"
	colCoresPerChip = "# Cores Per Chip"
	colOS           = "Operating System"
	colResult       = "Result"
	colBaseline     = "Baseline"
	colPublished    = "Published"
)

// Reference constants per benchmark era: the reference platform's megacycle
// rating and its per-core benchmark score. Dividing a row's normalized
// per-core score by the reference score and scaling by the reference
// megacycles yields the row's megacycles per core.
type benchmark struct {
	baselineMHz float64
	coreScore   float64
}

var benchmarks = map[string]benchmark{
	config.SpecCPU2006: {baselineMHz: 3333, coreScore: 18.75},
	config.SpecCPU2017: {baselineMHz: 2000, coreScore: 33.75},
}

// Verdict classifies the outcome of evaluating one dump row.
type Verdict int

const (
	// Pass: the row meets the requirement and a Record was produced.
	Pass Verdict = iota

	// SkipInvalid: the row carries unusable benchmark data (non-positive
	// or unparseable scores, counts or date). Not an error — skipped.
	SkipInvalid

	// SkipFiltered: valid data that does not meet the megacycle threshold
	// or the core/chip bounds.
	SkipFiltered
)

// Publication date layouts accepted in the dump's free-text date column.
var publishedLayouts = []string{"Jan-2006", "2006-01", "Jan 2006", "2006-01-02"}

// Engine evaluates dump rows against one sizing requirement. It holds no
// per-row state: Evaluate is a pure function of the row and the
// requirement the Engine was built from.
type Engine struct {
	cfg   config.Computation
	bench benchmark

	minCores, maxCores int
	minChips, maxChips int
	threshold          float64
}

// NewEngine returns an Engine for the given (already validated) requirement.
func NewEngine(cfg config.Computation) *Engine {
	e := &Engine{
		cfg:       cfg,
		bench:     benchmarks[cfg.Spec],
		threshold: float64(cfg.Threshold()),
	}
	e.minCores, e.maxCores = cfg.CoreBounds()
	e.minChips, e.maxChips = cfg.ChipBounds()
	return e
}

// Evaluate computes derived capacity metrics for one dump row and decides
// whether it meets the requirement. On Pass the returned Record is complete
// and immutable; otherwise the Record is the zero value.
func (e *Engine) Evaluate(row table.Row) (Record, Verdict) {
	baseline, ok := positiveFloat(row[colBaseline])
	if !ok {
		return Record{}, SkipInvalid
	}
	result, ok := positiveFloat(row[colResult])
	if !ok {
		return Record{}, SkipInvalid
	}

	cores, ok := positiveInt(row[colCores])
	if !ok {
		return Record{}, SkipInvalid
	}
	chips, ok := positiveInt(row[colChips])
	if !ok {
		return Record{}, SkipInvalid
	}
	coresPerChip, ok := positiveInt(row[colCoresPerChip])
	if !ok {
		return Record{}, SkipInvalid
	}
	speed, ok := positiveFloat(row[colMHz])
	if !ok {
		return Record{}, SkipInvalid
	}

	published, ok := parsePublished(row[colPublished])
	if !ok {
		return Record{}, SkipInvalid
	}

	// Optional vCPU rescale: the share of the result a VCPUs-wide guest
	// would get on a host with the configured core count at the configured
	// oversubscription ratio. The divisor is deliberately the requirement's
	// core count, not the row's.
	if e.cfg.VCPUs > 0 {
		result = round2(result / (float64(e.cfg.Cores) * e.cfg.VCPURatio) * float64(e.cfg.VCPUs))
	}

	perCore := result / float64(cores)
	mcPerCore := round2(perCore * e.bench.baselineMHz / e.bench.coreScore)
	mcTotal := mcPerCore * float64(cores)

	if mcTotal < e.threshold {
		return Record{}, SkipFiltered
	}
	if cores < e.minCores || cores > e.maxCores {
		return Record{}, SkipFiltered
	}
	if chips < e.minChips || chips > e.maxChips {
		return Record{}, SkipFiltered
	}

	return Record{
		Vendor:         row[colVendor],
		System:         row[colSystem],
		CPU:            row[colProcessor],
		Cores:          cores,
		Chips:          chips,
		CoresPerChip:   coresPerChip,
		SpeedMHz:       speed,
		OS:             row[colOS],
		Result:         result,
		ResultPerCore:  round2(perCore),
		Baseline:       baseline,
		MCyclesPerCore: mcPerCore,
		MCyclesTotal:   mcTotal,
		Published:      published,
	}, Pass
}

// positiveFloat parses s as a float and requires it to be > 0. Benchmark
// entries with empty or non-positive scores are incomplete submissions.
func positiveFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func positiveInt(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// parsePublished parses the dump's free-text publication date into a
// date-only time.
func parsePublished(s string) (time.Time, bool) {
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// round2 rounds to two decimals, half to even, matching the rounding used
// by the published sizing guidance. Pinned by tests for reproducibility.
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
