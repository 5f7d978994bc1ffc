package fetch

import (
	"fmt"
	"net/url"

	"github.com/michelderooij/exchangepqt/internal/config"
)

// DefaultBaseURL is the spec.org results query CGI endpoint.
const DefaultBaseURL = "https://www.spec.org/cgi-bin/osgresults"

// osgresults configuration names per benchmark era (integer rate suites).
const (
	suiteCPU2006 = "rint2006"
	suiteCPU2017 = "rint2017"
)

// Builder composes the results dump query for one benchmark suite.
type Builder struct {
	// BaseURL is the results CGI endpoint. Override for tests.
	BaseURL string

	// Suite is the osgresults configuration name, e.g. "rint2017".
	Suite string
}

// NewBuilder returns a Builder for the given benchmark era
// (config.SpecCPU2006 or config.SpecCPU2017).
func NewBuilder(spec string) *Builder {
	suite := suiteCPU2017
	if spec == config.SpecCPU2006 {
		suite = suiteCPU2006
	}
	return &Builder{BaseURL: DefaultBaseURL, Suite: suite}
}

// Build returns the fully-formed dump request URL for the given filters.
//
// The query always requests the complete dataset in CSV dump format with
// the baseline, processor-MHz and company columns projected. Each non-empty
// filter adds a numbered substring-match criterion; the processor criterion
// is unprojected since the server returns that column unconditionally.
func (b *Builder) Build(q config.Query) *url.URL {
	v := url.Values{}
	v.Set("conf", b.Suite)
	v.Set("op", "dump")
	v.Set("format", "csvdump")
	v.Add("proj", "baseline")
	v.Add("proj", "mhz")
	v.Add("proj", "company")

	n := 0
	criterion := func(field, match string) {
		n++
		v.Set(fmt.Sprintf("crit%dfield", n), field)
		v.Set(fmt.Sprintf("critop%d", n), "contains")
		v.Set(fmt.Sprintf("crit%d", n), match)
	}
	if q.Vendor != "" {
		criterion("company", q.Vendor)
	}
	if q.System != "" {
		criterion("system", q.System)
	}
	if q.CPU != "" {
		criterion("processor", q.CPU)
	}

	u, err := url.Parse(b.BaseURL)
	if err != nil {
		// BaseURL is a constant in production; a broken override is a
		// programming error.
		panic(fmt.Sprintf("fetch: invalid base url %q: %v", b.BaseURL, err))
	}
	u.RawQuery = v.Encode()
	return u
}
