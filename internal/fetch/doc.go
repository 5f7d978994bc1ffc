// Package fetch builds and executes the benchmark results dump query.
//
// Builder composes the osgresults CGI query for one benchmark suite: a full
// CSV dump with the baseline, processor-MHz and company columns projected,
// plus zero or more substring-match criteria (company, system, processor)
// taken from the query filters. Building never fails.
//
// Client performs the single blocking GET of the composed URL. There is no
// retry and no incremental progress reporting; the whole transfer is bounded
// by one timeout. Transport failures, non-2xx statuses and timeouts surface
// as *FetchError.
package fetch
