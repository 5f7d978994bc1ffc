// Package pipeline wires the query pipeline together: requirement
// validation → query construction → one HTTP fetch → streaming table parse
// → per-row sizing evaluation.
//
// Run returns a lazy Results iterator; rows are pulled from the response
// body one at a time and only passing records surface. The stream is not
// resumable — re-run the whole pipeline to start over. Each run carries a
// unique run ID attached to its log records.
package pipeline
