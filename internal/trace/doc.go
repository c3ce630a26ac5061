// Package trace records lesson run transcripts as an ordered event log.
//
// Each lesson execution becomes a run: a row identified by a UUID plus one
// line row per transcript line, sequenced by a logical step clock that
// restarts at 1 for every run. The log backs the harness assertions
// (transcript_contains, transcript_order, transcript_count) and the verify
// command's run-to-run comparison.
//
// The log lives in an in-memory SQLite database and dies with the process.
// Nothing here persists: the series has no durable state, and the database
// exists only to give the harness a queryable view of a run.
package trace
