// Package finance turns a snapshot of jobs and clients into the numbers the
// dashboard shows: per-job payment summaries, a monthly revenue/cost series,
// revenue and cost rankings, and a couple of KPIs.
//
// Everything here is a pure computation over in-memory values. Nothing
// returns an error; malformed payment dates are skipped and reported
// through the Analyzer's logger.
package finance
