// Package cli implements the interactive gigbook terminal client: a REPL
// over the bookkeeping services, prompts for input (passwords without
// echo) and tabular output of jobs, clients and reports.
package cli
