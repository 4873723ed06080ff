// Package cli implements the album-table command line: the interactive
// table, a non-interactive list command that runs the same filter, sort and
// pagination pipeline, and cache maintenance.
package cli
