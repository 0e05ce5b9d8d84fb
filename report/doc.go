// Package report assembles traversal visits into the final activity report.
//
// Only task visits become rows. Rows are numbered 1..N across every process
// in the order the visits were produced, which makes the report a stable,
// linear reading of the process graphs.
package report
