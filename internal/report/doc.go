// Package report summarizes and renders convergence batches for the
// terminal.
package report
