// Package export persists study results under a data directory, one
// timestamped run per study with JSON metadata and CSV trajectories.
package export
