// Package timeouts provides centralized timeout values for handler operations.
//
// These are used with context.WithTimeout around database calls in HTTP
// handlers. Guidelines:
//   - Ping: health checks
//   - Short: single-row reads and form renders
//   - Medium: filtered list queries and simple writes
//   - Long: multi-table reads (calendar aggregation, profile pages)
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
	long   = 30 * time.Second
)

// Ping returns the timeout for health checks.
func Ping() time.Duration { return ping }

// Short returns the timeout for single-row reads and lookups.
func Short() time.Duration { return short }

// Medium returns the timeout for list queries and simple writes.
func Medium() time.Duration { return medium }

// Long returns the timeout for multi-table aggregation reads.
func Long() time.Duration { return long }
