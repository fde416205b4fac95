// Package constants collects the default timeouts, limits, and buffer
// sizes shared across the module's packages.
package constants

import "time"

// Connection timeouts.
const (
	DefaultConnTimeout     = 10 * time.Second
	DefaultReadTimeout     = 30 * time.Second
	DefaultContinueTimeout = 1 * time.Second
)

// Message limits.
const (
	MaxContentLength   = 1024 * 1024 * 1024 * 1024 // 1TB; no package in this module enforces it
	DefaultMaxBodyRead = 32 * 1024 * 1024          // default ClientConfig.MaxBodyLength
)

// Buffer limits.
const (
	DefaultBodyMemLimit = 4 * 1024 * 1024   // in-memory threshold before Buffer spills to disk
	MaxRawBufferSize    = 100 * 1024 * 1024 // disk-backed buffer cap
	DefaultIOBufferSize = 8192              // bufio reader/writer size for a connection
)
