// Package constants provides shared constants used throughout the helpman codebase.
// This includes timeouts, limits, file permissions, and other configuration values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHelpTimeout is the standard timeout for a single help invocation
	// of the target binary. Help output is expected near-instantly; the bound
	// exists so interactive tools cannot hang a generation run.
	DefaultHelpTimeout = 5 * time.Second

	// DefaultVersionTimeout is the timeout for the optional --version probe
	DefaultVersionTimeout = 3 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// DefaultMaxDepth is the default bound on subcommand nesting. Path
	// extension already guarantees termination; the bound guards against
	// pathological tools whose help lists themselves as a subcommand of
	// every subcommand.
	DefaultMaxDepth = 5

	// MaxHelpOutputBytes is the maximum amount of captured help output kept
	// per invocation
	MaxHelpOutputBytes = 1 << 20
)

// Manual page constants
const (
	// MinManSection is the lowest valid manual section number
	MinManSection = 1

	// MaxManSection is the highest valid manual section number
	MaxManSection = 8

	// DefaultManSection is the section used when none is requested
	DefaultManSection = 1
)
