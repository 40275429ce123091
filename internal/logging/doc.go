// Package logging provides logging utilities for lxcctl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("creating container", "name", name, "template", template)
//	logging.Warn("no address yet", "container", name, "attempt", attempt)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Allocating subnet for %s...", name)
//	logging.UserSuccess("Container %s created", name)
//	logging.UserWarning("Container %s has no address yet", name)
//	logging.UserError("Failed to create container: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
package logging
