// Package errors defines the error taxonomy for lxcctl.
//
// Every failure surfaced to the CLI carries an exit code so that
// scripts wrapping lxcctl can distinguish the failure classes:
//
//	2  container not found
//	3  container has no IP address yet
//	4  command run in container failed
//	5  static route installation failed
//	6  subnet space exhausted
//	7  configuration error
//
// Lower-level packages return their own typed errors (for example
// container.NoAddressError or subnet.ExhaustedError); the cmd layer
// wraps those into coded CtlErrors for exit-status reporting. The
// chain is preserved, so errors.As still finds the domain types.
package errors
