// Package ssh builds SSH command lines for reaching containers over
// the bridge network.
package ssh

import (
	"fmt"
)

// Default SSH configuration values.
const (
	DefaultConnectTimeout = 2
)

// Options configures SSH connection parameters.
type Options struct {
	User               string
	Host               string
	StrictHostKeyCheck bool
	KnownHostsFile     string
	ConnectTimeout     int
	BatchMode          bool
}

// DefaultOptions returns Options with sensible defaults for container
// connections. Host keys are not checked: container addresses are
// recycled constantly, so pinning them would only cause churn in
// known_hosts.
func DefaultOptions(user, host string) Options {
	return Options{
		User:               user,
		Host:               host,
		StrictHostKeyCheck: false,
		KnownHostsFile:     "/dev/null",
		ConnectTimeout:     DefaultConnectTimeout,
		BatchMode:          false,
	}
}

// WithBatchMode returns a copy with batch mode enabled.
func (o Options) WithBatchMode() Options {
	o.BatchMode = true
	return o
}

// WithTimeout returns a copy with the specified connect timeout.
func (o Options) WithTimeout(seconds int) Options {
	o.ConnectTimeout = seconds
	return o
}

// BaseArgs returns the common SSH arguments (options only, no user@host).
func (o Options) BaseArgs() []string {
	var args []string

	if !o.StrictHostKeyCheck {
		args = append(args, "-o", "StrictHostKeyChecking=no")
	}

	if o.KnownHostsFile != "" {
		args = append(args, "-o", fmt.Sprintf("UserKnownHostsFile=%s", o.KnownHostsFile))
	}

	if o.BatchMode {
		args = append(args, "-o", "BatchMode=yes")
	}

	if o.ConnectTimeout > 0 {
		args = append(args, "-o", fmt.Sprintf("ConnectTimeout=%d", o.ConnectTimeout))
	}

	return args
}

// Destination returns the user@host string.
func (o Options) Destination() string {
	if o.User == "" {
		return o.Host
	}
	return fmt.Sprintf("%s@%s", o.User, o.Host)
}

// BuildArgs returns complete SSH arguments for executing a command.
func (o Options) BuildArgs(command ...string) []string {
	args := o.BaseArgs()
	args = append(args, o.Destination())
	args = append(args, command...)
	return args
}
