// Package runtime defines the container runtime interface for lxcctl.
// The production implementation drives the LXC command-line tools;
// the mock implementation enables testing without containers.
package runtime

import (
	"context"
	"net/netip"
)

// Status represents the state of a container
type Status string

const (
	StatusRunning  Status = "running"
	StatusStopped  Status = "stopped"
	StatusNotFound Status = "not-found"
	StatusUnknown  Status = "unknown"
)

// Info holds information about a container
type Info struct {
	Name      string
	Status    Status
	Addresses []netip.Addr
}

// CreateOptions holds options for creating a container
type CreateOptions struct {
	// Template is the LXC template to create from (e.g. "ubuntu-cloud")
	Template string

	// TemplateArgs are passed to the template after "--"
	TemplateArgs []string
}

// Runtime is the interface that container backends must implement.
// Operations block until the underlying command completes.
type Runtime interface {
	// Name returns the runtime identifier (e.g. "lxc")
	Name() string

	// Create creates a new container from a template but does not start it
	Create(ctx context.Context, name string, opts CreateOptions) error

	// Start starts an existing container
	Start(ctx context.Context, name string) error

	// Stop stops a running container
	Stop(ctx context.Context, name string) error

	// Destroy removes a stopped container
	Destroy(ctx context.Context, name string) error

	// State returns the current status of a container
	State(ctx context.Context, name string) (Status, error)

	// Addresses returns the container's IP addresses. An empty slice
	// with a nil error means the container has not acquired an
	// address yet.
	Addresses(ctx context.Context, name string) ([]netip.Addr, error)

	// List returns the names of all containers known to this runtime
	List(ctx context.Context) ([]string, error)
}
