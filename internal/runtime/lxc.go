package runtime

import (
	"context"
	"fmt"
	"net/netip"
	"strings"

	"github.com/uoi-cloud/lxcctl/internal/logging"
	"github.com/uoi-cloud/lxcctl/internal/system"
)

// LXCRuntime implements the Runtime interface by shelling out to the
// LXC tools (lxc-create, lxc-start, lxc-info, ...).
type LXCRuntime struct {
	// LXCPath overrides the container storage path (-P flag). Empty
	// means the lxc default, usually /var/lib/lxc.
	LXCPath string

	// Exec runs the lxc commands. Defaults to the OS executor.
	Exec system.CommandExecutor
}

// NewLXCRuntime creates a new LXC runtime
func NewLXCRuntime(lxcPath string, exec system.CommandExecutor) *LXCRuntime {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	return &LXCRuntime{LXCPath: lxcPath, Exec: exec}
}

// Name returns the runtime identifier
func (r *LXCRuntime) Name() string {
	return "lxc"
}

// args prepends the storage path flag when configured.
func (r *LXCRuntime) args(base ...string) []string {
	if r.LXCPath == "" {
		return base
	}
	return append([]string{"-P", r.LXCPath}, base...)
}

func (r *LXCRuntime) runCmd(ctx context.Context, name string, args ...string) (string, error) {
	out, err := r.Exec.Execute(ctx, name, args...)
	if err != nil {
		return "", fmt.Errorf("%s failed: %s: %w", name, strings.TrimSpace(string(out)), err)
	}
	return string(out), nil
}

// Create creates a new container from a template
func (r *LXCRuntime) Create(ctx context.Context, name string, opts CreateOptions) error {
	logging.Debug("creating container", "name", name, "template", opts.Template)

	args := r.args("-n", name, "-t", opts.Template)
	if len(opts.TemplateArgs) > 0 {
		args = append(args, "--")
		args = append(args, opts.TemplateArgs...)
	}

	_, err := r.runCmd(ctx, "lxc-create", args...)
	return err
}

// Start starts an existing container
func (r *LXCRuntime) Start(ctx context.Context, name string) error {
	logging.Debug("starting container", "name", name)

	_, err := r.runCmd(ctx, "lxc-start", r.args("-d", "-n", name)...)
	return err
}

// Stop stops a running container
func (r *LXCRuntime) Stop(ctx context.Context, name string) error {
	logging.Debug("stopping container", "name", name)

	_, err := r.runCmd(ctx, "lxc-stop", r.args("-n", name)...)
	return err
}

// Destroy removes a stopped container
func (r *LXCRuntime) Destroy(ctx context.Context, name string) error {
	logging.Debug("destroying container", "name", name)

	_, err := r.runCmd(ctx, "lxc-destroy", r.args("-n", name)...)
	return err
}

// State returns the current status of a container
func (r *LXCRuntime) State(ctx context.Context, name string) (Status, error) {
	out, err := r.Exec.Execute(ctx, "lxc-info", r.args("-s", "-n", name)...)
	if err != nil {
		// lxc-info exits non-zero for unknown containers
		return StatusNotFound, nil
	}

	// Output is a single "State: RUNNING" line.
	state := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(string(out)), "State:"))
	switch state {
	case "RUNNING":
		return StatusRunning, nil
	case "STOPPED":
		return StatusStopped, nil
	default:
		return StatusUnknown, nil
	}
}

// Addresses returns the container's IP addresses via lxc-info. The -H
// flag yields one bare address per line, so no ad-hoc text scraping
// is needed beyond splitting lines.
func (r *LXCRuntime) Addresses(ctx context.Context, name string) ([]netip.Addr, error) {
	out, err := r.Exec.Execute(ctx, "lxc-info", r.args("-i", "-H", "-n", name)...)
	if err != nil {
		return nil, fmt.Errorf("lxc-info failed for %s: %w", name, err)
	}

	var addrs []netip.Addr
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		addr, err := netip.ParseAddr(line)
		if err != nil {
			continue
		}
		addrs = append(addrs, addr)
	}

	logging.Debug("lxc-info addresses", "container", name, "addrs", addrs)
	return addrs, nil
}

// List returns the names of all containers known to this runtime
func (r *LXCRuntime) List(ctx context.Context) ([]string, error) {
	out, err := r.runCmd(ctx, "lxc-ls", r.args("-1")...)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

var _ Runtime = (*LXCRuntime)(nil)
