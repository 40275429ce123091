package container

import (
	"context"
	"fmt"
	"net/netip"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/uoi-cloud/lxcctl/internal/config"
	"github.com/uoi-cloud/lxcctl/internal/logging"
	"github.com/uoi-cloud/lxcctl/internal/runtime"
	"github.com/uoi-cloud/lxcctl/internal/ssh"
	"github.com/uoi-cloud/lxcctl/internal/subnet"
	"github.com/uoi-cloud/lxcctl/internal/system"
)

// NoAddressError reports that a container has no usable IP address
// yet. Callers are expected to retry at a higher layer; this package
// performs no polling of its own.
type NoAddressError struct {
	Container string
	Cause     error
}

func (e *NoAddressError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("container %s has no IP address: %v", e.Container, e.Cause)
	}
	return fmt.Sprintf("container %s has no IP address", e.Container)
}

func (e *NoAddressError) Unwrap() error {
	return e.Cause
}

// RunError reports a command that exited non-zero inside a container.
type RunError struct {
	Cmd       string
	Container string
	IP        string
	ExitCode  int
	Stderr    string
}

func (e *RunError) Error() string {
	msg := fmt.Sprintf("command %q failed in container %s", e.Cmd, e.Container)
	if e.IP != "" {
		msg += fmt.Sprintf(" (%s)", e.IP)
	}
	msg += fmt.Sprintf(": exit status %d", e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Container is a handle on one named LXC container. It owns no state
// of its own; everything lives in the runtime and on disk. A handle
// is meant to be driven from a single goroutine.
type Container struct {
	// Name identifies the container
	Name string

	// RunAs is the in-container user for SSH command execution
	RunAs string

	cfg  *config.Config
	rt   runtime.Runtime
	exec system.CommandExecutor
	fs   system.FileSystem
	used subnet.UsedSource
}

// Option configures a Container handle.
type Option func(*Container)

// WithExecutor sets a custom command executor.
func WithExecutor(exec system.CommandExecutor) Option {
	return func(c *Container) { c.exec = exec }
}

// WithFileSystem sets a custom filesystem.
func WithFileSystem(fs system.FileSystem) Option {
	return func(c *Container) { c.fs = fs }
}

// WithUsedSource sets the source of in-use subnets for allocation.
func WithUsedSource(used subnet.UsedSource) Option {
	return func(c *Container) { c.used = used }
}

// WithRunAs overrides the configured run-as user.
func WithRunAs(user string) Option {
	return func(c *Container) { c.RunAs = user }
}

// New creates a handle for the named container.
func New(name string, cfg *config.Config, rt runtime.Runtime, opts ...Option) (*Container, error) {
	if err := config.ValidateContainerName(name); err != nil {
		return nil, err
	}

	c := &Container{
		Name:  name,
		RunAs: cfg.RunAs,
		cfg:   cfg,
		rt:    rt,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.exec == nil {
		c.exec = system.DefaultExecutor()
	}
	if c.fs == nil {
		c.fs = system.DefaultFS()
	}
	if c.used == nil {
		c.used = subnet.NewHostRoutes(c.exec)
	}

	return c, nil
}

// RootfsPath returns the container's root filesystem directory.
func (c *Container) RootfsPath() (string, error) {
	dir, err := c.cfg.ContainerDir(c.Name)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rootfs"), nil
}

// IP returns the container's first reported address. It returns a
// *NoAddressError both when the runtime reports no addresses and when
// the address query itself fails.
func (c *Container) IP(ctx context.Context) (netip.Addr, error) {
	addrs, err := c.rt.Addresses(ctx, c.Name)
	if err != nil {
		logging.Debug("address lookup failed", "container", c.Name, "error", err)
		return netip.Addr{}, &NoAddressError{Container: c.Name, Cause: err}
	}
	if len(addrs) == 0 {
		return netip.Addr{}, &NoAddressError{Container: c.Name}
	}

	logging.Debug("using container ip", "container", c.Name, "ip", addrs[0])
	return addrs[0], nil
}

// Run executes cmd inside the container, or via SSH when useSSH is
// set, and returns the command's stdout. The process is always waited
// for; only then is the exit status inspected. A non-zero exit yields
// a *RunError.
func (c *Container) Run(ctx context.Context, cmd string, useSSH bool) (string, error) {
	words, err := shellquote.Split(cmd)
	if err != nil {
		return "", fmt.Errorf("failed to parse command %q: %w", cmd, err)
	}
	if len(words) == 0 {
		return "", fmt.Errorf("empty command")
	}

	var name string
	var args []string

	if useSSH {
		ip, err := c.IP(ctx)
		if err != nil {
			return "", err
		}
		name = "ssh"
		args = ssh.DefaultOptions(c.RunAs, ip.String()).WithBatchMode().BuildArgs(words...)
	} else {
		name = "lxc-attach"
		if c.cfg.LXCPath != "" {
			args = append(args, "-P", c.cfg.LXCPath)
		}
		args = append(args, "-n", c.Name, "--")
		args = append(args, words...)
	}

	logging.Debug("running command", "container", c.Name, "cmd", cmd, "ssh", useSSH)

	cap, err := c.exec.Run(ctx, name, args...)
	if err != nil {
		return "", fmt.Errorf("failed to run %q in container %s: %w", cmd, c.Name, err)
	}

	if cap.ExitCode != 0 {
		runErr := &RunError{
			Cmd:       cmd,
			Container: c.Name,
			ExitCode:  cap.ExitCode,
			Stderr:    strings.TrimSpace(string(cap.Stderr)),
		}
		// Best effort; the container may have no address at all.
		if ip, ipErr := c.IP(ctx); ipErr == nil {
			runErr.IP = ip.String()
		}
		logging.Debug("command failed", "container", c.Name, "cmd", cmd, "exit", cap.ExitCode, "stderr", runErr.Stderr)
		return "", runErr
	}

	return string(cap.Stdout), nil
}

// Create instantiates the container from the configured template,
// passing cloud-init user data. Unless the image cache is enabled in
// the configuration, the template's cached image is flushed so a
// fresh image is fetched.
func (c *Container) Create(ctx context.Context, userdata string) error {
	var templateArgs []string
	if !c.cfg.UseImageCache {
		templateArgs = append(templateArgs, "-F")
	} else {
		logging.Debug("image cache enabled, not flushing on create", "container", c.Name)
	}
	if userdata != "" {
		templateArgs = append(templateArgs, "-u", userdata)
	}

	err := c.rt.Create(ctx, c.Name, runtime.CreateOptions{
		Template:     c.cfg.Template,
		TemplateArgs: templateArgs,
	})
	logging.Debug("create container", "container", c.Name, "err", err)
	return err
}

// Start starts the container.
func (c *Container) Start(ctx context.Context) error {
	return c.rt.Start(ctx, c.Name)
}

// Stop stops the container.
func (c *Container) Stop(ctx context.Context) error {
	return c.rt.Stop(ctx, c.Name)
}

// Destroy removes the container, stopping it first only when it is
// actually running. Destroying an already-stopped or missing
// container never issues a redundant stop.
func (c *Container) Destroy(ctx context.Context) error {
	state, err := c.rt.State(ctx, c.Name)
	if err != nil {
		return err
	}

	switch state {
	case runtime.StatusNotFound:
		logging.Debug("destroy: container not found, nothing to do", "container", c.Name)
		return nil
	case runtime.StatusRunning:
		if err := c.rt.Stop(ctx, c.Name); err != nil {
			return err
		}
	}

	return c.rt.Destroy(ctx, c.Name)
}

// SetStaticRoute installs a host-side route to target via the
// container's current address on the configured bridge.
func (c *Container) SetStaticRoute(ctx context.Context, target netip.Prefix) error {
	ip, err := c.IP(ctx)
	if err != nil {
		return err
	}

	out, err := c.exec.Execute(ctx, "ip", "route", "replace", target.String(),
		"via", ip.String(), "dev", c.cfg.Bridge)
	if err != nil {
		return fmt.Errorf("failed to install route to %s via %s: %s: %w",
			target, ip, strings.TrimSpace(string(out)), err)
	}

	logging.Debug("installed static route", "target", target, "via", ip, "dev", c.cfg.Bridge)
	return nil
}
