// Package app provides the application context for lxcctl.
// It allows dependency injection for testing.
package app

import (
	"github.com/uoi-cloud/lxcctl/internal/config"
	"github.com/uoi-cloud/lxcctl/internal/container"
	"github.com/uoi-cloud/lxcctl/internal/runtime"
	"github.com/uoi-cloud/lxcctl/internal/subnet"
	"github.com/uoi-cloud/lxcctl/internal/system"
)

// App holds the application dependencies
type App struct {
	// Config is the loaded host configuration
	Config *config.Config

	// Runtime is the container runtime
	Runtime runtime.Runtime

	// Exec runs host commands (routes, ssh, lxc-attach)
	Exec system.CommandExecutor

	// FS is the filesystem used for config and rootfs writes
	FS system.FileSystem

	// Used reports subnets already in use on the host
	Used subnet.UsedSource
}

// Option is a function that configures the App
type Option func(*App)

// WithConfig sets a custom configuration
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithRuntime sets a custom runtime
func WithRuntime(r runtime.Runtime) Option {
	return func(a *App) {
		a.Runtime = r
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Exec = exec
	}
}

// WithFileSystem sets a custom filesystem
func WithFileSystem(fs system.FileSystem) Option {
	return func(a *App) {
		a.FS = fs
	}
}

// WithUsedSource sets a custom source of in-use subnets
func WithUsedSource(used subnet.UsedSource) Option {
	return func(a *App) {
		a.Used = used
	}
}

// New creates a new App with the given options. Unset dependencies
// fall back to the real OS-backed implementations, with configuration
// loaded from the default path.
func New(opts ...Option) (*App, error) {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.Exec == nil {
		app.Exec = system.DefaultExecutor()
	}
	if app.FS == nil {
		app.FS = system.DefaultFS()
	}

	if app.Config == nil {
		cfg, err := config.Load(config.DefaultConfigPath, app.FS)
		if err != nil {
			return nil, err
		}
		app.Config = cfg
	}

	if app.Runtime == nil {
		app.Runtime = runtime.NewLXCRuntime(app.Config.LXCPath, app.Exec)
	}
	if app.Used == nil {
		app.Used = subnet.NewHostRoutes(app.Exec)
	}

	return app, nil
}

// Container returns a handle on the named container wired with the
// app's dependencies.
func (a *App) Container(name string) (*container.Container, error) {
	return container.New(name, a.Config, a.Runtime,
		container.WithExecutor(a.Exec),
		container.WithFileSystem(a.FS),
		container.WithUsedSource(a.Used),
	)
}
