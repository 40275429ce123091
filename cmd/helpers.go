package cmd

import (
	"context"
	"net/netip"

	"github.com/uoi-cloud/lxcctl/internal/app"
	"github.com/uoi-cloud/lxcctl/internal/config"
	"github.com/uoi-cloud/lxcctl/internal/container"
	"github.com/uoi-cloud/lxcctl/internal/errors"
	"github.com/uoi-cloud/lxcctl/internal/runtime"
	"github.com/uoi-cloud/lxcctl/internal/subnet"
	"github.com/uoi-cloud/lxcctl/internal/system"
)

// appOverride replaces the real application wiring in tests.
var appOverride *app.App

// getApp returns the application context, honoring the --config flag.
func getApp() (*app.App, error) {
	if appOverride != nil {
		return appOverride, nil
	}

	var opts []app.Option
	if configPath != "" {
		cfg, err := config.Load(configPath, system.DefaultFS())
		if err != nil {
			return nil, errors.ConfigError("failed to load config", err)
		}
		opts = append(opts, app.WithConfig(cfg))
	}
	return app.New(opts...)
}

// getContainer wires a container handle, translating validation
// failures into coded errors.
func getContainer(name string) (*container.Container, error) {
	a, err := getApp()
	if err != nil {
		return nil, err
	}
	c, err := a.Container(name)
	if err != nil {
		return nil, errors.ValidationError(err.Error())
	}
	return c, nil
}

// requireState loads the container's state or returns ContainerNotFound.
func requireState(ctx context.Context, name string) (runtime.Status, error) {
	a, err := getApp()
	if err != nil {
		return runtime.StatusUnknown, err
	}
	state, err := a.Runtime.State(ctx, name)
	if err != nil {
		return runtime.StatusUnknown, errors.Wrap(errors.ExitGeneralError, "failed to query container state", err)
	}
	if state == runtime.StatusNotFound {
		return state, errors.ContainerNotFound(name)
	}
	return state, nil
}

// codedErr maps domain errors onto coded errors so the process exit
// status reflects what went wrong.
func codedErr(name string, err error) error {
	if err == nil {
		return nil
	}

	var noAddr *container.NoAddressError
	if errors.As(err, &noAddr) {
		return errors.NoAddress(name, err)
	}

	var runErr *container.RunError
	if errors.As(err, &runErr) {
		return errors.RunFailed(name, err)
	}

	var exhausted *subnet.ExhaustedError
	if errors.As(err, &exhausted) {
		return errors.SubnetExhausted(err)
	}

	var coded *errors.CtlError
	if errors.As(err, &coded) {
		return err
	}

	return errors.Wrap(errors.ExitGeneralError, name, err)
}

// firstAddr returns the first address or an empty string.
func firstAddr(addrs []netip.Addr) string {
	if len(addrs) == 0 {
		return "-"
	}
	return addrs[0].String()
}
