// Package testutil provides a shared harness for tests that need a
// fully wired application context with mocked OS collaborators.
package testutil

import (
	"context"
	"net/netip"
	"testing"

	"github.com/uoi-cloud/lxcctl/internal/app"
	"github.com/uoi-cloud/lxcctl/internal/config"
	"github.com/uoi-cloud/lxcctl/internal/runtime"
	"github.com/uoi-cloud/lxcctl/internal/system"
)

// TestEnv holds the test environment
type TestEnv struct {
	T       *testing.T
	Config  *config.Config
	Runtime *runtime.MockRuntime
	Exec    *system.MockExecutor
	FS      *system.MockFS
	App     *app.App
}

// usedSource is a mutable in-memory UsedSource for tests.
type usedSource struct {
	Subnets []netip.Prefix
	Addrs   []netip.Addr
}

func (u *usedSource) Used(ctx context.Context) ([]netip.Prefix, []netip.Addr, error) {
	return u.Subnets, u.Addrs, nil
}

// NewTestEnv creates a new test environment with mocked runtime,
// executor and filesystem.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	env := &TestEnv{
		T:       t,
		Config:  config.Default(),
		Runtime: runtime.NewMockRuntime(),
		Exec:    system.NewMockExecutor(),
		FS:      system.NewMockFS(),
	}

	a, err := app.New(
		app.WithConfig(env.Config),
		app.WithRuntime(env.Runtime),
		app.WithExecutor(env.Exec),
		app.WithFileSystem(env.FS),
		app.WithUsedSource(&usedSource{}),
	)
	if err != nil {
		t.Fatalf("failed to build test app: %v", err)
	}
	env.App = a

	return env
}

// AddRunning registers a running container with the given addresses.
func (e *TestEnv) AddRunning(name string, addrs ...string) {
	e.T.Helper()
	parsed := make([]netip.Addr, len(addrs))
	for i, a := range addrs {
		parsed[i] = netip.MustParseAddr(a)
	}
	e.Runtime.AddContainer(name, runtime.StatusRunning, parsed...)
}
