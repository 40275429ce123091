package container

import (
	"context"
	"fmt"
	"net/netip"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/uoi-cloud/lxcctl/internal/config"
	"github.com/uoi-cloud/lxcctl/internal/logging"
	"github.com/uoi-cloud/lxcctl/internal/network"
	"github.com/uoi-cloud/lxcctl/internal/subnet"
)

// WriteNetConfig allocates a fresh subnet for the container, renders
// the lxc-net configuration for it, and writes the file into the
// container's rootfs. The allocated subnet is returned so the caller
// can install a static route to it.
//
// The subnet is considered reserved for as long as the written config
// exists; nothing here serializes concurrent allocations across
// processes.
func (c *Container) WriteNetConfig(ctx context.Context) (netip.Prefix, error) {
	used, excluded, err := c.used.Used(ctx)
	if err != nil {
		return netip.Prefix{}, err
	}

	sub, err := subnet.Allocate(c.cfg.Space(), c.cfg.SubnetBits, used, excluded)
	if err != nil {
		return netip.Prefix{}, err
	}

	plan, err := network.Plan(c.cfg.Bridge, sub)
	if err != nil {
		return netip.Prefix{}, err
	}

	content, err := plan.Render()
	if err != nil {
		return netip.Prefix{}, err
	}

	rootfs, err := c.RootfsPath()
	if err != nil {
		return netip.Prefix{}, err
	}

	// The rootfs belongs to the container; never let a symlink inside
	// it redirect the write outside.
	path, err := securejoin.SecureJoin(rootfs, config.NetConfigRelPath)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("failed to resolve net config path: %w", err)
	}

	if err := c.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return netip.Prefix{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := c.fs.WriteFile(path, []byte(content), 0644); err != nil {
		return netip.Prefix{}, fmt.Errorf("failed to write net config: %w", err)
	}

	logging.Debug("wrote net config", "container", c.Name, "subnet", sub, "path", path)
	return sub, nil
}
