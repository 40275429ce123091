// Package network renders per-container network configuration files.
package network

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/uoi-cloud/lxcctl/internal/subnet"
)

// Config describes an allocated container network.
type Config struct {
	// Bridge is the host bridge interface
	Bridge string

	// Subnet is the allocated subnet
	Subnet netip.Prefix

	// Gateway is the bridge address, the subnet's first usable host
	Gateway netip.Addr

	// DHCPLow and DHCPHigh bound the dynamic address range
	DHCPLow  netip.Addr
	DHCPHigh netip.Addr
}

// Plan computes the derived network layout for an allocated subnet:
// gateway at the first usable host, dynamic range covering the rest.
func Plan(bridge string, sub netip.Prefix) (*Config, error) {
	gw := subnet.Gateway(sub)

	lo, hi, err := subnet.HostRange(sub, []netip.Addr{gw})
	if err != nil {
		return nil, fmt.Errorf("subnet %s leaves no dynamic range: %w", sub, err)
	}

	return &Config{
		Bridge:   bridge,
		Subnet:   sub.Masked(),
		Gateway:  gw,
		DHCPLow:  lo,
		DHCPHigh: hi,
	}, nil
}

// Render produces the /etc/default/lxc-net file contents.
func (c *Config) Render() (string, error) {
	var buf strings.Builder
	err := lxcNetTmpl.Execute(&buf, lxcNetData{
		Bridge:    c.Bridge,
		Addr:      c.Gateway.String(),
		Netmask:   subnet.Netmask(c.Subnet),
		Network:   c.Subnet.String(),
		DHCPRange: fmt.Sprintf("%s,%s", c.DHCPLow, c.DHCPHigh),
		DHCPMax:   subnet.Size(c.DHCPLow, c.DHCPHigh),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render lxc-net config: %w", err)
	}
	return buf.String(), nil
}
