package subnet

import (
	"context"
	"fmt"
	"net/netip"
	"strings"

	"github.com/uoi-cloud/lxcctl/internal/logging"
	"github.com/uoi-cloud/lxcctl/internal/system"
)

// UsedSource reports which subnets and addresses are already in use
// on the host. Allocate treats both as off-limits.
type UsedSource interface {
	Used(ctx context.Context) (subnets []netip.Prefix, addrs []netip.Addr, err error)
}

// HostRoutes is a UsedSource backed by the host routing table. Every
// destination in `ip -4 route show` counts as in use, so a fresh
// allocation can never collide with a network the host already
// reaches directly.
type HostRoutes struct {
	Exec system.CommandExecutor
}

// NewHostRoutes returns a HostRoutes using the given executor, or the
// default OS executor when nil.
func NewHostRoutes(exec system.CommandExecutor) *HostRoutes {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	return &HostRoutes{Exec: exec}
}

func (h *HostRoutes) Used(ctx context.Context) ([]netip.Prefix, []netip.Addr, error) {
	out, err := h.Exec.Execute(ctx, "ip", "-4", "route", "show")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read host routes: %w", err)
	}

	subnets, addrs := ParseRoutes(string(out))
	logging.Debug("host routes scanned", "subnets", len(subnets), "addrs", len(addrs))
	return subnets, addrs, nil
}

// ParseRoutes extracts route destinations from `ip -4 route show`
// output. CIDR destinations become used subnets, bare addresses
// (including gateways after "via") become used addresses. Unparseable
// tokens are skipped.
func ParseRoutes(out string) ([]netip.Prefix, []netip.Addr) {
	var subnets []netip.Prefix
	var addrs []netip.Addr

	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if p, err := netip.ParsePrefix(fields[0]); err == nil {
			subnets = append(subnets, p.Masked())
		} else if a, err := netip.ParseAddr(fields[0]); err == nil {
			addrs = append(addrs, a)
		} else if fields[0] != "default" {
			continue
		}

		for i := 1; i < len(fields)-1; i++ {
			if fields[i] == "via" {
				if a, err := netip.ParseAddr(fields[i+1]); err == nil {
					addrs = append(addrs, a)
				}
			}
		}
	}

	return subnets, addrs
}
