package network

import (
	"net/netip"
	"strings"
	"testing"
)

func TestPlan(t *testing.T) {
	sub := netip.MustParsePrefix("10.0.3.0/24")

	cfg, err := Plan("lxcbr0", sub)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if cfg.Gateway.String() != "10.0.3.1" {
		t.Errorf("Gateway = %s, want 10.0.3.1", cfg.Gateway)
	}
	if cfg.DHCPLow.String() != "10.0.3.2" || cfg.DHCPHigh.String() != "10.0.3.254" {
		t.Errorf("DHCP range = %s-%s, want 10.0.3.2-10.0.3.254", cfg.DHCPLow, cfg.DHCPHigh)
	}
}

func TestPlan_TinySubnet(t *testing.T) {
	// /30 has two usable hosts; the gateway takes one.
	cfg, err := Plan("lxcbr0", netip.MustParsePrefix("10.0.3.0/30"))
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if cfg.DHCPLow.String() != "10.0.3.2" || cfg.DHCPHigh.String() != "10.0.3.2" {
		t.Errorf("DHCP range = %s-%s, want single host 10.0.3.2", cfg.DHCPLow, cfg.DHCPHigh)
	}
}

func TestRender(t *testing.T) {
	cfg, err := Plan("lxcbr0", netip.MustParsePrefix("10.0.3.0/24"))
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	out, err := cfg.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := []string{
		`LXC_BRIDGE="lxcbr0"`,
		`LXC_ADDR="10.0.3.1"`,
		`LXC_NETMASK="255.255.255.0"`,
		`LXC_NETWORK="10.0.3.0/24"`,
		`LXC_DHCP_RANGE="10.0.3.2,10.0.3.254"`,
		`LXC_DHCP_MAX="253"`,
	}
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("rendered config missing %q:\n%s", w, out)
		}
	}
}
