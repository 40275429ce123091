package network

import (
	"text/template"
)

// lxcNetData holds data for the lxc-net template.
type lxcNetData struct {
	Bridge    string // bridge interface name
	Addr      string // gateway address on the bridge
	Netmask   string // dotted-quad subnet mask
	Network   string // subnet in CIDR form
	DHCPRange string // "low,high" dynamic address range
	DHCPMax   int    // number of leases dnsmasq may hand out
}

var lxcNetTmpl = template.Must(template.New("lxc-net").Parse(`# lxc-net configuration generated by lxcctl.
# This file is rewritten on re-provisioning; do not edit by hand.

USE_LXC_BRIDGE="true"
LXC_BRIDGE="{{.Bridge}}"
LXC_ADDR="{{.Addr}}"
LXC_NETMASK="{{.Netmask}}"
LXC_NETWORK="{{.Network}}"
LXC_DHCP_RANGE="{{.DHCPRange}}"
LXC_DHCP_MAX="{{.DHCPMax}}"
`))
