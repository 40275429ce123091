// Package subnet allocates isolated IPv4 subnets for containers.
//
// Candidate subnets of a fixed prefix length are enumerated in address
// order within a reserved allocation space. The first candidate that
// overlaps no in-use subnet and contains no reserved address wins.
// Nothing in this package serializes access to the host's subnet
// space; callers provisioning containers concurrently must hold their
// own lock around Allocate.
package subnet

import (
	"encoding/binary"
	"fmt"
	"net/netip"
	"sort"
)

// ExhaustedError is returned when no free subnet remains in the
// allocation space.
type ExhaustedError struct {
	Space netip.Prefix
	Bits  int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no free /%d subnet left in %s", e.Bits, e.Space)
}

// Allocate returns the first /bits subnet within space that overlaps
// none of the used prefixes and contains none of the excluded
// addresses. It returns an *ExhaustedError when the space has no such
// subnet.
func Allocate(space netip.Prefix, bits int, used []netip.Prefix, exclude []netip.Addr) (netip.Prefix, error) {
	if !space.Addr().Is4() {
		return netip.Prefix{}, fmt.Errorf("allocation space %s is not IPv4", space)
	}
	if bits < space.Bits() || bits > 30 {
		return netip.Prefix{}, fmt.Errorf("invalid subnet size /%d for space %s", bits, space)
	}

	space = space.Masked()
	step := uint32(1) << (32 - bits)

	for base := addrToU32(space.Addr()); ; base += step {
		candidate := netip.PrefixFrom(u32ToAddr(base), bits)
		if !space.Contains(candidate.Addr()) {
			return netip.Prefix{}, &ExhaustedError{Space: space, Bits: bits}
		}

		if free(candidate, used, exclude) {
			return candidate, nil
		}

		// Stop before base+step wraps past the end of the address space.
		if base > 0xffffffff-step {
			return netip.Prefix{}, &ExhaustedError{Space: space, Bits: bits}
		}
	}
}

func free(candidate netip.Prefix, used []netip.Prefix, exclude []netip.Addr) bool {
	for _, u := range used {
		if candidate.Overlaps(u) {
			return false
		}
	}
	for _, a := range exclude {
		if candidate.Contains(a) {
			return false
		}
	}
	return true
}

// Gateway returns the first usable host address of the subnet.
func Gateway(subnet netip.Prefix) netip.Addr {
	return u32ToAddr(addrToU32(subnet.Masked().Addr()) + 1)
}

// Netmask returns the subnet mask in dotted-quad form.
func Netmask(subnet netip.Prefix) string {
	mask := ^uint32(0) << (32 - subnet.Bits())
	return u32ToAddr(mask).String()
}

// HostRange returns the largest contiguous run of host addresses in
// the subnet that contains no excluded address. Network and broadcast
// addresses are never part of the range. An exclusion at either edge
// shifts the corresponding bound inward.
func HostRange(subnet netip.Prefix, exclude []netip.Addr) (lo, hi netip.Addr, err error) {
	subnet = subnet.Masked()
	first := addrToU32(subnet.Addr()) + 1                   // skip network address
	last := addrToU32(subnet.Addr()) | ^(^uint32(0) << (32 - subnet.Bits()))
	last--                                                  // skip broadcast address

	if first > last {
		return lo, hi, fmt.Errorf("subnet %s has no usable host addresses", subnet)
	}

	reserved := make([]uint32, 0, len(exclude))
	for _, a := range exclude {
		v := addrToU32(a)
		if v >= first && v <= last {
			reserved = append(reserved, v)
		}
	}
	sort.Slice(reserved, func(i, j int) bool { return reserved[i] < reserved[j] })

	// Walk the gaps between reserved addresses and keep the widest one.
	var bestLo, bestHi uint32
	found := false
	start := first
	for _, r := range append(reserved, last+1) {
		if r > start {
			gapLo, gapHi := start, r-1
			if !found || gapHi-gapLo > bestHi-bestLo {
				bestLo, bestHi = gapLo, gapHi
				found = true
			}
		}
		start = r + 1
	}

	if !found {
		return lo, hi, fmt.Errorf("subnet %s has no usable host addresses after exclusions", subnet)
	}

	return u32ToAddr(bestLo), u32ToAddr(bestHi), nil
}

// Size returns the number of addresses in the range [lo, hi].
func Size(lo, hi netip.Addr) int {
	return int(addrToU32(hi)-addrToU32(lo)) + 1
}

func addrToU32(a netip.Addr) uint32 {
	b := a.As4()
	return binary.BigEndian.Uint32(b[:])
}

func u32ToAddr(v uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b)
}
