package ipv6

import "github.com/go-ndp6/ndp6/internal"

// IsMulticast reports whether addr is an IPv6 multicast address (ff00::/8).
func IsMulticast(addr *[16]byte) bool { return addr[0] == 0xff }

// IsUnspecified reports whether addr is the all-zero unspecified address,
// the only legal source address for a DAD neighbor solicitation.
func IsUnspecified(addr *[16]byte) bool {
	return internal.IsZeroed(*addr)
}

// IsLinkLocal reports whether addr is in fe80::/10, the only address scope
// from which a Router Advertisement may legally originate.
func IsLinkLocal(addr *[16]byte) bool {
	return addr[0] == 0xfe && addr[1]&0xc0 == 0x80
}

// SolicitedNodeMulticast returns the solicited-node multicast address
// ff02::1:ffXX:XXXX derived from target's low 24 bits, per RFC 4291 §2.7.1.
func SolicitedNodeMulticast(target *[16]byte) (snma [16]byte) {
	snma[0], snma[1] = 0xff, 0x02
	snma[11] = 0x01
	snma[12] = 0xff
	copy(snma[13:16], target[13:16])
	return snma
}
