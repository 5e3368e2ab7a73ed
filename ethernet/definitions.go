// Package ethernet provides a minimal, zero-copy IEEE 802.3 frame view used
// by the NDP engine to encapsulate outbound NDP messages and classify
// inbound ones before handing the payload to the IPv6 layer. Only the
// EtherTypes the engine actually routes on are enumerated; unknown types
// still round-trip through [Frame.EtherTypeOrSize] and [Frame.SetEtherType].
package ethernet

import "strconv"

const sizeHeaderNoVLAN = 14

// AppendAddr appends the text representation of the hardware address to dst.
func AppendAddr(dst []byte, hwAddr [6]byte) []byte {
	for i, b := range hwAddr {
		if i != 0 {
			dst = append(dst, ':')
		}
		if b < 16 {
			dst = append(dst, '0')
		}
		dst = strconv.AppendUint(dst, uint64(b), 16)
	}
	return dst
}

// BroadcastAddr returns the all 0xff's broadcast hardware address.
func BroadcastAddr() [6]byte {
	return [6]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
}

// IPv6MulticastAddr maps an IPv6 multicast address to its Ethernet
// multicast MAC per RFC 2464 §7: 33:33 followed by the low order 32 bits
// of the address. This grounds the Ethernet case of the address-family
// policy's multicast mapping.
func IPv6MulticastAddr(ipv6Addr *[16]byte) (mac [6]byte) {
	mac[0], mac[1] = 0x33, 0x33
	copy(mac[2:], ipv6Addr[12:16])
	return mac
}

//go:generate stringer -type=Type -linecomment -output stringers.go .

type Type uint16

// IsSize returns true if the EtherType is actually the size of the payload
// and should NOT be interpreted as an EtherType.
func (et Type) IsSize() bool { return et <= 1500 }

const (
	TypeIPv4 Type = 0x0800 // IPv4
	TypeARP  Type = 0x0806 // ARP
	TypeIPv6 Type = 0x86DD // IPv6
	TypeVLAN Type = 0x8100 // VLAN
)

// VLANTag holds priority (PCP), drop-eligible indicator (DEI) and VLAN ID
// bits of the VLAN tag field.
type VLANTag uint16

func (vt VLANTag) DropEligibleIndicator() bool { return vt&(1<<3) != 0 }
func (vt VLANTag) PriorityCodePoint() uint8    { return uint8(vt & 0b111) }
func (vt VLANTag) VLANIdentifier() uint16      { return uint16(vt) >> 4 }
