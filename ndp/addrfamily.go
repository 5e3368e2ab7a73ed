package ndp

import (
	"encoding/binary"
	"hash/maphash"

	"github.com/go-ndp6/ndp6"
	"github.com/go-ndp6/ndp6/ethernet"
	"github.com/go-ndp6/ndp6/ipv6"
)

// Direction distinguishes a receive-side multicast-address lookup from a
// transmit-side one, which may fall back to the interface broadcast address
// (spec §4.3).
type Direction uint8

const (
	DirRX Direction = iota
	DirTX
)

// Hash mixes a 16 byte IPv6 address, interface index and per-engine random
// seed into a bucket index. This grounds spec §4.3's jhash with the
// standard library's maphash, since no example repo in the pack carries a
// jhash-equivalent dependency (see DESIGN.md).
func Hash(addr *[16]byte, ifaceID uint32, seed maphash.Seed) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	h.Write(addr[:])
	var idBuf [4]byte
	binary.BigEndian.PutUint32(idBuf[:], ifaceID)
	h.Write(idBuf[:])
	return h.Sum64()
}

// MulticastMap dispatches on ifc.Link to resolve addr's link-layer
// multicast (or broadcast-fallback) address, per spec §4.3. The result is
// returned in a caller-sized array to avoid a heap escape on the receive
// hot path.
func MulticastMap(ifc *Iface, addr *[16]byte, dir Direction) (lladdr [MaxLLAddrLen]byte, n int, err error) {
	switch {
	case ifc.Link.IsEthernetLike():
		mac := ethernet.IPv6MulticastAddr(addr)
		n = copy(lladdr[:], mac[:])
		return lladdr, n, nil
	case ifc.Link == ndp6.LinkARCNet:
		lladdr[0] = 0
		return lladdr, 1, nil
	default:
		if dir == DirTX && ifc.BroadLen > 0 {
			n = copy(lladdr[:], ifc.broadcast())
			return lladdr, n, nil
		}
		return lladdr, 0, ndp6.ErrUnsupportedLink
	}
}

// NeighborConstructor implements spec §4.3's decision tree: initializing a
// freshly created cache entry's state (and, where the link type determines
// it outright, its link-layer address) before any probing begins.
func NeighborConstructor(ifc *Iface, e *NeighEntry) error {
	if ifc == nil {
		return ndp6.ErrNoInterface
	}
	switch {
	case ipv6.IsMulticast(&e.Addr):
		mac, n, err := MulticastMap(ifc, &e.Addr, DirTX)
		if err != nil {
			return err
		}
		e.State = StateNoARP
		e.SetLinkAddr(mac[:n])
	case ifc.IsRaw():
		e.State = StateNoARP
	case ifc.IsLoopback() || ifc.IsNoARP():
		e.State = StateNoARP
		e.SetLinkAddr(ifc.hwAddr())
	case ifc.IsPointToPoint():
		e.State = StateNoARP
		e.SetLinkAddr(ifc.broadcast())
	default:
		e.State = StateIncomplete
	}
	return nil
}
