package ndp

import "github.com/go-ndp6/ndp6/icmpv6"

// AddrSelector resolves an outbound source address for dst on ifc (spec §6
// AddrSelect). allowUnspecified permits returning the all-zero address for
// RS and DAD-NS emission.
type AddrSelector interface {
	SelectAddr(ifc *Iface, dst *[16]byte, allowUnspecified bool) (src [16]byte, ok bool)
}

// RouteTable resolves a destination route for an outbound packet that does
// not already carry one attached.
type RouteTable interface {
	Lookup(ifc *Iface, dst *[16]byte) (ok bool)
}

// DefaultRouterTable owns the default-router list keyed by {source, interface}.
type DefaultRouterTable interface {
	Add(src *[16]byte, ifc *Iface, pref icmpv6.Preference, lifetimeSec uint16)
	Del(src *[16]byte, ifc *Iface)
	Get(src *[16]byte, ifc *Iface) (pref icmpv6.Preference, lifetimeSec uint16, ok bool)
}

// PrefixReceiver forwards a parsed Prefix Information option body (RFC 4861
// §4.6.2) to the address-autoconfiguration collaborator.
type PrefixReceiver interface {
	PrefixRecv(ifc *Iface, optionBody []byte, haveSourceLL bool)
}

// RouteInfoReceiver forwards a parsed Route Information option body (RFC 4191 §2.3).
type RouteInfoReceiver interface {
	RouteInfoRecv(ifc *Iface, optionBody []byte, src *[16]byte)
}

// DADNotifier is invoked when Duplicate Address Detection fails for a
// tentative or optimistic local address.
type DADNotifier interface {
	DADFail(ifc *Iface, addr *[16]byte)
}

// RedirectNotifier forwards an accepted Redirect's target and the
// truncated triggering packet for routing-cache invalidation (spec
// §4.4.5's icmpv6_notify hand-off). Route table updates are performed by
// this collaborator, not by ndp itself.
type RedirectNotifier interface {
	RedirectRecv(ifc *Iface, dst, target *[16]byte, originalPacket []byte)
}

// UserOptNotifier forwards RDNSS/DNSSL option bodies (RFC 6106) to whatever
// notification fan-out the integrator runs.
type UserOptNotifier interface {
	UserOptNotify(ifc *Iface, src *[16]byte, typ, code uint8, optionBody []byte)
}

// AddrState is a local address's SLAAC configuration state.
type AddrState uint8

const (
	AddrTentative AddrState = iota
	AddrOptimistic
	AddrReady
)

// LocalAddrs reports whether addr is configured on ifc, and in what state.
// This is the address-autoconfiguration engine's lookup surface.
type LocalAddrs interface {
	Lookup(ifc *Iface, addr *[16]byte) (state AddrState, ok bool)
}

// ProxyTable reports whether ifc proxies NDP on behalf of addr, and whether
// the proxied entry should be advertised with the ROUTER flag set.
type ProxyTable interface {
	Lookup(ifc *Iface, addr *[16]byte) (isRouter bool, ok bool)
}

// AnycastTable reports whether addr is configured as an anycast address on ifc.
type AnycastTable interface {
	IsAnycast(ifc *Iface, addr *[16]byte) bool
}

// NeighborCache is the generic neighbor-cache collaborator of spec §6: ndp
// supplies address-family policy (hash, multicast-map, constructor) and the
// cache owns storage, locking, reference counting and garbage collection.
// Package neighcache provides a reference implementation exercised by this
// module's own tests.
type NeighborCache interface {
	Lookup(ifc *Iface, addr *[16]byte) (*NeighEntry, bool)
	Create(ifc *Iface, addr *[16]byte) (*NeighEntry, error)
	Update(e *NeighEntry, lladdr []byte, newState State, flags UpdateFlags)
	Release(e *NeighEntry)
	ChangeAddr(ifaceID uint32)
	IfDown(ifaceID uint32)
	RunGC()
}
