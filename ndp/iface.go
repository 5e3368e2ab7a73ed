// Package ndp implements the IPv6 Neighbor Discovery Protocol engine:
// option and message codecs live in [github.com/go-ndp6/ndp6/ndpopt] and
// [github.com/go-ndp6/ndp6/icmpv6]; this package owns the address-family
// policy, the receive pipeline, the emitter, the reachability driver and
// the proxy/anycast delay queue described across RFC 4861, RFC 4862,
// RFC 4429 and RFC 4191.
package ndp

import "github.com/go-ndp6/ndp6"

// IfaceFlags describes device-level properties that steer the
// address-family policy's neighbor constructor (§4.3).
type IfaceFlags uint8

const (
	IfaceUp           IfaceFlags = 1 << iota
	IfaceLoopback                // device is the loopback interface
	IfacePointToPoint            // device is a point-to-point link (e.g. tunnel)
	IfaceNoARP                   // device never resolves link-layer addresses
	IfaceRaw                     // device has no header operations (pure passthrough)
)

// Params holds the per-interface NDP tunables of spec §3/§6.
type Params struct {
	BaseReachableTimeMS      uint32
	ReachableTimeMS          uint32 // derived: rand(0.5*base .. 1.5*base)
	RetransTimeMS            uint32
	DelayProbeTimeMS         uint32
	GCStaletimeMS            uint32
	UcastProbes              uint8
	AppProbes                uint8
	McastProbes              uint8
	AnycastDelayMS           uint32
	ProxyDelayMS             uint32
	ProxyQLen                uint16
	AcceptRA                 bool
	AcceptRADefrtr           bool
	AcceptRAPinfo            bool
	AcceptRARtrPref          bool
	AcceptRARouteInfoMaxPlen uint8
	Forwarding               bool
	ProxyNDP                 bool
	ForceTLLAO               bool
	NdiscNotify              bool
	HopLimit                 uint8
	MTU6                     uint16

	// QueueLenBytes bounds, per unresolved neighbor, how many bytes of
	// caller-submitted packets [Engine.SubmitPacket] will hold pending
	// address resolution (RFC 4861 §7.2.2); zero disables queuing
	// entirely. The real kernel's queue_len_bytes is a whole-table
	// budget (SUPPLEMENTED default 64KiB, ndisc.c), simplified here to a
	// per-neighbor budget to keep the queue's ring buffer fixed-size and
	// entry-local (no shared-budget accounting across neighbors).
	QueueLenBytes int
}

// DefaultParams returns the conventional Linux-equivalent defaults: 30s
// base reachable time, 1s retransmit, 5s delay-probe, 3 unicast and 3
// multicast probes, RA processing enabled, proxy-NDP and forwarding off.
func DefaultParams() Params {
	return Params{
		BaseReachableTimeMS: 30_000,
		RetransTimeMS:       1_000,
		DelayProbeTimeMS:    5_000,
		GCStaletimeMS:       60_000,
		UcastProbes:         3,
		AppProbes:           0,
		McastProbes:         3,
		AnycastDelayMS:      1_000,
		ProxyDelayMS:        800,
		ProxyQLen:           64,
		AcceptRA:            true,
		AcceptRADefrtr:      true,
		AcceptRAPinfo:       true,
		AcceptRARtrPref:     true,
		HopLimit:            64,
		MTU6:                1500,
		QueueLenBytes:       65536,
	}
}

// Iface is the opaque interface handle of spec §3: link type, link-layer
// address, MTU, device flags, broadcast address and the per-interface NDP
// parameters above. Ownership of everything else (addresses, routes, the
// neighbor cache storage) belongs to the collaborators in [Config].
type Iface struct {
	ID        uint32
	Link      ndp6.LinkType
	Flags     IfaceFlags
	HWAddr    [20]byte
	HWAddrLen uint8
	Broadcast [20]byte
	BroadLen  uint8
	Params    Params

	proxyQ *proxyQueue
}

func (ifc *Iface) hwAddr() []byte    { return ifc.HWAddr[:ifc.HWAddrLen] }
func (ifc *Iface) broadcast() []byte { return ifc.Broadcast[:ifc.BroadLen] }

func (ifc *Iface) IsUp() bool           { return ifc.Flags&IfaceUp != 0 }
func (ifc *Iface) IsLoopback() bool     { return ifc.Flags&IfaceLoopback != 0 }
func (ifc *Iface) IsPointToPoint() bool { return ifc.Flags&IfacePointToPoint != 0 }
func (ifc *Iface) IsNoARP() bool        { return ifc.Flags&IfaceNoARP != 0 }
func (ifc *Iface) IsRaw() bool          { return ifc.Flags&IfaceRaw != 0 }
