package ndp

import "log/slog"

// Config wires the external collaborators and optional policy hooks into an
// [Engine]. All collaborator fields except [Config.Cache] may be left nil;
// the corresponding feature is then a no-op (e.g. a nil PrefixReceiver means
// Prefix Information options are parsed but not forwarded).
type Config struct {
	AddrSelect     AddrSelector
	Routes         RouteTable
	DefaultRouters DefaultRouterTable
	Prefixes       PrefixReceiver
	RouteInfos     RouteInfoReceiver
	DAD            DADNotifier
	UserOpts       UserOptNotifier
	LocalAddrs     LocalAddrs
	Proxies        ProxyTable
	Anycasts       AnycastTable
	Cache          NeighborCache
	Redirects      RedirectNotifier

	// AppProbeNotify is the "user-space ARP daemon" stage of the
	// reachability driver (spec §4.5); nil skips straight to multicast NS.
	AppProbeNotify func(target *[16]byte, ifc *Iface)

	// FlushPending hands back the packets a caller submitted via
	// [Engine.SubmitPacket] while addr was unresolved, once it leaves
	// INCOMPLETE (spec §3's "pending send queue (bounded bytes)"). nil
	// means SubmitPacket's queue is drained and discarded silently.
	FlushPending func(ifc *Iface, addr *[16]byte, packets [][]byte)

	// DHCPv6Hint forwards an RA's Managed/Other bits (SUPPLEMENTED, see
	// SPEC_FULL.md §3); nil is a no-op.
	DHCPv6Hint func(ifc *Iface, managed, other bool)

	// TetherForwardHook is a documented no-op placeholder: this engine
	// answers proxy-NDP solicitations itself (see ndp/receive.go's
	// Proxies-backed branch) rather than forwarding an NS/NA from one
	// registered Iface to another, so there is never an (ifaceIn,
	// ifaceOut) pair to invoke it with. It is kept on Config, unconsumed,
	// for an integrator that adds real inter-interface tethering on top
	// of Engine and needs a rewrite seam at that forwarding point
	// (SPEC_FULL.md §4.4); see DESIGN.md.
	TetherForwardHook func(src, dst *[16]byte, ifaceIn, ifaceOut *Iface) (rewrittenSrc *[16]byte, ok bool)

	// MTUChangeHook is invoked when an RA's MTU option updates an
	// interface's MTU.
	MTUChangeHook func(ifc *Iface, mtu uint16)

	// LinkInfoNotify is invoked whenever an RA changes a per-interface
	// timer (reachable/retrans time) or MTU.
	LinkInfoNotify func(ifc *Iface)

	// SuppressDefaultRouteInstall, when true, still processes RAs fully
	// but skips the DefaultRouterTable.Add call (SUPPLEMENTED vendor hook,
	// SPEC_FULL.md §4.4).
	SuppressDefaultRouteInstall bool

	// RedirectRateLimit bounds how often SendRedirect will emit toward the
	// same destination by sizing the per-destination peer table; zero or a
	// negative value selects a 64-slot table (rate limiting stays on).
	RedirectRateLimit int

	// Output hands a built IPv6+ICMPv6 packet to the link/transport layer;
	// nil silently discards every send (useful in tests that only inspect
	// collaborator calls).
	Output OutputFunc

	Logger *slog.Logger
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
