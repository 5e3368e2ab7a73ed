package ndp

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"time"

	"github.com/go-ndp6/ndp6"
	"github.com/go-ndp6/ndp6/icmpv6"
	"github.com/go-ndp6/ndp6/internal"
	"github.com/go-ndp6/ndp6/ipv6"
	"github.com/go-ndp6/ndp6/ndpopt"
)

// Receive implements spec §4.4's shared preamble: it validates the IPv6
// hop-limit-255 invariant and the ICMPv6 code-zero invariant, then
// dispatches by message type. buf is a complete IPv6 packet as delivered
// by the upstream demultiplexer; its ICMPv6 checksum is assumed already
// verified (out of scope here, per spec §1). now is the caller's clock
// reading, threaded through to every timer-sensitive handler.
//
// Receive never returns an error: every defect is a silent drop reflected
// only in e.Stats (spec §7).
func (e *Engine) Receive(buf []byte, ifc *Iface, now time.Time) {
	e.Stats.InMsgs.Add(1)

	ipf, err := ipv6.NewFrame(buf)
	if err != nil {
		e.Stats.InErrors.Add(1)
		return
	}
	var v ndp6.Validator
	ipf.ValidateSize(&v)
	if v.HasError() {
		e.Stats.InErrors.Add(1)
		return
	}
	if ipf.HopLimit() != 255 {
		// On-link guarantee violated: never forwarded NDP traffic.
		e.Stats.InErrors.Add(1)
		return
	}

	icmpBuf := ipf.Payload()
	icf, err := icmpv6.NewFrame(icmpBuf)
	if err != nil {
		e.Stats.InErrors.Add(1)
		return
	}
	if icf.Code() != 0 {
		e.Stats.InErrors.Add(1)
		return
	}
	typ := icf.Type()
	if !typ.IsNDP() {
		e.Stats.InErrors.Add(1)
		return
	}

	src := ipf.SourceAddr()
	dst := ipf.DestinationAddr()

	switch typ {
	case icmpv6.TypeNeighborSolicit:
		e.Stats.InNS.Add(1)
		e.recvNS(ifc, src, dst, icmpBuf, now, false)
	case icmpv6.TypeNeighborAdvert:
		e.Stats.InNA.Add(1)
		e.recvNA(ifc, src, dst, icmpBuf)
	case icmpv6.TypeRouterSolicit:
		e.Stats.InRS.Add(1)
		e.recvRS(ifc, src, icmpBuf)
	case icmpv6.TypeRouterAdvert:
		e.Stats.InRA.Add(1)
		e.recvRA(ifc, src, icmpBuf, now)
	case icmpv6.TypeRedirect:
		e.Stats.InRedirect.Add(1)
		e.recvRedirect(ifc, src, icmpBuf)
	}
}

// upsertNeighbor creates (if absent) or updates the cache entry for addr,
// releasing it before returning. A nil Cache collaborator makes this a
// no-op, matching the rest of the package's "nil collaborator disables
// the feature" convention.
func (e *Engine) upsertNeighbor(ifc *Iface, addr *[16]byte, lladdr []byte, state State, flags UpdateFlags) {
	if e.cfg.Cache == nil {
		return
	}
	nb, ok := e.cfg.Cache.Lookup(ifc, addr)
	if !ok {
		var err error
		nb, err = e.cfg.Cache.Create(ifc, addr)
		if err != nil {
			return
		}
	}
	e.cfg.Cache.Update(nb, lladdr, state, flags)
	e.cfg.Cache.Release(nb)
}

// recvNS implements spec §4.4.1.
func (e *Engine) recvNS(ifc *Iface, src, dst *[16]byte, icmpBuf []byte, now time.Time, looped bool) {
	ns, err := icmpv6.NewFrameNS(icmpBuf)
	if err != nil {
		e.Stats.InErrors.Add(1)
		return
	}
	target := ns.Target()
	if ipv6.IsMulticast(target) {
		e.Stats.InErrors.Add(1)
		return
	}
	opts, err := ndpopt.Parse(ns.Options())
	if err != nil {
		e.Stats.InErrors.Add(1)
		return
	}

	isDAD := ipv6.IsUnspecified(src)
	if isDAD {
		snma := ipv6.SolicitedNodeMulticast(target)
		if *dst != snma || opts.SourceLL != nil {
			// All three DAD preconditions are jointly required.
			e.Stats.InErrors.Add(1)
			return
		}
	}
	dstMulticast := ipv6.IsMulticast(dst)

	isRouter := ifc.Params.Forwarding
	isOurs := false
	if e.cfg.LocalAddrs != nil {
		if state, ok := e.cfg.LocalAddrs.Lookup(ifc, target); ok {
			isOurs = true
			if state != AddrReady {
				if isDAD {
					if e.cfg.DAD != nil {
						e.cfg.DAD.DADFail(ifc, target)
					}
					e.Stats.DADFailures.Add(1)
					return
				}
				if state == AddrTentative {
					// Not yet usable and this isn't DAD: nothing to answer.
					e.Stats.InErrors.Add(1)
					return
				}
				// AddrOptimistic: respond as usual (RFC 4429).
			}
		}
	}

	if !isOurs {
		isAnycast := e.cfg.Anycasts != nil && e.cfg.Anycasts.IsAnycast(ifc, target)
		proxyRouter, isProxy := false, false
		if e.cfg.Proxies != nil {
			proxyRouter, isProxy = e.cfg.Proxies.Lookup(ifc, target)
		}
		if !isAnycast && !isProxy {
			e.Stats.InErrors.Add(1)
			return
		}
		if isProxy {
			isRouter = proxyRouter
		}

		// looped is true only for a replay dequeued from the proxy delay
		// queue; it never re-enters the queueing branch, keeping replay
		// idempotent.
		if !looped {
			delayMS := ifc.Params.ProxyDelayMS
			if isAnycast {
				delayMS = ifc.Params.AnycastDelayMS
			}
			if dstMulticast && delayMS != 0 && ifc.proxyQ != nil {
				var cloneBuf [maxProxyPacketSize]byte
				n := packNSClone(cloneBuf[:], src, dst, icmpBuf)
				delay := time.Duration(e.nextRand()%uint32(delayMS)+1) * time.Millisecond
				if n > 0 && ifc.proxyQ.push(cloneBuf[:n], now, delay) {
					e.Stats.ProxyQueued.Add(1)
				} else {
					e.Stats.ProxyDropped.Add(1)
					attrs := []slog.Attr{slog.Uint64("iface", uint64(ifc.ID))}
					if ifc.HWAddrLen >= 6 {
						var mac [6]byte
						copy(mac[:], ifc.HWAddr[:6])
						attrs = append(attrs, internal.SlogAddr6("ifhw", &mac))
					}
					internal.LogAttrs(e.log(), internal.LevelTrace, "ndp: proxy delay queue full, dropping solicitation", attrs...)
				}
				return
			}
		}
	}

	e.respondNS(ifc, src, target, dstMulticast, isDAD, isRouter, opts.SourceLL)
}

// respondNS implements the generic "emit NA" tail of spec §4.4.1, shared by
// the ours/ready, ours/optimistic and proxy/anycast-eligible branches.
func (e *Engine) respondNS(ifc *Iface, src, target *[16]byte, dstMulticast, isDAD, isRouter bool, sourceLL []byte) {
	if isDAD {
		allNodes := AllNodesMulticast()
		e.SendNA(ifc, &allNodes, target, nil, false, true, isRouter, true)
		return
	}
	if !dstMulticast || sourceLL != nil {
		e.upsertNeighbor(ifc, src, sourceLL, StateStale, UpdateFlags{WeakOverride: true, Override: true})
	}
	includeTargetLL := dstMulticast || ifc.Params.ForceTLLAO
	e.SendNA(ifc, src, target, nil, true, true, isRouter, includeTargetLL)
}

// AllNodesMulticast returns ff02::1, the destination of an unsolicited DAD
// "someone already has this address" Neighbor Advertisement.
func AllNodesMulticast() [16]byte {
	return [16]byte{0xff, 0x02, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x01}
}

// recvNA implements spec §4.4.2.
func (e *Engine) recvNA(ifc *Iface, src, dst *[16]byte, icmpBuf []byte) {
	na, err := icmpv6.NewFrameNA(icmpBuf)
	if err != nil {
		e.Stats.InErrors.Add(1)
		return
	}
	target := na.Target()
	if ipv6.IsMulticast(target) {
		e.Stats.InErrors.Add(1)
		return
	}
	if na.IsSolicited() && ipv6.IsMulticast(dst) {
		e.Stats.InErrors.Add(1)
		return
	}
	opts, err := ndpopt.Parse(na.Options())
	if err != nil {
		e.Stats.InErrors.Add(1)
		return
	}
	if opts.TargetLL != nil && ifc.HWAddrLen > 0 && len(opts.TargetLL) < int(ifc.HWAddrLen) {
		e.Stats.InErrors.Add(1)
		return
	}

	if e.cfg.LocalAddrs != nil {
		if state, ok := e.cfg.LocalAddrs.Lookup(ifc, target); ok && state == AddrTentative {
			if !ifc.IsLoopback() {
				if e.cfg.DAD != nil {
					e.cfg.DAD.DADFail(ifc, target)
				}
				e.Stats.DADFailures.Add(1)
			}
			return
		}
	}

	if e.cfg.Cache == nil {
		return
	}
	nb, ok := e.cfg.Cache.Lookup(ifc, target)
	if !ok {
		return // No entry pending resolution: nothing to update.
	}
	if nb.State == StateFailed {
		e.cfg.Cache.Release(nb)
		return
	}
	if opts.TargetLL != nil && ifc.Params.ProxyNDP && ifc.HWAddrLen > 0 && bytes.Equal(opts.TargetLL, ifc.hwAddr()) {
		// Our own proxy advertisement echoed back; ignore it.
		e.cfg.Cache.Release(nb)
		return
	}

	wasRouter := nb.IsRouter()
	wasIncomplete := nb.State == StateIncomplete
	newState := StateStale
	if na.IsSolicited() {
		newState = StateReachable
	}
	e.cfg.Cache.Update(nb, opts.TargetLL, newState, UpdateFlags{
		Override:         na.IsOverride(),
		OverrideIsRouter: true,
		IsRouter:         na.IsRouter(),
	})
	isRouterNow := nb.IsRouter()
	var flushed [][]byte
	if wasIncomplete && nb.State != StateIncomplete {
		flushed = nb.DrainPending()
	}
	e.cfg.Cache.Release(nb)
	if len(flushed) > 0 && e.cfg.FlushPending != nil {
		e.cfg.FlushPending(ifc, target, flushed)
	}

	if wasRouter && !isRouterNow && e.cfg.DefaultRouters != nil {
		e.cfg.DefaultRouters.Del(target, ifc)
	}
}

// recvRS implements spec §4.4.3: accepted only on a forwarding interface,
// and only from a specified source.
func (e *Engine) recvRS(ifc *Iface, src *[16]byte, icmpBuf []byte) {
	if !ifc.Params.Forwarding {
		return
	}
	if ipv6.IsUnspecified(src) {
		return
	}
	rs, err := icmpv6.NewFrameRS(icmpBuf)
	if err != nil {
		e.Stats.InErrors.Add(1)
		return
	}
	opts, err := ndpopt.Parse(rs.Options())
	if err != nil {
		e.Stats.InErrors.Add(1)
		return
	}
	if opts.SourceLL != nil {
		e.upsertNeighbor(ifc, src, opts.SourceLL, StateStale, UpdateFlags{WeakOverride: true, Override: true})
	}
}

// recvRA implements spec §4.4.4.
func (e *Engine) recvRA(ifc *Iface, src *[16]byte, icmpBuf []byte, now time.Time) {
	if !ipv6.IsLinkLocal(src) {
		e.Stats.InErrors.Add(1)
		return
	}
	if !ifc.Params.AcceptRA {
		return
	}
	ra, err := icmpv6.NewFrameRA(icmpBuf)
	if err != nil {
		e.Stats.InErrors.Add(1)
		return
	}
	opts, err := ndpopt.Parse(ra.Options())
	if err != nil {
		e.Stats.InErrors.Add(1)
		return
	}
	if opts.TargetLL != nil || opts.RedirectHeader != nil {
		internal.LogAttrs(e.log(), internal.LevelTrace, "ndp: forbidden option in router advertisement",
			slog.Uint64("iface", uint64(ifc.ID)))
	}

	lifetime := ra.RouterLifetime()
	if e.cfg.DefaultRouters != nil && ifc.Params.AcceptRADefrtr && !e.cfg.SuppressDefaultRouteInstall {
		_, _, exists := e.cfg.DefaultRouters.Get(src, ifc)
		switch {
		case exists && lifetime == 0:
			e.cfg.DefaultRouters.Del(src, ifc)
		case lifetime > 0:
			pref := ra.RawPreference()
			if !ifc.Params.AcceptRARtrPref {
				pref = icmpv6.PrefMedium
			}
			e.cfg.DefaultRouters.Add(src, ifc, pref, lifetime)
		}
	}

	if lifetime > 0 {
		e.upsertNeighbor(ifc, src, opts.SourceLL, StateStale, UpdateFlags{
			Override: true, WeakOverride: true, OverrideIsRouter: true, IsRouter: true,
		})
	} else if opts.SourceLL != nil {
		e.upsertNeighbor(ifc, src, opts.SourceLL, StateStale, UpdateFlags{Override: true, WeakOverride: true})
	}

	linkInfoChanged := false
	if hop := ra.CurHopLimit(); hop != 0 && hop != ifc.Params.HopLimit {
		ifc.Params.HopLimit = hop
		linkInfoChanged = true
	}
	if rt := ra.ReachableTime(); rt != 0 && rt != ifc.Params.BaseReachableTimeMS {
		ifc.Params.BaseReachableTimeMS = clampTimerMS(rt)
		ifc.Params.ReachableTimeMS = e.randomizeReachable(ifc.Params.BaseReachableTimeMS)
		linkInfoChanged = true
	}
	if rtx := ra.RetransTimer(); rtx != 0 && rtx != ifc.Params.RetransTimeMS {
		ifc.Params.RetransTimeMS = clampTimerMS(rtx)
		linkInfoChanged = true
	}
	if opts.MTU != nil && len(opts.MTU) >= 6 {
		// Option body is reserved(2) + MTU(4) (RFC 4861 §4.6.4).
		mtu := binary.BigEndian.Uint32(opts.MTU[2:6])
		if mtu >= minIPv6MTU && mtu <= uint32(^uint16(0)) && uint16(mtu) != ifc.Params.MTU6 {
			ifc.Params.MTU6 = uint16(mtu)
			if e.cfg.MTUChangeHook != nil {
				e.cfg.MTUChangeHook(ifc, uint16(mtu))
			}
			linkInfoChanged = true
		}
	}
	if linkInfoChanged && e.cfg.LinkInfoNotify != nil {
		e.cfg.LinkInfoNotify(ifc)
	}

	if ifc.Params.AcceptRAPinfo && e.cfg.Prefixes != nil {
		it := opts.Prefixes()
		for {
			_, body, ok := it.Next()
			if !ok {
				break
			}
			e.cfg.Prefixes.PrefixRecv(ifc, body, opts.SourceLL != nil)
		}
	}

	if e.cfg.RouteInfos != nil {
		it := opts.RouteInfos()
		for {
			_, body, ok := it.Next()
			if !ok {
				break
			}
			if len(body) > 0 && body[0] > ifc.Params.AcceptRARouteInfoMaxPlen {
				continue
			}
			e.cfg.RouteInfos.RouteInfoRecv(ifc, body, src)
		}
	}

	if e.cfg.UserOpts != nil {
		it := opts.UserOpts()
		for {
			typ, body, ok := it.Next()
			if !ok {
				break
			}
			e.cfg.UserOpts.UserOptNotify(ifc, src, typ, 0, body)
		}
	}

	if e.cfg.DHCPv6Hint != nil {
		e.cfg.DHCPv6Hint(ifc, ra.IsManaged(), ra.IsOther())
	}
}

// clampTimerMS floors an advertised timer value at 100ms (spec §8 Testable
// Property 8: every derived timer is clamped away from zero).
func clampTimerMS(ms uint32) uint32 {
	if ms < 100 {
		return 100
	}
	return ms
}

// randomizeReachable derives reachable_time uniformly from
// [0.5*base, 1.5*base] using the engine's per-boot random source (spec §9
// "Randomized timers").
func (e *Engine) randomizeReachable(baseMS uint32) uint32 {
	half := baseMS / 2
	if baseMS == 0 {
		return half
	}
	return half + e.nextRand()%baseMS
}

// recvRedirect implements spec §4.4.5's receive side.
func (e *Engine) recvRedirect(ifc *Iface, src *[16]byte, icmpBuf []byte) {
	if !ipv6.IsLinkLocal(src) {
		e.Stats.InErrors.Add(1)
		return
	}
	if ifc.Params.Forwarding {
		// RFC 4861 §8.1: routers do not act on Redirects. Simplification
		// of the kernel's fuller host/non-default-interior-router gate.
		return
	}
	rd, err := icmpv6.NewFrameRedirect(icmpBuf)
	if err != nil {
		e.Stats.InErrors.Add(1)
		return
	}
	opts, err := ndpopt.Parse(rd.Options())
	if err != nil {
		e.Stats.InErrors.Add(1)
		return
	}
	if opts.TargetLL != nil {
		e.upsertNeighbor(ifc, rd.Target(), opts.TargetLL, StateStale, UpdateFlags{Override: true, WeakOverride: true})
	}
	if opts.RedirectHeader == nil || len(opts.RedirectHeader) < 6 {
		return
	}
	original := opts.RedirectHeader[6:]
	if e.cfg.Redirects != nil {
		e.cfg.Redirects.RedirectRecv(ifc, rd.Destination(), rd.Target(), original)
	}
}
