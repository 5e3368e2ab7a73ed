package ndp

import (
	"time"

	"github.com/go-ndp6/ndp6/ipv6"
)

// Solicit implements spec §4.5's probe-kind decision for nb and increments
// its probe counter. The caller owns the PROBE-state scheduling (when to
// call Solicit again, and when to declare the entry FAILED once
// ucast_probes+app_probes+mcast_probes is exhausted); Solicit only decides
// which kind of probe to send on this attempt:
//
//   - probes < ucast_probes: unicast NS straight to the cached address,
//     no source-LL option (we already know how to reach them).
//   - probes < ucast_probes+app_probes: hand off to a user-space resolver
//     via AppProbeNotify instead of sending anything on the wire.
//   - otherwise: multicast NS to the solicited-node address, with a
//     source-LL option so the target can answer unicast.
func (e *Engine) Solicit(ifc *Iface, nb *NeighEntry, now time.Time) {
	probes := nb.Probes
	switch {
	case probes < uint16(ifc.Params.UcastProbes):
		e.SendNS(ifc, &nb.Addr, &nb.Addr, nil, false)
	case probes < uint16(ifc.Params.UcastProbes)+uint16(ifc.Params.AppProbes):
		if e.cfg.AppProbeNotify != nil {
			e.cfg.AppProbeNotify(&nb.Addr, ifc)
		}
	default:
		snma := ipv6.SolicitedNodeMulticast(&nb.Addr)
		e.SendNS(ifc, &snma, &nb.Addr, nil, true)
	}
	nb.Probes++
}

// SubmitPacket is the entry point for a caller that has an outbound
// payload destined for addr and wants ndp to resolve its link-layer
// address first (spec §3's "pending send queue (bounded bytes)"). If the
// neighbor cache entry is already resolved, SubmitPacket reports false
// and the caller sends pkt itself immediately. If the entry is
// INCOMPLETE, pkt is queued (oldest entries dropped to make room under
// ifc.Params.QueueLenBytes) and, for the very first submission, a probe
// is kicked off via Solicit; SubmitPacket then reports true, and pkt is
// later handed back through [Config.FlushPending] once resolution
// completes.
func (e *Engine) SubmitPacket(ifc *Iface, addr *[16]byte, pkt []byte, now time.Time) bool {
	if e.cfg.Cache == nil || ifc.Params.QueueLenBytes <= 0 {
		return false
	}
	nb, ok := e.cfg.Cache.Lookup(ifc, addr)
	if !ok {
		var err error
		nb, err = e.cfg.Cache.Create(ifc, addr)
		if err != nil {
			return false
		}
	}
	defer e.cfg.Cache.Release(nb)

	if nb.State != StateIncomplete {
		return false
	}
	firstProbe := nb.Probes == 0
	nb.EnqueuePending(pkt, ifc.Params.QueueLenBytes)
	if firstProbe {
		e.Solicit(ifc, nb, now)
	}
	return true
}
