package ndp

import (
	"github.com/go-ndp6/ndp6"
	"github.com/go-ndp6/ndp6/icmpv6"
	"github.com/go-ndp6/ndp6/ipv6"
	"github.com/go-ndp6/ndp6/ndpopt"
)

const (
	ipv6HeaderSize = 40

	icmpHeaderLen   = 4
	nsBodyLen       = 20 // reserved(4) + target(16)
	naBodyLen       = 20 // flags/reserved(4) + target(16)
	rsBodyLen       = 4  // reserved(4)
	redirectBodyLen = 36 // reserved(4) + target(16) + destination(16)
)

// minIPv6MTU is RFC 8200 §5's guaranteed minimum link MTU; the emitter's
// scratch buffer is sized to it so every send fits without fragmentation
// and without allocating.
const minIPv6MTU = 1280

// OutputFunc hands a fully built IPv6+ICMPv6 packet to the link/transport
// layer — spec §4.2 step 6's "invoke the output netfilter hook and submit
// to dst_output". Link-layer framing, routing proper and socket I/O all
// live below this boundary, as external collaborators.
type OutputFunc func(ifc *Iface, dst *[16]byte, pkt []byte)

func (e *Engine) output(ifc *Iface, dst *[16]byte, pkt []byte) {
	if e.cfg.Output == nil {
		return
	}
	e.cfg.Output(ifc, dst, pkt)
}

func optionSpace(pad, llLen int) int {
	total := 2 + pad + llLen
	return ((total + 7) / 8) * 8
}

// buildAndSend implements spec §4.2 steps 1-6: zero and populate the
// ICMPv6 body via fill, select a source address unless one is pinned,
// compute the pseudo-header checksum, prepend the IPv6 header and hand the
// result to the output collaborator. Allocation failure (buffer too
// small), an unresolved source address, or a failed route lookup is a
// silent drop — the emitter never returns an error (spec §4.2, §7), but it
// reports whether the packet actually reached the output collaborator so
// callers only count OUTMSGS[type] (spec §4.2 step 6) on success.
func (e *Engine) buildAndSend(ifc *Iface, dst *[16]byte, srcOverride *[16]byte, allowUnspecified bool, msgType icmpv6.Type, msgLen int, fill func(body icmpv6.Frame)) bool {
	total := ipv6HeaderSize + msgLen
	if total > len(e.txBuf) {
		e.Stats.OutErrors.Add(1)
		return false
	}
	buf := e.txBuf[:total]

	var src [16]byte
	switch {
	case srcOverride != nil:
		src = *srcOverride
	case e.cfg.AddrSelect != nil:
		s, ok := e.cfg.AddrSelect.SelectAddr(ifc, dst, allowUnspecified)
		if !ok {
			e.Stats.OutErrors.Add(1)
			return false
		}
		src = s
	case !allowUnspecified:
		e.Stats.OutErrors.Add(1)
		return false
	}

	if e.cfg.Routes != nil && !e.cfg.Routes.Lookup(ifc, dst) {
		e.Stats.OutErrors.Add(1)
		return false
	}

	ipf, err := ipv6.NewFrame(buf)
	if err != nil {
		e.Stats.OutErrors.Add(1)
		return false
	}
	icmpBuf := buf[ipv6HeaderSize:]
	for i := range icmpBuf {
		icmpBuf[i] = 0
	}
	icmpFrame, err := icmpv6.NewFrame(icmpBuf)
	if err != nil {
		e.Stats.OutErrors.Add(1)
		return false
	}
	icmpFrame.SetType(msgType)
	icmpFrame.SetCode(0)
	fill(icmpFrame)

	ipf.SetVersionTrafficAndFlow(6, 0, 0)
	ipf.SetPayloadLength(uint16(msgLen))
	ipf.SetNextHeader(58) // ICMPv6
	ipf.SetHopLimit(255)
	*ipf.SourceAddr() = src
	*ipf.DestinationAddr() = *dst

	var crc ndp6.CRC791
	ipf.CRCWritePseudo(&crc)
	icmpFrame.CRCWrite(&crc)
	icmpFrame.SetChecksum(ndp6.NeverZeroChecksum(crc.Sum16()))

	e.Stats.OutMsgs.Add(1)
	e.output(ifc, dst, buf)
	return true
}

// SendNS emits a Neighbor Solicitation for target on dst. src, when
// non-nil, pins the source address — required for DAD (the unspecified
// address) and useful for source-biased unicast probes; otherwise the
// address-selection collaborator picks one. includeSourceLL must be false
// for DAD (spec §3 invariant: a DAD NS carries no source-LL option).
func (e *Engine) SendNS(ifc *Iface, dst, target *[16]byte, src *[16]byte, includeSourceLL bool) {
	allowUnspec := src != nil && ipv6.IsUnspecified(src)
	pad := ndpopt.PadForLinkType(ifc.Link)
	optLen := 0
	if includeSourceLL && ifc.HWAddrLen > 0 {
		optLen = optionSpace(pad, int(ifc.HWAddrLen))
	}
	ok := e.buildAndSend(ifc, dst, src, allowUnspec, icmpv6.TypeNeighborSolicit, icmpHeaderLen+nsBodyLen+optLen, func(f icmpv6.Frame) {
		ns, err := icmpv6.NewFrameNS(f.RawData())
		if err != nil {
			return
		}
		*ns.Target() = *target
		if optLen > 0 {
			ndpopt.FillAddressOption(ns.Options(), ndpopt.TypeSourceLL, ifc.hwAddr(), pad)
		}
	})
	if ok {
		e.Stats.OutNS.Add(1)
	}
}

// SendNA emits a Neighbor Advertisement for target to dst, per spec
// §4.4.1's response rules.
func (e *Engine) SendNA(ifc *Iface, dst, target *[16]byte, src *[16]byte, solicited, override, router, includeTargetLL bool) {
	pad := ndpopt.PadForLinkType(ifc.Link)
	optLen := 0
	if includeTargetLL && ifc.HWAddrLen > 0 {
		optLen = optionSpace(pad, int(ifc.HWAddrLen))
	}
	ok := e.buildAndSend(ifc, dst, src, false, icmpv6.TypeNeighborAdvert, icmpHeaderLen+naBodyLen+optLen, func(f icmpv6.Frame) {
		na, err := icmpv6.NewFrameNA(f.RawData())
		if err != nil {
			return
		}
		var flags uint8
		if router {
			flags |= icmpv6.NAFlagRouter
		}
		if solicited {
			flags |= icmpv6.NAFlagSolicited
		}
		if override {
			flags |= icmpv6.NAFlagOverride
		}
		na.SetFlags(flags)
		*na.Target() = *target
		if optLen > 0 {
			ndpopt.FillAddressOption(na.Options(), ndpopt.TypeTargetLL, ifc.hwAddr(), pad)
		}
	})
	if ok {
		e.Stats.OutNA.Add(1)
	}
}

// AllRoutersMulticast returns ff02::2, the destination of an outbound
// Router Solicitation.
func AllRoutersMulticast() [16]byte {
	return [16]byte{0xff, 0x02, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x02}
}

// SendRS emits a Router Solicitation on ifc to the all-routers multicast
// address, with a source-LL option when the interface has a link-layer
// address and allowing the unspecified source otherwise (RFC 4861 §4.1).
func (e *Engine) SendRS(ifc *Iface) {
	dst := AllRoutersMulticast()
	pad := ndpopt.PadForLinkType(ifc.Link)
	optLen := 0
	if ifc.HWAddrLen > 0 {
		optLen = optionSpace(pad, int(ifc.HWAddrLen))
	}
	ok := e.buildAndSend(ifc, &dst, nil, true, icmpv6.TypeRouterSolicit, icmpHeaderLen+rsBodyLen+optLen, func(f icmpv6.Frame) {
		rs, err := icmpv6.NewFrameRS(f.RawData())
		if err != nil {
			return
		}
		if optLen > 0 {
			ndpopt.FillAddressOption(rs.Options(), ndpopt.TypeSourceLL, ifc.hwAddr(), pad)
		}
	})
	if ok {
		e.Stats.OutRS.Add(1)
	}
}
