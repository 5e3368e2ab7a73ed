package ndp

import (
	"time"

	"github.com/go-ndp6/ndp6/icmpv6"
	"github.com/go-ndp6/ndp6/ipv6"
	"github.com/go-ndp6/ndp6/ndpopt"
)

type redirectPeerEntry struct {
	dest [16]byte
	last time.Time
	used bool
}

// redirectPeerTable rate-limits SendRedirect to 1 Hz per destination
// (SUPPLEMENTED, SPEC_FULL.md §4.4), grounded on the kernel's inet_peer
// limiter but simplified to a small, fixed, direct-mapped table — no
// unbounded peer cache, preserving the no-heap-alloc-on-hot-path
// discipline. A hash collision between two destinations just makes both
// share one rate-limit slot, never a correctness problem, only an
// occasional extra drop.
type redirectPeerTable struct {
	entries  []redirectPeerEntry
	interval time.Duration
}

func (t *redirectPeerTable) init(size int) {
	if size <= 0 {
		size = 64
	}
	t.entries = make([]redirectPeerEntry, size)
	t.interval = time.Second
}

func (t *redirectPeerTable) allow(dest *[16]byte, now time.Time) bool {
	idx := redirectHashIndex(dest, len(t.entries))
	e := &t.entries[idx]
	if e.used && e.dest == *dest && now.Sub(e.last) < t.interval {
		return false
	}
	e.used = true
	e.dest = *dest
	e.last = now
	return true
}

func redirectHashIndex(dest *[16]byte, n int) int {
	var h uint32
	for _, b := range dest {
		h = h*31 + uint32(b)
	}
	return int(h % uint32(n))
}

// redirectHeaderOverhead is the fixed type/code/reserved prefix of the
// Redirect-Header option (RFC 4861 §4.6.3), ahead of the truncated
// original packet.
const redirectHeaderOverhead = 8

// SendRedirect implements spec §4.4.5's emit path: informs dst's sender
// that target, not us, is the better first hop for the destination
// carried in triggeringPacket. now is the caller's clock reading, used
// for rate limiting.
//
// Preconditions enforced here: the egress interface must have a
// link-local source address; target must be on-link, meaning link-local
// unicast or identical to the original destination dst. Both failing
// silently, as with every other emit path (spec §7).
func (e *Engine) SendRedirect(ifc *Iface, now time.Time, dst, target *[16]byte, triggeringPacket []byte) {
	if e.cfg.AddrSelect == nil {
		return
	}
	src, ok := e.cfg.AddrSelect.SelectAddr(ifc, dst, false)
	if !ok || !ipv6.IsLinkLocal(&src) {
		return
	}
	if !ipv6.IsLinkLocal(target) && *target != *dst {
		return
	}
	if !e.redirs.allow(dst, now) {
		e.Stats.RedirectRateLimited.Add(1)
		return
	}

	pad := ndpopt.PadForLinkType(ifc.Link)
	var llAddr [MaxLLAddrLen]byte
	llLen := 0
	if e.cfg.Cache != nil {
		if nb, ok := e.cfg.Cache.Lookup(ifc, target); ok {
			if nb.State != StateIncomplete && nb.LLAddrLen > 0 {
				llLen = copy(llAddr[:], nb.LinkAddr())
			}
			e.cfg.Cache.Release(nb)
		}
	}
	targetLLSpace := 0
	if llLen > 0 {
		targetLLSpace = optionSpace(pad, llLen)
	}

	fixed := ipv6HeaderSize + icmpHeaderLen + redirectBodyLen + targetLLSpace + redirectHeaderOverhead
	room := len(e.txBuf) - fixed
	if room < 8 {
		return
	}
	truncated := triggeringPacket
	maxOrig := (room / 8) * 8
	if len(truncated) > maxOrig {
		truncated = truncated[:maxOrig]
	}
	redirOptLen := redirectHeaderOverhead + len(truncated)
	msgLen := icmpHeaderLen + redirectBodyLen + targetLLSpace + redirOptLen

	ok = e.buildAndSend(ifc, dst, &src, false, icmpv6.TypeRedirect, msgLen, func(f icmpv6.Frame) {
		rd, err := icmpv6.NewFrameRedirect(f.RawData())
		if err != nil {
			return
		}
		*rd.Target() = *target
		*rd.Destination() = *dst
		opts := rd.Options()
		off := 0
		if targetLLSpace > 0 {
			ndpopt.FillAddressOption(opts[off:], ndpopt.TypeTargetLL, llAddr[:llLen], pad)
			off += targetLLSpace
		}
		opts[off] = ndpopt.TypeRedirectHeader
		opts[off+1] = byte(redirOptLen / 8)
		copy(opts[off+redirectHeaderOverhead:], truncated)
	})
	if ok {
		e.Stats.OutRedirect.Add(1)
	}
}
