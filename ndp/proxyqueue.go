package ndp

import "time"

// maxProxyPacketSize bounds the clone stored per queued entry: large enough
// for an NS plus a source-LL option and some slack, small enough to keep
// the whole queue a fixed, preallocated block (spec §4.6, grounded on
// internal/ring.go's fixed-buffer discipline).
const maxProxyPacketSize = 160

type proxyEntry struct {
	buf      [maxProxyPacketSize]byte
	n        int
	deadline time.Time
}

// proxyQueue is the fixed-capacity delay queue of spec §4.6: a clone of a
// proxied or anycast-targeted NS is held until deadline, then replayed
// through recvNS. Capacity is fixed at construction (proxy_qlen); overflow
// silently drops the newest entry.
type proxyQueue struct {
	entries    []proxyEntry
	head, tail int
	count      int
}

func newProxyQueue(capacity int) *proxyQueue {
	if capacity <= 0 {
		return nil
	}
	return &proxyQueue{entries: make([]proxyEntry, capacity)}
}

// push clones pkt (truncating silently if it exceeds maxProxyPacketSize,
// which never happens for a bare NS+options within a sane MTU) and enqueues
// it to fire at now+delay. It reports whether the entry was accepted.
func (q *proxyQueue) push(pkt []byte, now time.Time, delay time.Duration) bool {
	if q == nil || q.count == len(q.entries) {
		return false
	}
	e := &q.entries[q.tail]
	e.n = copy(e.buf[:], pkt)
	e.deadline = now.Add(delay)
	q.tail++
	if q.tail == len(q.entries) {
		q.tail = 0
	}
	q.count++
	return true
}

// poll dequeues and returns the packet at the head of the queue if its
// deadline has elapsed. The returned slice aliases internal storage and is
// only valid until the next push/poll call.
func (q *proxyQueue) poll(now time.Time) (pkt []byte, ok bool) {
	if q == nil || q.count == 0 {
		return nil, false
	}
	e := &q.entries[q.head]
	if now.Before(e.deadline) {
		return nil, false
	}
	pkt = e.buf[:e.n]
	q.head++
	if q.head == len(q.entries) {
		q.head = 0
	}
	q.count--
	return pkt, true
}

// packNSClone packs src, dst and the raw ICMPv6 NS body into a single
// envelope so a queued entry can be replayed through recvNS without the
// queue knowing anything about IPv6 addressing.
func packNSClone(buf []byte, src, dst *[16]byte, icmpBuf []byte) int {
	n := copy(buf, src[:])
	n += copy(buf[n:], dst[:])
	n += copy(buf[n:], icmpBuf)
	return n
}

// unpackNSClone is packNSClone's inverse; icmpBuf aliases buf.
func unpackNSClone(buf []byte) (src, dst [16]byte, icmpBuf []byte) {
	copy(src[:], buf[0:16])
	copy(dst[:], buf[16:32])
	icmpBuf = buf[32:]
	return
}

// ServiceProxyQueues polls every registered interface's proxy delay queue
// and replays any entry whose delay has elapsed (spec §4.6: "the queue
// later dequeues and re-invokes RecvNS on the clone"). Call this
// periodically from the integrator's timer loop; it does nothing between
// deadlines.
func (e *Engine) ServiceProxyQueues(now time.Time) {
	for _, ifc := range e.ifaces {
		if ifc.proxyQ == nil {
			continue
		}
		for {
			pkt, ok := ifc.proxyQ.poll(now)
			if !ok {
				break
			}
			src, dst, icmpBuf := unpackNSClone(pkt)
			e.recvNS(ifc, &src, &dst, icmpBuf, now, true)
		}
	}
}
