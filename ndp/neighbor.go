package ndp

import (
	"encoding/binary"
	"time"

	"github.com/go-ndp6/ndp6/internal"
)

// State is a neighbor cache entry's reachability state (RFC 4861 §7.3.2).
type State uint8

const (
	StateIncomplete State = iota
	StateReachable
	StateStale
	StateDelay
	StateProbe
	StateFailed
	StateNoARP
	StatePermanent
)

func (s State) String() string {
	switch s {
	case StateIncomplete:
		return "INCOMPLETE"
	case StateReachable:
		return "REACHABLE"
	case StateStale:
		return "STALE"
	case StateDelay:
		return "DELAY"
	case StateProbe:
		return "PROBE"
	case StateFailed:
		return "FAILED"
	case StateNoARP:
		return "NOARP"
	case StatePermanent:
		return "PERMANENT"
	default:
		return "State(?)"
	}
}

// EntryFlags are the two neighbor-entry flags of spec §3.
type EntryFlags uint8

const (
	FlagRouter EntryFlags = 1 << iota
	FlagProxy
)

// MaxLLAddrLen bounds a neighbor entry's stored link-layer address, wide
// enough for every LinkType this module recognizes (Infiniband is widest at
// 20 bytes).
const MaxLLAddrLen = 20

// NeighEntry is a neighbor cache entry as described in spec §3. Storage,
// locking and garbage collection belong to a [NeighborCache] implementation
// (package neighcache is a reference one); ndp only ever holds a borrowed
// pointer returned by Lookup/Create while processing a single packet.
type NeighEntry struct {
	IfaceID   uint32
	Addr      [16]byte
	LLAddr    [MaxLLAddrLen]byte
	LLAddrLen uint8
	State     State
	Flags     EntryFlags
	Probes    uint16
	Confirmed time.Time

	// pending holds packets submitted via EnqueuePending while this entry
	// is unresolved, budgeted in bytes by Params.QueueLenBytes (RFC 4861
	// §7.2.2: "retain a small queue of packets waiting for address
	// resolution to complete"). Nil until the first enqueue.
	pending *internal.Ring
	qbudget int
}

// EnqueuePending frames pkt with a 2-byte length prefix and appends it to
// the entry's bounded pending-send queue, allocating the backing ring on
// first use sized to budgetBytes (typically ifc.Params.QueueLenBytes).
// Packets are silently dropped oldest-first to make room, matching the
// kernel's overlimit behavior; a single packet wider than the whole
// budget is dropped outright.
func (e *NeighEntry) EnqueuePending(pkt []byte, budgetBytes int) bool {
	if budgetBytes <= 0 || len(pkt) == 0 {
		return false
	}
	const prefixLen = 2
	need := prefixLen + len(pkt)
	if need > budgetBytes {
		return false
	}
	if e.pending == nil || e.qbudget != budgetBytes {
		e.pending = &internal.Ring{Buf: make([]byte, budgetBytes)}
		e.qbudget = budgetBytes
	}
	var hdr [prefixLen]byte
	for e.pending.Free() < need && e.pending.Buffered() > 0 {
		e.dropOldestPending()
	}
	if e.pending.Free() < need {
		return false
	}
	binary.BigEndian.PutUint16(hdr[:], uint16(len(pkt)))
	if _, err := e.pending.Write(hdr[:]); err != nil {
		return false
	}
	if _, err := e.pending.Write(pkt); err != nil {
		return false
	}
	return true
}

func (e *NeighEntry) dropOldestPending() {
	var hdr [2]byte
	if _, err := e.pending.Read(hdr[:]); err != nil {
		return
	}
	n := int(binary.BigEndian.Uint16(hdr[:]))
	if n > 0 {
		e.pending.ReadDiscard(n)
	}
}

// DrainPending removes and returns every queued packet in FIFO order,
// called once the entry leaves INCOMPLETE (spec §7.2.2's "once address
// resolution completes... the queued packets... are transmitted").
func (e *NeighEntry) DrainPending() [][]byte {
	if e.pending == nil || e.pending.Buffered() == 0 {
		return nil
	}
	var out [][]byte
	var hdr [2]byte
	for e.pending.Buffered() > 0 {
		if _, err := e.pending.Read(hdr[:]); err != nil {
			break
		}
		n := int(binary.BigEndian.Uint16(hdr[:]))
		buf := make([]byte, n)
		if _, err := e.pending.Read(buf); err != nil {
			break
		}
		out = append(out, buf)
	}
	return out
}

// LinkAddr returns the stored link-layer address.
func (e *NeighEntry) LinkAddr() []byte { return e.LLAddr[:e.LLAddrLen] }

// SetLinkAddr overwrites the stored link-layer address, truncating to
// [MaxLLAddrLen] if necessary.
func (e *NeighEntry) SetLinkAddr(ll []byte) { e.LLAddrLen = uint8(copy(e.LLAddr[:], ll)) }

func (e *NeighEntry) IsRouter() bool { return e.Flags&FlagRouter != 0 }
func (e *NeighEntry) IsProxy() bool  { return e.Flags&FlagProxy != 0 }

// UpdateFlags controls override semantics of [NeighborCache.Update],
// mirroring the kernel's NEIGH_UPDATE_F_* bits (RFC 4861 §7.2.5).
type UpdateFlags struct {
	Override         bool // lladdr may replace a differing stored value
	WeakOverride     bool // lladdr may fill an unset value even without Override
	OverrideIsRouter bool // the IsRouter flag below is authoritative, not additive
	IsRouter         bool
}
