package ndp

import (
	"crypto/rand"
	"encoding/binary"
	"log/slog"

	"github.com/go-ndp6/ndp6/internal"
)

// Engine is the NDP core of spec.md §2: constructed once with its
// collaborators fixed, then driven by Receive and the reachability/proxy
// timer callbacks. Its only packet buffers are the single transmit scratch
// buffer shared by every send and the per-interface proxy delay queues.
type Engine struct {
	cfg    Config
	ifaces map[uint32]*Iface
	rngSt  uint32
	redirs redirectPeerTable
	txBuf  [minIPv6MTU]byte

	Stats Stats
}

// NewEngine constructs an Engine. cfg.Cache must be set; every other
// collaborator field may be left nil to disable that feature.
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		cfg:    cfg,
		ifaces: make(map[uint32]*Iface),
		rngSt:  randSeed32(),
	}
	e.redirs.init(cfg.RedirectRateLimit)
	return e
}

// randSeed32 draws a non-predictable-across-nodes xorshift seed from
// crypto/rand (spec §9 "Randomized timers"), never zero (a zero seed would
// make internal.Prand32 a fixed point).
func randSeed32() uint32 {
	var b [4]byte
	rand.Read(b[:])
	v := binary.BigEndian.Uint32(b[:])
	if v == 0 {
		v = 0x9e3779b9
	}
	return v
}

// nextRand draws the next pseudo-random value from the engine's per-boot
// xorshift state.
func (e *Engine) nextRand() uint32 {
	e.rngSt = internal.Prand32(e.rngSt)
	return e.rngSt
}

// RegisterIface adds ifc to the engine, allocating its proxy delay queue
// per Params.ProxyQLen. Re-registering the same ID replaces the prior
// entry and its queue.
func (e *Engine) RegisterIface(ifc *Iface) {
	if ifc.Params.ProxyQLen > 0 {
		ifc.proxyQ = newProxyQueue(int(ifc.Params.ProxyQLen))
	}
	e.ifaces[ifc.ID] = ifc
}

// Iface returns the registered interface by ID, if any.
func (e *Engine) Iface(id uint32) (*Iface, bool) {
	ifc, ok := e.ifaces[id]
	return ifc, ok
}

// UnregisterIface removes ifc from the engine, e.g. on device removal.
// Callers should invoke OnInterfaceDown first to flush its neighbor cache
// entries.
func (e *Engine) UnregisterIface(id uint32) error {
	if _, ok := e.ifaces[id]; !ok {
		return errIfaceNotRegistered
	}
	delete(e.ifaces, id)
	return nil
}

// Validate reports whether cfg's required wiring is present. Cache is the
// only collaborator every feature ultimately depends on; every other field
// degrades gracefully to a no-op when nil.
func (e *Engine) Validate() error {
	if e.cfg.Cache == nil {
		return errNoCache
	}
	return nil
}

func (e *Engine) log() *slog.Logger { return e.cfg.logger() }
