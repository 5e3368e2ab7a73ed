package ndp

import (
	"time"

	"github.com/go-ndp6/ndp6"
	"github.com/go-ndp6/ndp6/icmpv6"
)

// fakeAddrSelect always returns a fixed source, recording every call.
type fakeAddrSelect struct {
	src   [16]byte
	calls int
}

func (f *fakeAddrSelect) SelectAddr(ifc *Iface, dst *[16]byte, allowUnspecified bool) ([16]byte, bool) {
	f.calls++
	return f.src, true
}

// fakeRoutes always resolves.
type fakeRoutes struct{}

func (fakeRoutes) Lookup(ifc *Iface, dst *[16]byte) bool { return true }

// fakeDefaultRouters is an in-memory DefaultRouterTable for tests.
type fakeDefaultRouters struct {
	rows map[[16]byte]struct {
		pref icmpv6.Preference
		life uint16
	}
	dels int
}

func newFakeDefaultRouters() *fakeDefaultRouters {
	return &fakeDefaultRouters{rows: make(map[[16]byte]struct {
		pref icmpv6.Preference
		life uint16
	})}
}

func (f *fakeDefaultRouters) Add(src *[16]byte, ifc *Iface, pref icmpv6.Preference, lifetimeSec uint16) {
	f.rows[*src] = struct {
		pref icmpv6.Preference
		life uint16
	}{pref, lifetimeSec}
}

func (f *fakeDefaultRouters) Del(src *[16]byte, ifc *Iface) {
	delete(f.rows, *src)
	f.dels++
}

func (f *fakeDefaultRouters) Get(src *[16]byte, ifc *Iface) (icmpv6.Preference, uint16, bool) {
	v, ok := f.rows[*src]
	return v.pref, v.life, ok
}

// fakeDAD records DADFail invocations.
type fakeDAD struct {
	failed []([16]byte)
}

func (f *fakeDAD) DADFail(ifc *Iface, addr *[16]byte) {
	f.failed = append(f.failed, *addr)
}

// fakeLocalAddrs is a small fixed address->state table.
type fakeLocalAddrs map[[16]byte]AddrState

func (f fakeLocalAddrs) Lookup(ifc *Iface, addr *[16]byte) (AddrState, bool) {
	s, ok := f[*addr]
	return s, ok
}

// fakeAnycast reports membership of a fixed address set.
type fakeAnycast map[[16]byte]bool

func (f fakeAnycast) IsAnycast(ifc *Iface, addr *[16]byte) bool { return f[*addr] }

// fakeProxies reports membership of a fixed address set.
type fakeProxies map[[16]byte]bool

func (f fakeProxies) Lookup(ifc *Iface, addr *[16]byte) (bool, bool) {
	isRouter, ok := f[*addr]
	return isRouter, ok
}

// fakeRedirects records RedirectRecv invocations.
type fakeRedirects struct {
	n int
}

func (f *fakeRedirects) RedirectRecv(ifc *Iface, dst, target *[16]byte, originalPacket []byte) {
	f.n++
}

// memCache is a minimal, allocation-heavy-but-correct NeighborCache stand-in
// for tests that don't want to pull in package neighcache.
type memCache struct {
	m map[[16]byte]*NeighEntry
}

func newMemCache() *memCache { return &memCache{m: make(map[[16]byte]*NeighEntry)} }

func (c *memCache) Lookup(ifc *Iface, addr *[16]byte) (*NeighEntry, bool) {
	nb, ok := c.m[*addr]
	return nb, ok
}

func (c *memCache) Create(ifc *Iface, addr *[16]byte) (*NeighEntry, error) {
	nb := &NeighEntry{IfaceID: ifc.ID, Addr: *addr, Confirmed: time.Now()}
	if err := NeighborConstructor(ifc, nb); err != nil {
		return nil, err
	}
	c.m[*addr] = nb
	return nb, nil
}

func (c *memCache) Update(e *NeighEntry, lladdr []byte, newState State, flags UpdateFlags) {
	if lladdr != nil && (e.LLAddrLen == 0 || flags.Override || flags.WeakOverride) {
		e.SetLinkAddr(lladdr)
	}
	if flags.OverrideIsRouter {
		if flags.IsRouter {
			e.Flags |= FlagRouter
		} else {
			e.Flags &^= FlagRouter
		}
	}
	e.State = newState
}

func (c *memCache) Release(e *NeighEntry) {}
func (c *memCache) ChangeAddr(ifaceID uint32) {
	for _, nb := range c.m {
		if nb.IfaceID == ifaceID {
			nb.State = StateStale
		}
	}
}
func (c *memCache) IfDown(ifaceID uint32) {
	for k, nb := range c.m {
		if nb.IfaceID == ifaceID {
			delete(c.m, k)
		}
	}
}
func (c *memCache) RunGC() {}

func testEthernetIface(id uint32) *Iface {
	ifc := &Iface{
		ID:        id,
		Link:      ndp6.LinkEthernet,
		Flags:     IfaceUp,
		HWAddrLen: 6,
		Params:    DefaultParams(),
	}
	copy(ifc.HWAddr[:], []byte{0x02, 0x00, 0x00, 0x00, 0x00, byte(id)})
	return ifc
}

type capturedSend struct {
	dst [16]byte
	pkt []byte
}

func captureOutput(dst *[]capturedSend) OutputFunc {
	return func(ifc *Iface, d *[16]byte, pkt []byte) {
		cp := make([]byte, len(pkt))
		copy(cp, pkt)
		*dst = append(*dst, capturedSend{dst: *d, pkt: cp})
	}
}

func linkLocal(last byte) [16]byte {
	return [16]byte{0xfe, 0x80, 15: last}
}

func globalAddr(last byte) [16]byte {
	return [16]byte{0x20, 0x01, 0x0d, 0xb8, 15: last}
}
