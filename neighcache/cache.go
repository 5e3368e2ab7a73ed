// Package neighcache is a reference [ndp.NeighborCache] implementation: a
// fixed-capacity, mutex-guarded store keyed by {interface, address},
// grounded on internal/lrucache's ring-indexed recency discipline for the
// Lookup/Create hot path. It exists to exercise the ndp package's
// collaborator contract end to end and is suitable for tests and small
// embedded deployments; a production integrator with its own neighbor
// table (e.g. a kernel's) would implement [ndp.NeighborCache] directly
// against that table instead.
package neighcache

import (
	"sync"
	"time"

	"github.com/go-ndp6/ndp6/internal/lrucache"
	"github.com/go-ndp6/ndp6/ndp"
)

type key struct {
	ifaceID uint32
	addr    [16]byte
}

// Cache implements ndp.NeighborCache.
type Cache struct {
	mu       sync.Mutex
	store    lrucache.Cache[key, *ndp.NeighEntry]
	all      []*ndp.NeighEntry
	capacity int
	staleAge time.Duration
}

// New returns a Cache holding at most capacity entries (oldest evicted
// first once full) and collecting STALE entries idle past staleAge on
// [Cache.RunGC].
func New(capacity int, staleAge time.Duration) *Cache {
	return &Cache{
		store:    lrucache.New[key, *ndp.NeighEntry](capacity),
		capacity: capacity,
		staleAge: staleAge,
	}
}

func (c *Cache) Lookup(ifc *ndp.Iface, addr *[16]byte) (*ndp.NeighEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Get(key{ifc.ID, *addr})
}

func (c *Cache) Create(ifc *ndp.Iface, addr *[16]byte) (*ndp.NeighEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	nb := &ndp.NeighEntry{IfaceID: ifc.ID, Addr: *addr, Confirmed: time.Now()}
	if err := ndp.NeighborConstructor(ifc, nb); err != nil {
		return nil, err
	}
	c.store.Push(key{ifc.ID, *addr}, nb)
	c.all = append(c.all, nb)
	if len(c.all) > c.capacity {
		c.all = c.all[len(c.all)-c.capacity:]
	}
	return nb, nil
}

func (c *Cache) Update(e *ndp.NeighEntry, lladdr []byte, newState ndp.State, flags ndp.UpdateFlags) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if lladdr != nil && (e.LLAddrLen == 0 || flags.Override || flags.WeakOverride) {
		e.SetLinkAddr(lladdr)
	}
	if flags.OverrideIsRouter {
		if flags.IsRouter {
			e.Flags |= ndp.FlagRouter
		} else {
			e.Flags &^= ndp.FlagRouter
		}
	}
	e.State = newState
	e.Confirmed = time.Now()
	e.Probes = 0
}

// Release is a no-op: entries are plain pointers into c.all, not
// separately reference-counted. It exists to satisfy the symmetric
// Lookup/Release discipline every ndp caller follows.
func (c *Cache) Release(e *ndp.NeighEntry) {}

// ChangeAddr marks every entry on ifaceID STALE, forcing a fresh
// reachability confirmation the next time each is used (neigh_changeaddr
// semantics).
func (c *Cache) ChangeAddr(ifaceID uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, nb := range c.all {
		if nb.IfaceID == ifaceID && nb.State != ndp.StatePermanent {
			nb.State = ndp.StateStale
		}
	}
}

// IfDown purges every entry on ifaceID (neigh_ifdown semantics).
func (c *Cache) IfDown(ifaceID uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	keep := make([]*ndp.NeighEntry, 0, len(c.all))
	for _, nb := range c.all {
		if nb.IfaceID != ifaceID {
			keep = append(keep, nb)
		}
	}
	c.rebuild(keep)
}

// RunGC drops STALE entries idle past staleAge (neigh_periodic_work
// semantics); REACHABLE and PERMANENT entries are never collected here.
func (c *Cache) RunGC() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	keep := make([]*ndp.NeighEntry, 0, len(c.all))
	for _, nb := range c.all {
		if nb.State == ndp.StateStale && now.Sub(nb.Confirmed) > c.staleAge {
			continue
		}
		keep = append(keep, nb)
	}
	c.rebuild(keep)
}

func (c *Cache) rebuild(keep []*ndp.NeighEntry) {
	c.store = lrucache.New[key, *ndp.NeighEntry](c.capacity)
	for _, nb := range keep {
		c.store.Push(key{nb.IfaceID, nb.Addr}, nb)
	}
	c.all = keep
}
