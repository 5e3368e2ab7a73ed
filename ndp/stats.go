package ndp

import "sync/atomic"

// Stats holds MIB-style per-engine counters, incremented instead of
// returning errors on local-transient and drop-silently paths (spec §7,
// §4.2 step 6).
type Stats struct {
	InMsgs, InErrors   atomic.Uint64
	OutMsgs, OutErrors atomic.Uint64

	InNS, InNA, InRS, InRA, InRedirect      atomic.Uint64
	OutNS, OutNA, OutRS, OutRA, OutRedirect atomic.Uint64
	DADFailures, ProxyQueued, ProxyDropped  atomic.Uint64
	RedirectRateLimited                     atomic.Uint64
}
