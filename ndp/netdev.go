package ndp

// OnAddressChange notifies the neighbor cache that ifc's local address set
// changed and, if Params.NdiscNotify is set, sends a gratuitous, unsolicited
// Neighbor Advertisement for each newly-ready address so neighbors holding a
// stale cache entry update it without waiting out their own reachability
// timer (RFC 4861 §7.2.6). readyAddrs is supplied by the caller since ndp
// has no address enumerator of its own; addresses belong to the LocalAddrs
// collaborator (SUPPLEMENTED netdev hook, SPEC_FULL.md §4.4).
func (e *Engine) OnAddressChange(ifc *Iface, readyAddrs [][16]byte) {
	if e.cfg.Cache != nil {
		e.cfg.Cache.ChangeAddr(ifc.ID)
		e.cfg.Cache.RunGC()
	}
	if ifc.Params.NdiscNotify {
		e.announceAddrs(ifc, readyAddrs)
	}
}

// OnInterfaceDown purges ifc's neighbor cache entries and discards its
// proxy delay queue when the link goes down.
func (e *Engine) OnInterfaceDown(ifc *Iface) {
	if e.cfg.Cache != nil {
		e.cfg.Cache.IfDown(ifc.ID)
		e.cfg.Cache.RunGC()
	}
	ifc.proxyQ = nil
}

// OnNotifyPeers re-announces readyAddrs unsolicited, e.g. after a bonding
// failover moves an address to a new link-layer address (Linux's
// NETDEV_NOTIFY_PEERS). Unconditional: re-announcing regardless of
// Params.NdiscNotify is the entire point of this hook.
func (e *Engine) OnNotifyPeers(ifc *Iface, readyAddrs [][16]byte) {
	e.announceAddrs(ifc, readyAddrs)
}

func (e *Engine) announceAddrs(ifc *Iface, addrs [][16]byte) {
	allNodes := AllNodesMulticast()
	for i := range addrs {
		e.SendNA(ifc, &allNodes, &addrs[i], nil, false, true, ifc.Params.Forwarding, true)
	}
}
