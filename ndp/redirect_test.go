package ndp

import (
	"testing"
	"time"

	"github.com/go-ndp6/ndp6/icmpv6"
	"github.com/go-ndp6/ndp6/ipv6"
)

func TestSendRedirectRejectsOffLinkTarget(t *testing.T) {
	var sent []capturedSend
	ifc := testEthernetIface(1)
	sel := &fakeAddrSelect{src: linkLocal(1)}
	eng := NewEngine(Config{Cache: newMemCache(), AddrSelect: sel, Output: captureOutput(&sent)})
	eng.RegisterIface(ifc)

	dst := globalAddr(1)
	target := globalAddr(2) // neither link-local nor equal to dst
	eng.SendRedirect(ifc, time.Now(), &dst, &target, []byte("trigger"))

	if len(sent) != 0 {
		t.Fatal("a target that is neither link-local nor the original destination must be rejected")
	}
}

func TestSendRedirectAllowsDestinationAsOnLinkTarget(t *testing.T) {
	var sent []capturedSend
	ifc := testEthernetIface(1)
	sel := &fakeAddrSelect{src: linkLocal(1)}
	eng := NewEngine(Config{Cache: newMemCache(), AddrSelect: sel, Output: captureOutput(&sent)})
	eng.RegisterIface(ifc)

	dst := globalAddr(1)
	eng.SendRedirect(ifc, time.Now(), &dst, &dst, []byte("trigger"))

	if len(sent) != 1 {
		t.Fatalf("got %d sends, want 1 when target == destination", len(sent))
	}
	ipf, err := ipv6.NewFrame(sent[0].pkt)
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	rd, err := icmpv6.NewFrameRedirect(ipf.Payload())
	if err != nil {
		t.Fatalf("NewFrameRedirect: %v", err)
	}
	if *rd.Target() != dst || *rd.Destination() != dst {
		t.Fatalf("target/destination = %x/%x, want both %x", *rd.Target(), *rd.Destination(), dst)
	}
}

func TestSendRedirectRateLimitsPerDestination(t *testing.T) {
	var sent []capturedSend
	ifc := testEthernetIface(1)
	sel := &fakeAddrSelect{src: linkLocal(1)}
	eng := NewEngine(Config{Cache: newMemCache(), AddrSelect: sel, Output: captureOutput(&sent)})
	eng.RegisterIface(ifc)

	dst := globalAddr(3)
	target := linkLocal(4)
	now := time.Now()

	eng.SendRedirect(ifc, now, &dst, &target, []byte("t1"))
	eng.SendRedirect(ifc, now.Add(100*time.Millisecond), &dst, &target, []byte("t2"))

	if len(sent) != 1 {
		t.Fatalf("got %d sends within the 1s rate-limit window, want 1", len(sent))
	}
	if eng.Stats.RedirectRateLimited.Load() != 1 {
		t.Fatalf("RedirectRateLimited = %d, want 1", eng.Stats.RedirectRateLimited.Load())
	}

	eng.SendRedirect(ifc, now.Add(2*time.Second), &dst, &target, []byte("t3"))
	if len(sent) != 2 {
		t.Fatalf("got %d sends after the rate-limit window elapsed, want 2", len(sent))
	}
}

func TestSendRedirectIncludesTargetLLFromCache(t *testing.T) {
	var sent []capturedSend
	ifc := testEthernetIface(1)
	sel := &fakeAddrSelect{src: linkLocal(1)}
	cache := newMemCache()
	eng := NewEngine(Config{Cache: cache, AddrSelect: sel, Output: captureOutput(&sent)})
	eng.RegisterIface(ifc)

	target := linkLocal(5)
	nb, err := cache.Create(ifc, &target)
	if err != nil {
		t.Fatal(err)
	}
	cache.Update(nb, []byte{0x02, 0, 0, 0, 0, 5}, StateReachable, UpdateFlags{Override: true})

	dst := globalAddr(6)
	eng.SendRedirect(ifc, time.Now(), &dst, &target, []byte("payload"))

	ipf, _ := ipv6.NewFrame(sent[0].pkt)
	rd, err := icmpv6.NewFrameRedirect(ipf.Payload())
	if err != nil {
		t.Fatalf("NewFrameRedirect: %v", err)
	}
	if len(rd.Options()) == 0 {
		t.Fatal("expected option area to be non-empty")
	}
}

func TestSendRedirectDropsWhenSourceUnresolved(t *testing.T) {
	var sent []capturedSend
	ifc := testEthernetIface(1)
	eng := NewEngine(Config{Cache: newMemCache(), Output: captureOutput(&sent)})
	eng.RegisterIface(ifc)

	dst := globalAddr(7)
	eng.SendRedirect(ifc, time.Now(), &dst, &dst, []byte("x"))

	if len(sent) != 0 {
		t.Fatal("no AddrSelect collaborator configured: send must be dropped")
	}
}
