package ndp

import (
	"testing"
	"time"
)

func TestProxyQueuePushPollRespectsDeadline(t *testing.T) {
	q := newProxyQueue(4)
	now := time.Now()
	if !q.push([]byte("hello"), now, 50*time.Millisecond) {
		t.Fatal("push into a non-full queue should succeed")
	}

	if _, ok := q.poll(now); ok {
		t.Fatal("poll before the deadline must not return the entry")
	}
	pkt, ok := q.poll(now.Add(51 * time.Millisecond))
	if !ok || string(pkt) != "hello" {
		t.Fatalf("poll after the deadline = %q, %v, want %q, true", pkt, ok, "hello")
	}
	if _, ok := q.poll(now.Add(time.Second)); ok {
		t.Fatal("queue should be empty after its only entry was dequeued")
	}
}

func TestProxyQueueOverflowDropsNewest(t *testing.T) {
	q := newProxyQueue(2)
	now := time.Now()
	if !q.push([]byte("a"), now, 0) {
		t.Fatal("first push should succeed")
	}
	if !q.push([]byte("b"), now, 0) {
		t.Fatal("second push should succeed")
	}
	if q.push([]byte("c"), now, 0) {
		t.Fatal("push into a full queue should be rejected")
	}
}

func TestProxyQueueNilQueueIsInert(t *testing.T) {
	var q *proxyQueue
	if q.push([]byte("x"), time.Now(), 0) {
		t.Fatal("push on a nil queue must report rejection")
	}
	if _, ok := q.poll(time.Now()); ok {
		t.Fatal("poll on a nil queue must report nothing available")
	}
}

func TestPackUnpackNSCloneRoundTrips(t *testing.T) {
	src := linkLocal(1)
	dst := linkLocal(2)
	icmp := []byte{1, 2, 3, 4, 5}

	var buf [64]byte
	n := packNSClone(buf[:], &src, &dst, icmp)

	gotSrc, gotDst, gotICMP := unpackNSClone(buf[:n])
	if gotSrc != src || gotDst != dst {
		t.Fatalf("addresses did not round-trip: src=%x dst=%x", gotSrc, gotDst)
	}
	if string(gotICMP) != string(icmp) {
		t.Fatalf("icmp body = %v, want %v", gotICMP, icmp)
	}
}

func TestServiceProxyQueuesReplaysOnlyAfterDeadlineAndOnce(t *testing.T) {
	var sent []capturedSend
	ifc := testEthernetIface(1)
	target := globalAddr(4)
	proxies := fakeProxies{target: false}
	sel := &fakeAddrSelect{src: linkLocal(1)}
	eng := NewEngine(Config{Cache: newMemCache(), Proxies: proxies, AddrSelect: sel, Output: captureOutput(&sent)})
	eng.RegisterIface(ifc)

	src := linkLocal(6)
	dst := linkLocal(0) // reused as an arbitrary multicast-shaped placeholder below
	dst = [16]byte{0xff, 0x02, 13: 1, 14: 0xff, 15: 4}
	ns := buildNS(t, target, nil)

	now := time.Now()
	eng.recvNS(ifc, &src, &dst, ns, now, false)
	if len(sent) != 0 {
		t.Fatal("queued entry must not be answered before its delay elapses")
	}

	deadline := ifc.proxyQ.entries[ifc.proxyQ.head].deadline
	eng.ServiceProxyQueues(deadline.Add(-time.Millisecond))
	if len(sent) != 0 {
		t.Fatal("the delay is drawn from 1ms up to the 800ms default; polling before the entry's deadline must not fire")
	}

	eng.ServiceProxyQueues(now.Add(2 * time.Second))
	if len(sent) != 1 {
		t.Fatalf("got %d sends after the deadline elapsed, want exactly 1", len(sent))
	}

	eng.ServiceProxyQueues(now.Add(3 * time.Second))
	if len(sent) != 1 {
		t.Fatal("polling an already-drained queue must not re-answer")
	}
}
