package ndp

import (
	"hash/maphash"
	"testing"

	"github.com/go-ndp6/ndp6"
)

func TestHashIsDeterministicForSameSeed(t *testing.T) {
	seed := maphash.MakeSeed()
	addr := globalAddr(40)
	h1 := Hash(&addr, 1, seed)
	h2 := Hash(&addr, 1, seed)
	if h1 != h2 {
		t.Fatalf("Hash must be deterministic for a fixed seed: got %d then %d", h1, h2)
	}
}

func TestHashDiffersByInterfaceID(t *testing.T) {
	seed := maphash.MakeSeed()
	addr := globalAddr(41)
	h1 := Hash(&addr, 1, seed)
	h2 := Hash(&addr, 2, seed)
	if h1 == h2 {
		t.Fatal("Hash should (almost certainly) differ when only the interface ID changes")
	}
}

func TestMulticastMapEthernetDerivesIPv6MulticastMAC(t *testing.T) {
	ifc := testEthernetIface(1)
	snma := ipv6SolicitedNode(t, globalAddr(42))
	lladdr, n, err := MulticastMap(ifc, &snma, DirTX)
	if err != nil {
		t.Fatalf("MulticastMap: %v", err)
	}
	if n != 6 {
		t.Fatalf("n = %d, want 6 for an Ethernet multicast MAC", n)
	}
	if lladdr[0] != 0x33 || lladdr[1] != 0x33 {
		t.Fatalf("multicast MAC = %x, want the 33:33 IPv6 multicast prefix", lladdr[:n])
	}
}

func TestMulticastMapUnsupportedLinkWithoutBroadcast(t *testing.T) {
	ifc := &Iface{ID: 1, Link: ndp6.LinkType(0xff), Params: DefaultParams()}
	addr := globalAddr(43)
	_, _, err := MulticastMap(ifc, &addr, DirRX)
	if err != ndp6.ErrUnsupportedLink {
		t.Fatalf("err = %v, want ErrUnsupportedLink", err)
	}
}

func ipv6SolicitedNode(t *testing.T, addr [16]byte) [16]byte {
	t.Helper()
	return [16]byte{0xff, 0x02, 11: 0x01, 12: 0xff, 13: addr[13], 14: addr[14], 15: addr[15]}
}
