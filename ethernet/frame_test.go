package ethernet

import (
	"testing"

	"github.com/go-ndp6/ndp6"
)

func TestFrameBasic(t *testing.T) {
	buf := make([]byte, 14+4)
	efrm, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	dst := [6]byte{1, 2, 3, 4, 5, 6}
	src := [6]byte{6, 5, 4, 3, 2, 1}
	efrm.SetDestinationHardwareAddr(dst)
	efrm.SetSourceHardwareAddr(src)
	efrm.SetEtherType(TypeIPv6)
	if *efrm.DestinationHardwareAddr() != dst {
		t.Error("destination mismatch")
	}
	if *efrm.SourceHardwareAddr() != src {
		t.Error("source mismatch")
	}
	if efrm.EtherTypeOrSize() != TypeIPv6 {
		t.Error("ethertype mismatch")
	}
	if efrm.IsBroadcast() {
		t.Error("should not be broadcast")
	}
}

func TestFrameBroadcast(t *testing.T) {
	buf := make([]byte, 14)
	efrm, _ := NewFrame(buf)
	efrm.SetDestinationHardwareAddr(BroadcastAddr())
	if !efrm.IsBroadcast() {
		t.Error("expected broadcast")
	}
}

func TestIPv6MulticastAddr(t *testing.T) {
	target := [16]byte{0xff, 0x02, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0xff, 0x00, 0x00, 0x01}
	got := IPv6MulticastAddr(&target)
	want := [6]byte{0x33, 0x33, 0xff, 0x00, 0x00, 0x01}
	if got != want {
		t.Errorf("got %x want %x", got, want)
	}
}

func TestValidateSizeShort(t *testing.T) {
	buf := make([]byte, 14)
	efrm, _ := NewFrame(buf)
	efrm.SetEtherType(Type(100)) // claims 100 byte payload in a 14 byte buffer
	var v ndp6.Validator
	efrm.ValidateSize(&v)
	if !v.HasError() {
		t.Error("expected short-frame error")
	}
}
