package icmpv6

import "testing"

func TestFrameNS(t *testing.T) {
	buf := make([]byte, sizeHeader+sizeBodyNS)
	f, err := NewFrameNS(buf)
	if err != nil {
		t.Fatal(err)
	}
	f.SetType(TypeNeighborSolicit)
	f.SetCode(0)
	target := [16]byte{0x20, 0x01, 0x0d, 0xb8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x01}
	*f.Target() = target
	if f.Type() != TypeNeighborSolicit {
		t.Error("type mismatch")
	}
	if *f.Target() != target {
		t.Error("target mismatch")
	}
	if len(f.Options()) != 0 {
		t.Error("expected no options")
	}
}

func TestFrameNAFlags(t *testing.T) {
	buf := make([]byte, sizeHeader+sizeBodyNA)
	f, err := NewFrameNA(buf)
	if err != nil {
		t.Fatal(err)
	}
	f.SetFlags(NAFlagRouter | NAFlagSolicited | NAFlagOverride)
	if !f.IsRouter() || !f.IsSolicited() || !f.IsOverride() {
		t.Fatal("expected all three flags set")
	}
	f.SetFlags(0)
	if f.IsRouter() || f.IsSolicited() || f.IsOverride() {
		t.Fatal("expected all three flags clear")
	}
}

func TestFrameRAFields(t *testing.T) {
	buf := make([]byte, sizeHeader+sizeBodyRA)
	f, err := NewFrameRA(buf)
	if err != nil {
		t.Fatal(err)
	}
	f.SetCurHopLimit(64)
	f.SetFlags(RAFlagManaged)
	f.SetPreference(PrefHigh)
	f.SetRouterLifetime(1800)
	f.SetReachableTime(30000)
	f.SetRetransTimer(1000)

	if f.CurHopLimit() != 64 {
		t.Error("hop limit mismatch")
	}
	if !f.IsManaged() || f.IsOther() {
		t.Error("M/O flags mismatch")
	}
	if f.RawPreference() != PrefHigh {
		t.Errorf("preference = %v, want High", f.RawPreference())
	}
	if f.RouterLifetime() != 1800 {
		t.Error("lifetime mismatch")
	}
	if f.ReachableTime() != 30000 || f.RetransTimer() != 1000 {
		t.Error("timer mismatch")
	}
}

func TestRAPreferenceReservedRemapsToMedium(t *testing.T) {
	buf := make([]byte, sizeHeader+sizeBodyRA)
	f, _ := NewFrameRA(buf)
	f.SetFlags(uint8(prefReserved) << RAFlagPrefShift)
	if f.RawPreference() != PrefMedium {
		t.Errorf("reserved preference value should remap to Medium, got %v", f.RawPreference())
	}
}

func TestFrameRedirect(t *testing.T) {
	buf := make([]byte, sizeHeader+sizeBodyRedirect)
	f, err := NewFrameRedirect(buf)
	if err != nil {
		t.Fatal(err)
	}
	target := [16]byte{0xfe, 0x80, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x02}
	dest := [16]byte{0x20, 0x01, 0x0d, 0xb8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x05}
	*f.Target() = target
	*f.Destination() = dest
	if *f.Target() != target || *f.Destination() != dest {
		t.Fatal("target/destination mismatch")
	}
}

func TestTypeIsNDP(t *testing.T) {
	for _, typ := range []Type{TypeRouterSolicit, TypeRouterAdvert, TypeNeighborSolicit, TypeNeighborAdvert, TypeRedirect} {
		if !typ.IsNDP() {
			t.Errorf("%v should be NDP", typ)
		}
	}
	if Type(1).IsNDP() {
		t.Error("destination unreachable type should not be NDP")
	}
}
