package icmpv6

import "encoding/binary"

const sizeBodyRA = 1 + 1 + 2 + 4 + 4 // curHopLimit, flags, lifetime, reachable, retrans

// RA flag bits (RFC 4861 §4.2, plus the RFC 4191 two-bit preference field
// and the Managed/Other bits a DHCPv6 client consumes).
const (
	RAFlagManaged uint8 = 1 << 7
	RAFlagOther   uint8 = 1 << 6
	// RFC 4191 default router preference occupies bits 4-3.
	RAFlagPrefMask  uint8 = 0b0001_1000
	RAFlagPrefShift       = 3
)

// Preference encodes the RFC 4191 route/router preference.
type Preference uint8

const (
	PrefMedium   Preference = 0b00
	PrefHigh     Preference = 0b01
	PrefLow      Preference = 0b11
	prefReserved Preference = 0b10 // never emitted; remapped to PrefMedium on receive
)

// FrameRA wraps Frame as a Router Advertisement (RFC 4861 §4.2):
//
//	Type(1) Code(1) Checksum(2) CurHopLimit(1) M|O|Prf|Reserved(1)
//	RouterLifetime(2) ReachableTime(4) RetransTimer(4) Options...
type FrameRA struct{ Frame }

// NewFrameRA returns a FrameRA backed by buf.
func NewFrameRA(buf []byte) (FrameRA, error) {
	f, err := NewFrame(buf)
	if err != nil {
		return FrameRA{}, err
	}
	if len(f.Body()) < sizeBodyRA {
		return FrameRA{}, errShort
	}
	return FrameRA{f}, nil
}

func (f FrameRA) CurHopLimit() uint8      { return f.buf[sizeHeader] }
func (f FrameRA) SetCurHopLimit(h uint8)   { f.buf[sizeHeader] = h }
func (f FrameRA) Flags() uint8             { return f.buf[sizeHeader+1] }
func (f FrameRA) SetFlags(fl uint8)        { f.buf[sizeHeader+1] = fl }

func (f FrameRA) IsManaged() bool { return f.Flags()&RAFlagManaged != 0 }
func (f FrameRA) IsOther() bool   { return f.Flags()&RAFlagOther != 0 }

// RawPreference returns the raw two-bit RFC 4191 preference field,
// remapping the reserved value 0b10 to Medium per spec.
func (f FrameRA) RawPreference() Preference {
	p := Preference((f.Flags() & RAFlagPrefMask) >> RAFlagPrefShift)
	if p == prefReserved {
		return PrefMedium
	}
	return p
}

// SetPreference sets the RFC 4191 two-bit preference field, leaving M/O untouched.
func (f FrameRA) SetPreference(p Preference) {
	flags := f.Flags()&^RAFlagPrefMask | (uint8(p)<<RAFlagPrefShift)&RAFlagPrefMask
	f.SetFlags(flags)
}

// RouterLifetime returns the advertised default-router lifetime in seconds.
// A value of zero means the advertiser is not (or is no longer) a default router.
func (f FrameRA) RouterLifetime() uint16 {
	return binary.BigEndian.Uint16(f.buf[sizeHeader+2 : sizeHeader+4])
}
func (f FrameRA) SetRouterLifetime(v uint16) {
	binary.BigEndian.PutUint16(f.buf[sizeHeader+2:sizeHeader+4], v)
}

// ReachableTime returns the advertised base reachable time in milliseconds;
// zero means "unspecified, do not update."
func (f FrameRA) ReachableTime() uint32 {
	return binary.BigEndian.Uint32(f.buf[sizeHeader+4 : sizeHeader+8])
}
func (f FrameRA) SetReachableTime(v uint32) {
	binary.BigEndian.PutUint32(f.buf[sizeHeader+4:sizeHeader+8], v)
}

// RetransTimer returns the advertised retransmit timer in milliseconds;
// zero means "unspecified, do not update."
func (f FrameRA) RetransTimer() uint32 {
	return binary.BigEndian.Uint32(f.buf[sizeHeader+8 : sizeHeader+12])
}
func (f FrameRA) SetRetransTimer(v uint32) {
	binary.BigEndian.PutUint32(f.buf[sizeHeader+8:sizeHeader+12], v)
}

// Options returns the option area following the fixed RA body.
func (f FrameRA) Options() []byte { return f.buf[sizeHeader+sizeBodyRA:] }
