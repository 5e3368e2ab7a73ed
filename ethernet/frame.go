package ethernet

import (
	"encoding/binary"
	"errors"

	"github.com/go-ndp6/ndp6"
)

// NewFrame returns a Frame backed by buf. An error is returned if buf is
// smaller than the fixed 14 byte header. Callers should still invoke
// [Frame.ValidateSize] before touching the payload to avoid a panic on a
// truncated VLAN tag.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeaderNoVLAN {
		return Frame{}, errShort
	}
	return Frame{buf: buf}, nil
}

// Frame is a zero-copy view over an Ethernet (IEEE 802.3) frame, starting
// at the destination address (no preamble).
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice the frame was built on.
func (efrm Frame) RawData() []byte { return efrm.buf }

// HeaderLength returns 14, or 18 for a VLAN-tagged frame.
func (efrm Frame) HeaderLength() int {
	if efrm.IsVLAN() {
		return 18
	}
	return sizeHeaderNoVLAN
}

// Payload returns the frame's data following the header, correctly
// accounting for VLAN tagging.
func (efrm Frame) Payload() []byte {
	hl := efrm.HeaderLength()
	et := efrm.EtherTypeOrSize()
	if et.IsSize() {
		return efrm.buf[hl : hl+int(et)]
	}
	return efrm.buf[hl:]
}

// DestinationHardwareAddr returns the frame's destination MAC address.
func (efrm Frame) DestinationHardwareAddr() *[6]byte {
	return (*[6]byte)(efrm.buf[0:6])
}

// SetDestinationHardwareAddr sets the frame's destination MAC address.
func (efrm Frame) SetDestinationHardwareAddr(dst [6]byte) {
	copy(efrm.buf[0:6], dst[:])
}

// SourceHardwareAddr returns the frame's source MAC address.
func (efrm Frame) SourceHardwareAddr() *[6]byte {
	return (*[6]byte)(efrm.buf[6:12])
}

// SetSourceHardwareAddr sets the frame's source MAC address.
func (efrm Frame) SetSourceHardwareAddr(src [6]byte) {
	copy(efrm.buf[6:12], src[:])
}

// IsBroadcast reports whether the destination is ff:ff:ff:ff:ff:ff.
func (efrm Frame) IsBroadcast() bool {
	d := efrm.buf[0:6]
	for _, b := range d {
		if b != 0xff {
			return false
		}
	}
	return true
}

// EtherTypeOrSize returns the EtherType/size field. Use [Type.IsSize] to
// tell whether it is a payload length rather than a real EtherType.
func (efrm Frame) EtherTypeOrSize() Type {
	return Type(binary.BigEndian.Uint16(efrm.buf[12:14]))
}

// SetEtherType sets the EtherType field.
func (efrm Frame) SetEtherType(v Type) {
	binary.BigEndian.PutUint16(efrm.buf[12:14], uint16(v))
}

// IsVLAN reports whether the frame carries an 802.1Q VLAN tag.
func (efrm Frame) IsVLAN() bool {
	return efrm.EtherTypeOrSize() == TypeVLAN
}

// VLANTag returns the VLAN tag field following the TPID. Call
// [Frame.ValidateSize] first to avoid a panic on a truncated tag.
func (efrm Frame) VLANTag() VLANTag { return VLANTag(binary.BigEndian.Uint16(efrm.buf[14:16])) }

// VLANEtherType returns the inner EtherType of a VLAN-tagged frame.
func (efrm Frame) VLANEtherType() Type {
	return Type(binary.BigEndian.Uint16(efrm.buf[16:18]))
}

// ClearHeader zeros out the fixed (non-VLAN) header.
func (efrm Frame) ClearHeader() {
	for i := range efrm.buf[:sizeHeaderNoVLAN] {
		efrm.buf[i] = 0
	}
}

var (
	errShort     = errors.New("ethernet: too short")
	errShortVLAN = errors.New("ethernet: short VLAN")
)

// ValidateSize checks the frame's size fields against the backing buffer,
// recording every defect found in v.
func (efrm Frame) ValidateSize(v *ndp6.Validator) {
	sz := efrm.EtherTypeOrSize()
	if sz.IsSize() && len(efrm.buf) < int(sz) {
		v.AddError(errShort)
	}
	if sz == TypeVLAN && len(efrm.buf) < 18 {
		v.AddError(errShortVLAN)
	}
}
