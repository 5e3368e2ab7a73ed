package ipv6

import (
	"encoding/binary"
	"errors"

	"github.com/go-ndp6/ndp6"
)

// NewFrame returns a Frame backed by buf. An error is returned if buf is
// smaller than the fixed 40 byte header. Callers should still invoke
// [Frame.ValidateSize] before reading the payload to avoid a panic on a
// truncated packet.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{}, errShortBuf
	}
	return Frame{buf: buf}, nil
}

// Frame is a zero-copy view over an IPv6 packet (RFC 8200).
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice the frame was built on.
func (f Frame) RawData() []byte { return f.buf }

// Payload returns the packet's payload, which may be zero length. Call
// [Frame.ValidateSize] first to avoid a panic on a truncated packet.
func (f Frame) Payload() []byte {
	pl := f.PayloadLength()
	return f.buf[sizeHeader : sizeHeader+int(pl)]
}

// VersionTrafficAndFlow returns the version, traffic class and flow label
// fields packed into the first 32 bits of the header.
func (f Frame) VersionTrafficAndFlow() (version uint8, tos ToS, flow uint32) {
	v := binary.BigEndian.Uint32(f.buf[0:4])
	version = uint8(v >> 28)
	tos = ToS(v >> 20)
	flow = v & 0x000f_ffff
	return version, tos, flow
}

// SetVersionTrafficAndFlow sets the first 32 bits of the header. version
// must be 6.
func (f Frame) SetVersionTrafficAndFlow(version uint8, tos ToS, flow uint32) {
	v := flow | uint32(tos)<<20 | uint32(version)<<28
	binary.BigEndian.PutUint32(f.buf[0:4], v)
}

// PayloadLength returns the size of the payload in octets.
func (f Frame) PayloadLength() uint16 {
	return binary.BigEndian.Uint16(f.buf[4:6])
}

// SetPayloadLength sets the payload length field.
func (f Frame) SetPayloadLength(pl uint16) {
	binary.BigEndian.PutUint16(f.buf[4:6], pl)
}

// NextHeader returns the Next Header field, here always expected to be 58
// (ICMPv6) on the NDP engine's paths.
func (f Frame) NextHeader() uint8 { return f.buf[6] }

// SetNextHeader sets the Next Header field.
func (f Frame) SetNextHeader(proto uint8) { f.buf[6] = proto }

// HopLimit returns the Hop Limit field. NDP requires exactly 255 on every
// inbound and outbound message (spec invariant: on-link guarantee).
func (f Frame) HopLimit() uint8 { return f.buf[7] }

// SetHopLimit sets the Hop Limit field.
func (f Frame) SetHopLimit(hop uint8) { f.buf[7] = hop }

// SourceAddr returns a pointer to the 16 byte source address field.
func (f Frame) SourceAddr() *[16]byte {
	return (*[16]byte)(f.buf[8:24])
}

// DestinationAddr returns a pointer to the 16 byte destination address field.
func (f Frame) DestinationAddr() *[16]byte {
	return (*[16]byte)(f.buf[24:40])
}

// CRCWritePseudo feeds the IPv6 pseudo-header (source, destination,
// upper-layer length, next header) into crc, ahead of the upper-layer
// payload, per RFC 8200 §8.1.
func (f Frame) CRCWritePseudo(crc *ndp6.CRC791) {
	crc.Write(f.SourceAddr()[:])
	crc.Write(f.DestinationAddr()[:])
	crc.AddUint32(uint32(f.PayloadLength()))
	crc.AddUint32(uint32(f.NextHeader()))
}

// ClearHeader zeros out the fixed header.
func (f Frame) ClearHeader() {
	for i := range f.buf[:sizeHeader] {
		f.buf[i] = 0
	}
}

var (
	errShortFrame = errors.New("ipv6: short frame")
	errShortBuf   = errors.New("ipv6: short buffer for frame")
)

// ValidateSize checks the payload-length field against the backing
// buffer's actual size, recording a defect in v if inconsistent.
func (f Frame) ValidateSize(v *ndp6.Validator) {
	tl := f.PayloadLength()
	if int(tl)+sizeHeader > len(f.buf) {
		v.AddError(errShortFrame)
	}
}
