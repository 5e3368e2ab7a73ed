// Package icmpv6 implements the ICMPv6 message codec for the five NDP
// message types (RFC 4861 §4): Router Solicitation, Router Advertisement,
// Neighbor Solicitation, Neighbor Advertisement and Redirect. It mirrors
// the zero-copy Frame style used for IPv4 ICMP: a thin view over a raw
// buffer plus typed accessors, never an allocating struct.
package icmpv6

import (
	"encoding/binary"
	"errors"

	"github.com/go-ndp6/ndp6"
)

// Type is the ICMPv6 message type field.
type Type uint8

const (
	TypeRouterSolicit   Type = 133
	TypeRouterAdvert    Type = 134
	TypeNeighborSolicit Type = 135
	TypeNeighborAdvert  Type = 136
	TypeRedirect        Type = 137
)

func (t Type) String() string {
	switch t {
	case TypeRouterSolicit:
		return "RouterSolicitation"
	case TypeRouterAdvert:
		return "RouterAdvertisement"
	case TypeNeighborSolicit:
		return "NeighborSolicitation"
	case TypeNeighborAdvert:
		return "NeighborAdvertisement"
	case TypeRedirect:
		return "Redirect"
	default:
		return "Type(?)"
	}
}

// IsNDP reports whether t is one of the five NDP message types this
// package codes; any other ICMPv6 type is handled by a different layer.
func (t Type) IsNDP() bool {
	return t >= TypeRouterSolicit && t <= TypeRedirect
}

const sizeHeader = 4 // type, code, checksum

var errShort = errors.New("icmpv6: buffer shorter than fixed header")

// NewFrame returns a Frame backed by buf. An error is returned if buf is
// smaller than the 4 byte type/code/checksum header.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeader {
		return Frame{}, errShort
	}
	return Frame{buf: buf}, nil
}

// Frame is a zero-copy view over an ICMPv6 message's common header
// (type, code, checksum) and its message-specific body.
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice the frame was built on.
func (f Frame) RawData() []byte { return f.buf }

// Type returns the ICMPv6 message type.
func (f Frame) Type() Type { return Type(f.buf[0]) }

// SetType sets the ICMPv6 message type.
func (f Frame) SetType(t Type) { f.buf[0] = byte(t) }

// Code returns the ICMPv6 code field. NDP requires this to be exactly 0;
// any other value is dropped without mutating state.
func (f Frame) Code() uint8 { return f.buf[1] }

// SetCode sets the ICMPv6 code field.
func (f Frame) SetCode(c uint8) { f.buf[1] = c }

// Checksum returns the checksum field as stored on the wire.
func (f Frame) Checksum() uint16 { return binary.BigEndian.Uint16(f.buf[2:4]) }

// SetChecksum sets the checksum field.
func (f Frame) SetChecksum(c uint16) { binary.BigEndian.PutUint16(f.buf[2:4], c) }

// Body returns the message-specific body (everything following the
// type/code/checksum header), including any trailing options.
func (f Frame) Body() []byte { return f.buf[sizeHeader:] }

// CRCWrite feeds this message (with its checksum field treated as zero,
// per RFC 4443 §2.1) into crc. The caller must have already fed the IPv6
// pseudo-header via [ipv6.Frame.CRCWritePseudo].
func (f Frame) CRCWrite(crc *ndp6.CRC791) {
	crc.AddUint16(uint16(f.buf[0])<<8 | uint16(f.buf[1]))
	crc.Write(f.buf[4:])
}

// ValidateSize checks that the buffer is at least large enough to hold the
// fixed header, recording a defect in v if not.
func (f Frame) ValidateSize(v *ndp6.Validator) {
	if len(f.buf) < sizeHeader {
		v.AddError(errShort)
	}
}
