package ndpopt

import (
	"errors"

	"github.com/go-ndp6/ndp6"
)

var errOptionBufferTooSmall = errors.New("ndpopt: buffer too small for option")

// PadForLinkType returns the link-type-specific padding inserted before the
// link-layer address in a source/target-LL option. Infiniband addresses
// carry a 4 byte reserved word plus a 2 byte queue-pair-number-like prefix
// ahead of the address proper (RFC 4391 §8); every other link type pads
// with zero bytes.
func PadForLinkType(lt ndp6.LinkType) int {
	if lt == ndp6.LinkInfiniband {
		return 6
	}
	return 0
}

// FillAddressOption writes a source-LL or target-LL option into buf:
// {type, space_units, pad zero bytes, lladdr, trailing zero-fill}, where
// space_units = ceil((2+pad+len(lladdr))/8). Trailing bytes are always
// zeroed so no stale buffer contents leak onto the wire. It returns the
// number of bytes written (8*space_units), or an error if buf is too
// small.
func FillAddressOption(buf []byte, typ uint8, lladdr []byte, pad int) (int, error) {
	total := 2 + pad + len(lladdr)
	units := (total + 7) / 8
	spaceBytes := units * 8
	if len(buf) < spaceBytes {
		return 0, errOptionBufferTooSmall
	}
	buf[0] = typ
	buf[1] = byte(units)
	off := 2
	for i := 0; i < pad; i++ {
		buf[off] = 0
		off++
	}
	off += copy(buf[off:], lladdr)
	for off < spaceBytes {
		buf[off] = 0
		off++
	}
	return spaceBytes, nil
}
