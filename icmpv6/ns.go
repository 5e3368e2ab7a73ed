package icmpv6

const sizeBodyNS = 4 + 16 // reserved + target

// FrameNS wraps Frame as a Neighbor Solicitation (RFC 4861 §4.3):
//
//	Type(1) Code(1) Checksum(2) Reserved(4) TargetAddress(16) Options...
type FrameNS struct{ Frame }

// NewFrameNS returns a FrameNS backed by buf, which must be at least large
// enough to hold the fixed NS body.
func NewFrameNS(buf []byte) (FrameNS, error) {
	f, err := NewFrame(buf)
	if err != nil {
		return FrameNS{}, err
	}
	if len(f.Body()) < sizeBodyNS {
		return FrameNS{}, errShort
	}
	return FrameNS{f}, nil
}

// Target returns the solicited target address.
func (f FrameNS) Target() *[16]byte {
	return (*[16]byte)(f.buf[sizeHeader+4 : sizeHeader+4+16])
}

// Options returns the option area following the fixed NS body.
func (f FrameNS) Options() []byte { return f.buf[sizeHeader+sizeBodyNS:] }

// ClearHeader zeros type/code/checksum/reserved/target, leaving options
// untouched.
func (f FrameNS) ClearHeader() {
	for i := range f.buf[:sizeHeader+sizeBodyNS] {
		f.buf[i] = 0
	}
}
