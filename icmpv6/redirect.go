package icmpv6

const sizeBodyRedirect = 4 + 16 + 16 // reserved + target + destination

// FrameRedirect wraps Frame as a Redirect message (RFC 4861 §4.5):
//
//	Type(1) Code(1) Checksum(2) Reserved(4) TargetAddress(16) DestinationAddress(16) Options...
type FrameRedirect struct{ Frame }

// NewFrameRedirect returns a FrameRedirect backed by buf.
func NewFrameRedirect(buf []byte) (FrameRedirect, error) {
	f, err := NewFrame(buf)
	if err != nil {
		return FrameRedirect{}, err
	}
	if len(f.Body()) < sizeBodyRedirect {
		return FrameRedirect{}, errShort
	}
	return FrameRedirect{f}, nil
}

// Target returns the better first-hop address for the destination.
func (f FrameRedirect) Target() *[16]byte {
	return (*[16]byte)(f.buf[sizeHeader+4 : sizeHeader+4+16])
}

// Destination returns the address that is now to be redirected.
func (f FrameRedirect) Destination() *[16]byte {
	return (*[16]byte)(f.buf[sizeHeader+20 : sizeHeader+20+16])
}

// Options returns the option area following the fixed Redirect body.
func (f FrameRedirect) Options() []byte { return f.buf[sizeHeader+sizeBodyRedirect:] }

// ClearHeader zeros type/code/checksum/reserved/target/destination.
func (f FrameRedirect) ClearHeader() {
	for i := range f.buf[:sizeHeader+sizeBodyRedirect] {
		f.buf[i] = 0
	}
}
