package icmpv6

const sizeBodyRS = 4 // reserved

// FrameRS wraps Frame as a Router Solicitation (RFC 4861 §4.1):
//
//	Type(1) Code(1) Checksum(2) Reserved(4) Options...
type FrameRS struct{ Frame }

// NewFrameRS returns a FrameRS backed by buf.
func NewFrameRS(buf []byte) (FrameRS, error) {
	f, err := NewFrame(buf)
	if err != nil {
		return FrameRS{}, err
	}
	if len(f.Body()) < sizeBodyRS {
		return FrameRS{}, errShort
	}
	return FrameRS{f}, nil
}

// Options returns the option area following the fixed RS body.
func (f FrameRS) Options() []byte { return f.buf[sizeHeader+sizeBodyRS:] }

// ClearHeader zeros type/code/checksum/reserved.
func (f FrameRS) ClearHeader() {
	for i := range f.buf[:sizeHeader+sizeBodyRS] {
		f.buf[i] = 0
	}
}
