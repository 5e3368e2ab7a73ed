package icmpv6

const sizeBodyNA = 4 + 16 // flags+reserved + target

// NA flag bits, top three bits of the 32 bit flags/reserved word (RFC 4861 §4.4).
const (
	NAFlagRouter    uint8 = 1 << 7
	NAFlagSolicited uint8 = 1 << 6
	NAFlagOverride  uint8 = 1 << 5
)

// FrameNA wraps Frame as a Neighbor Advertisement (RFC 4861 §4.4):
//
//	Type(1) Code(1) Checksum(2) R|S|O|Reserved(4) TargetAddress(16) Options...
type FrameNA struct{ Frame }

// NewFrameNA returns a FrameNA backed by buf.
func NewFrameNA(buf []byte) (FrameNA, error) {
	f, err := NewFrame(buf)
	if err != nil {
		return FrameNA{}, err
	}
	if len(f.Body()) < sizeBodyNA {
		return FrameNA{}, errShort
	}
	return FrameNA{f}, nil
}

// Flags returns the raw R/S/O flag byte (first byte of the flags word).
func (f FrameNA) Flags() uint8 { return f.buf[sizeHeader] }

// SetFlags sets the raw R/S/O flag byte.
func (f FrameNA) SetFlags(flags uint8) { f.buf[sizeHeader] = flags }

func (f FrameNA) IsRouter() bool    { return f.Flags()&NAFlagRouter != 0 }
func (f FrameNA) IsSolicited() bool { return f.Flags()&NAFlagSolicited != 0 }
func (f FrameNA) IsOverride() bool  { return f.Flags()&NAFlagOverride != 0 }

// Target returns the advertised target address.
func (f FrameNA) Target() *[16]byte {
	return (*[16]byte)(f.buf[sizeHeader+4 : sizeHeader+4+16])
}

// Options returns the option area following the fixed NA body.
func (f FrameNA) Options() []byte { return f.buf[sizeHeader+sizeBodyNA:] }

// ClearHeader zeros type/code/checksum/flags/reserved/target.
func (f FrameNA) ClearHeader() {
	for i := range f.buf[:sizeHeader+sizeBodyNA] {
		f.buf[i] = 0
	}
}
