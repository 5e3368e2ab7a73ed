// Package ndpopt implements the type/length/value option codec shared by
// all five NDP message types (RFC 4861 §4.6, plus the RFC 4191 Route
// Information option and the RFC 6106 RDNSS/DNSSL user options).
//
// Parsing walks the option area with a single forward cursor, bounds-
// checking every advance and returning a view that borrows the input
// buffer — no option is ever copied.
package ndpopt

import "errors"

// Option type values (RFC 4861 §4.6, RFC 4191 §2.3, RFC 6106 §5).
const (
	TypeSourceLL       uint8 = 1
	TypeTargetLL       uint8 = 2
	TypePrefixInfo     uint8 = 3
	TypeRedirectHeader uint8 = 4
	TypeMTU            uint8 = 5
	TypeRouteInfo      uint8 = 24
	TypeRDNSS          uint8 = 25
	TypeDNSSL          uint8 = 31
)

var (
	ErrZeroLength = errors.New("ndpopt: zero length option")
	ErrTruncated  = errors.New("ndpopt: option exceeds remaining buffer")
)

const maxRecordedDuplicates = 4

// Options is the result of parsing an NDP option area. Singleton fields
// borrow a sub-slice of the input for their first occurrence and are nil
// if absent; repeatable option types are walked with [Options.Prefixes],
// [Options.RouteInfos] and [Options.UserOpts] instead of being collected
// eagerly.
type Options struct {
	raw []byte

	SourceLL       []byte
	TargetLL       []byte
	MTU            []byte
	RedirectHeader []byte

	ndup       uint8
	duplicates [maxRecordedDuplicates]uint8
}

// Duplicates returns the singleton option types that appeared more than
// once in the parsed buffer; per spec only the first occurrence of each is
// retained, duplicates are not parse failures but are worth logging.
func (o Options) Duplicates() []uint8 { return o.duplicates[:o.ndup] }

func (o *Options) recordDuplicate(typ uint8) {
	if int(o.ndup) < len(o.duplicates) {
		o.duplicates[o.ndup] = typ
		o.ndup++
	}
}

// Parse walks buf as a sequence of {type:u8, len_units:u8, body} options.
// len_units is in 8 byte units and len_units==0 is always invalid. Parsing
// fails with [ErrZeroLength] or [ErrTruncated] if any option's declared
// length is zero, exceeds the remaining bytes, or the final option does
// not exactly consume buf — there is no partial acceptance. Unknown option
// types are silently skipped, satisfying the forward-compatibility
// invariant.
func Parse(buf []byte) (Options, error) {
	var o Options
	o.raw = buf
	off := 0
	for off < len(buf) {
		if off+2 > len(buf) {
			return o, ErrTruncated
		}
		typ := buf[off]
		lenUnits := buf[off+1]
		if lenUnits == 0 {
			return o, ErrZeroLength
		}
		total := int(lenUnits) * 8
		if off+total > len(buf) {
			return o, ErrTruncated
		}
		body := buf[off+2 : off+total]
		switch typ {
		case TypeSourceLL:
			if o.SourceLL == nil {
				o.SourceLL = body
			} else {
				o.recordDuplicate(typ)
			}
		case TypeTargetLL:
			if o.TargetLL == nil {
				o.TargetLL = body
			} else {
				o.recordDuplicate(typ)
			}
		case TypeMTU:
			if o.MTU == nil {
				o.MTU = body
			} else {
				o.recordDuplicate(typ)
			}
		case TypeRedirectHeader:
			if o.RedirectHeader == nil {
				o.RedirectHeader = body
			} else {
				o.recordDuplicate(typ)
			}
		default:
			// Repeatable types (prefix-info, route-info, user-opt) and
			// anything unrecognized are left for the Iter walks below;
			// unknown types are silently forward-compatible.
		}
		off += total
	}
	return o, nil
}

// Iter walks the repeatable options of one or two matching types,
// re-scanning the option area with its own forward cursor so no
// allocation is required to collect results ahead of time.
type Iter struct {
	raw  []byte
	off  int
	want [2]uint8
}

// Next advances the iterator to the next option whose type matches, and
// returns its type and body. ok is false once the option area is exhausted.
func (it *Iter) Next() (typ uint8, body []byte, ok bool) {
	for it.off < len(it.raw) {
		t := it.raw[it.off]
		lenUnits := it.raw[it.off+1]
		total := int(lenUnits) * 8
		b := it.raw[it.off+2 : it.off+total]
		it.off += total
		if t == it.want[0] || (it.want[1] != 0 && t == it.want[1]) {
			return t, b, true
		}
	}
	return 0, nil, false
}

// Prefixes returns an iterator over Prefix Information options (RFC 4861 §4.6.2).
func (o Options) Prefixes() Iter { return Iter{raw: o.raw, want: [2]uint8{TypePrefixInfo}} }

// RouteInfos returns an iterator over Route Information options (RFC 4191 §2.3).
func (o Options) RouteInfos() Iter { return Iter{raw: o.raw, want: [2]uint8{TypeRouteInfo}} }

// UserOpts returns an iterator over RDNSS and DNSSL options (RFC 6106).
func (o Options) UserOpts() Iter {
	return Iter{raw: o.raw, want: [2]uint8{TypeRDNSS, TypeDNSSL}}
}
