// Package ipv6 provides a zero-copy view over an IPv6 header (RFC 8200),
// used by the NDP engine's emitter to prepend outbound headers and by the
// receive pipeline to validate hop-limit and next-header before
// dispatching to the ICMPv6 codec.
package ipv6

const sizeHeader = 40

// ToS holds the Traffic Class octet: differentiated-services codepoint
// plus the two ECN bits.
type ToS uint8

func (t ToS) DSCP() uint8 { return uint8(t) >> 2 }
func (t ToS) ECN() uint8  { return uint8(t) & 0b11 }
