package ndp6

import "errors"

// Sentinel errors shared across the NDP engine's subpackages, mirroring
// the generic drop-reasons of spec §7: malformed input, checksum failure
// caught upstream, and the no-interface/no-route conditions raised by
// collaborators.
var (
	ErrBug             = errors.New("ndp6: internal invariant violated")
	ErrPacketDrop      = errors.New("ndp6: packet dropped")
	ErrBadChecksum     = errors.New("ndp6: bad checksum")
	ErrZeroSource      = errors.New("ndp6: zero source address")
	ErrZeroDestination = errors.New("ndp6: zero destination address")
	ErrShortBuffer     = errors.New("ndp6: buffer too short")
	ErrUnsupportedLink = errors.New("ndp6: unsupported link type for operation")
	ErrNoInterface     = errors.New("ndp6: no interface configuration")
	ErrNoRoute         = errors.New("ndp6: no route to destination")
)
