package ndp

import "errors"

// Sentinel errors specific to the ndp package's own state, distinct from
// the wire-codec sentinels in github.com/go-ndp6/ndp6.
var (
	errIfaceNotRegistered = errors.New("ndp: interface not registered with engine")
	errNoCache            = errors.New("ndp: Config.Cache is nil")
)
