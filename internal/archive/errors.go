package archive

import "errors"

var (
	// ErrBlockNotFound is returned by point lookups of blocks the archive does not hold.
	ErrBlockNotFound = errors.New("block not archived")
	// ErrChainDiscontinuity is returned when stored blocks would not extend the archived chain.
	ErrChainDiscontinuity = errors.New("blocks do not extend the archived chain")
)
