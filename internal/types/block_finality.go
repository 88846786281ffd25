package types

import (
	"fmt"
	"strings"
)

// BlockFinality selects which block the live node source treats as its finalized head.
type BlockFinality string

const (
	// FinalityFinalized follows the node's "finalized" block tag.
	FinalityFinalized BlockFinality = "finalized"

	// FinalitySafe follows the node's "safe" block tag.
	FinalitySafe BlockFinality = "safe"

	// FinalityLatest treats blocks a fixed distance behind the tip as final, for nodes
	// without finality tags.
	FinalityLatest BlockFinality = "latest"
)

var finalities = []BlockFinality{FinalityFinalized, FinalitySafe, FinalityLatest}

func (f BlockFinality) String() string {
	return string(f)
}

// Tag returns the eth_getBlockByNumber tag that resolves the finalized head. ok is false
// for FinalityLatest, whose head is derived from the chain tip instead.
func (f BlockFinality) Tag() (tag string, ok bool) {
	if f == FinalityLatest {
		return "", false
	}

	return string(f), true
}

// HeadBehind returns the finalized height under FinalityLatest: lag blocks behind tip,
// floored at genesis.
func HeadBehind(tip, lag uint64) uint64 {
	if tip < lag {
		return 0
	}

	return tip - lag
}

// ParseBlockFinality parses a finality mode, ignoring case and surrounding whitespace.
func ParseBlockFinality(s string) (BlockFinality, error) {
	f := BlockFinality(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range finalities {
		if f == known {
			return f, nil
		}
	}

	return "", fmt.Errorf("invalid block finality %q (must be one of: finalized, safe, latest)", s)
}
