package common

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	bytesInMB = 1024 * 1024

	// blockHashLength is the length of a 0x-prefixed 32-byte hash.
	blockHashLength = 66
)

// ErrInvalidBlockNumber is returned when a block reference is not a decimal or 0x-prefixed height.
var ErrInvalidBlockNumber = errors.New("invalid block number")

// ParseBlockNumber parses a block height written in decimal or as a 0x-prefixed hex quantity.
func ParseBlockNumber(s string) (uint64, error) {
	str := strings.TrimSpace(s)
	base := 10

	if len(str) > 1 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X') {
		str = str[2:]
		base = 16
	}
	if str == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidBlockNumber, s)
	}

	n, err := strconv.ParseUint(str, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidBlockNumber, s, err)
	}

	return n, nil
}

// IsBlockHash reports whether ref has the shape of a 0x-prefixed 32-byte hash.
func IsBlockHash(ref string) bool {
	if len(ref) != blockHashLength || !strings.HasPrefix(ref, "0x") {
		return false
	}

	_, err := DecodeHex(ref)
	return err == nil
}

// MBToBytes converts megabytes to bytes.
func MBToBytes(mb uint64) uint64 {
	return mb * bytesInMB
}

// BytesToMB converts bytes to whole megabytes.
func BytesToMB(b uint64) uint64 {
	return b / bytesInMB
}

// ToLowerWithTrim normalizes config keys such as log levels and component names.
func ToLowerWithTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
