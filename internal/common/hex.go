package common

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	// ErrMalformedHex is returned when a hex string is missing its 0x prefix or holds invalid digits.
	ErrMalformedHex = errors.New("malformed hex")
	// ErrIntegerOverflow is returned when a hex quantity does not fit into 64 bits.
	ErrIntegerOverflow = errors.New("integer overflow")
)

// DecodeHex decodes a 0x-prefixed hex string into bytes.
// Odd-length inputs are treated as quantities with the leading zero nibble omitted,
// so "0x1" decodes to []byte{0x01}.
func DecodeHex(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return nil, fmt.Errorf("%w: %q has no 0x prefix", ErrMalformedHex, s)
	}

	if len(s)%2 == 1 {
		s = "0x0" + s[2:]
	}

	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrMalformedHex, s, err)
	}

	return b, nil
}

// DecodeQuantity parses a 0x-prefixed hex quantity into a uint64.
func DecodeQuantity(s string) (uint64, error) {
	digits := strings.TrimPrefix(s, "0x")

	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", ErrIntegerOverflow, s)
		}

		return 0, fmt.Errorf("%w: %q", ErrMalformedHex, s)
	}

	return v, nil
}
