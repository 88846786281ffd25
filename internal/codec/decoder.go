package codec

import (
	"fmt"

	"github.com/goran-ethernal/ChainFirehose/internal/common"
	pbeth "github.com/streamingfast/firehose-ethereum/types/pb/sf/ethereum/type/v2"
)

// fieldDecoder converts hex fields one after another and keeps the first failure,
// so a conversion reads as a flat list of assignments followed by a single error check.
type fieldDecoder struct {
	scope string
	err   error
}

func (d *fieldDecoder) fail(field string, err error) {
	if d.err == nil {
		d.err = fmt.Errorf("%s.%s: %w", d.scope, field, err)
	}
}

func (d *fieldDecoder) bytes(field, value string) []byte {
	if d.err != nil {
		return nil
	}

	b, err := common.DecodeHex(value)
	if err != nil {
		d.fail(field, err)
		return nil
	}

	return b
}

func (d *fieldDecoder) quantity(field, value string) uint64 {
	if d.err != nil {
		return 0
	}

	v, err := common.DecodeQuantity(value)
	if err != nil {
		d.fail(field, err)
		return 0
	}

	return v
}

func (d *fieldDecoder) bigInt(field, value string) *pbeth.BigInt {
	b := d.bytes(field, value)
	if d.err != nil {
		return nil
	}

	return &pbeth.BigInt{Bytes: b}
}

// optionalBigInt returns nil for an absent value.
func (d *fieldDecoder) optionalBigInt(field string, value *string) *pbeth.BigInt {
	if value == nil {
		return nil
	}

	return d.bigInt(field, *value)
}

// required dereferences value or records a MissingFieldError.
func (d *fieldDecoder) required(field string, value *string) string {
	if value == nil {
		if d.err == nil {
			d.err = missing(d.scope + "." + field)
		}
		return ""
	}

	return *value
}
