// Package transform turns the opaque transforms of a stream request into data source filters.
package transform

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goran-ethernal/ChainFirehose/pkg/datasource"
	pbtransform "github.com/streamingfast/firehose-ethereum/types/pb/sf/ethereum/transform/v1"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
)

// ErrInvalidTransform is returned when a transform payload cannot be decoded.
var ErrInvalidTransform = errors.New("invalid transform")

// Filters is the flattened filter set of one request.
type Filters struct {
	Logs         []datasource.LogRequest
	Transactions []datasource.TransactionRequest
}

// Apply copies the filters onto a data request.
func (f Filters) Apply(req datasource.DataRequest) datasource.DataRequest {
	req.Logs = f.Logs
	req.Transactions = f.Transactions

	return req
}

// Translate decodes every transform as a CombinedFilter and accumulates its clauses in order.
// The payload is decoded regardless of the declared type URL.
func Translate(transforms []*anypb.Any) (Filters, error) {
	var out Filters

	for i, t := range transforms {
		filter := &pbtransform.CombinedFilter{}
		if err := proto.Unmarshal(t.GetValue(), filter); err != nil {
			return Filters{}, fmt.Errorf("%w: transform %d (%s): %w", ErrInvalidTransform, i, t.GetTypeUrl(), err)
		}

		for _, lf := range filter.LogFilters {
			out.Logs = append(out.Logs, datasource.LogRequest{
				Address: encodeAll(lf.Addresses),
				Topic0:  encodeAll(lf.EventSignatures),
			})
		}

		for _, cf := range filter.CallFilters {
			out.Transactions = append(out.Transactions, datasource.TransactionRequest{
				To:      encodeAll(cf.Addresses),
				Sighash: encodeAll(cf.Signatures),
			})
		}
	}

	return out, nil
}

func encodeAll(values [][]byte) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, hexutil.Encode(v))
	}

	return out
}
