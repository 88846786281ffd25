// Package codec converts raw data source blocks into the canonical sf.ethereum.type.v2 model.
package codec

import (
	"fmt"
	"math"

	"github.com/goran-ethernal/ChainFirehose/internal/common"
	"github.com/goran-ethernal/ChainFirehose/pkg/datasource"
	pbeth "github.com/streamingfast/firehose-ethereum/types/pb/sf/ethereum/type/v2"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// BlockVersion is the canonical block version produced by ConvertBlock.
const BlockVersion = 2

const (
	bloomSize   = 256
	addressSize = 20
)

// ConvertBlock converts a raw block. Logs and traces are grouped under their owning
// transaction in source order. Any failing field fails the whole block.
func ConvertBlock(b *datasource.Block) (*pbeth.Block, error) {
	header, err := ConvertHeader(&b.Header)
	if err != nil {
		return nil, fmt.Errorf("block %d: %w", b.Header.Number, err)
	}

	logsByTx := make(map[uint32][]datasource.Log)
	for _, l := range b.Logs {
		logsByTx[l.TransactionIndex] = append(logsByTx[l.TransactionIndex], l)
	}

	tracesByTx := make(map[uint32][]datasource.Trace)
	for _, tr := range b.Traces {
		tracesByTx[tr.TransactionIndex] = append(tracesByTx[tr.TransactionIndex], tr)
	}

	traces := make([]*pbeth.TransactionTrace, 0, len(b.Transactions))
	for i := range b.Transactions {
		tx := &b.Transactions[i]

		trx, err := convertTransaction(tx, logsByTx[tx.TransactionIndex], tracesByTx[tx.TransactionIndex])
		if err != nil {
			return nil, fmt.Errorf("block %d: transaction %d: %w", b.Header.Number, tx.TransactionIndex, err)
		}

		traces = append(traces, trx)
	}

	return &pbeth.Block{
		Ver:               BlockVersion,
		Hash:              header.Hash,
		Number:            b.Header.Number,
		Size:              b.Header.Size,
		Header:            header,
		Uncles:            []*pbeth.BlockHeader{},
		TransactionTraces: traces,
	}, nil
}

// ConvertHeader converts a raw header. An absent base fee stays absent.
func ConvertHeader(h *datasource.BlockHeader) (*pbeth.BlockHeader, error) {
	if h.Timestamp > math.MaxInt64 {
		return nil, fmt.Errorf("header.timestamp: %w: %d", common.ErrIntegerOverflow, h.Timestamp)
	}

	d := &fieldDecoder{scope: "header"}
	out := &pbeth.BlockHeader{
		ParentHash:       d.bytes("parentHash", h.ParentHash),
		UncleHash:        d.bytes("sha3Uncles", h.Sha3Uncles),
		Coinbase:         d.bytes("miner", h.Miner),
		StateRoot:        d.bytes("stateRoot", h.StateRoot),
		TransactionsRoot: d.bytes("transactionsRoot", h.TransactionsRoot),
		ReceiptRoot:      d.bytes("receiptsRoot", h.ReceiptsRoot),
		LogsBloom:        d.bytes("logsBloom", h.LogsBloom),
		Difficulty:       d.bigInt("difficulty", h.Difficulty),
		TotalDifficulty:  d.bigInt("totalDifficulty", h.TotalDifficulty),
		Number:           h.Number,
		GasLimit:         d.quantity("gasLimit", h.GasLimit),
		GasUsed:          d.quantity("gasUsed", h.GasUsed),
		Timestamp:        &timestamppb.Timestamp{Seconds: int64(h.Timestamp)},
		ExtraData:        d.bytes("extraData", h.ExtraData),
		MixHash:          d.bytes("mixHash", h.MixHash),
		Nonce:            d.quantity("nonce", h.Nonce),
		Hash:             d.bytes("hash", h.Hash),
		BaseFeePerGas:    d.optionalBigInt("baseFeePerGas", h.BaseFeePerGas),
	}

	if d.err != nil {
		return nil, d.err
	}

	return out, nil
}

func convertTransaction(tx *datasource.Transaction, logs []datasource.Log, traces []datasource.Trace) (*pbeth.TransactionTrace, error) {
	d := &fieldDecoder{scope: "transaction"}

	to := make([]byte, addressSize)
	if tx.To != nil {
		to = d.bytes("to", *tx.To)
	}

	out := &pbeth.TransactionTrace{
		To:                   to,
		Nonce:                tx.Nonce,
		GasPrice:             d.bigInt("gasPrice", tx.GasPrice),
		GasLimit:             d.quantity("gas", tx.Gas),
		Value:                d.bigInt("value", tx.Value),
		Input:                d.bytes("input", tx.Input),
		V:                    d.bytes("v", tx.V),
		R:                    d.bytes("r", tx.R),
		S:                    d.bytes("s", tx.S),
		GasUsed:              d.quantity("gasUsed", tx.GasUsed),
		Type:                 pbeth.TransactionTrace_Type(tx.Type),
		AccessList:           []*pbeth.AccessTuple{},
		MaxFeePerGas:         d.optionalBigInt("maxFeePerGas", tx.MaxFeePerGas),
		MaxPriorityFeePerGas: d.optionalBigInt("maxPriorityFeePerGas", tx.MaxPriorityFeePerGas),
		Index:                tx.TransactionIndex,
		Hash:                 d.bytes("hash", tx.Hash),
		From:                 d.bytes("from", tx.From),
		Status:               convertStatus(tx.Status),
	}

	receipt := &pbeth.TransactionReceipt{
		CumulativeGasUsed: d.quantity("cumulativeGasUsed", tx.CumulativeGasUsed),
		LogsBloom:         make([]byte, bloomSize),
		Logs:              make([]*pbeth.Log, 0, len(logs)),
	}

	if d.err != nil {
		return nil, d.err
	}

	for i := range logs {
		l, err := convertLog(&logs[i], uint32(i))
		if err != nil {
			return nil, err
		}
		receipt.Logs = append(receipt.Logs, l)
	}

	out.Receipt = receipt
	out.Calls = make([]*pbeth.Call, 0, len(traces))

	for i := range traces {
		call, err := convertTrace(&traces[i])
		if err != nil {
			return nil, fmt.Errorf("trace %d: %w", i, err)
		}
		if call != nil {
			out.Calls = append(out.Calls, call)
		}
	}

	return out, nil
}

// convertStatus maps a receipt status onto the trace status enum.
func convertStatus(status int32) pbeth.TransactionTraceStatus {
	switch status {
	case 1:
		return pbeth.TransactionTraceStatus_SUCCEEDED
	case 0:
		return pbeth.TransactionTraceStatus_FAILED
	default:
		return pbeth.TransactionTraceStatus_UNKNOWN
	}
}

// convertLog converts one log. index is the log's position within its transaction's
// receipt, BlockIndex keeps the source log index.
func convertLog(l *datasource.Log, index uint32) (*pbeth.Log, error) {
	d := &fieldDecoder{scope: "log"}

	topics := make([][]byte, 0, len(l.Topics))
	for i, topic := range l.Topics {
		topics = append(topics, d.bytes(fmt.Sprintf("topics[%d]", i), topic))
	}

	out := &pbeth.Log{
		Address:    d.bytes("address", l.Address),
		Topics:     topics,
		Data:       d.bytes("data", l.Data),
		Index:      index,
		BlockIndex: l.LogIndex,
	}

	if d.err != nil {
		return nil, d.err
	}

	return out, nil
}
