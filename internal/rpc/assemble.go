package rpc

import (
	"fmt"

	"github.com/goran-ethernal/ChainFirehose/pkg/datasource"
	pkgrpc "github.com/goran-ethernal/ChainFirehose/pkg/rpc"
)

const (
	zeroQuantity = "0x0"
	emptyBytes   = "0x"
	zeroHash     = "0x0000000000000000000000000000000000000000000000000000000000000000"

	// receiptStatusUnknown marks receipts that predate status codes.
	receiptStatusUnknown = -1
)

// assembleBlock joins a block with its receipts and traces. Receipts are matched to
// transactions by transaction index.
func assembleBlock(b *pkgrpc.Block, receipts []*pkgrpc.Receipt, traces []datasource.Trace) (datasource.Block, error) {
	if len(receipts) != len(b.Transactions) {
		return datasource.Block{}, fmt.Errorf("%d receipts for %d transactions", len(receipts), len(b.Transactions))
	}

	byIndex := make(map[uint64]*pkgrpc.Receipt, len(receipts))
	for _, r := range receipts {
		byIndex[uint64(r.TransactionIndex)] = r
	}

	block := datasource.Block{
		Header:       convertHeader(&b.Header),
		Transactions: make([]datasource.Transaction, 0, len(b.Transactions)),
		Traces:       traces,
	}

	for _, tx := range b.Transactions {
		receipt, ok := byIndex[uint64(tx.TransactionIndex)]
		if !ok {
			return datasource.Block{}, fmt.Errorf("no receipt for transaction %d (%s)", tx.TransactionIndex, tx.Hash)
		}

		block.Transactions = append(block.Transactions, convertTransaction(tx, receipt))

		for _, l := range receipt.Logs {
			block.Logs = append(block.Logs, datasource.Log{
				Address:          l.Address,
				Topics:           l.Topics,
				Data:             l.Data,
				LogIndex:         uint32(l.LogIndex),
				TransactionIndex: uint32(l.TransactionIndex),
			})
		}
	}

	return block, nil
}

func convertHeader(h *pkgrpc.Header) datasource.BlockHeader {
	return datasource.BlockHeader{
		Number:           uint64(h.Number),
		Hash:             h.Hash,
		ParentHash:       h.ParentHash,
		Nonce:            orDefault(&h.Nonce, zeroQuantity),
		Sha3Uncles:       h.Sha3Uncles,
		LogsBloom:        h.LogsBloom,
		TransactionsRoot: h.TransactionsRoot,
		StateRoot:        h.StateRoot,
		ReceiptsRoot:     h.ReceiptsRoot,
		Miner:            h.Miner,
		MixHash:          orDefault(h.MixHash, zeroHash),
		Difficulty:       orDefault(&h.Difficulty, zeroQuantity),
		TotalDifficulty:  orDefault(h.TotalDifficulty, zeroQuantity),
		ExtraData:        orDefault(&h.ExtraData, emptyBytes),
		Size:             uint64(h.Size),
		GasLimit:         h.GasLimit,
		GasUsed:          h.GasUsed,
		Timestamp:        uint64(h.Timestamp),
		BaseFeePerGas:    h.BaseFeePerGas,
	}
}

func convertTransaction(tx *pkgrpc.Transaction, r *pkgrpc.Receipt) datasource.Transaction {
	status := int32(receiptStatusUnknown)
	if r.Status != nil {
		status = int32(*r.Status)
	}

	return datasource.Transaction{
		TransactionIndex:     uint32(tx.TransactionIndex),
		Hash:                 tx.Hash,
		From:                 tx.From,
		To:                   tx.To,
		Nonce:                uint64(tx.Nonce),
		GasPrice:             orDefault(tx.GasPrice, zeroQuantity),
		Gas:                  tx.Gas,
		MaxFeePerGas:         tx.MaxFeePerGas,
		MaxPriorityFeePerGas: tx.MaxPriorityFeePerGas,
		Value:                tx.Value,
		Input:                orDefault(&tx.Input, emptyBytes),
		V:                    orDefault(tx.V, emptyBytes),
		R:                    orDefault(tx.R, emptyBytes),
		S:                    orDefault(tx.S, emptyBytes),
		Type:                 int32(tx.Type),
		GasUsed:              r.GasUsed,
		CumulativeGasUsed:    r.CumulativeGasUsed,
		Status:               status,
	}
}

func orDefault(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}
