package codec

import (
	"testing"

	"github.com/goran-ethernal/ChainFirehose/internal/common"
	"github.com/goran-ethernal/ChainFirehose/pkg/datasource"
	pbeth "github.com/streamingfast/firehose-ethereum/types/pb/sf/ethereum/type/v2"
	"github.com/stretchr/testify/require"
)

const (
	hash32 = "0x1111111111111111111111111111111111111111111111111111111111111111"
	addrA  = "0x00000000000000000000000000000000000000aa"
	addrB  = "0x00000000000000000000000000000000000000bb"
)

func strPtr(s string) *string { return &s }

func callTypePtr(c datasource.CallType) *datasource.CallType { return &c }

func testHeader(number uint64) datasource.BlockHeader {
	return datasource.BlockHeader{
		Number:           number,
		Hash:             hash32,
		ParentHash:       hash32,
		Nonce:            "0x0000000000000042",
		Sha3Uncles:       hash32,
		LogsBloom:        "0x00",
		TransactionsRoot: hash32,
		StateRoot:        hash32,
		ReceiptsRoot:     hash32,
		Miner:            addrA,
		MixHash:          hash32,
		Difficulty:       "0x1",
		TotalDifficulty:  "0x0",
		ExtraData:        "0x",
		Size:             512,
		GasLimit:         "0x1c9c380",
		GasUsed:          "0x5208",
		Timestamp:        1_700_000_000,
	}
}

func testTransaction(index uint32) datasource.Transaction {
	return datasource.Transaction{
		TransactionIndex:  index,
		Hash:              hash32,
		From:              addrA,
		To:                strPtr(addrB),
		Nonce:             7,
		GasPrice:          "0x3b9aca00",
		Gas:               "0x5208",
		Value:             "0xde0b6b3a7640000",
		Input:             "0x",
		V:                 "0x1",
		R:                 "0x12",
		S:                 "0x345",
		Type:              2,
		GasUsed:           "0x5208",
		CumulativeGasUsed: "0xa410",
		Status:            1,
	}
}

func callTrace(txIndex uint32) datasource.Trace {
	return datasource.Trace{
		TransactionIndex: txIndex,
		Type:             datasource.TraceTypeCall,
		Action: &datasource.TraceAction{
			From:     strPtr(addrA),
			To:       strPtr(addrB),
			Value:    strPtr("0x0"),
			Gas:      strPtr("0x7530"),
			Input:    strPtr("0xa9059cbb"),
			CallType: callTypePtr(datasource.CallTypeCall),
		},
		Result: &datasource.TraceResult{
			GasUsed: strPtr("0x2710"),
			Output:  strPtr("0x01"),
		},
	}
}

func TestConvertHeader(t *testing.T) {
	h := testHeader(10)
	h.BaseFeePerGas = strPtr("0x3e8")

	out, err := ConvertHeader(&h)
	require.NoError(t, err)

	require.Equal(t, uint64(10), out.Number)
	require.Equal(t, uint64(30_000_000), out.GasLimit)
	require.Equal(t, uint64(21_000), out.GasUsed)
	require.Equal(t, uint64(0x42), out.Nonce)
	require.Equal(t, int64(1_700_000_000), out.Timestamp.GetSeconds())
	require.Equal(t, []byte{0x01}, out.Difficulty.Bytes)
	require.Equal(t, []byte{0x00}, out.TotalDifficulty.Bytes)
	require.Equal(t, []byte{0x03, 0xe8}, out.BaseFeePerGas.Bytes)
	require.Len(t, out.Hash, 32)
	require.Len(t, out.Coinbase, 20)
}

func TestConvertHeaderWithoutBaseFee(t *testing.T) {
	h := testHeader(1)

	out, err := ConvertHeader(&h)
	require.NoError(t, err)
	require.Nil(t, out.BaseFeePerGas)
}

func TestConvertHeaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(h *datasource.BlockHeader)
		wantErr error
	}{
		{
			name:    "malformed hash",
			mutate:  func(h *datasource.BlockHeader) { h.Hash = "0xzz" },
			wantErr: common.ErrMalformedHex,
		},
		{
			name:    "gas limit overflow",
			mutate:  func(h *datasource.BlockHeader) { h.GasLimit = "0x1ffffffffffffffffff" },
			wantErr: common.ErrIntegerOverflow,
		},
		{
			name:    "malformed base fee",
			mutate:  func(h *datasource.BlockHeader) { h.BaseFeePerGas = strPtr("0xqq") },
			wantErr: common.ErrMalformedHex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHeader(1)
			tt.mutate(&h)

			_, err := ConvertHeader(&h)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConvertBlock(t *testing.T) {
	b := &datasource.Block{
		Header:       testHeader(20),
		Transactions: []datasource.Transaction{testTransaction(0), testTransaction(1)},
		Logs: []datasource.Log{
			{Address: addrA, Topics: []string{hash32}, Data: "0x01", LogIndex: 0, TransactionIndex: 1},
			{Address: addrB, Topics: []string{}, Data: "0x02", LogIndex: 1, TransactionIndex: 1},
		},
		Traces: []datasource.Trace{callTrace(0)},
	}

	out, err := ConvertBlock(b)
	require.NoError(t, err)

	require.Equal(t, int32(BlockVersion), out.Ver)
	require.Equal(t, uint64(20), out.Number)
	require.Equal(t, uint64(512), out.Size)
	require.Equal(t, out.Header.Hash, out.Hash)
	require.Len(t, out.TransactionTraces, 2)

	first := out.TransactionTraces[0]
	require.Empty(t, first.Receipt.Logs)
	require.Len(t, first.Calls, 1)
	require.Equal(t, uint64(0xa410), first.Receipt.CumulativeGasUsed)
	require.Equal(t, make([]byte, 256), first.Receipt.LogsBloom)
	require.Empty(t, first.AccessList)
	require.Equal(t, pbeth.TransactionTraceStatus_SUCCEEDED, first.Status)
	require.Equal(t, pbeth.TransactionTrace_TRX_TYPE_DYNAMIC_FEE, first.Type)
	require.Equal(t, []byte{0x03, 0x45}, first.S)

	second := out.TransactionTraces[1]
	require.Empty(t, second.Calls)
	require.Len(t, second.Receipt.Logs, 2)
	require.Equal(t, uint32(0), second.Receipt.Logs[0].BlockIndex)
	require.Equal(t, uint32(1), second.Receipt.Logs[1].BlockIndex)
	require.Equal(t, uint32(1), second.Receipt.Logs[1].Index)
}

func TestConvertBlockPreservesLogOrderPerTransaction(t *testing.T) {
	logs := []datasource.Log{
		{Address: addrA, Data: "0x01", LogIndex: 0, TransactionIndex: 2},
		{Address: addrA, Data: "0x02", LogIndex: 1, TransactionIndex: 0},
		{Address: addrA, Data: "0x03", LogIndex: 2, TransactionIndex: 2},
		{Address: addrA, Data: "0x04", LogIndex: 3, TransactionIndex: 0},
		{Address: addrA, Data: "0x05", LogIndex: 4, TransactionIndex: 2},
	}
	b := &datasource.Block{
		Header:       testHeader(3),
		Transactions: []datasource.Transaction{testTransaction(0), testTransaction(1), testTransaction(2)},
		Logs:         logs,
	}

	out, err := ConvertBlock(b)
	require.NoError(t, err)

	for _, trx := range out.TransactionTraces {
		var want []uint32
		for _, l := range logs {
			if l.TransactionIndex == trx.Index {
				want = append(want, l.LogIndex)
			}
		}

		var got []uint32
		for i, l := range trx.Receipt.Logs {
			got = append(got, l.BlockIndex)
			require.Equal(t, uint32(i), l.Index, "index is the position within the receipt")
		}

		require.Equal(t, want, got, "transaction %d", trx.Index)
	}
}

func TestConvertTransactionWithoutRecipient(t *testing.T) {
	tx := testTransaction(0)
	tx.To = nil

	b := &datasource.Block{Header: testHeader(1), Transactions: []datasource.Transaction{tx}}
	out, err := ConvertBlock(b)
	require.NoError(t, err)
	require.Equal(t, make([]byte, 20), out.TransactionTraces[0].To)
}

func TestConvertTransactionFailedStatus(t *testing.T) {
	tx := testTransaction(0)
	tx.Status = 0

	b := &datasource.Block{Header: testHeader(1), Transactions: []datasource.Transaction{tx}}
	out, err := ConvertBlock(b)
	require.NoError(t, err)
	require.Equal(t, pbeth.TransactionTraceStatus_FAILED, out.TransactionTraces[0].Status)
}

func TestConvertBlockFailsOnBadTransaction(t *testing.T) {
	tx := testTransaction(0)
	tx.Gas = "0xnothex"

	b := &datasource.Block{Header: testHeader(1), Transactions: []datasource.Transaction{tx}}
	_, err := ConvertBlock(b)
	require.ErrorIs(t, err, common.ErrMalformedHex)
	require.Contains(t, err.Error(), "transaction.gas")
}
