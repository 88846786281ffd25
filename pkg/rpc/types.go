package rpc

import "github.com/ethereum/go-ethereum/common/hexutil"

// Header is a block header as encoded by eth_getBlockByNumber.
type Header struct {
	Number           hexutil.Uint64 `json:"number"`
	Hash             string         `json:"hash"`
	ParentHash       string         `json:"parentHash"`
	Nonce            string         `json:"nonce"`
	Sha3Uncles       string         `json:"sha3Uncles"`
	LogsBloom        string         `json:"logsBloom"`
	TransactionsRoot string         `json:"transactionsRoot"`
	StateRoot        string         `json:"stateRoot"`
	ReceiptsRoot     string         `json:"receiptsRoot"`
	Miner            string         `json:"miner"`
	MixHash          *string        `json:"mixHash"`
	Difficulty       string         `json:"difficulty"`
	TotalDifficulty  *string        `json:"totalDifficulty"`
	ExtraData        string         `json:"extraData"`
	Size             hexutil.Uint64 `json:"size"`
	GasLimit         string         `json:"gasLimit"`
	GasUsed          string         `json:"gasUsed"`
	Timestamp        hexutil.Uint64 `json:"timestamp"`
	BaseFeePerGas    *string        `json:"baseFeePerGas"`
}

// Block is a block with full transaction objects.
type Block struct {
	Header
	Transactions []*Transaction `json:"transactions"`
}

type Transaction struct {
	Hash                 string         `json:"hash"`
	TransactionIndex     hexutil.Uint64 `json:"transactionIndex"`
	From                 string         `json:"from"`
	To                   *string        `json:"to"`
	Nonce                hexutil.Uint64 `json:"nonce"`
	GasPrice             *string        `json:"gasPrice"`
	Gas                  string         `json:"gas"`
	MaxFeePerGas         *string        `json:"maxFeePerGas"`
	MaxPriorityFeePerGas *string        `json:"maxPriorityFeePerGas"`
	Value                string         `json:"value"`
	Input                string         `json:"input"`
	V                    *string        `json:"v"`
	R                    *string        `json:"r"`
	S                    *string        `json:"s"`
	Type                 hexutil.Uint64 `json:"type"`
}

// Receipt is a transaction receipt as encoded by eth_getBlockReceipts.
type Receipt struct {
	TransactionHash   string          `json:"transactionHash"`
	TransactionIndex  hexutil.Uint64  `json:"transactionIndex"`
	GasUsed           string          `json:"gasUsed"`
	CumulativeGasUsed string          `json:"cumulativeGasUsed"`
	Status            *hexutil.Uint64 `json:"status"`
	Logs              []*Log          `json:"logs"`
}

type Log struct {
	Address          string         `json:"address"`
	Topics           []string       `json:"topics"`
	Data             string         `json:"data"`
	LogIndex         hexutil.Uint64 `json:"logIndex"`
	TransactionIndex hexutil.Uint64 `json:"transactionIndex"`
}
