package datasource

// Block is a raw block as returned by a data source. Quantities and byte fields
// keep the node's 0x-prefixed hex encoding.
type Block struct {
	Header       BlockHeader   `json:"header"`
	Transactions []Transaction `json:"transactions"`
	Logs         []Log         `json:"logs"`
	Traces       []Trace       `json:"traces"`
}

type BlockHeader struct {
	Number           uint64  `json:"number"`
	Hash             string  `json:"hash"`
	ParentHash       string  `json:"parentHash"`
	Nonce            string  `json:"nonce"`
	Sha3Uncles       string  `json:"sha3Uncles"`
	LogsBloom        string  `json:"logsBloom"`
	TransactionsRoot string  `json:"transactionsRoot"`
	StateRoot        string  `json:"stateRoot"`
	ReceiptsRoot     string  `json:"receiptsRoot"`
	Miner            string  `json:"miner"`
	MixHash          string  `json:"mixHash"`
	Difficulty       string  `json:"difficulty"`
	TotalDifficulty  string  `json:"totalDifficulty"`
	ExtraData        string  `json:"extraData"`
	Size             uint64  `json:"size"`
	GasLimit         string  `json:"gasLimit"`
	GasUsed          string  `json:"gasUsed"`
	Timestamp        uint64  `json:"timestamp"`
	BaseFeePerGas    *string `json:"baseFeePerGas,omitempty"`
}

type Transaction struct {
	TransactionIndex     uint32  `json:"transactionIndex"`
	Hash                 string  `json:"hash"`
	From                 string  `json:"from"`
	To                   *string `json:"to,omitempty"`
	Nonce                uint64  `json:"nonce"`
	GasPrice             string  `json:"gasPrice"`
	Gas                  string  `json:"gas"`
	MaxFeePerGas         *string `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *string `json:"maxPriorityFeePerGas,omitempty"`
	Value                string  `json:"value"`
	Input                string  `json:"input"`
	V                    string  `json:"v"`
	R                    string  `json:"r"`
	S                    string  `json:"s"`
	Type                 int32   `json:"type"`
	GasUsed              string  `json:"gasUsed"`
	CumulativeGasUsed    string  `json:"cumulativeGasUsed"`
	// Status is the receipt status: 1 for success, 0 for failure, -1 when the receipt has none.
	Status int32 `json:"status"`
}

type Log struct {
	Address          string   `json:"address"`
	Topics           []string `json:"topics"`
	Data             string   `json:"data"`
	LogIndex         uint32   `json:"logIndex"`
	TransactionIndex uint32   `json:"transactionIndex"`
}

type TraceType string

const (
	TraceTypeCreate  TraceType = "create"
	TraceTypeCall    TraceType = "call"
	TraceTypeSuicide TraceType = "suicide"
	TraceTypeReward  TraceType = "reward"
)

type CallType string

const (
	CallTypeCall         CallType = "call"
	CallTypeCallCode     CallType = "callcode"
	CallTypeDelegateCall CallType = "delegatecall"
	CallTypeStaticCall   CallType = "staticcall"
)

// Trace is one parity-style trace record.
type Trace struct {
	TransactionIndex uint32       `json:"transactionPosition"`
	Type             TraceType    `json:"type"`
	Action           *TraceAction `json:"action,omitempty"`
	Result           *TraceResult `json:"result,omitempty"`
	Error            *string      `json:"error,omitempty"`
	RevertReason     *string      `json:"revertReason,omitempty"`
}

type TraceAction struct {
	From     *string   `json:"from,omitempty"`
	To       *string   `json:"to,omitempty"`
	Value    *string   `json:"value,omitempty"`
	Gas      *string   `json:"gas,omitempty"`
	Input    *string   `json:"input,omitempty"`
	CallType *CallType `json:"callType,omitempty"`
}

type TraceResult struct {
	GasUsed *string `json:"gasUsed,omitempty"`
	Output  *string `json:"output,omitempty"`
	Address *string `json:"address,omitempty"`
}
