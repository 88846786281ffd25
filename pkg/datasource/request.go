package datasource

import "strings"

// DataRequest narrows a fetch to a height range and, optionally, to matching logs and calls.
// To is inclusive; nil means "up to the source's finalized head".
type DataRequest struct {
	From         uint64               `json:"from"`
	To           *uint64              `json:"to,omitempty"`
	Logs         []LogRequest         `json:"logs,omitempty"`
	Transactions []TransactionRequest `json:"transactions,omitempty"`
}

// LogRequest matches logs emitted by any of Address whose first topic is any of Topic0.
// Values are lowercase 0x-prefixed hex. An empty list matches everything.
type LogRequest struct {
	Address []string `json:"address,omitempty"`
	Topic0  []string `json:"topic0,omitempty"`
}

// TransactionRequest matches transactions sent to any of To whose input starts with any
// of the 4-byte Sighash selectors. An empty list matches everything.
type TransactionRequest struct {
	To      []string `json:"to,omitempty"`
	Sighash []string `json:"sighash,omitempty"`
}

// WithRange returns a copy of the request bound to [from, to].
func (r DataRequest) WithRange(from uint64, to *uint64) DataRequest {
	r.From = from
	r.To = to

	return r
}

// HasFilters reports whether the request narrows block contents at all.
func (r DataRequest) HasFilters() bool {
	return len(r.Logs) > 0 || len(r.Transactions) > 0
}

// Apply narrows the block to the request's filters. Without filters the block is returned
// unchanged. Transactions are always kept; logs are kept when some LogRequest matches and
// traces when their transaction matches some TransactionRequest.
func (r DataRequest) Apply(b Block) Block {
	if !r.HasFilters() {
		return b
	}

	matchedTxs := make(map[uint32]struct{}, len(b.Transactions))
	for _, tx := range b.Transactions {
		if r.matchTransaction(tx) {
			matchedTxs[tx.TransactionIndex] = struct{}{}
		}
	}

	logs := make([]Log, 0, len(b.Logs))
	for _, l := range b.Logs {
		if r.matchLog(l) {
			logs = append(logs, l)
		}
	}

	traces := make([]Trace, 0, len(b.Traces))
	for _, tr := range b.Traces {
		if _, ok := matchedTxs[tr.TransactionIndex]; ok {
			traces = append(traces, tr)
		}
	}

	b.Logs = logs
	b.Traces = traces

	return b
}

func (r DataRequest) matchLog(l Log) bool {
	for _, lr := range r.Logs {
		if lr.Matches(l) {
			return true
		}
	}

	return false
}

func (r DataRequest) matchTransaction(tx Transaction) bool {
	for _, tr := range r.Transactions {
		if tr.Matches(tx) {
			return true
		}
	}

	return false
}

// Matches reports whether the log satisfies the request.
func (lr LogRequest) Matches(l Log) bool {
	if len(lr.Address) > 0 && !containsFold(lr.Address, l.Address) {
		return false
	}

	if len(lr.Topic0) > 0 {
		if len(l.Topics) == 0 || !containsFold(lr.Topic0, l.Topics[0]) {
			return false
		}
	}

	return true
}

// Matches reports whether the transaction satisfies the request.
func (tr TransactionRequest) Matches(tx Transaction) bool {
	if len(tr.To) > 0 && (tx.To == nil || !containsFold(tr.To, *tx.To)) {
		return false
	}

	if len(tr.Sighash) > 0 {
		const selectorLen = len("0x") + 8
		if len(tx.Input) < selectorLen || !containsFold(tr.Sighash, tx.Input[:selectorLen]) {
			return false
		}
	}

	return true
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}

	return false
}
