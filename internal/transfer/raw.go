package transfer

import "github.com/gabapcia/transferscope/internal/pkg/types"

// RawLog is a log row as delivered by the stream source. Every field is
// optional; only the fields requested through the field selection are set.
type RawLog struct {
	TransactionHash *string        `json:"transaction_hash"`
	BlockHash       *string        `json:"block_hash"`
	BlockNumber     types.Quantity `json:"block_number"`
	LogIndex        types.Quantity `json:"log_index"`
	Address         *string        `json:"address"`
	Data            *string        `json:"data"`
	Topic0          *string        `json:"topic0"`
	Topic1          *string        `json:"topic1"`
	Topic2          *string        `json:"topic2"`
	Topic3          *string        `json:"topic3"`
}

// RawTransaction is a transaction row as delivered by the stream source.
type RawTransaction struct {
	Hash        *string        `json:"hash"`
	BlockHash   *string        `json:"block_hash"`
	BlockNumber types.Quantity `json:"block_number"`
	Nonce       types.Quantity `json:"nonce"`
	From        *string        `json:"from"`
	To          *string        `json:"to"`
	Value       types.Quantity `json:"value"`
	GasUsed     types.Quantity `json:"gas_used"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
