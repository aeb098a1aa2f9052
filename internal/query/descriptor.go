package query

import "strings"

// TransferEventSignature is keccak256("Transfer(address,address,uint256)").
// ERC20 and ERC721 share it.
const TransferEventSignature = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"

var (
	logFields = []string{
		"transaction_hash",
		"block_hash",
		"block_number",
		"log_index",
		"address",
		"data",
		"topic0",
		"topic1",
		"topic2",
		"topic3",
	}

	transactionFields = []string{
		"hash",
		"block_hash",
		"block_number",
		"nonce",
		"from",
		"to",
		"value",
		"gas_used",
	}
)

// Descriptor is the HyperSync query body.
type Descriptor struct {
	FromBlock      uint64                 `json:"from_block"`
	Logs           []LogSelection         `json:"logs"`
	Transactions   []TransactionSelection `json:"transactions"`
	FieldSelection FieldSelection         `json:"field_selection"`
}

// LogSelection matches logs whose topics match every non-empty position.
// An empty position matches anything.
type LogSelection struct {
	Topics [][]string `json:"topics"`
}

// TransactionSelection matches transactions by sender or recipient.
type TransactionSelection struct {
	From []string `json:"from,omitempty"`
	To   []string `json:"to,omitempty"`
}

// FieldSelection names the columns returned for each record type.
type FieldSelection struct {
	Log         []string `json:"log"`
	Transaction []string `json:"transaction"`
}

// WithFromBlock returns a copy of d starting at block. Stream sources use it
// to page through results.
func (d Descriptor) WithFromBlock(block uint64) Descriptor {
	d.FromBlock = block
	return d
}

// Build validates q and returns the descriptor that fetches every Transfer
// log naming the wallet as sender or recipient and every transaction sent
// from or to it. Both log filters and both transaction filters are always
// present; kind toggles are applied during classification.
func Build(q WalletQuery) (Descriptor, error) {
	if err := q.Validate(); err != nil {
		return Descriptor{}, err
	}

	fromBlock, err := q.FromBlock()
	if err != nil {
		return Descriptor{}, err
	}

	topic, err := EncodeAddressTopic(q.Address)
	if err != nil {
		return Descriptor{}, err
	}

	address := strings.ToLower(q.Address)

	return Descriptor{
		FromBlock: fromBlock,
		Logs: []LogSelection{
			{Topics: [][]string{{TransferEventSignature}, {}, {topic}, {}}},
			{Topics: [][]string{{TransferEventSignature}, {topic}, {}, {}}},
		},
		Transactions: []TransactionSelection{
			{From: []string{address}},
			{To: []string{address}},
		},
		FieldSelection: FieldSelection{
			Log:         append([]string(nil), logFields...),
			Transaction: append([]string(nil), transactionFields...),
		},
	}, nil
}
