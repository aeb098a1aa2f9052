// Package transfer classifies raw stream records into native, ERC20 and ERC721
// transfers and keeps the results of one load.
//
// ERC20 and ERC721 share the Transfer event signature. The two are told apart
// by the number of indexed topics: two indexed topics and a 32-byte body is an
// ERC20 transfer, three indexed topics and no body is an ERC721 transfer. The
// ERC20 shape is always tried first. Anything else is discarded.
package transfer

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/gabapcia/transferscope/internal/pkg/types"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	erc20TransferABI = `[{"type":"event","name":"Transfer","anonymous":false,"inputs":[
		{"name":"from","type":"address","indexed":true},
		{"name":"to","type":"address","indexed":true},
		{"name":"value","type":"uint256","indexed":false}]}]`

	erc721TransferABI = `[{"type":"event","name":"Transfer","anonymous":false,"inputs":[
		{"name":"from","type":"address","indexed":true},
		{"name":"to","type":"address","indexed":true},
		{"name":"tokenId","type":"uint256","indexed":true}]}]`
)

var (
	erc20Transfer  = mustTransferEvent(erc20TransferABI)
	erc721Transfer = mustTransferEvent(erc721TransferABI)

	// transferTopic is keccak256("Transfer(address,address,uint256)").
	transferTopic = erc20Transfer.ID
)

var (
	errMissingField = errors.New("missing field")
	errShape        = errors.New("unexpected log shape")
)

func mustTransferEvent(def string) abi.Event {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("transfer: invalid event ABI: %v", err))
	}
	return parsed.Events["Transfer"]
}

// Filter selects what a load keeps.
type Filter struct {
	Address string // wallet address; empty keeps native transfers from any sender
	Native  bool
	ERC20   bool
	ERC721  bool
}

// Stats counts what one ClassifyBatch call did.
type Stats struct {
	Native     int
	ERC20      int
	ERC721     int
	Discarded  int
	Duplicates int
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Native += other.Native
	s.ERC20 += other.ERC20
	s.ERC721 += other.ERC721
	s.Discarded += other.Discarded
	s.Duplicates += other.Duplicates
}

// Classifier turns raw records into transfers for a single load. Records seen
// earlier in the same load are skipped. A Classifier is not safe for
// concurrent use; create one per load.
type Classifier struct {
	filter   Filter
	seenLogs types.Set[string]
	seenTxs  types.Set[string]
}

// NewClassifier creates a Classifier for one load.
func NewClassifier(filter Filter) *Classifier {
	return &Classifier{
		filter:   filter,
		seenLogs: types.NewSet[string](),
		seenTxs:  types.NewSet[string](),
	}
}

// ClassifyBatch classifies every record of one stream batch, appending the
// results to store in the order they appear. Malformed or unrecognized records
// are counted as discarded and never stop the batch.
func (c *Classifier) ClassifyBatch(store *Store, logs [][]RawLog, txs [][]RawTransaction) Stats {
	var stats Stats

	for _, group := range logs {
		for _, log := range group {
			c.classifyLog(store, log, &stats)
		}
	}

	if !c.filter.Native {
		return stats
	}

	for _, group := range txs {
		for _, tx := range group {
			c.classifyTransaction(store, tx, &stats)
		}
	}

	return stats
}

func (c *Classifier) classifyLog(store *Store, log RawLog, stats *Stats) {
	if log.Data == nil || log.Topic0 == nil {
		stats.Discarded++
		return
	}

	topic0, err := decodeTopic(*log.Topic0)
	if err != nil || topic0 != transferTopic {
		stats.Discarded++
		return
	}

	indexed, err := indexedTopics(log)
	if err != nil {
		stats.Discarded++
		return
	}

	body, err := hexutil.Decode(normalizeHex(*log.Data))
	if err != nil {
		stats.Discarded++
		return
	}

	switch {
	case len(indexed) == 2 && len(body) == 32:
		if !c.filter.ERC20 {
			return
		}
		record, err := decodeERC20(log, indexed, body)
		if err != nil {
			stats.Discarded++
			return
		}
		if !c.seenLogs.Insert(logKey(log)) {
			stats.Duplicates++
			return
		}
		store.AppendERC20(record)
		stats.ERC20++

	case len(indexed) == 3 && len(body) == 0:
		if !c.filter.ERC721 {
			return
		}
		record, err := decodeERC721(log, indexed)
		if err != nil {
			stats.Discarded++
			return
		}
		if !c.seenLogs.Insert(logKey(log)) {
			stats.Duplicates++
			return
		}
		store.AppendERC721(record)
		stats.ERC721++

	default:
		stats.Discarded++
	}
}

func (c *Classifier) classifyTransaction(store *Store, tx RawTransaction, stats *Stats) {
	record, value, err := decodeNative(tx)
	if err != nil {
		stats.Discarded++
		return
	}

	if value.Sign() <= 0 || !c.involvesWallet(record) {
		return
	}

	if !c.seenTxs.Insert(strings.ToLower(record.Hash)) {
		stats.Duplicates++
		return
	}

	store.AppendNative(record)
	stats.Native++
}

func (c *Classifier) involvesWallet(t NativeTransfer) bool {
	if c.filter.Address == "" {
		return true
	}
	return strings.EqualFold(t.From, c.filter.Address) || strings.EqualFold(t.To, c.filter.Address)
}

func decodeERC20(log RawLog, indexed []common.Hash, body []byte) (ERC20Transfer, error) {
	hash, block, contract, err := logHeader(log)
	if err != nil {
		return ERC20Transfer{}, err
	}

	args := make(map[string]any, 2)
	if err := abi.ParseTopicsIntoMap(args, indexedArguments(erc20Transfer), indexed); err != nil {
		return ERC20Transfer{}, err
	}

	values, err := erc20Transfer.Inputs.NonIndexed().Unpack(body)
	if err != nil {
		return ERC20Transfer{}, err
	}
	if len(values) != 1 {
		return ERC20Transfer{}, errShape
	}
	amount, ok := values[0].(*big.Int)
	if !ok {
		return ERC20Transfer{}, errShape
	}

	from, to, err := counterparties(args)
	if err != nil {
		return ERC20Transfer{}, err
	}

	return ERC20Transfer{
		Hash:     hash,
		Block:    block,
		Contract: contract,
		From:     from,
		To:       to,
		Amount:   amount.String(),
	}, nil
}

func decodeERC721(log RawLog, indexed []common.Hash) (ERC721Transfer, error) {
	hash, block, contract, err := logHeader(log)
	if err != nil {
		return ERC721Transfer{}, err
	}

	args := make(map[string]any, 3)
	if err := abi.ParseTopicsIntoMap(args, indexedArguments(erc721Transfer), indexed); err != nil {
		return ERC721Transfer{}, err
	}

	tokenID, ok := args["tokenId"].(*big.Int)
	if !ok {
		return ERC721Transfer{}, errShape
	}

	from, to, err := counterparties(args)
	if err != nil {
		return ERC721Transfer{}, err
	}

	return ERC721Transfer{
		Hash:     hash,
		Block:    block,
		Contract: contract,
		From:     from,
		To:       to,
		TokenID:  tokenID.String(),
	}, nil
}

func decodeNative(tx RawTransaction) (NativeTransfer, *big.Int, error) {
	if tx.Hash == nil || tx.From == nil {
		return NativeTransfer{}, nil, errMissingField
	}

	value, err := tx.Value.Big()
	if err != nil {
		return NativeTransfer{}, nil, err
	}

	block, err := tx.BlockNumber.Big()
	if err != nil {
		return NativeTransfer{}, nil, err
	}

	nonce, err := optionalQuantity(tx.Nonce)
	if err != nil {
		return NativeTransfer{}, nil, err
	}

	gasUsed, err := optionalQuantity(tx.GasUsed)
	if err != nil {
		return NativeTransfer{}, nil, err
	}

	return NativeTransfer{
		Hash:      strings.ToLower(*tx.Hash),
		BlockHash: strings.ToLower(deref(tx.BlockHash)),
		Block:     block.String(),
		Nonce:     nonce,
		From:      strings.ToLower(*tx.From),
		To:        strings.ToLower(deref(tx.To)),
		Value:     FormatEther(value),
		GasUsed:   gasUsed,
	}, value, nil
}

func logHeader(log RawLog) (hash, block, contract string, err error) {
	if log.TransactionHash == nil || log.Address == nil {
		return "", "", "", errMissingField
	}

	number, err := log.BlockNumber.Big()
	if err != nil {
		return "", "", "", err
	}

	return strings.ToLower(*log.TransactionHash), number.String(), strings.ToLower(*log.Address), nil
}

func counterparties(args map[string]any) (from, to string, err error) {
	fromAddr, ok := args["from"].(common.Address)
	if !ok {
		return "", "", errShape
	}
	toAddr, ok := args["to"].(common.Address)
	if !ok {
		return "", "", errShape
	}
	return fromAddr.Hex(), toAddr.Hex(), nil
}

func indexedArguments(ev abi.Event) abi.Arguments {
	var args abi.Arguments
	for _, arg := range ev.Inputs {
		if arg.Indexed {
			args = append(args, arg)
		}
	}
	return args
}

// indexedTopics returns topic1..topic3 up to the first absent one. A present
// topic after an absent one makes the log unclassifiable.
func indexedTopics(log RawLog) ([]common.Hash, error) {
	var (
		topics []common.Hash
		gap    bool
	)

	for _, raw := range []*string{log.Topic1, log.Topic2, log.Topic3} {
		if raw == nil || *raw == "" {
			gap = true
			continue
		}
		if gap {
			return nil, errShape
		}
		topic, err := decodeTopic(*raw)
		if err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}

	return topics, nil
}

func decodeTopic(raw string) (common.Hash, error) {
	b, err := hexutil.Decode(normalizeHex(raw))
	if err != nil {
		return common.Hash{}, err
	}
	if len(b) != common.HashLength {
		return common.Hash{}, errShape
	}
	return common.BytesToHash(b), nil
}

// normalizeHex maps the empty string to "0x" so hexutil accepts an empty body.
func normalizeHex(s string) string {
	if s == "" {
		return "0x"
	}
	return s
}

func optionalQuantity(q types.Quantity) (string, error) {
	if q.IsEmpty() {
		return "", nil
	}
	v, err := q.Big()
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func logKey(log RawLog) string {
	hash := strings.ToLower(deref(log.TransactionHash))
	if log.LogIndex.IsEmpty() {
		return hash + "#" + strings.ToLower(deref(log.Topic1)+deref(log.Topic2)+deref(log.Topic3)+deref(log.Data))
	}
	if idx, err := log.LogIndex.Big(); err == nil {
		return hash + "#" + idx.String()
	}
	return hash + "#" + string(log.LogIndex)
}
