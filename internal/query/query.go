// Package query holds the wallet query edited on the dashboard and turns it
// into the descriptor a HyperSync stream source expects.
package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gabapcia/transferscope/internal/chain"
	"github.com/gabapcia/transferscope/internal/pkg/types"
	"github.com/gabapcia/transferscope/internal/pkg/validator"
	"github.com/gabapcia/transferscope/internal/transfer"
)

var (
	// ErrInvalidAddressFormat is returned when an address is not 0x followed by 40 hex digits.
	ErrInvalidAddressFormat = errors.New("invalid address format")

	// ErrInvalidStartBlock is returned when the start block is not a non-negative integer.
	ErrInvalidStartBlock = errors.New("invalid start block")
)

// WalletQuery is the operator's request: which wallet, on which chain, from
// which block and for which transfer kinds.
type WalletQuery struct {
	Address    string      `validate:"required,eth_addr"`
	Chain      chain.Chain `validate:"-"`
	StartBlock string      `validate:"required,number"`
	WantNative bool
	WantERC20  bool
	WantERC721 bool
}

// New returns the query the dashboard starts with: every kind enabled,
// Mainnet, from the genesis block.
func New() WalletQuery {
	return WalletQuery{
		Chain:      chain.Mainnet,
		StartBlock: "0",
		WantNative: true,
		WantERC20:  true,
		WantERC721: true,
	}
}

// Validate reports whether the query can be built. Failures wrap
// ErrInvalidAddressFormat and/or ErrInvalidStartBlock together with the
// underlying validator.ErrValidationFailed chain.
func (q WalletQuery) Validate() error {
	err := validator.Validate(q)
	if err == nil {
		_, err = q.FromBlock()
		return err
	}

	errs := []error{err}
	fields := validator.FailedFields(err)
	if slices.Contains(fields, "Address") {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidAddressFormat, q.Address))
	}
	if slices.Contains(fields, "StartBlock") {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidStartBlock, q.StartBlock))
	}

	return errors.Join(errs...)
}

// FromBlock parses the start block, failing with ErrInvalidStartBlock when it
// does not fit in a uint64.
func (q WalletQuery) FromBlock() (uint64, error) {
	block, err := types.Quantity(q.StartBlock).Uint64()
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidStartBlock, q.StartBlock, err)
	}
	return block, nil
}

// TransferFilter returns the classification filter matching this query.
func (q WalletQuery) TransferFilter() transfer.Filter {
	return transfer.Filter{
		Address: strings.ToLower(q.Address),
		Native:  q.WantNative,
		ERC20:   q.WantERC20,
		ERC721:  q.WantERC721,
	}
}

// Kinds lists the enabled transfer kinds in tab order.
func (q WalletQuery) Kinds() []transfer.Kind {
	var kinds []transfer.Kind
	if q.WantNative {
		kinds = append(kinds, transfer.KindNative)
	}
	if q.WantERC20 {
		kinds = append(kinds, transfer.KindERC20)
	}
	if q.WantERC721 {
		kinds = append(kinds, transfer.KindERC721)
	}
	return kinds
}
