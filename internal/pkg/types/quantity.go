package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	// ErrEmptyQuantity is returned when a Quantity carries no value at all
	// (the field was null or missing in the source document).
	ErrEmptyQuantity = errors.New("empty quantity")

	// ErrInvalidQuantity is returned when a Quantity is neither a base-10 integer
	// nor a 0x-prefixed hexadecimal integer.
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// Quantity is an unsigned integer as delivered by a chain data API.
//
// Depending on the provider and the field, quantities arrive either as JSON
// numbers (e.g. 17000000) or as 0x-prefixed hex strings (e.g. "0x1a"). The raw
// text is kept as-is and parsed on demand, so a single malformed value never
// makes the surrounding document fail to decode.
type Quantity string

// UnmarshalJSON stores the raw scalar text. Quoted values are unquoted, JSON null
// produces an empty Quantity. It never rejects a scalar: validation happens in
// Big and Uint64.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*q = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid quantity string: %w", err)
		}
		*q = Quantity(s)
	default:
		*q = Quantity(raw)
	}

	return nil
}

// IsEmpty reports whether the Quantity carries no value.
func (q Quantity) IsEmpty() bool {
	return strings.TrimSpace(string(q)) == ""
}

// Big parses the Quantity into a big.Int.
//
// Hex values may carry leading zeros and "0x" alone decodes to zero. Negative
// values are rejected.
//
// Returns:
//   - The parsed value.
//   - ErrEmptyQuantity if there is no value, ErrInvalidQuantity if it cannot be parsed.
func (q Quantity) Big() (*big.Int, error) {
	s := strings.TrimSpace(string(q))
	if s == "" {
		return nil, ErrEmptyQuantity
	}

	var (
		v  *big.Int
		ok bool
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		digits := s[2:]
		if digits == "" {
			return new(big.Int), nil
		}
		v, ok = new(big.Int).SetString(digits, 16)
	} else {
		v, ok = new(big.Int).SetString(s, 10)
	}

	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}

	return v, nil
}

// Uint64 parses the Quantity into a uint64, failing with ErrInvalidQuantity when
// the value does not fit.
func (q Quantity) Uint64() (uint64, error) {
	v, err := q.Big()
	if err != nil {
		return 0, err
	}

	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: %s overflows uint64", ErrInvalidQuantity, v)
	}

	return v.Uint64(), nil
}
