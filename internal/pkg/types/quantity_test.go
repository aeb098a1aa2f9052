package types

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantity_UnmarshalJSON(t *testing.T) {
	t.Run("should keep hex strings", func(t *testing.T) {
		var q Quantity
		require.NoError(t, json.Unmarshal([]byte(`"0x1a"`), &q))
		assert.Equal(t, Quantity("0x1a"), q)
	})

	t.Run("should keep json numbers", func(t *testing.T) {
		var q Quantity
		require.NoError(t, json.Unmarshal([]byte(`17000000`), &q))
		assert.Equal(t, Quantity("17000000"), q)
	})

	t.Run("should map null to empty", func(t *testing.T) {
		q := Quantity("0x1")
		require.NoError(t, json.Unmarshal([]byte(`null`), &q))
		assert.True(t, q.IsEmpty())
	})

	t.Run("should not fail the document on garbage", func(t *testing.T) {
		var doc struct {
			Value Quantity `json:"value"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"value":"0xZZ"}`), &doc))
		assert.Equal(t, Quantity("0xZZ"), doc.Value)
	})
}

func TestQuantity_Big(t *testing.T) {
	t.Run("should parse hex with leading zeros", func(t *testing.T) {
		v, err := Quantity("0x00ff").Big()
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(255), v)
	})

	t.Run("should parse uppercase prefix", func(t *testing.T) {
		v, err := Quantity("0X10").Big()
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(16), v)
	})

	t.Run("should parse bare prefix as zero", func(t *testing.T) {
		v, err := Quantity("0x").Big()
		require.NoError(t, err)
		assert.Equal(t, 0, v.Sign())
	})

	t.Run("should parse decimal values", func(t *testing.T) {
		v, err := Quantity("1000000000000000000").Big()
		require.NoError(t, err)
		assert.Equal(t, "1000000000000000000", v.String())
	})

	t.Run("should parse values wider than 64 bits", func(t *testing.T) {
		v, err := Quantity("0x10000000000000000").Big()
		require.NoError(t, err)
		assert.Equal(t, "18446744073709551616", v.String())
	})

	t.Run("should reject empty values", func(t *testing.T) {
		_, err := Quantity("").Big()
		assert.ErrorIs(t, err, ErrEmptyQuantity)
	})

	t.Run("should reject invalid digits", func(t *testing.T) {
		_, err := Quantity("0xZZZ").Big()
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("should reject negative values", func(t *testing.T) {
		_, err := Quantity("-5").Big()
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestQuantity_Uint64(t *testing.T) {
	t.Run("should parse block numbers", func(t *testing.T) {
		v, err := Quantity("0x1036640").Uint64()
		require.NoError(t, err)
		assert.Equal(t, uint64(17000000), v)
	})

	t.Run("should reject overflowing values", func(t *testing.T) {
		_, err := Quantity("0x10000000000000000").Uint64()
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}
