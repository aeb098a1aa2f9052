package transfer

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEther(t *testing.T) {
	t.Run("should scale wei to ether and trim zeros", func(t *testing.T) {
		oneAndHalf, _ := new(big.Int).SetString("1500000000000000000", 10)
		huge, _ := new(big.Int).SetString("123456000000000000000000", 10)

		assert.Equal(t, "0", FormatEther(big.NewInt(0)))
		assert.Equal(t, "0.000000000000000001", FormatEther(big.NewInt(1)))
		assert.Equal(t, "1.5", FormatEther(oneAndHalf))
		assert.Equal(t, "123456", FormatEther(huge))
	})
}

func TestValueHistogram(t *testing.T) {
	t.Run("should bucket values with inclusive lower bounds", func(t *testing.T) {
		var transfers []NativeTransfer
		for _, v := range []string{"0.01", "0.1", "0.49", "0.5", "1", "4.99", "5", "120", "garbage"} {
			transfers = append(transfers, NativeTransfer{Value: v})
		}

		buckets := ValueHistogram(transfers)

		assert.Equal(t, []Bucket{
			{Label: "<0.1", Count: 2},
			{Label: "0.1-0.5", Count: 2},
			{Label: "0.5-1", Count: 1},
			{Label: "1-5", Count: 2},
			{Label: ">5", Count: 2},
		}, buckets)
	})

	t.Run("should return empty buckets for no transfers", func(t *testing.T) {
		for _, b := range ValueHistogram(nil) {
			assert.Zero(t, b.Count)
		}
	})
}
