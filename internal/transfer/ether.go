package transfer

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

var weiPerEther = big.NewInt(params.Ether)

// FormatEther renders a wei amount in ether without trailing zeros,
// e.g. 1500000000000000000 becomes "1.5".
func FormatEther(wei *big.Int) string {
	s := new(big.Rat).SetFrac(wei, weiPerEther).FloatString(18)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// Bucket is one bar of the native value histogram.
type Bucket struct {
	Label string
	Count int
}

// ValueHistogram groups native transfers by ether value into the ranges
// <0.1, 0.1-0.5, 0.5-1, 1-5 and >5. Lower bounds are inclusive.
// Values that cannot be parsed are counted in the first bucket.
func ValueHistogram(transfers []NativeTransfer) []Bucket {
	buckets := []Bucket{
		{Label: "<0.1"},
		{Label: "0.1-0.5"},
		{Label: "0.5-1"},
		{Label: "1-5"},
		{Label: ">5"},
	}

	for _, t := range transfers {
		v, _ := strconv.ParseFloat(t.Value, 64)
		switch {
		case v >= 5:
			buckets[4].Count++
		case v >= 1:
			buckets[3].Count++
		case v >= 0.5:
			buckets[2].Count++
		case v >= 0.1:
			buckets[1].Count++
		default:
			buckets[0].Count++
		}
	}

	return buckets
}
