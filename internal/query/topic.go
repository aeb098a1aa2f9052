package query

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// EncodeAddressTopic left-pads a 20-byte address into the 32-byte topic value
// used to filter indexed address arguments. The result is lowercase.
//
//	EncodeAddressTopic("0x1111111111111111111111111111111111111aaa")
//	// 0x0000000000000000000000001111111111111111111111111111111111111aaa
func EncodeAddressTopic(address string) (string, error) {
	if len(address) != 2+2*common.AddressLength ||
		!strings.HasPrefix(address, "0x") ||
		!common.IsHexAddress(address) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddressFormat, address)
	}

	addr := common.HexToAddress(address)
	return common.BytesToHash(addr.Bytes()).Hex(), nil
}
