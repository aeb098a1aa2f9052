package transfer

import "fmt"

// Kind identifies one of the three transfer families shown as dashboard tabs.
type Kind int

const (
	KindNative Kind = iota
	KindERC20
	KindERC721
)

// KindCount is the number of transfer kinds.
const KindCount = 3

// Kinds lists every kind in tab order.
var Kinds = [KindCount]Kind{KindNative, KindERC20, KindERC721}

// String returns the tab title for k.
func (k Kind) String() string {
	switch k {
	case KindNative:
		return "Regular Transfers"
	case KindERC20:
		return "ERC20 Transfers"
	case KindERC721:
		return "ERC721 Transfers"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Next returns the following kind, wrapping around.
func (k Kind) Next() Kind {
	return Kind((int(k) + 1) % KindCount)
}

// Previous returns the preceding kind, wrapping around.
func (k Kind) Previous() Kind {
	return Kind((int(k) + KindCount - 1) % KindCount)
}
