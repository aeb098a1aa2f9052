package transfer

import "sync"

// Store keeps the transfers of one load in arrival order.
//
// Sequences only grow while a load is running and are cleared as a whole by
// Reset. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	native []NativeTransfer
	erc20  []ERC20Transfer
	erc721 []ERC721Transfer
}

// Snapshot is a point-in-time copy of a Store, shaped like the saved output document.
type Snapshot struct {
	Native []NativeTransfer `json:"regular_transfers"`
	ERC20  []ERC20Transfer  `json:"erc20_transfers"`
	ERC721 []ERC721Transfer `json:"erc721_transfers"`
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Reset drops every record of every kind.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.native = nil
	s.erc20 = nil
	s.erc721 = nil
}

// AppendNative adds native transfers in the order given.
func (s *Store) AppendNative(records ...NativeTransfer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.native = append(s.native, records...)
}

// AppendERC20 adds ERC20 transfers in the order given.
func (s *Store) AppendERC20(records ...ERC20Transfer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.erc20 = append(s.erc20, records...)
}

// AppendERC721 adds ERC721 transfers in the order given.
func (s *Store) AppendERC721(records ...ERC721Transfer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.erc721 = append(s.erc721, records...)
}

// Len returns the number of records of kind k.
func (s *Store) Len(k Kind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch k {
	case KindNative:
		return len(s.native)
	case KindERC20:
		return len(s.erc20)
	case KindERC721:
		return len(s.erc721)
	}
	return 0
}

// Lengths returns the record count of every kind, indexed by Kind.
func (s *Store) Lengths() [KindCount]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return [KindCount]int{len(s.native), len(s.erc20), len(s.erc721)}
}

// Native returns a copy of the native transfers.
func (s *Store) Native() []NativeTransfer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]NativeTransfer{}, s.native...)
}

// ERC20 returns a copy of the ERC20 transfers.
func (s *Store) ERC20() []ERC20Transfer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ERC20Transfer{}, s.erc20...)
}

// ERC721 returns a copy of the ERC721 transfers.
func (s *Store) ERC721() []ERC721Transfer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ERC721Transfer{}, s.erc721...)
}

// Snapshot copies all three sequences under one lock. Empty sequences are
// non-nil so they encode as [] rather than null.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Native: append([]NativeTransfer{}, s.native...),
		ERC20:  append([]ERC20Transfer{}, s.erc20...),
		ERC721: append([]ERC721Transfer{}, s.erc721...),
	}
}
