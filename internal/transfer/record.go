package transfer

// NativeTransfer is a transaction moving ether to or from the wallet.
// Value is in ether; Nonce and GasUsed are plain integers.
type NativeTransfer struct {
	Hash      string `json:"hash"`
	BlockHash string `json:"block_hash"`
	Block     string `json:"block"`
	Nonce     string `json:"nonce"`
	From      string `json:"from"`
	To        string `json:"to"`
	Value     string `json:"value"`
	GasUsed   string `json:"gas_used"`
}

// ERC20Transfer is a fungible token Transfer event. Amount is the raw integer
// amount in the token's smallest unit.
type ERC20Transfer struct {
	Hash     string `json:"hash"`
	Block    string `json:"block"`
	Contract string `json:"contract"`
	From     string `json:"from"`
	To       string `json:"to"`
	Amount   string `json:"amount"`
}

// ERC721Transfer is a non-fungible token Transfer event.
type ERC721Transfer struct {
	Hash     string `json:"hash"`
	Block    string `json:"block"`
	Contract string `json:"contract"`
	From     string `json:"from"`
	To       string `json:"to"`
	TokenID  string `json:"token_id"`
}
