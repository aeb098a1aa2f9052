package transfer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName returns the output file name for a wallet on a chain,
// e.g. "0xabc...-mainnet.json".
func FileName(address, chainName string) string {
	return fmt.Sprintf("%s-%s.json", strings.ToLower(address), strings.ToLower(chainName))
}

// WriteFile saves snapshot as an indented JSON document under dir, creating
// dir when needed. It returns the path written.
func WriteFile(dir, address, chainName string, snapshot Snapshot) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, FileName(address, chainName))

	if snapshot.Native == nil {
		snapshot.Native = []NativeTransfer{}
	}
	if snapshot.ERC20 == nil {
		snapshot.ERC20 = []ERC20Transfer{}
	}
	if snapshot.ERC721 == nil {
		snapshot.ERC721 = []ERC721Transfer{}
	}

	body, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode transfers: %w", err)
	}

	if err := os.WriteFile(path, append(body, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}
