// Package chain enumerates the networks transferscope can query and the
// HyperSync endpoint that serves each of them.
package chain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownChain is returned by Parse for names outside the supported set.
var ErrUnknownChain = errors.New("unknown chain")

// Chain is a closed set of supported networks.
type Chain int

const (
	Mainnet Chain = iota
	Optimism
	Arbitrum
)

// All lists the chains in cycling order.
var All = []Chain{Mainnet, Optimism, Arbitrum}

// String returns the lowercase identifier used in flags and output file names.
func (c Chain) String() string {
	switch c {
	case Mainnet:
		return "mainnet"
	case Optimism:
		return "optimism"
	case Arbitrum:
		return "arbitrum"
	}
	return fmt.Sprintf("chain(%d)", int(c))
}

// Name returns the display name.
func (c Chain) Name() string {
	switch c {
	case Mainnet:
		return "Mainnet"
	case Optimism:
		return "Optimism"
	case Arbitrum:
		return "Arbitrum"
	}
	return c.String()
}

// URL returns the HyperSync endpoint base URL.
func (c Chain) URL() string {
	switch c {
	case Mainnet:
		return "https://eth.hypersync.xyz"
	case Optimism:
		return "https://optimism.hypersync.xyz"
	case Arbitrum:
		return "https://arbitrum.hypersync.xyz"
	}
	return ""
}

// Next returns the following chain, wrapping from Arbitrum back to Mainnet.
func (c Chain) Next() Chain {
	switch c {
	case Mainnet:
		return Optimism
	case Optimism:
		return Arbitrum
	default:
		return Mainnet
	}
}

// Parse resolves a chain from its identifier or display name, case-insensitively.
// "ethereum" and "eth" are accepted for Mainnet.
func Parse(s string) (Chain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mainnet", "ethereum", "eth":
		return Mainnet, nil
	case "optimism":
		return Optimism, nil
	case "arbitrum":
		return Arbitrum, nil
	}
	return Mainnet, fmt.Errorf("%w: %q", ErrUnknownChain, s)
}
