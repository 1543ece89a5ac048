// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package state

import (
	"bytes"
	"errors"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/holiman/uint256"
)

var (
	ErrOwnerOnly                = errors.New("owner only")
	ErrInvalidForeignContract   = errors.New("invalid foreign contract")
	ErrForeignContractNotFound  = errors.New("foreign contract not registered")
	ErrPriceManagerNotFound     = errors.New("price manager not registered")
	ErrRegistryNotInitialized   = errors.New("registry not initialized")
	ErrRegistryAlreadyInitiated = errors.New("registry already initialized")
)

// ForeignContract is the omniswap contract deployed on another chain
// together with its gas model.
type ForeignContract struct {
	Chain uint16
	// Address is left padded to 32 bytes.
	Address    ledger.Address
	BaseGas    *uint256.Int
	GasPerByte *uint256.Int
}

// Matches reports whether address, 20 or 32 bytes, is the registered
// contract address.
func (fc *ForeignContract) Matches(address []byte) bool {
	if len(address) == 0 || len(address) > 32 {
		return false
	}
	return bytes.Equal(ledger.LeftPad32(address), fc.Address[:])
}

// PriceManager tracks the native token price ratio between this chain and a
// destination chain.
type PriceManager struct {
	Owner ledger.Address
	// CurrentPriceRatio is RAY fixed point.
	CurrentPriceRatio   uint64
	LastUpdateTimestamp uint64
}

type FeeConfig struct {
	Owner       ledger.Address
	Beneficiary ledger.Address
	// SoFee, ActualReserve and EstimateReserve are RAY fixed point.
	SoFee           uint64
	ActualReserve   uint64
	EstimateReserve uint64
}

// RedeemerConfig holds the proxy allowed to complete swaps on behalf of
// users.
type RedeemerConfig struct {
	Owner ledger.Address
	Proxy ledger.Address
}

// SenderConfig scopes staged requests, Nonce is the nonce of the next one.
type SenderConfig struct {
	Owner ledger.Address
	Nonce uint64
}

// Snapshot is the persisted form of a Registry.
type Snapshot struct {
	FeeConfig        FeeConfig
	RedeemerConfig   RedeemerConfig
	ForeignContracts []*ForeignContract
	PriceManagers    map[uint16]*PriceManager
}
