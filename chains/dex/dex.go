// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package dex

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ChainSafe/omniswap-relayer/cross"
	"github.com/holiman/uint256"
)

var (
	ErrUnknownVenue     = errors.New("unknown swap venue")
	ErrUnknownPool      = errors.New("unknown pool")
	ErrAssetMismatch    = errors.New("swap assets do not match pool")
	ErrZeroMinAmountOut = errors.New("zero minimum amount out")
	ErrSlippage         = errors.New("amount out below minimum")
	ErrZeroLiquidity    = errors.New("pool has no liquidity")
	ErrPriceLimit       = errors.New("swap crosses the sqrt price limit")
	ErrPartialFill      = errors.New("swap did not consume the full input")
)

// SwapRequest is a single swap leg resolved against the host ledger.
type SwapRequest struct {
	Pool         ledger.Address
	Authority    ledger.Address
	InputAsset   ledger.Address
	OutputAsset  ledger.Address
	AmountIn     uint64
	MinAmountOut uint64
	// SqrtPriceLimit is nil when the venue default applies.
	SqrtPriceLimit *uint256.Int
}

// Venue executes swap legs. Execute moves value inside tx only, callers diff
// Authority balances instead of trusting the reported output.
type Venue interface {
	Name() string
	Parse(swap *cross.SwapData) (*SwapRequest, error)
	Quote(ctx context.Context, tx ledger.Tx, req *SwapRequest) (uint64, error)
	Execute(ctx context.Context, tx ledger.Tx, req *SwapRequest) (uint64, error)
}

// Registry resolves venues by the pool name leading their call data.
type Registry struct {
	lock   sync.RWMutex
	venues map[string]Venue
}

func NewRegistry(venues ...Venue) *Registry {
	r := &Registry{venues: make(map[string]Venue)}
	for _, v := range venues {
		r.Register(v)
	}
	return r
}

func (r *Registry) Register(v Venue) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.venues[v.Name()] = v
}

// Resolve returns the venue swap is addressed to together with the parsed
// request. Authority and AmountIn are left for the caller to fill.
func (r *Registry) Resolve(swap *cross.SwapData) (Venue, *SwapRequest, error) {
	name := string(cross.SplitDelimited(swap.CallData)[0])

	r.lock.RLock()
	v, ok := r.venues[name]
	r.lock.RUnlock()
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownVenue, name)
	}

	req, err := v.Parse(swap)
	if err != nil {
		return nil, nil, err
	}
	return v, req, nil
}

func assetAddress(id []byte) (ledger.Address, error) {
	if len(id) == 0 || len(id) > 32 {
		return ledger.Address{}, fmt.Errorf("%w: asset id of %d bytes", ErrAssetMismatch, len(id))
	}
	return ledger.BytesToAddress(ledger.LeftPad32(id))
}
