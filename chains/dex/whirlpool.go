// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package dex

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ChainSafe/omniswap-relayer/cross"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"
)

const WhirlpoolName = "Whirlpool"

var (
	MinSqrtPrice = uint256.NewInt(4295048016)
	MaxSqrtPrice = uint256.MustFromDecimal("79226673515401279992447579055")
)

// WhirlpoolCallData is the parsed "Whirlpool,<min-out>[,<sqrt-price-limit>]"
// call data.
type WhirlpoolCallData struct {
	MinAmountOut   uint64
	SqrtPriceLimit *uint256.Int
}

// ParseWhirlpoolCallData parses whirlpool call data. The name must match
// exactly. Non numeric amounts parse to zero, see cross.ParseDecimalOrZero.
func ParseWhirlpoolCallData(data []byte) (*WhirlpoolCallData, error) {
	fields := cross.SplitDelimited(data)
	if len(fields) != 2 && len(fields) != 3 {
		return nil, fmt.Errorf("%w: expected 2 or 3 fields, got %d", cross.ErrInvalidCallData, len(fields))
	}
	if !bytes.Equal(fields[0], []byte(WhirlpoolName)) {
		return nil, fmt.Errorf("%w: unknown pool name %q", cross.ErrInvalidCallData, fields[0])
	}

	minOut := cross.ParseDecimalOrZero(fields[1])
	if !minOut.IsUint64() {
		return nil, fmt.Errorf("%w: min amount out exceeds u64", cross.ErrInvalidCallData)
	}
	callData := &WhirlpoolCallData{MinAmountOut: minOut.Uint64()}
	if len(fields) == 3 {
		limit := cross.ParseDecimalOrZero(fields[2])
		if limit.BitLen() > 128 {
			return nil, fmt.Errorf("%w: price limit exceeds u128", cross.ErrInvalidCallData)
		}
		if !limit.IsZero() {
			callData.SqrtPriceLimit = limit
		}
	}
	return callData, nil
}

// DefaultSqrtPriceLimit is the widest limit for a swap direction.
func DefaultSqrtPriceLimit(aToB bool) *uint256.Int {
	if aToB {
		return new(uint256.Int).Set(MinSqrtPrice)
	}
	return new(uint256.Int).Set(MaxSqrtPrice)
}

// Pool is the swap math behind a whirlpool address.
type Pool interface {
	Assets() (a, b ledger.Address)
	Quote(tx ledger.Tx, aToB bool, amountIn uint64) (uint64, error)
	Swap(tx ledger.Tx, authority ledger.Address, aToB bool, amountIn uint64, sqrtPriceLimit *uint256.Int) (uint64, error)
}

// Whirlpool routes swap legs to pools by their CallTo address.
type Whirlpool struct {
	lock  sync.RWMutex
	pools map[ledger.Address]Pool
}

func NewWhirlpool() *Whirlpool {
	return &Whirlpool{pools: make(map[ledger.Address]Pool)}
}

func (w *Whirlpool) AddPool(address ledger.Address, pool Pool) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.pools[address] = pool
}

func (w *Whirlpool) Name() string {
	return WhirlpoolName
}

func (w *Whirlpool) Parse(swap *cross.SwapData) (*SwapRequest, error) {
	callData, err := ParseWhirlpoolCallData(swap.CallData)
	if err != nil {
		return nil, err
	}
	if len(swap.CallTo) != 32 {
		return nil, fmt.Errorf("%w: call to must be a 32 byte pool address", cross.ErrInvalidCallData)
	}
	pool, _ := ledger.BytesToAddress(swap.CallTo)
	input, err := assetAddress(swap.SendingAssetID)
	if err != nil {
		return nil, err
	}
	output, err := assetAddress(swap.ReceivingAssetID)
	if err != nil {
		return nil, err
	}

	return &SwapRequest{
		Pool:           pool,
		InputAsset:     input,
		OutputAsset:    output,
		MinAmountOut:   callData.MinAmountOut,
		SqrtPriceLimit: callData.SqrtPriceLimit,
	}, nil
}

func (w *Whirlpool) Quote(ctx context.Context, tx ledger.Tx, req *SwapRequest) (uint64, error) {
	pool, aToB, err := w.route(req)
	if err != nil {
		return 0, err
	}
	return pool.Quote(tx, aToB, req.AmountIn)
}

func (w *Whirlpool) Execute(ctx context.Context, tx ledger.Tx, req *SwapRequest) (uint64, error) {
	if req.MinAmountOut == 0 {
		return 0, ErrZeroMinAmountOut
	}
	pool, aToB, err := w.route(req)
	if err != nil {
		return 0, err
	}

	limit := req.SqrtPriceLimit
	if limit == nil {
		limit = DefaultSqrtPriceLimit(aToB)
	}
	before := tx.Balance(req.Authority, req.InputAsset)
	out, err := pool.Swap(tx, req.Authority, aToB, req.AmountIn, limit)
	if err != nil {
		return 0, err
	}
	// leftover input would stay with the authority with no refund path
	if spent := before - tx.Balance(req.Authority, req.InputAsset); spent != req.AmountIn {
		return 0, fmt.Errorf("%w: spent %d of %d", ErrPartialFill, spent, req.AmountIn)
	}
	if out < req.MinAmountOut {
		return 0, fmt.Errorf("%w: got %d, want at least %d", ErrSlippage, out, req.MinAmountOut)
	}

	log.Debug().Str("pool", req.Pool.Hex()).Bool("aToB", aToB).Uint64("in", req.AmountIn).Uint64("out", out).Msg("Executed whirlpool swap")
	return out, nil
}

func (w *Whirlpool) route(req *SwapRequest) (Pool, bool, error) {
	w.lock.RLock()
	pool, ok := w.pools[req.Pool]
	w.lock.RUnlock()
	if !ok {
		return nil, false, fmt.Errorf("%w: %s", ErrUnknownPool, req.Pool.Hex())
	}

	a, b := pool.Assets()
	switch {
	case req.InputAsset == a && req.OutputAsset == b:
		return pool, true, nil
	case req.InputAsset == b && req.OutputAsset == a:
		return pool, false, nil
	default:
		return nil, false, ErrAssetMismatch
	}
}
