// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package dex

import (
	"fmt"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/holiman/uint256"
)

const feeDenominator = 1_000_000

// LocalPool is a constant product pool whose reserves live in a vault
// account of the ledger. It serves devnets and tests. Swaps fill completely
// or fail, a swap that would move the price past its limit is rejected
// instead of filled partially.
type LocalPool struct {
	address ledger.Address
	vault   ledger.Address
	assetA  ledger.Address
	assetB  ledger.Address
	// feeRate is in millionths of the input amount.
	feeRate uint64
}

func NewLocalPool(address, assetA, assetB ledger.Address, feeRate uint64) *LocalPool {
	return &LocalPool{
		address: address,
		vault:   ledger.DeriveAddress(address, []byte("vault")),
		assetA:  assetA,
		assetB:  assetB,
		feeRate: feeRate,
	}
}

func (p *LocalPool) Address() ledger.Address {
	return p.address
}

// Vault holds the pool reserves of both assets.
func (p *LocalPool) Vault() ledger.Address {
	return p.vault
}

func (p *LocalPool) Assets() (ledger.Address, ledger.Address) {
	return p.assetA, p.assetB
}

func (p *LocalPool) Quote(tx ledger.Tx, aToB bool, amountIn uint64) (uint64, error) {
	in, out := p.direction(aToB)
	reserveIn := tx.Balance(p.vault, in)
	reserveOut := tx.Balance(p.vault, out)
	if reserveIn == 0 || reserveOut == 0 {
		return 0, ErrZeroLiquidity
	}

	effectiveIn := new(uint256.Int).Mul(uint256.NewInt(amountIn), uint256.NewInt(feeDenominator-p.feeRate))
	numerator := new(uint256.Int).Mul(effectiveIn, uint256.NewInt(reserveOut))
	denominator := new(uint256.Int).Mul(uint256.NewInt(reserveIn), uint256.NewInt(feeDenominator))
	denominator.Add(denominator, effectiveIn)
	// result is below reserveOut so it always fits u64
	return numerator.Div(numerator, denominator).Uint64(), nil
}

func (p *LocalPool) Swap(tx ledger.Tx, authority ledger.Address, aToB bool, amountIn uint64, sqrtPriceLimit *uint256.Int) (uint64, error) {
	out, err := p.Quote(tx, aToB, amountIn)
	if err != nil {
		return 0, err
	}
	in, outAsset := p.direction(aToB)
	if err := tx.Transfer(in, authority, p.vault, amountIn); err != nil {
		return 0, err
	}
	if err := tx.Transfer(outAsset, p.vault, authority, out); err != nil {
		return 0, err
	}

	if sqrtPriceLimit == nil {
		return out, nil
	}
	price := p.SqrtPrice(tx)
	if aToB && price.Lt(sqrtPriceLimit) || !aToB && price.Gt(sqrtPriceLimit) {
		return 0, fmt.Errorf("%w: sqrt price %s crosses %s", ErrPriceLimit, price.Dec(), sqrtPriceLimit.Dec())
	}
	return out, nil
}

// SqrtPrice returns the square root of the price of asset A in asset B as a
// Q64.64 fixed point number.
func (p *LocalPool) SqrtPrice(tx ledger.Tx) *uint256.Int {
	reserveA := tx.Balance(p.vault, p.assetA)
	reserveB := tx.Balance(p.vault, p.assetB)
	if reserveA == 0 {
		return new(uint256.Int).Set(MaxSqrtPrice)
	}
	// reserveB fits 64 bits so the shifted value fits 192
	price := new(uint256.Int).Lsh(uint256.NewInt(reserveB), 128)
	price.Div(price, uint256.NewInt(reserveA))
	return price.Sqrt(price)
}

func (p *LocalPool) direction(aToB bool) (ledger.Address, ledger.Address) {
	if aToB {
		return p.assetA, p.assetB
	}
	return p.assetB, p.assetA
}
