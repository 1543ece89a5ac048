// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package bridge

import (
	"errors"
	"math"
)

// Decimals is the precision amounts are carried with across the bridge.
const Decimals = 8

var ErrAmountOverflow = errors.New("amount overflow")

// NormalizeAmount converts amount from the asset decimals to bridge
// precision, truncating toward zero.
func NormalizeAmount(amount uint64, decimals uint8) uint64 {
	if decimals <= Decimals {
		return amount
	}
	factor, ok := pow10(decimals - Decimals)
	if !ok {
		return 0
	}
	return amount / factor
}

// DenormalizeAmount converts a bridge precision amount back to the asset
// decimals.
func DenormalizeAmount(amount uint64, decimals uint8) (uint64, error) {
	if decimals <= Decimals || amount == 0 {
		return amount, nil
	}
	factor, ok := pow10(decimals - Decimals)
	if !ok || amount > math.MaxUint64/factor {
		return 0, ErrAmountOverflow
	}
	return amount * factor, nil
}

// TruncateAmount drops the dust the bridge can not carry. The result never
// exceeds amount and truncating twice changes nothing.
func TruncateAmount(amount uint64, decimals uint8) uint64 {
	if decimals <= Decimals {
		return amount
	}
	factor, ok := pow10(decimals - Decimals)
	if !ok {
		return 0
	}
	return amount / factor * factor
}

func pow10(n uint8) (uint64, bool) {
	// 10^19 is the largest power of ten fitting into u64
	if n > 19 {
		return 0, false
	}
	v := uint64(1)
	for i := uint8(0); i < n; i++ {
		v *= 10
	}
	return v, true
}
