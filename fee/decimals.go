// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package fee

import (
	"github.com/ChainSafe/omniswap-relayer/chains"
	"github.com/holiman/uint256"
)

// SourceDecimals are the decimals of the native asset fees are charged in.
const SourceDecimals = 9

const defaultDecimals = 18

// nativeDecimals lists destination chains whose native gas asset does not
// use 18 decimals. Every chain not listed is priced as an EVM chain, Sui
// included: its price ratio is configured against 18 decimals.
var nativeDecimals = map[uint16]uint8{
	chains.ChainIDAptos: 8,
}

// NativeDecimals returns the decimals of the gas asset of chain.
func NativeDecimals(chain uint16) uint8 {
	if d, ok := nativeDecimals[chain]; ok {
		return d
	}
	return defaultDecimals
}

// AdjustDecimals converts a fee denominated in the destination native asset
// into source native asset units. Division truncates.
func AdjustDecimals(fee *uint256.Int, chain uint16) (*uint256.Int, error) {
	dst := int(NativeDecimals(chain))
	switch {
	case dst < SourceDecimals:
		z, overflow := new(uint256.Int).MulOverflow(fee, pow10(SourceDecimals-dst))
		if overflow {
			return nil, ErrArithmeticOverflow
		}
		return z, nil
	case dst > SourceDecimals:
		return new(uint256.Int).Div(fee, pow10(dst-SourceDecimals)), nil
	default:
		return new(uint256.Int).Set(fee), nil
	}
}

func pow10(n int) *uint256.Int {
	return new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(n)))
}
