// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package fee

import (
	"errors"
	"math"

	"github.com/ChainSafe/omniswap-relayer/cross"
	"github.com/holiman/uint256"
)

// RAY is the fixed point base of price ratios, reserves and fee rates.
const RAY uint64 = 100_000_000

var (
	ErrCheckFeeFail       = errors.New("check fee fail")
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	ErrUnexpectedValue    = errors.New("unexpected value")
)

// maxDstGas is the largest u128, dst_max_gas must stay below it.
var maxDstGas = new(uint256.Int).Rsh(new(uint256.Int).SetAllOne(), 128)

// GasModel is the destination gas cost model registered for a foreign
// contract.
type GasModel struct {
	Chain      uint16
	BaseGas    *uint256.Int
	GasPerByte *uint256.Int
}

type Input struct {
	// SoData and SwapDataDst are the normalized encodings of the request.
	SoData       []byte
	SwapDataDst  []byte
	WormholeData *cross.WormholeData
	GasModel     GasModel
	PriceRatio   uint64
	Reserve      uint64
	BridgeFee    uint64
}

type Quote struct {
	DstMaxGas  *uint256.Int
	RelayerFee uint64
	BridgeFee  uint64
	// Total is what is consumed from the requester, bridge fee included.
	Total uint64
}

// EstimateDstMaxGas returns the gas granted to the destination relayer.
// It is zero when the envelope does not target the gas model chain.
func EstimateDstMaxGas(model GasModel, soData []byte, wormholeData *cross.WormholeData, swapDataDst []byte) (*uint256.Int, error) {
	if wormholeData.DstChainID != model.Chain {
		return new(uint256.Int), nil
	}

	payloadLen := uint256.NewInt(uint64(len(soData) + 1 + len(swapDataDst) + 1))
	gas, overflow := new(uint256.Int).MulOverflow(valueOrZero(model.GasPerByte), payloadLen)
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	if _, overflow = gas.AddOverflow(gas, valueOrZero(model.BaseGas)); overflow {
		return nil, ErrArithmeticOverflow
	}
	return gas, nil
}

// Estimate computes the relayer fee charged on the source chain. It is a
// pure function of its input and is used both for quoting and charging.
func Estimate(in Input) (*Quote, error) {
	dstMaxGas, err := EstimateDstMaxGas(in.GasModel, in.SoData, in.WormholeData, in.SwapDataDst)
	if err != nil {
		return nil, err
	}
	if !dstMaxGas.Lt(maxDstGas) {
		return nil, ErrUnexpectedValue
	}

	dstFee, overflow := new(uint256.Int).MulOverflow(valueOrZero(in.WormholeData.DstMaxGasPrice), dstMaxGas)
	if overflow {
		return nil, ErrArithmeticOverflow
	}

	ray := uint256.NewInt(RAY)
	srcFee, overflow := new(uint256.Int).MulOverflow(dstFee, uint256.NewInt(in.PriceRatio))
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	srcFee.Div(srcFee, ray)
	if _, overflow = srcFee.MulOverflow(srcFee, uint256.NewInt(in.Reserve)); overflow {
		return nil, ErrArithmeticOverflow
	}
	srcFee.Div(srcFee, ray)

	srcFee, err = AdjustDecimals(srcFee, in.GasModel.Chain)
	if err != nil {
		return nil, err
	}
	if !srcFee.IsUint64() {
		return nil, ErrArithmeticOverflow
	}

	relayerFee := srcFee.Uint64()
	if relayerFee > math.MaxUint64-in.BridgeFee {
		return nil, ErrArithmeticOverflow
	}

	return &Quote{
		DstMaxGas:  dstMaxGas,
		RelayerFee: relayerFee,
		BridgeFee:  in.BridgeFee,
		Total:      relayerFee + in.BridgeFee,
	}, nil
}

// Admit checks that the requester declared fee covers the quote.
func (q *Quote) Admit(wormholeFee *uint256.Int) error {
	if valueOrZero(wormholeFee).Lt(uint256.NewInt(q.Total)) {
		return ErrCheckFeeFail
	}
	return nil
}

func valueOrZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v
}
