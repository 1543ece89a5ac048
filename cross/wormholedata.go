// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package cross

import (
	"github.com/holiman/uint256"
)

// WormholeData is the bridge envelope metadata supplied by the requester.
type WormholeData struct {
	DstChainID uint16
	// DstMaxGasPrice is the requester supplied upper bound of the
	// destination gas price the relayer is paid for.
	DstMaxGasPrice *uint256.Int
	// WormholeFee is the total the requester is willing to pay on the
	// source chain.
	WormholeFee  *uint256.Int
	DstSoDiamond []byte
}

func (w *WormholeData) EncodeNormalized() []byte {
	data := serializeU16(nil, w.DstChainID)
	data = serializeU256(data, w.DstMaxGasPrice)
	data = serializeU256(data, w.WormholeFee)
	return serializeVector(data, w.DstSoDiamond)
}

func (w *WormholeData) EncodeCompact() ([]byte, error) {
	gasPrice, err := compactU64(w.DstMaxGasPrice)
	if err != nil {
		return nil, err
	}
	fee, err := compactU64(w.WormholeFee)
	if err != nil {
		return nil, err
	}
	data := serializeU16(nil, w.DstChainID)
	data = serializeU64(data, gasPrice)
	data = serializeU64(data, fee)
	return serializeCompactVector(data, w.DstSoDiamond)
}

func DecodeNormalizedWormholeData(data []byte) (*WormholeData, error) {
	d := newDecoder(data)
	w := &WormholeData{}
	var err error
	if w.DstChainID, err = d.u16(); err != nil {
		return nil, err
	}
	if w.DstMaxGasPrice, err = d.u256(); err != nil {
		return nil, err
	}
	if w.WormholeFee, err = d.u256(); err != nil {
		return nil, err
	}
	if w.DstSoDiamond, err = d.vector(); err != nil {
		return nil, err
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return w, nil
}

func DecodeCompactWormholeData(data []byte) (*WormholeData, error) {
	d := newDecoder(data)
	w := &WormholeData{}
	var err error
	if w.DstChainID, err = d.u16(); err != nil {
		return nil, err
	}
	gasPrice, err := d.u64()
	if err != nil {
		return nil, err
	}
	fee, err := d.u64()
	if err != nil {
		return nil, err
	}
	if w.DstSoDiamond, err = d.compactVector(); err != nil {
		return nil, err
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	w.DstMaxGasPrice = uint256.NewInt(gasPrice)
	w.WormholeFee = uint256.NewInt(fee)
	return w, nil
}

// ParseDstChainID reads the destination chain of compact wormhole data.
func ParseDstChainID(data []byte) (uint16, error) {
	w, err := DecodeCompactWormholeData(data)
	if err != nil {
		return 0, err
	}
	return w.DstChainID, nil
}
