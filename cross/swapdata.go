// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package cross

import (
	"math"

	"github.com/holiman/uint256"
)

// SwapData describes one swap leg executed on either side of the bridge.
type SwapData struct {
	CallTo           []byte
	ApproveTo        []byte
	SendingAssetID   []byte
	ReceivingAssetID []byte
	FromAmount       *uint256.Int
	// CallData is venue specific, see dex.ParseWhirlpoolCallData for the
	// reference venue format.
	CallData []byte
}

// PaddingSwapData builds the SwapData carried inside a SoSwapMessage.
// ApproveTo mirrors CallTo and FromAmount is reset once the bridged amount
// is known.
func PaddingSwapData(callTo, sendingAssetID, receivingAssetID, callData []byte) *SwapData {
	return &SwapData{
		CallTo:           callTo,
		ApproveTo:        append([]byte{}, callTo...),
		SendingAssetID:   sendingAssetID,
		ReceivingAssetID: receivingAssetID,
		FromAmount:       new(uint256.Int),
		CallData:         callData,
	}
}

// EncodeNormalizedSwapData encodes swaps as a u64 count followed by every
// element. An empty list encodes to no bytes.
func EncodeNormalizedSwapData(swaps []*SwapData) []byte {
	var data []byte
	if len(swaps) > 0 {
		data = serializeU64(data, uint64(len(swaps)))
	}
	for _, s := range swaps {
		data = serializeVector(data, s.CallTo)
		data = serializeVector(data, s.ApproveTo)
		data = serializeVector(data, s.SendingAssetID)
		data = serializeVector(data, s.ReceivingAssetID)
		data = serializeU256(data, s.FromAmount)
		data = serializeVector(data, s.CallData)
	}
	return data
}

func DecodeNormalizedSwapData(data []byte) ([]*SwapData, error) {
	swaps := []*SwapData{}
	if len(data) == 0 {
		return swaps, nil
	}

	d := newDecoder(data)
	count, err := d.u64()
	if err != nil {
		return nil, err
	}
	for d.remaining() > 0 {
		s := &SwapData{}
		if s.CallTo, err = d.vector(); err != nil {
			return nil, err
		}
		if s.ApproveTo, err = d.vector(); err != nil {
			return nil, err
		}
		if s.SendingAssetID, err = d.vector(); err != nil {
			return nil, err
		}
		if s.ReceivingAssetID, err = d.vector(); err != nil {
			return nil, err
		}
		if s.FromAmount, err = d.u256(); err != nil {
			return nil, err
		}
		if s.CallData, err = d.vector(); err != nil {
			return nil, err
		}
		swaps = append(swaps, s)
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	if uint64(len(swaps)) != count {
		return nil, ErrInvalidDataLength
	}
	return swaps, nil
}

// EncodeCompactSwapDataSrc encodes source side swaps with a single count
// byte. ApproveTo is not transported and amounts must fit into u64.
func EncodeCompactSwapDataSrc(swaps []*SwapData) ([]byte, error) {
	var data []byte
	if len(swaps) > math.MaxUint8 {
		return nil, ErrInvalidDataLength
	}
	if len(swaps) > 0 {
		data = serializeU8(data, uint8(len(swaps)))
	}
	for _, s := range swaps {
		amount, err := compactU64(s.FromAmount)
		if err != nil {
			return nil, err
		}
		if data, err = serializeCompactVector(data, s.CallTo); err != nil {
			return nil, err
		}
		if data, err = serializeCompactVector(data, s.SendingAssetID); err != nil {
			return nil, err
		}
		if data, err = serializeCompactVector(data, s.ReceivingAssetID); err != nil {
			return nil, err
		}
		data = serializeU64(data, amount)
		if data, err = serializeCompactVector(data, s.CallData); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func DecodeCompactSwapDataSrc(data []byte) ([]*SwapData, error) {
	swaps := []*SwapData{}
	if len(data) == 0 {
		return swaps, nil
	}

	d := newDecoder(data)
	count, err := d.u8()
	if err != nil {
		return nil, err
	}
	for d.remaining() > 0 {
		s := &SwapData{}
		if s.CallTo, err = d.compactVector(); err != nil {
			return nil, err
		}
		s.ApproveTo = append([]byte{}, s.CallTo...)
		if s.SendingAssetID, err = d.compactVector(); err != nil {
			return nil, err
		}
		if s.ReceivingAssetID, err = d.compactVector(); err != nil {
			return nil, err
		}
		amount, err := d.u64()
		if err != nil {
			return nil, err
		}
		s.FromAmount = uint256.NewInt(amount)
		if s.CallData, err = d.compactVector(); err != nil {
			return nil, err
		}
		swaps = append(swaps, s)
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	if len(swaps) != int(count) {
		return nil, ErrInvalidDataLength
	}
	return swaps, nil
}
