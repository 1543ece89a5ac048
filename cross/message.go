// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package cross

import (
	"math"

	"github.com/holiman/uint256"
)

// SoSwapMessage is the payload carried by the bridge to the destination
// chain. It only transports what the destination needs to settle.
type SoSwapMessage struct {
	DstMaxGasPrice *uint256.Int
	DstMaxGas      *uint256.Int
	SoData         *SoData
	SwapData       []*SwapData
}

// Encode writes the message in the layout shared by every destination VM:
//
//	len|dst_max_gas_price len|dst_max_gas
//	len|transaction_id len|receiver len|receiving_asset_id
//	[len|swap_count (len|call_to len|sending len|receiving u16len|call_data)...]
func (m *SoSwapMessage) Encode() ([]byte, error) {
	var data []byte
	var err error

	if data, err = appendShort(data, SerializeU256Compact(m.DstMaxGasPrice)); err != nil {
		return nil, err
	}
	if data, err = appendShort(data, SerializeU256Compact(m.DstMaxGas)); err != nil {
		return nil, err
	}
	if data, err = appendShort(data, m.SoData.TransactionID); err != nil {
		return nil, err
	}
	if data, err = appendShort(data, m.SoData.Receiver); err != nil {
		return nil, err
	}
	if data, err = appendShort(data, m.SoData.ReceivingAssetID); err != nil {
		return nil, err
	}

	if len(m.SwapData) > 0 {
		count := SerializeU256Compact(uint256.NewInt(uint64(len(m.SwapData))))
		if data, err = appendShort(data, count); err != nil {
			return nil, err
		}
	}
	for _, s := range m.SwapData {
		if data, err = appendShort(data, s.CallTo); err != nil {
			return nil, err
		}
		if data, err = appendShort(data, s.SendingAssetID); err != nil {
			return nil, err
		}
		if data, err = appendShort(data, s.ReceivingAssetID); err != nil {
			return nil, err
		}
		if len(s.CallData) > math.MaxUint16 {
			return nil, ErrInvalidDataLength
		}
		data = serializeU16(data, uint16(len(s.CallData)))
		data = append(data, s.CallData...)
	}
	return data, nil
}

// DecodeSoSwapMessage parses an encoded message. The SoData and SwapData
// fields not transported on the wire are padded with zero values.
func DecodeSoSwapMessage(data []byte) (*SoSwapMessage, error) {
	d := newDecoder(data)

	gasPrice, err := d.compactVector()
	if err != nil {
		return nil, err
	}
	gas, err := d.compactVector()
	if err != nil {
		return nil, err
	}
	msg := &SoSwapMessage{}
	if msg.DstMaxGasPrice, err = DeserializeU256Compact(gasPrice); err != nil {
		return nil, err
	}
	if msg.DstMaxGas, err = DeserializeU256Compact(gas); err != nil {
		return nil, err
	}

	txID, err := d.compactVector()
	if err != nil {
		return nil, err
	}
	receiver, err := d.compactVector()
	if err != nil {
		return nil, err
	}
	receivingAsset, err := d.compactVector()
	if err != nil {
		return nil, err
	}
	msg.SoData = PaddingSoData(txID, receiver, receivingAsset)
	msg.SwapData = []*SwapData{}

	if d.remaining() == 0 {
		return msg, nil
	}

	rawCount, err := d.compactVector()
	if err != nil {
		return nil, err
	}
	count, err := DeserializeU256Compact(rawCount)
	if err != nil {
		return nil, err
	}

	for d.remaining() > 0 {
		callTo, err := d.compactVector()
		if err != nil {
			return nil, err
		}
		sending, err := d.compactVector()
		if err != nil {
			return nil, err
		}
		receiving, err := d.compactVector()
		if err != nil {
			return nil, err
		}
		callDataLen, err := d.u16()
		if err != nil {
			return nil, err
		}
		callData, err := d.copyNext(int(callDataLen))
		if err != nil {
			return nil, err
		}
		msg.SwapData = append(msg.SwapData, PaddingSwapData(callTo, sending, receiving, callData))
	}

	if !count.IsUint64() || count.Uint64() != uint64(len(msg.SwapData)) {
		return nil, ErrInvalidDataLength
	}
	return msg, nil
}

func appendShort(buf []byte, v []byte) ([]byte, error) {
	if len(v) > math.MaxUint8 {
		return nil, ErrInvalidDataLength
	}
	buf = serializeU8(buf, uint8(len(v)))
	return append(buf, v...), nil
}
