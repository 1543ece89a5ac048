// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package cross

import (
	"bytes"
	"errors"

	"github.com/holiman/uint256"
)

var ErrInvalidSoData = errors.New("invalid so data")

// SoData is the swap intent shared by every chain taking part in a transfer.
type SoData struct {
	// TransactionID uniquely identifies the transfer, 32 bytes.
	TransactionID []byte
	// Receiver is the destination account, 20 or 32 bytes.
	Receiver           []byte
	SourceChainID      uint16
	SendingAssetID     []byte
	DestinationChainID uint16
	ReceivingAssetID   []byte
	Amount             *uint256.Int
}

// PaddingSoData builds the SoData carried inside a SoSwapMessage where only
// the fields required on the destination chain are present.
func PaddingSoData(transactionID, receiver, receivingAssetID []byte) *SoData {
	return &SoData{
		TransactionID:    transactionID,
		Receiver:         receiver,
		SendingAssetID:   []byte{},
		ReceivingAssetID: receivingAssetID,
		Amount:           new(uint256.Int),
	}
}

// Validate checks the invariants every SoData must hold before it is staged.
func (d *SoData) Validate() error {
	switch {
	case d.SourceChainID == 0 || d.DestinationChainID == 0:
		return ErrInvalidSoData
	case d.SourceChainID == d.DestinationChainID:
		return ErrInvalidSoData
	case len(d.Receiver) != 20 && len(d.Receiver) != 32:
		return ErrInvalidSoData
	case isZero(d.Receiver):
		return ErrInvalidSoData
	}
	return nil
}

func (d *SoData) EncodeNormalized() []byte {
	data := serializeVector(nil, d.TransactionID)
	data = serializeVector(data, d.Receiver)
	data = serializeU16(data, d.SourceChainID)
	data = serializeVector(data, d.SendingAssetID)
	data = serializeU16(data, d.DestinationChainID)
	data = serializeVector(data, d.ReceivingAssetID)
	return serializeU256(data, d.Amount)
}

func (d *SoData) EncodeCompact() ([]byte, error) {
	amount, err := compactU64(d.Amount)
	if err != nil {
		return nil, err
	}
	var data []byte
	if data, err = serializeCompactVector(data, d.TransactionID); err != nil {
		return nil, err
	}
	if data, err = serializeCompactVector(data, d.Receiver); err != nil {
		return nil, err
	}
	data = serializeU16(data, d.SourceChainID)
	if data, err = serializeCompactVector(data, d.SendingAssetID); err != nil {
		return nil, err
	}
	data = serializeU16(data, d.DestinationChainID)
	if data, err = serializeCompactVector(data, d.ReceivingAssetID); err != nil {
		return nil, err
	}
	return serializeU64(data, amount), nil
}

func DecodeNormalizedSoData(data []byte) (*SoData, error) {
	d := newDecoder(data)
	soData := &SoData{}
	var err error
	if soData.TransactionID, err = d.vector(); err != nil {
		return nil, err
	}
	if soData.Receiver, err = d.vector(); err != nil {
		return nil, err
	}
	if soData.SourceChainID, err = d.u16(); err != nil {
		return nil, err
	}
	if soData.SendingAssetID, err = d.vector(); err != nil {
		return nil, err
	}
	if soData.DestinationChainID, err = d.u16(); err != nil {
		return nil, err
	}
	if soData.ReceivingAssetID, err = d.vector(); err != nil {
		return nil, err
	}
	if soData.Amount, err = d.u256(); err != nil {
		return nil, err
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return soData, nil
}

func DecodeCompactSoData(data []byte) (*SoData, error) {
	d := newDecoder(data)
	soData := &SoData{}
	var err error
	if soData.TransactionID, err = d.compactVector(); err != nil {
		return nil, err
	}
	if soData.Receiver, err = d.compactVector(); err != nil {
		return nil, err
	}
	if soData.SourceChainID, err = d.u16(); err != nil {
		return nil, err
	}
	if soData.SendingAssetID, err = d.compactVector(); err != nil {
		return nil, err
	}
	if soData.DestinationChainID, err = d.u16(); err != nil {
		return nil, err
	}
	if soData.ReceivingAssetID, err = d.compactVector(); err != nil {
		return nil, err
	}
	amount, err := d.u64()
	if err != nil {
		return nil, err
	}
	soData.Amount = uint256.NewInt(amount)
	if err := d.finish(); err != nil {
		return nil, err
	}
	return soData, nil
}

func isZero(b []byte) bool {
	return len(bytes.Trim(b, "\x00")) == 0
}
