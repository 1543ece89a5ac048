// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package bridge

import (
	"encoding/binary"
	"errors"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

const PayloadIDTransferWithPayload uint8 = 3

// 1 + 32 + 32 + 2 + 32 + 2 + 32
const transferWithPayloadHeaderLen = 133

var ErrInvalidPayload = errors.New("invalid transfer payload")

// TransferWithPayload is the token bridge message wrapping a SoSwapMessage.
type TransferWithPayload struct {
	// Amount is in bridge precision, see Decimals.
	Amount       *uint256.Int
	TokenAddress ledger.Address
	TokenChain   uint16
	To           ledger.Address
	ToChain      uint16
	FromAddress  ledger.Address
	Payload      []byte
}

func (t *TransferWithPayload) Encode() []byte {
	data := make([]byte, 0, transferWithPayloadHeaderLen+len(t.Payload))
	data = append(data, PayloadIDTransferWithPayload)
	amount := new(uint256.Int)
	if t.Amount != nil {
		amount = t.Amount
	}
	b := amount.Bytes32()
	data = append(data, b[:]...)
	data = append(data, t.TokenAddress[:]...)
	data = binary.BigEndian.AppendUint16(data, t.TokenChain)
	data = append(data, t.To[:]...)
	data = binary.BigEndian.AppendUint16(data, t.ToChain)
	data = append(data, t.FromAddress[:]...)
	return append(data, t.Payload...)
}

func DecodeTransferWithPayload(data []byte) (*TransferWithPayload, error) {
	if len(data) < transferWithPayloadHeaderLen || data[0] != PayloadIDTransferWithPayload {
		return nil, ErrInvalidPayload
	}
	t := &TransferWithPayload{}
	t.Amount = new(uint256.Int).SetBytes32(data[1:33])
	copy(t.TokenAddress[:], data[33:65])
	t.TokenChain = binary.BigEndian.Uint16(data[65:67])
	copy(t.To[:], data[67:99])
	t.ToChain = binary.BigEndian.Uint16(data[99:101])
	copy(t.FromAddress[:], data[101:133])
	t.Payload = append([]byte{}, data[133:]...)
	return t, nil
}

// VAA is an attested bridge message. Signature verification is the
// responsibility of the bridge, a VAA handed to the settlement engine is
// trusted to be authentic.
type VAA struct {
	EmitterChain   uint16
	EmitterAddress ledger.Address
	Sequence       uint64
	Payload        []byte
}

// Digest identifies the VAA body.
func (v *VAA) Digest() common.Hash {
	body := binary.BigEndian.AppendUint16(nil, v.EmitterChain)
	body = append(body, v.EmitterAddress[:]...)
	body = binary.BigEndian.AppendUint64(body, v.Sequence)
	body = append(body, v.Payload...)
	return crypto.Keccak256Hash(body)
}

func (v *VAA) Transfer() (*TransferWithPayload, error) {
	return DecodeTransferWithPayload(v.Payload)
}
