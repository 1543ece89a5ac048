// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package ledger

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBalanceOverflow   = errors.New("balance overflow")
	ErrUnknownAsset      = errors.New("unknown asset")
	ErrInvalidAddress    = errors.New("invalid address")
)

// Rent parameters of the host ledger.
const (
	accountStorageOverhead = 128
	lamportsPerByteYear    = 3480
	exemptionThreshold     = 2
)

// Address is a 32 byte account or asset address on the host ledger.
type Address [32]byte

// NativeAsset is the asset fees and rent are paid in.
var NativeAsset = Address{}

func (a Address) Hex() string {
	return hexutil.Encode(a[:])
}

func (a Address) String() string {
	return a.Hex()
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) Bytes() []byte {
	return a[:]
}

// BytesToAddress converts exactly 32 bytes into an Address.
func BytesToAddress(b []byte) (Address, error) {
	var a Address
	if len(b) != len(a) {
		return a, fmt.Errorf("%w: expected 32 bytes, got %d", ErrInvalidAddress, len(b))
	}
	copy(a[:], b)
	return a, nil
}

func HexToAddress(s string) (Address, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %s", ErrInvalidAddress, err)
	}
	return BytesToAddress(b)
}

// DeriveAddress deterministically derives a program owned address from its
// seeds, the same inputs always yield the same address.
func DeriveAddress(programID Address, seeds ...[]byte) Address {
	parts := make([][]byte, 0, len(seeds)+1)
	parts = append(parts, programID[:])
	parts = append(parts, seeds...)
	return Address(crypto.Keccak256Hash(parts...))
}

// PubkeyToAddress returns the account address controlled by a secp256k1
// key, the keccak hash of the uncompressed public key.
func PubkeyToAddress(pub ecdsa.PublicKey) Address {
	return Address(crypto.Keccak256Hash(crypto.FromECDSAPub(&pub)[1:]))
}

// LeftPad32 pads b to 32 bytes, used to compare 20 byte foreign addresses
// with registered 32 byte ones.
func LeftPad32(b []byte) []byte {
	return common.LeftPadBytes(b, 32)
}

// RentExemptMinimum returns the deposit required to keep an account of size
// bytes alive.
func RentExemptMinimum(size int) uint64 {
	return uint64(accountStorageOverhead+size) * lamportsPerByteYear * exemptionThreshold
}

// Balance is the amount of asset held by owner.
type Balance struct {
	Owner  Address
	Asset  Address
	Amount uint64
}

// Tx is a set of ledger mutations committed or discarded together.
type Tx interface {
	Balance(owner, asset Address) uint64
	Decimals(asset Address) (uint8, error)
	Transfer(asset, from, to Address, amount uint64) error
	Mint(asset, to Address, amount uint64) error
	Burn(asset, from Address, amount uint64) error
	// Nested runs fn in a child scope. When fn fails only the child
	// mutations are discarded.
	Nested(fn func(tx Tx) error) error
	// OnCommit registers fn to run once the outermost scope commits.
	OnCommit(fn func())
	// Changes returns the balances written by this scope and the child
	// scopes it merged, ordered by owner and asset.
	Changes() []Balance
}

type Ledger interface {
	// Atomic runs fn and commits every mutation it made, or none of them when
	// fn returns an error.
	Atomic(ctx context.Context, fn func(tx Tx) error) error
	Balance(owner, asset Address) uint64
}
