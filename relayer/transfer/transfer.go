// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package transfer

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/holiman/uint256"
	"golang.org/x/exp/slices"
)

var ErrIllegalTransition = errors.New("illegal transfer transition")

type State string

const (
	Missing          State = "missing"
	Staged           State = "staged"
	OutboundExecuted State = "outboundExecuted"
	Bridged          State = "bridged"
	Redeemable       State = "redeemable"
	Swapped          State = "swapped"
	SwapFailed       State = "swapFailed"
	Settled          State = "settled"
)

var transitions = map[State][]State{
	Missing:          {Staged, OutboundExecuted, Redeemable},
	Staged:           {OutboundExecuted},
	OutboundExecuted: {Bridged},
	Bridged:          {Redeemable},
	Redeemable:       {Swapped, SwapFailed, Settled},
	Swapped:          {Settled},
	SwapFailed:       {Settled},
}

// CanTransition reports whether a transfer in from may move to to.
func CanTransition(from, to State) bool {
	return slices.Contains(transitions[from], to)
}

// Transition returns an error when moving from into to is not allowed.
func Transition(from, to State) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w %s -> %s", ErrIllegalTransition, from, to)
	}
	return nil
}

// Status is how an inbound transfer was completed.
type Status string

const (
	StatusSwapped  Status = "swapped"
	StatusFallback Status = "fallback"
	StatusNoSwap   Status = "no-swap"
)

// Record is the persisted state of a transfer identified by its bridge
// source chain and sequence.
type Record struct {
	State         State
	Status        Status
	Amount        uint64
	Asset         ledger.Address
	TransactionID [32]byte
}

type TransferStarted struct {
	TransactionID [32]byte
	SourceChain   uint16
	DstChain      uint16
	Sequence      uint64
	Asset         ledger.Address
	Amount        uint64
	RelayerFee    uint64
	DstMaxGas     *uint256.Int
}

type TransferCompleted struct {
	TransactionID [32]byte
	SourceChain   uint16
	Sequence      uint64
	Status        Status
	Asset         ledger.Address
	Amount        uint64
	Recipient     ledger.Address
}
