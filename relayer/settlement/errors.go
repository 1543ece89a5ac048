// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package settlement

import (
	"errors"

	"github.com/ChainSafe/omniswap-relayer/chains/bridge"
	"github.com/ChainSafe/omniswap-relayer/chains/dex"
	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ChainSafe/omniswap-relayer/cross"
	"github.com/ChainSafe/omniswap-relayer/fee"
	"github.com/ChainSafe/omniswap-relayer/relayer/transfer"
	"github.com/ChainSafe/omniswap-relayer/state"
	"github.com/ChainSafe/omniswap-relayer/store"
)

var (
	ErrInvalidRecipient             = errors.New("invalid recipient")
	ErrInvalidSwapData              = errors.New("invalid swap data")
	ErrZeroBridgeAmount             = errors.New("zero bridge amount")
	ErrAlreadyRedeemed              = errors.New("transfer already redeemed")
	ErrDeserializeSoSwapMessageFail = errors.New("deserialize so swap message fail")
	ErrInvalidProxy                 = errors.New("invalid proxy")
	ErrInvalidAmount                = errors.New("amount does not fit the host ledger")
)

// Kind groups settlement errors by how a caller should react to them.
type Kind string

const (
	// KindValidation means the request is malformed or not authorized.
	KindValidation Kind = "validation"
	// KindEconomic means the request is well formed but not affordable.
	KindEconomic Kind = "economic"
	// KindReplay means the transfer or request was already consumed.
	KindReplay Kind = "replay"
	KindFatal  Kind = "fatal"
)

var kinds = []struct {
	kind Kind
	errs []error
}{
	{KindReplay, []error{
		ErrAlreadyRedeemed,
		bridge.ErrAlreadyClaimed,
		store.ErrRequestNotFound,
		transfer.ErrIllegalTransition,
	}},
	{KindEconomic, []error{
		fee.ErrCheckFeeFail,
		ErrZeroBridgeAmount,
		ledger.ErrInsufficientFunds,
		dex.ErrSlippage,
	}},
	{KindValidation, []error{
		ErrInvalidRecipient,
		ErrInvalidSwapData,
		ErrDeserializeSoSwapMessageFail,
		ErrInvalidProxy,
		ErrInvalidAmount,
		state.ErrOwnerOnly,
		state.ErrInvalidForeignContract,
		state.ErrForeignContractNotFound,
		state.ErrPriceManagerNotFound,
		cross.ErrInvalidSoData,
		cross.ErrInvalidDataLength,
		cross.ErrInvalidCallData,
		cross.ErrValueOverflow,
		dex.ErrUnknownVenue,
		dex.ErrUnknownPool,
		dex.ErrAssetMismatch,
		dex.ErrZeroMinAmountOut,
		bridge.ErrWrongChain,
		bridge.ErrWrongRedeemer,
		bridge.ErrUnknownVAA,
		bridge.ErrInvalidPayload,
		ledger.ErrUnknownAsset,
		ledger.ErrInvalidAddress,
	}},
}

// Classify returns the kind of err. Errors not raised by settlement rules,
// arithmetic overflows included, are fatal.
func Classify(err error) Kind {
	for _, k := range kinds {
		for _, e := range k.errs {
			if errors.Is(err, e) {
				return k.kind
			}
		}
	}
	return KindFatal
}
