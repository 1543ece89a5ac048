// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package settlement

import (
	"context"
	"fmt"

	"github.com/ChainSafe/omniswap-relayer/chains"
	"github.com/ChainSafe/omniswap-relayer/chains/bridge"
	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ChainSafe/omniswap-relayer/cross"
	"github.com/ChainSafe/omniswap-relayer/fee"
	"github.com/ChainSafe/omniswap-relayer/relayer/transfer"
	"github.com/ChainSafe/omniswap-relayer/state"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"
	"github.com/syndtr/goleveldb/leveldb"
)

type CompleteParams struct {
	Caller    ledger.Address
	VAA       *bridge.VAA
	Recipient ledger.Address
	// SkipVerify lets the proxy deliver a no-swap transfer to Recipient
	// without matching it against the SoData receiver.
	SkipVerify bool
}

// CompleteReceipt describes how an inbound transfer was settled.
type CompleteReceipt struct {
	Status    transfer.Status
	Asset     ledger.Address
	Amount    uint64
	SoFee     uint64
	Recipient ledger.Address
}

// Complete redeems an inbound transfer and delivers it to its recipient,
// swapping it first when the message carries a destination swap. A failed
// swap never aborts completion, the bridged asset is delivered instead.
func (e *Engine) Complete(ctx context.Context, params CompleteParams) (*CompleteReceipt, error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	vaa := params.VAA
	redeemed, err := e.bridge.IsRedeemed(vaa.EmitterChain, vaa.Sequence)
	if err != nil {
		return nil, err
	}
	if redeemed {
		return nil, fmt.Errorf("%w: %s sequence %d", ErrAlreadyRedeemed, chains.ChainName(vaa.EmitterChain), vaa.Sequence)
	}
	record, err := e.transfers.Transfer(vaa.EmitterChain, vaa.Sequence)
	if err != nil {
		return nil, err
	}
	if err := transfer.Transition(record.State, transfer.Redeemable); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRedeemed, err)
	}

	envelope, err := vaa.Transfer()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDeserializeSoSwapMessageFail, err)
	}
	fc, err := e.registry.ForeignContract(vaa.EmitterChain)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", state.ErrInvalidForeignContract, err)
	}
	if !fc.Matches(envelope.FromAddress[:]) {
		return nil, fmt.Errorf("%w: sender %s is not registered for %s", state.ErrInvalidForeignContract, envelope.FromAddress.Hex(), chains.ChainName(vaa.EmitterChain))
	}
	msg, err := cross.DecodeSoSwapMessage(envelope.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDeserializeSoSwapMessageFail, err)
	}
	if len(msg.SwapData) > 1 {
		return nil, fmt.Errorf("%w: %d destination swaps", ErrInvalidSwapData, len(msg.SwapData))
	}

	redeemer, err := e.registry.RedeemerConfig()
	if err != nil {
		return nil, err
	}
	cfg, err := e.registry.FeeConfig()
	if err != nil {
		return nil, err
	}
	isProxy := params.Caller == redeemer.Proxy
	withSwap := len(msg.SwapData) == 1
	skipVerify := !withSwap && isProxy && params.SkipVerify

	if withSwap && !isProxy {
		return nil, ErrInvalidProxy
	}
	if !skipVerify {
		receiver, err := receiverAddress(msg.SoData.Receiver)
		if err != nil {
			return nil, err
		}
		if receiver != params.Recipient {
			return nil, fmt.Errorf("%w: %s is not the receiver", ErrInvalidRecipient, params.Recipient.Hex())
		}
	}

	txID := transactionID(msg.SoData)
	digest := vaa.Digest()
	receipt := &CompleteReceipt{Recipient: params.Recipient}
	err = e.ledger.Atomic(ctx, func(tx ledger.Tx) error {
		tmp := e.tmpAccount(digest[:])
		t, err := e.bridge.RedeemTransfer(ctx, tx, vaa, e.programID, tmp)
		if err != nil {
			return err
		}

		amount := t.Amount
		if !skipVerify {
			soFee := protocolFee(amount, cfg.SoFee)
			if soFee > 0 {
				if err := tx.Transfer(t.Asset, tmp, cfg.Beneficiary, soFee); err != nil {
					return fmt.Errorf("so fee: %w", err)
				}
			}
			receipt.SoFee = soFee
			amount -= soFee
		}

		final := transfer.Settled
		if withSwap {
			if err := tx.Transfer(t.Asset, tmp, redeemer.Proxy, amount); err != nil {
				return err
			}
			outAsset, out, swapErr := e.destinationSwap(ctx, tx, redeemer.Proxy, params.Recipient, t.Asset, amount, msg.SwapData[0])
			if swapErr != nil {
				log.Warn().Err(swapErr).Str("txid", ledger.Address(txID).Hex()).Uint64("sequence", vaa.Sequence).Msg("Destination swap failed, delivering bridged asset")
				if err := tx.Transfer(t.Asset, redeemer.Proxy, params.Recipient, amount); err != nil {
					return err
				}
				final = transfer.SwapFailed
				receipt.Status, receipt.Asset, receipt.Amount = transfer.StatusFallback, t.Asset, amount
			} else {
				final = transfer.Swapped
				receipt.Status, receipt.Asset, receipt.Amount = transfer.StatusSwapped, outAsset, out
			}
		} else {
			if err := tx.Transfer(t.Asset, tmp, params.Recipient, amount); err != nil {
				return err
			}
			receipt.Status, receipt.Asset, receipt.Amount = transfer.StatusNoSwap, t.Asset, amount
		}
		if tx.Balance(tmp, t.Asset) != 0 {
			return fmt.Errorf("temporary custody %s not empty after settlement", tmp)
		}
		if err := transfer.Transition(transfer.Redeemable, final); err != nil {
			return err
		}
		if final != transfer.Settled {
			if err := transfer.Transition(final, transfer.Settled); err != nil {
				return err
			}
		}

		batch := new(leveldb.Batch)
		err = e.transfers.PutTransfer(batch, vaa.EmitterChain, vaa.Sequence, &transfer.Record{
			State:         transfer.Settled,
			Status:        receipt.Status,
			Amount:        receipt.Amount,
			Asset:         receipt.Asset,
			TransactionID: txID,
		})
		if err != nil {
			return err
		}
		tx.OnCommit(func() {
			e.events.TransferCompleted(&transfer.TransferCompleted{
				TransactionID: txID,
				SourceChain:   vaa.EmitterChain,
				Sequence:      vaa.Sequence,
				Status:        receipt.Status,
				Asset:         receipt.Asset,
				Amount:        receipt.Amount,
				Recipient:     params.Recipient,
			})
		})
		return e.commit(tx, batch)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("txid", ledger.Address(txID).Hex()).
		Uint16("sourceChain", vaa.EmitterChain).
		Uint64("sequence", vaa.Sequence).
		Msgf("Completed transfer with status %s, delivered %d of %s", receipt.Status, receipt.Amount, receipt.Asset)
	return receipt, nil
}

// destinationSwap runs the swap leg from authority in a nested scope and
// delivers the realized output to recipient. Any error leaves tx as it was
// before the call.
func (e *Engine) destinationSwap(
	ctx context.Context,
	tx ledger.Tx,
	authority, recipient, inputAsset ledger.Address,
	amount uint64,
	swap *cross.SwapData,
) (ledger.Address, uint64, error) {
	var outAsset ledger.Address
	var out uint64
	err := tx.Nested(func(tx ledger.Tx) error {
		venue, req, err := e.venues.Resolve(swap)
		if err != nil {
			return err
		}
		if req.InputAsset != inputAsset {
			return fmt.Errorf("swap input %s does not match bridged asset %s", req.InputAsset, inputAsset)
		}
		req.Authority = authority
		req.AmountIn = amount

		before := tx.Balance(authority, req.OutputAsset)
		if _, err := venue.Execute(ctx, tx, req); err != nil {
			return err
		}
		after := tx.Balance(authority, req.OutputAsset)
		if after <= before {
			return fmt.Errorf("swap produced no %s", req.OutputAsset)
		}

		outAsset, out = req.OutputAsset, after-before
		return tx.Transfer(outAsset, authority, recipient, out)
	})
	if err != nil {
		return ledger.Address{}, 0, err
	}
	return outAsset, out, nil
}

// protocolFee is amount * rate / RAY capped at amount.
func protocolFee(amount, rate uint64) uint64 {
	soFee := new(uint256.Int).Mul(uint256.NewInt(amount), uint256.NewInt(rate))
	soFee.Div(soFee, uint256.NewInt(fee.RAY))
	if !soFee.IsUint64() || soFee.Uint64() > amount {
		return amount
	}
	return soFee.Uint64()
}

func receiverAddress(receiver []byte) (ledger.Address, error) {
	if len(receiver) == 0 || len(receiver) > 32 {
		return ledger.Address{}, fmt.Errorf("%w: receiver of %d bytes", ErrInvalidRecipient, len(receiver))
	}
	return ledger.BytesToAddress(ledger.LeftPad32(receiver))
}
