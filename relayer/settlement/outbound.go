// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package settlement

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ChainSafe/omniswap-relayer/chains"
	"github.com/ChainSafe/omniswap-relayer/chains/bridge"
	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ChainSafe/omniswap-relayer/cross"
	"github.com/ChainSafe/omniswap-relayer/relayer/transfer"
	"github.com/ChainSafe/omniswap-relayer/store"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"
	"github.com/syndtr/goleveldb/leveldb"
)

// CrossRequest holds the normalized encodings of a cross chain swap
// request as supplied by the requester.
type CrossRequest struct {
	SoData       []byte
	SwapDataSrc  []byte
	WormholeData []byte
	SwapDataDst  []byte
}

type decodedRequest struct {
	raw      CrossRequest
	soData   *cross.SoData
	swapSrc  []*cross.SwapData
	wormhole *cross.WormholeData
	swapDst  []*cross.SwapData
}

func decodeRequest(r CrossRequest) (*decodedRequest, error) {
	soData, err := cross.DecodeNormalizedSoData(r.SoData)
	if err != nil {
		return nil, fmt.Errorf("so data: %w", err)
	}
	swapSrc, err := cross.DecodeNormalizedSwapData(r.SwapDataSrc)
	if err != nil {
		return nil, fmt.Errorf("swap data src: %w", err)
	}
	wormhole, err := cross.DecodeNormalizedWormholeData(r.WormholeData)
	if err != nil {
		return nil, fmt.Errorf("wormhole data: %w", err)
	}
	swapDst, err := cross.DecodeNormalizedSwapData(r.SwapDataDst)
	if err != nil {
		return nil, fmt.Errorf("swap data dst: %w", err)
	}
	return &decodedRequest{
		raw:      r,
		soData:   soData,
		swapSrc:  swapSrc,
		wormhole: wormhole,
		swapDst:  swapDst,
	}, nil
}

// validateLocal checks a request is sent from the local chain.
func (e *Engine) validateLocal(req *decodedRequest) error {
	if err := req.soData.Validate(); err != nil {
		return err
	}
	if req.soData.SourceChainID != e.localChain {
		return fmt.Errorf("%w: source chain %d is not the local chain", cross.ErrInvalidSoData, req.soData.SourceChainID)
	}
	if len(req.soData.TransactionID) != 32 {
		return fmt.Errorf("%w: transaction id of %d bytes", cross.ErrInvalidSoData, len(req.soData.TransactionID))
	}
	return nil
}

// OutboundReceipt describes a transfer handed to the bridge.
type OutboundReceipt struct {
	Sequence   uint64
	Asset      ledger.Address
	Amount     uint64
	RelayerFee uint64
	DstMaxGas  *uint256.Int
}

// Initiate sends a cross chain swap request without staging it first.
func (e *Engine) Initiate(ctx context.Context, payer ledger.Address, r CrossRequest) (*OutboundReceipt, error) {
	req, err := decodeRequest(r)
	if err != nil {
		return nil, err
	}
	if err := e.validateLocal(req); err != nil {
		return nil, err
	}

	e.lock.Lock()
	defer e.lock.Unlock()
	return e.executeOutbound(ctx, payer, req, nil)
}

// checkDestination verifies the envelope targets the contract registered for
// its destination chain.
func (e *Engine) checkDestination(wormhole *cross.WormholeData) error {
	if wormhole.DstChainID == 0 || wormhole.DstChainID == e.localChain {
		return fmt.Errorf("%w: destination chain %d", ErrInvalidRecipient, wormhole.DstChainID)
	}
	if len(wormhole.DstSoDiamond) == 0 || bytes.Equal(wormhole.DstSoDiamond, make([]byte, len(wormhole.DstSoDiamond))) {
		return fmt.Errorf("%w: empty destination contract", ErrInvalidRecipient)
	}
	fc, err := e.registry.ForeignContract(wormhole.DstChainID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRecipient, err)
	}
	if !fc.Matches(wormhole.DstSoDiamond) {
		return fmt.Errorf("%w: destination contract is not registered for chain %d", ErrInvalidRecipient, wormhole.DstChainID)
	}
	return nil
}

// executeOutbound runs the outbound leg. When staged is set its request is
// consumed in the same commit and its deposit refunded to the requester.
func (e *Engine) executeOutbound(ctx context.Context, payer ledger.Address, req *decodedRequest, staged *store.StagedRequest) (*OutboundReceipt, error) {
	if err := e.checkDestination(req.wormhole); err != nil {
		return nil, err
	}
	cfg, err := e.registry.FeeConfig()
	if err != nil {
		return nil, err
	}
	quote, err := e.estimate(req.raw.SoData, req.raw.SwapDataDst, req.wormhole, cfg.ActualReserve)
	if err != nil {
		return nil, err
	}
	if err := quote.Admit(req.wormhole.WormholeFee); err != nil {
		return nil, err
	}
	if len(req.swapSrc) > 1 {
		return nil, fmt.Errorf("%w: %d source swaps", ErrInvalidSwapData, len(req.swapSrc))
	}

	from := transfer.Missing
	if staged != nil {
		from = transfer.Staged
	}
	if err := transfer.Transition(from, transfer.OutboundExecuted); err != nil {
		return nil, err
	}

	txID := transactionID(req.soData)
	receipt := &OutboundReceipt{
		RelayerFee: quote.RelayerFee,
		DstMaxGas:  quote.DstMaxGas,
	}
	err = e.ledger.Atomic(ctx, func(tx ledger.Tx) error {
		asset, amount, err := e.sourceAmount(ctx, tx, payer, req)
		if err != nil {
			return err
		}
		decimals, err := tx.Decimals(asset)
		if err != nil {
			return err
		}
		truncated := bridge.TruncateAmount(amount, decimals)
		if truncated == 0 {
			return ErrZeroBridgeAmount
		}

		if quote.RelayerFee > 0 {
			if err := tx.Transfer(ledger.NativeAsset, payer, cfg.Beneficiary, quote.RelayerFee); err != nil {
				return fmt.Errorf("relayer fee: %w", err)
			}
		}

		tmp := e.tmpAccount(txID[:])
		if err := tx.Transfer(asset, payer, tmp, truncated); err != nil {
			return err
		}
		fc, err := e.registry.ForeignContract(req.wormhole.DstChainID)
		if err != nil {
			return err
		}
		payload, err := (&cross.SoSwapMessage{
			DstMaxGasPrice: req.wormhole.DstMaxGasPrice,
			DstMaxGas:      quote.DstMaxGas,
			SoData:         req.soData,
			SwapData:       req.swapDst,
		}).Encode()
		if err != nil {
			return err
		}
		sequence, err := e.bridge.PostMessage(ctx, tx, bridge.OutboundTransfer{
			Asset:   asset,
			From:    tmp,
			Payer:   payer,
			Amount:  truncated,
			Sender:  e.programID,
			ToChain: req.wormhole.DstChainID,
			To:      fc.Address,
			Payload: payload,
		})
		if err != nil {
			return err
		}

		batch := new(leveldb.Batch)
		if staged != nil {
			if err := tx.Transfer(ledger.NativeAsset, store.RequestAccount(e.programID, staged.Nonce), staged.Payer, staged.Deposit); err != nil {
				return fmt.Errorf("request deposit refund: %w", err)
			}
			e.requests.DeleteRequest(batch, staged.Nonce)
		}
		err = e.transfers.PutTransfer(batch, e.localChain, sequence, &transfer.Record{
			State:         transfer.OutboundExecuted,
			Amount:        truncated,
			Asset:         asset,
			TransactionID: txID,
		})
		if err != nil {
			return err
		}

		receipt.Sequence = sequence
		receipt.Asset = asset
		receipt.Amount = truncated
		tx.OnCommit(func() {
			e.events.TransferStarted(&transfer.TransferStarted{
				TransactionID: txID,
				SourceChain:   e.localChain,
				DstChain:      req.wormhole.DstChainID,
				Sequence:      sequence,
				Asset:         asset,
				Amount:        truncated,
				RelayerFee:    quote.RelayerFee,
				DstMaxGas:     quote.DstMaxGas,
			})
		})
		return e.commit(tx, batch)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("txid", ledger.Address(txID).Hex()).
		Uint16("dstChain", req.wormhole.DstChainID).
		Uint64("sequence", receipt.Sequence).
		Msgf("Sent %d of %s to %s", receipt.Amount, receipt.Asset, chains.ChainName(req.wormhole.DstChainID))
	return receipt, nil
}

// sourceAmount returns the asset and amount handed to the bridge. With a
// source swap leg it is the output realized by the payer.
func (e *Engine) sourceAmount(ctx context.Context, tx ledger.Tx, payer ledger.Address, req *decodedRequest) (ledger.Address, uint64, error) {
	if len(req.swapSrc) == 0 {
		asset, err := assetID(req.soData.SendingAssetID)
		if err != nil {
			return ledger.Address{}, 0, err
		}
		if !req.soData.Amount.IsUint64() {
			return ledger.Address{}, 0, ErrInvalidAmount
		}
		return asset, req.soData.Amount.Uint64(), nil
	}

	swap := req.swapSrc[0]
	venue, swapReq, err := e.venues.Resolve(swap)
	if err != nil {
		return ledger.Address{}, 0, err
	}
	amountIn := swap.FromAmount
	if amountIn == nil || amountIn.IsZero() {
		amountIn = req.soData.Amount
	}
	if !amountIn.IsUint64() {
		return ledger.Address{}, 0, ErrInvalidAmount
	}
	swapReq.Authority = payer
	swapReq.AmountIn = amountIn.Uint64()

	before := tx.Balance(payer, swapReq.OutputAsset)
	if _, err := venue.Execute(ctx, tx, swapReq); err != nil {
		return ledger.Address{}, 0, fmt.Errorf("source swap: %w", err)
	}
	after := tx.Balance(payer, swapReq.OutputAsset)
	if after < before {
		return ledger.Address{}, 0, fmt.Errorf("%w: output balance decreased", ErrInvalidSwapData)
	}
	return swapReq.OutputAsset, after - before, nil
}

func assetID(id []byte) (ledger.Address, error) {
	if len(id) == 0 || len(id) > 32 {
		return ledger.Address{}, fmt.Errorf("%w: asset id of %d bytes", cross.ErrInvalidSoData, len(id))
	}
	return ledger.BytesToAddress(ledger.LeftPad32(id))
}
