// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package settlement

import (
	"context"
	"fmt"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ChainSafe/omniswap-relayer/state"
	"github.com/ChainSafe/omniswap-relayer/store"
	"github.com/rs/zerolog/log"
	"github.com/syndtr/goleveldb/leveldb"
)

// PostRequest stages a cross request for later execution by the relaying
// proxy. The payer pays the storage deposit of the request account.
func (e *Engine) PostRequest(ctx context.Context, payer ledger.Address, r CrossRequest) (*store.StagedRequest, error) {
	req, err := decodeRequest(r)
	if err != nil {
		return nil, err
	}
	if err := e.validateLocal(req); err != nil {
		return nil, err
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	cfg, err := e.requests.SenderConfig()
	if err != nil {
		return nil, err
	}
	staged := &store.StagedRequest{
		Owner:        cfg.Owner,
		Payer:        payer,
		Nonce:        cfg.Nonce,
		SoData:       r.SoData,
		SwapDataSrc:  r.SwapDataSrc,
		WormholeData: r.WormholeData,
		SwapDataDst:  r.SwapDataDst,
	}
	staged.Deposit = ledger.RentExemptMinimum(staged.Size())

	err = e.ledger.Atomic(ctx, func(tx ledger.Tx) error {
		if err := tx.Transfer(ledger.NativeAsset, payer, store.RequestAccount(e.programID, staged.Nonce), staged.Deposit); err != nil {
			return fmt.Errorf("request deposit: %w", err)
		}
		batch := new(leveldb.Batch)
		if err := e.requests.PutRequest(batch, staged); err != nil {
			return err
		}
		return e.commit(tx, batch)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint64("nonce", staged.Nonce).Str("payer", payer.Hex()).Msgf("Posted request with deposit %d", staged.Deposit)
	return staged, nil
}

// CancelRequest removes a staged request and refunds its deposit.
func (e *Engine) CancelRequest(ctx context.Context, caller ledger.Address, nonce uint64) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	staged, err := e.authorizedRequest(caller, nonce)
	if err != nil {
		return err
	}
	err = e.ledger.Atomic(ctx, func(tx ledger.Tx) error {
		if err := tx.Transfer(ledger.NativeAsset, store.RequestAccount(e.programID, nonce), staged.Payer, staged.Deposit); err != nil {
			return fmt.Errorf("request deposit refund: %w", err)
		}
		batch := new(leveldb.Batch)
		e.requests.DeleteRequest(batch, nonce)
		return e.commit(tx, batch)
	})
	if err != nil {
		return err
	}

	log.Info().Uint64("nonce", nonce).Str("caller", caller.Hex()).Msg("Cancelled request")
	return nil
}

// ExecuteRequest runs the outbound leg of a staged request and consumes it.
// Value is moved from the requester, the caller only authorizes execution.
func (e *Engine) ExecuteRequest(ctx context.Context, caller ledger.Address, nonce uint64) (*OutboundReceipt, error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	staged, err := e.authorizedRequest(caller, nonce)
	if err != nil {
		return nil, err
	}
	req, err := decodeRequest(CrossRequest{
		SoData:       staged.SoData,
		SwapDataSrc:  staged.SwapDataSrc,
		WormholeData: staged.WormholeData,
		SwapDataDst:  staged.SwapDataDst,
	})
	if err != nil {
		return nil, err
	}
	return e.executeOutbound(ctx, staged.Payer, req, staged)
}

// PendingRequest returns a staged request that was not executed or
// cancelled yet.
func (e *Engine) PendingRequest(nonce uint64) (*store.StagedRequest, error) {
	return e.requests.Request(nonce)
}

func (e *Engine) authorizedRequest(caller ledger.Address, nonce uint64) (*store.StagedRequest, error) {
	staged, err := e.requests.Request(nonce)
	if err != nil {
		return nil, err
	}
	redeemer, err := e.registry.RedeemerConfig()
	if err != nil {
		return nil, err
	}
	if caller != staged.Payer && caller != redeemer.Proxy {
		return nil, state.ErrOwnerOnly
	}
	return staged, nil
}
