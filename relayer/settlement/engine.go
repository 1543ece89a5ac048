// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package settlement

import (
	"context"
	"fmt"
	"sync"

	"github.com/ChainSafe/omniswap-relayer/chains/bridge"
	"github.com/ChainSafe/omniswap-relayer/chains/dex"
	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ChainSafe/omniswap-relayer/cross"
	"github.com/ChainSafe/omniswap-relayer/fee"
	"github.com/ChainSafe/omniswap-relayer/relayer/transfer"
	"github.com/ChainSafe/omniswap-relayer/state"
	"github.com/ChainSafe/omniswap-relayer/store"
	"github.com/syndtr/goleveldb/leveldb"
)

type Bridge interface {
	Fee() uint64
	PostMessage(ctx context.Context, tx ledger.Tx, t bridge.OutboundTransfer) (uint64, error)
	RedeemTransfer(ctx context.Context, tx ledger.Tx, vaa *bridge.VAA, redeemer, to ledger.Address) (*bridge.RedeemedTransfer, error)
	IsRedeemed(chain uint16, sequence uint64) (bool, error)
}

type Registry interface {
	ForeignContract(chain uint16) (*state.ForeignContract, error)
	PriceManager(chain uint16) (*state.PriceManager, error)
	FeeConfig() (state.FeeConfig, error)
	RedeemerConfig() (state.RedeemerConfig, error)
}

type VenueResolver interface {
	Resolve(swap *cross.SwapData) (dex.Venue, *dex.SwapRequest, error)
}

type RequestStorer interface {
	SenderConfig() (*state.SenderConfig, error)
	PutRequest(batch *leveldb.Batch, req *store.StagedRequest) error
	DeleteRequest(batch *leveldb.Batch, nonce uint64)
	Request(nonce uint64) (*store.StagedRequest, error)
}

type TransferStorer interface {
	PutTransfer(batch *leveldb.Batch, source uint16, sequence uint64, record *transfer.Record) error
	StoreTransfer(source uint16, sequence uint64, record *transfer.Record) error
	Transfer(source uint16, sequence uint64) (*transfer.Record, error)
}

type BalanceStorer interface {
	PutBalances(batch *leveldb.Batch, balances []ledger.Balance) error
}

type BatchWriter interface {
	WriteBatch(batch *leveldb.Batch) error
}

type EventSink interface {
	TransferStarted(e *transfer.TransferStarted)
	TransferCompleted(e *transfer.TransferCompleted)
}

// Engine settles cross chain swaps of the local chain. Every step moves
// value inside a single ledger transaction and writes its store batch,
// together with the balances it moved, as the last action of that
// transaction.
type Engine struct {
	lock sync.Mutex

	localChain uint16
	programID  ledger.Address

	ledger    ledger.Ledger
	bridge    Bridge
	registry  Registry
	venues    VenueResolver
	requests  RequestStorer
	transfers TransferStorer
	balances  BalanceStorer
	db        BatchWriter
	events    EventSink
}

func NewEngine(
	localChain uint16,
	programID ledger.Address,
	l ledger.Ledger,
	bridge Bridge,
	registry Registry,
	venues VenueResolver,
	requests RequestStorer,
	transfers TransferStorer,
	balances BalanceStorer,
	db BatchWriter,
	events EventSink,
) *Engine {
	return &Engine{
		localChain: localChain,
		programID:  programID,
		ledger:     l,
		bridge:     bridge,
		registry:   registry,
		venues:     venues,
		requests:   requests,
		transfers:  transfers,
		balances:   balances,
		db:         db,
		events:     events,
	}
}

func (e *Engine) LocalChain() uint16 {
	return e.localChain
}

func (e *Engine) ProgramID() ledger.Address {
	return e.programID
}

// QuoteParams holds the normalized encodings a fee quote is computed from.
type QuoteParams struct {
	SoData       []byte
	WormholeData []byte
	SwapDataDst  []byte
}

// QuoteFee estimates the fee of a transfer with the estimate reserve. It
// does not touch the ledger.
func (e *Engine) QuoteFee(params QuoteParams) (*fee.Quote, error) {
	if _, err := cross.DecodeNormalizedSoData(params.SoData); err != nil {
		return nil, fmt.Errorf("so data: %w", err)
	}
	wormhole, err := cross.DecodeNormalizedWormholeData(params.WormholeData)
	if err != nil {
		return nil, fmt.Errorf("wormhole data: %w", err)
	}
	if _, err := cross.DecodeNormalizedSwapData(params.SwapDataDst); err != nil {
		return nil, fmt.Errorf("swap data dst: %w", err)
	}

	cfg, err := e.registry.FeeConfig()
	if err != nil {
		return nil, err
	}
	return e.estimate(params.SoData, params.SwapDataDst, wormhole, cfg.EstimateReserve)
}

func (e *Engine) estimate(soData, swapDataDst []byte, wormhole *cross.WormholeData, reserve uint64) (*fee.Quote, error) {
	fc, err := e.registry.ForeignContract(wormhole.DstChainID)
	if err != nil {
		return nil, err
	}
	pm, err := e.registry.PriceManager(wormhole.DstChainID)
	if err != nil {
		return nil, err
	}

	return fee.Estimate(fee.Input{
		SoData:       soData,
		SwapDataDst:  swapDataDst,
		WormholeData: wormhole,
		GasModel: fee.GasModel{
			Chain:      fc.Chain,
			BaseGas:    fc.BaseGas,
			GasPerByte: fc.GasPerByte,
		},
		PriceRatio: pm.CurrentPriceRatio,
		Reserve:    reserve,
		BridgeFee:  e.bridge.Fee(),
	})
}

// MarkBridged records that the message of an outbound transfer was attested
// by the bridge.
func (e *Engine) MarkBridged(sequence uint64) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	record, err := e.transfers.Transfer(e.localChain, sequence)
	if err != nil {
		return err
	}
	if err := transfer.Transition(record.State, transfer.Bridged); err != nil {
		return err
	}
	record.State = transfer.Bridged
	return e.transfers.StoreTransfer(e.localChain, sequence, record)
}

// TransferState returns the stored state of the transfer carried by the
// bridge message (source, sequence).
func (e *Engine) TransferState(source uint16, sequence uint64) (*transfer.Record, error) {
	return e.transfers.Transfer(source, sequence)
}

// commit adds the balances tx wrote to batch and writes it, the last action
// of every step.
func (e *Engine) commit(tx ledger.Tx, batch *leveldb.Batch) error {
	if err := e.balances.PutBalances(batch, tx.Changes()); err != nil {
		return err
	}
	return e.db.WriteBatch(batch)
}

func (e *Engine) tmpAccount(seed []byte) ledger.Address {
	return ledger.DeriveAddress(e.programID, []byte("tmp"), seed)
}

func transactionID(soData *cross.SoData) [32]byte {
	var id [32]byte
	copy(id[:], soData.TransactionID)
	return id
}
