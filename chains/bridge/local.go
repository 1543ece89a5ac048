// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package bridge

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	ErrAlreadyClaimed = errors.New("transfer already claimed")
	ErrUnknownVAA     = errors.New("vaa was not attested")
	ErrWrongRedeemer  = errors.New("transfer is not redeemable by caller")
	ErrWrongChain     = errors.New("transfer targets another chain")
)

// OutboundTransfer is a token transfer handed to the bridge together with
// its payload.
type OutboundTransfer struct {
	Asset ledger.Address
	// From holds Amount of Asset, Payer pays the bridge fee.
	From   ledger.Address
	Payer  ledger.Address
	Amount uint64
	// Sender is the program the message is sent on behalf of.
	Sender  ledger.Address
	ToChain uint16
	To      ledger.Address
	Payload []byte
}

// RedeemedTransfer describes what a redeem credited.
type RedeemedTransfer struct {
	Asset            ledger.Address
	NormalizedAmount uint64
	Amount           uint64
	FromChain        uint16
	FromAddress      ledger.Address
	Payload          []byte
}

type AssetRegistry interface {
	RegisterAsset(asset ledger.Address, decimals uint8)
}

type claimKey struct {
	chain    uint16
	sequence uint64
}

// Claim identifies a redeemed message.
type Claim struct {
	Chain    uint16
	Sequence uint64
}

// Journal persists published and claimed messages of a Network.
type Journal interface {
	StoreMessage(vaa *VAA) error
	StoreClaim(chain uint16, sequence uint64) error
	Messages() ([]*VAA, error)
	Claims() ([]Claim, error)
}

type attestation struct {
	chain    uint16
	asset    ledger.Address
	decimals uint8
}

// Network is a loopback message bridge connecting local ledgers. It stands
// in for the guardian network on devnets and in tests.
type Network struct {
	lock         sync.Mutex
	fee          uint64
	endpoints    map[uint16]*Endpoint
	sequences    map[uint16]uint64
	published    map[claimKey]*VAA
	claims       map[claimKey]bool
	attestations []attestation
	journal      Journal
}

func NewNetwork(fee uint64) *Network {
	return &Network{
		fee:       fee,
		endpoints: make(map[uint16]*Endpoint),
		sequences: make(map[uint16]uint64),
		published: make(map[claimKey]*VAA),
		claims:    make(map[claimKey]bool),
	}
}

// Restore loads the messages journaled by a previous run and journals
// every message published or claimed from now on.
func (n *Network) Restore(journal Journal) error {
	vaas, err := journal.Messages()
	if err != nil {
		return err
	}
	claims, err := journal.Claims()
	if err != nil {
		return err
	}

	n.lock.Lock()
	defer n.lock.Unlock()
	for _, vaa := range vaas {
		n.published[claimKey{vaa.EmitterChain, vaa.Sequence}] = vaa
		if vaa.Sequence >= n.sequences[vaa.EmitterChain] {
			n.sequences[vaa.EmitterChain] = vaa.Sequence + 1
		}
	}
	for _, c := range claims {
		n.claims[claimKey{c.Chain, c.Sequence}] = true
	}
	n.journal = journal
	log.Debug().Int("messages", len(vaas)).Int("claims", len(claims)).Msg("Restored bridge network")
	return nil
}

// Connect joins a ledger to the network as chain.
func (n *Network) Connect(chain uint16, assets AssetRegistry) *Endpoint {
	program := ledger.DeriveAddress(ledger.Address{}, []byte("token_bridge"), binary.BigEndian.AppendUint16(nil, chain))
	e := &Endpoint{
		network:      n,
		chain:        chain,
		program:      program,
		custody:      ledger.DeriveAddress(program, []byte("custody")),
		feeCollector: ledger.DeriveAddress(program, []byte("fee_collector")),
		assets:       assets,
		wrapped:      make(map[ledger.Address]attestation),
	}

	n.lock.Lock()
	n.endpoints[chain] = e
	attestations := append([]attestation{}, n.attestations...)
	n.lock.Unlock()

	// assets are registered outside of the network lock, ledgers call back
	// into the network from commit hooks
	for _, a := range attestations {
		e.registerWrapped(a)
	}
	return e
}

// AttestToken makes asset of chain redeemable on every connected chain.
func (n *Network) AttestToken(chain uint16, asset ledger.Address, decimals uint8) {
	a := attestation{chain: chain, asset: asset, decimals: decimals}

	n.lock.Lock()
	n.attestations = append(n.attestations, a)
	endpoints := make([]*Endpoint, 0, len(n.endpoints))
	for _, e := range n.endpoints {
		endpoints = append(endpoints, e)
	}
	n.lock.Unlock()

	for _, e := range endpoints {
		e.registerWrapped(a)
	}
}

func (n *Network) publish(vaa *VAA) {
	n.lock.Lock()
	defer n.lock.Unlock()

	n.sequences[vaa.EmitterChain] = vaa.Sequence + 1
	n.published[claimKey{vaa.EmitterChain, vaa.Sequence}] = vaa
	if n.journal != nil {
		if err := n.journal.StoreMessage(vaa); err != nil {
			log.Error().Err(err).Uint16("chain", vaa.EmitterChain).Uint64("sequence", vaa.Sequence).Msg("Failed journaling bridge message")
		}
	}
	log.Debug().Uint16("chain", vaa.EmitterChain).Uint64("sequence", vaa.Sequence).Msg("Published bridge message")
}

func (n *Network) nextSequence(chain uint16) uint64 {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.sequences[chain]
}

func (n *Network) claim(chain uint16, sequence uint64) {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.claims[claimKey{chain, sequence}] = true
	if n.journal != nil {
		if err := n.journal.StoreClaim(chain, sequence); err != nil {
			log.Error().Err(err).Uint16("chain", chain).Uint64("sequence", sequence).Msg("Failed journaling bridge claim")
		}
	}
}

func (n *Network) isClaimed(chain uint16, sequence uint64) bool {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.claims[claimKey{chain, sequence}]
}

func (n *Network) verify(vaa *VAA) error {
	n.lock.Lock()
	defer n.lock.Unlock()

	published, ok := n.published[claimKey{vaa.EmitterChain, vaa.Sequence}]
	if !ok || published.EmitterAddress != vaa.EmitterAddress || !bytes.Equal(published.Payload, vaa.Payload) {
		return ErrUnknownVAA
	}
	return nil
}

// pending returns published messages to chain that were not claimed yet,
// ordered by emitter chain and sequence.
func (n *Network) pending(chain uint16) []*VAA {
	n.lock.Lock()
	defer n.lock.Unlock()

	emitters := maps.Keys(n.sequences)
	slices.Sort(emitters)

	vaas := make([]*VAA, 0)
	for _, emitter := range emitters {
		for seq := uint64(0); seq < n.sequences[emitter]; seq++ {
			key := claimKey{emitter, seq}
			vaa, ok := n.published[key]
			if !ok || n.claims[key] {
				continue
			}
			t, err := vaa.Transfer()
			if err != nil || t.ToChain != chain {
				continue
			}
			vaas = append(vaas, vaa)
		}
	}
	return vaas
}

// Endpoint is the bridge program of a single chain on a Network.
type Endpoint struct {
	network      *Network
	chain        uint16
	program      ledger.Address
	custody      ledger.Address
	feeCollector ledger.Address
	assets       AssetRegistry

	wrappedLock sync.RWMutex
	wrapped     map[ledger.Address]attestation
}

func (e *Endpoint) Chain() uint16 {
	return e.chain
}

// Custody is the account holding locked native assets.
func (e *Endpoint) Custody() ledger.Address {
	return e.custody
}

func (e *Endpoint) FeeCollector() ledger.Address {
	return e.feeCollector
}

func (e *Endpoint) Fee() uint64 {
	return e.network.fee
}

// WrappedAsset returns the local representation of a foreign asset.
func (e *Endpoint) WrappedAsset(chain uint16, asset ledger.Address) ledger.Address {
	return ledger.DeriveAddress(e.program, []byte("wrapped"), binary.BigEndian.AppendUint16(nil, chain), asset[:])
}

func (e *Endpoint) registerWrapped(a attestation) {
	if a.chain == e.chain {
		return
	}
	decimals := a.decimals
	if decimals > Decimals {
		decimals = Decimals
	}
	wrapped := e.WrappedAsset(a.chain, a.asset)

	e.wrappedLock.Lock()
	e.wrapped[wrapped] = a
	e.wrappedLock.Unlock()

	e.assets.RegisterAsset(wrapped, decimals)
}

func (e *Endpoint) origin(asset ledger.Address) (attestation, bool) {
	e.wrappedLock.RLock()
	defer e.wrappedLock.RUnlock()
	a, ok := e.wrapped[asset]
	return a, ok
}

// PostMessage locks or burns the transferred asset and publishes the
// message once tx commits. The returned sequence is the one the message is
// published with.
func (e *Endpoint) PostMessage(ctx context.Context, tx ledger.Tx, t OutboundTransfer) (uint64, error) {
	if t.ToChain == e.chain {
		return 0, ErrWrongChain
	}
	if err := tx.Transfer(ledger.NativeAsset, t.Payer, e.feeCollector, e.network.fee); err != nil {
		return 0, fmt.Errorf("bridge fee: %w", err)
	}
	decimals, err := tx.Decimals(t.Asset)
	if err != nil {
		return 0, err
	}

	tokenChain, tokenAddress := e.chain, t.Asset
	if a, ok := e.origin(t.Asset); ok {
		tokenChain, tokenAddress = a.chain, a.asset
		err = tx.Burn(t.Asset, t.From, t.Amount)
	} else {
		err = tx.Transfer(t.Asset, t.From, e.custody, t.Amount)
	}
	if err != nil {
		return 0, err
	}

	transfer := &TransferWithPayload{
		Amount:       uint256.NewInt(NormalizeAmount(t.Amount, decimals)),
		TokenAddress: tokenAddress,
		TokenChain:   tokenChain,
		To:           t.To,
		ToChain:      t.ToChain,
		FromAddress:  t.Sender,
		Payload:      t.Payload,
	}
	vaa := &VAA{
		EmitterChain:   e.chain,
		EmitterAddress: e.program,
		Sequence:       e.network.nextSequence(e.chain),
		Payload:        transfer.Encode(),
	}
	tx.OnCommit(func() { e.network.publish(vaa) })
	return vaa.Sequence, nil
}

// RedeemTransfer releases or mints the transferred asset into to. Only
// redeemer, the contract the transfer was addressed to, may redeem.
func (e *Endpoint) RedeemTransfer(ctx context.Context, tx ledger.Tx, vaa *VAA, redeemer, to ledger.Address) (*RedeemedTransfer, error) {
	if e.network.isClaimed(vaa.EmitterChain, vaa.Sequence) {
		return nil, ErrAlreadyClaimed
	}
	if err := e.network.verify(vaa); err != nil {
		return nil, err
	}
	t, err := vaa.Transfer()
	if err != nil {
		return nil, err
	}
	if t.ToChain != e.chain {
		return nil, ErrWrongChain
	}
	if t.To != redeemer {
		return nil, ErrWrongRedeemer
	}
	if !t.Amount.IsUint64() {
		return nil, ErrAmountOverflow
	}

	native := t.TokenChain == e.chain
	asset := t.TokenAddress
	if !native {
		asset = e.WrappedAsset(t.TokenChain, t.TokenAddress)
	}
	decimals, err := tx.Decimals(asset)
	if err != nil {
		return nil, err
	}
	amount, err := DenormalizeAmount(t.Amount.Uint64(), decimals)
	if err != nil {
		return nil, err
	}
	if native {
		err = tx.Transfer(asset, e.custody, to, amount)
	} else {
		err = tx.Mint(asset, to, amount)
	}
	if err != nil {
		return nil, err
	}

	tx.OnCommit(func() { e.network.claim(vaa.EmitterChain, vaa.Sequence) })
	return &RedeemedTransfer{
		Asset:            asset,
		NormalizedAmount: t.Amount.Uint64(),
		Amount:           amount,
		FromChain:        vaa.EmitterChain,
		FromAddress:      t.FromAddress,
		Payload:          t.Payload,
	}, nil
}

func (e *Endpoint) IsRedeemed(chain uint16, sequence uint64) (bool, error) {
	return e.network.isClaimed(chain, sequence), nil
}

// Pending returns attested messages addressed to this chain that were not
// redeemed yet.
func (e *Endpoint) Pending(ctx context.Context) ([]*VAA, error) {
	return e.network.pending(e.chain), nil
}
