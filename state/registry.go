// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package state

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ChainSafe/omniswap-relayer/chains"
	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"
)

type SnapshotStorer interface {
	StoreSnapshot(snapshot *Snapshot) error
	// Snapshot returns nil when nothing was stored yet.
	Snapshot() (*Snapshot, error)
}

// Registry holds the admin records of the program. Every setter checks the
// caller against the owner of the record it modifies and persists the new
// state before it becomes visible.
type Registry struct {
	lock       sync.RWMutex
	localChain uint16
	snapshot   *Snapshot
	storer     SnapshotStorer
}

func NewRegistry(localChain uint16, storer SnapshotStorer) (*Registry, error) {
	snapshot, err := storer.Snapshot()
	if err != nil {
		return nil, err
	}
	return &Registry{
		localChain: localChain,
		snapshot:   snapshot,
		storer:     storer,
	}, nil
}

// Initialize creates the fee and redeemer configs owned by owner.
func (r *Registry) Initialize(owner, beneficiary, proxy ledger.Address, soFee, actualReserve, estimateReserve uint64) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.snapshot != nil {
		return ErrRegistryAlreadyInitiated
	}
	snapshot := &Snapshot{
		FeeConfig: FeeConfig{
			Owner:           owner,
			Beneficiary:     beneficiary,
			SoFee:           soFee,
			ActualReserve:   actualReserve,
			EstimateReserve: estimateReserve,
		},
		RedeemerConfig: RedeemerConfig{Owner: owner, Proxy: proxy},
		PriceManagers:  make(map[uint16]*PriceManager),
	}
	return r.commit(snapshot)
}

func (r *Registry) Initialized() bool {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.snapshot != nil
}

func (r *Registry) Owner() (ledger.Address, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.snapshot == nil {
		return ledger.Address{}, ErrRegistryNotInitialized
	}
	return r.snapshot.FeeConfig.Owner, nil
}

// RegisterForeignContract registers or replaces the contract of fc.Chain and
// resets its price manager.
func (r *Registry) RegisterForeignContract(caller ledger.Address, fc ForeignContract, priceManagerOwner ledger.Address, initPriceRatio, now uint64) error {
	if fc.Chain == 0 || fc.Chain == r.localChain || fc.Address.IsZero() {
		return fmt.Errorf("%w: chain %d address %s", ErrInvalidForeignContract, fc.Chain, fc.Address.Hex())
	}
	if fc.BaseGas == nil {
		fc.BaseGas = new(uint256.Int)
	}
	if fc.GasPerByte == nil {
		fc.GasPerByte = new(uint256.Int)
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	snapshot, err := r.ownedSnapshot(caller, func(s *Snapshot) ledger.Address { return s.FeeConfig.Owner })
	if err != nil {
		return err
	}

	contracts := make([]*ForeignContract, 0, len(snapshot.ForeignContracts)+1)
	for _, c := range snapshot.ForeignContracts {
		if c.Chain != fc.Chain {
			contracts = append(contracts, c)
		}
	}
	contracts = append(contracts, &fc)
	sort.Slice(contracts, func(i, j int) bool { return contracts[i].Chain < contracts[j].Chain })
	snapshot.ForeignContracts = contracts
	snapshot.PriceManagers[fc.Chain] = &PriceManager{
		Owner:               priceManagerOwner,
		CurrentPriceRatio:   initPriceRatio,
		LastUpdateTimestamp: now,
	}

	if err := r.commit(snapshot); err != nil {
		return err
	}
	log.Info().Uint16("chain", fc.Chain).Str("address", fc.Address.Hex()).Msgf("Registered foreign contract on %s", chains.ChainName(fc.Chain))
	return nil
}

func (r *Registry) ForeignContract(chain uint16) (*ForeignContract, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if r.snapshot == nil {
		return nil, ErrRegistryNotInitialized
	}
	for _, c := range r.snapshot.ForeignContracts {
		if c.Chain == chain {
			fc := *c
			return &fc, nil
		}
	}
	return nil, fmt.Errorf("%w: chain %d", ErrForeignContractNotFound, chain)
}

func (r *Registry) ForeignContracts() []ForeignContract {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if r.snapshot == nil {
		return nil
	}
	contracts := make([]ForeignContract, len(r.snapshot.ForeignContracts))
	for i, c := range r.snapshot.ForeignContracts {
		contracts[i] = *c
	}
	return contracts
}

// SetPriceRatio updates the price ratio of chain, only its price manager
// owner may call it.
func (r *Registry) SetPriceRatio(caller ledger.Address, chain uint16, ratio, now uint64) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.snapshot == nil {
		return ErrRegistryNotInitialized
	}
	pm, ok := r.snapshot.PriceManagers[chain]
	if !ok {
		return fmt.Errorf("%w: chain %d", ErrPriceManagerNotFound, chain)
	}
	if pm.Owner != caller {
		return ErrOwnerOnly
	}

	snapshot := r.snapshot.clone()
	snapshot.PriceManagers[chain] = &PriceManager{
		Owner:               pm.Owner,
		CurrentPriceRatio:   ratio,
		LastUpdateTimestamp: now,
	}
	return r.commit(snapshot)
}

func (r *Registry) PriceManager(chain uint16) (*PriceManager, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if r.snapshot == nil {
		return nil, ErrRegistryNotInitialized
	}
	pm, ok := r.snapshot.PriceManagers[chain]
	if !ok {
		return nil, fmt.Errorf("%w: chain %d", ErrPriceManagerNotFound, chain)
	}
	cp := *pm
	return &cp, nil
}

func (r *Registry) SetSoFee(caller ledger.Address, soFee uint64) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	snapshot, err := r.ownedSnapshot(caller, func(s *Snapshot) ledger.Address { return s.FeeConfig.Owner })
	if err != nil {
		return err
	}
	snapshot.FeeConfig.SoFee = soFee
	return r.commit(snapshot)
}

func (r *Registry) SetWormholeReserve(caller ledger.Address, actualReserve, estimateReserve uint64) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	snapshot, err := r.ownedSnapshot(caller, func(s *Snapshot) ledger.Address { return s.FeeConfig.Owner })
	if err != nil {
		return err
	}
	snapshot.FeeConfig.ActualReserve = actualReserve
	snapshot.FeeConfig.EstimateReserve = estimateReserve
	return r.commit(snapshot)
}

func (r *Registry) SetRedeemProxy(caller, proxy ledger.Address) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	snapshot, err := r.ownedSnapshot(caller, func(s *Snapshot) ledger.Address { return s.RedeemerConfig.Owner })
	if err != nil {
		return err
	}
	snapshot.RedeemerConfig.Proxy = proxy
	return r.commit(snapshot)
}

func (r *Registry) FeeConfig() (FeeConfig, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.snapshot == nil {
		return FeeConfig{}, ErrRegistryNotInitialized
	}
	return r.snapshot.FeeConfig, nil
}

func (r *Registry) RedeemerConfig() (RedeemerConfig, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.snapshot == nil {
		return RedeemerConfig{}, ErrRegistryNotInitialized
	}
	return r.snapshot.RedeemerConfig, nil
}

// ownedSnapshot returns a copy of the current snapshot when caller owns the
// record selected by owner. Callers hold the write lock.
func (r *Registry) ownedSnapshot(caller ledger.Address, owner func(s *Snapshot) ledger.Address) (*Snapshot, error) {
	if r.snapshot == nil {
		return nil, ErrRegistryNotInitialized
	}
	if owner(r.snapshot) != caller {
		return nil, ErrOwnerOnly
	}
	return r.snapshot.clone(), nil
}

func (r *Registry) commit(snapshot *Snapshot) error {
	if err := r.storer.StoreSnapshot(snapshot); err != nil {
		return err
	}
	r.snapshot = snapshot
	return nil
}

func (s *Snapshot) clone() *Snapshot {
	cp := &Snapshot{
		FeeConfig:        s.FeeConfig,
		RedeemerConfig:   s.RedeemerConfig,
		ForeignContracts: append([]*ForeignContract{}, s.ForeignContracts...),
		PriceManagers:    make(map[uint16]*PriceManager, len(s.PriceManagers)),
	}
	for chain, pm := range s.PriceManagers {
		cp.PriceManagers[chain] = pm
	}
	return cp
}
