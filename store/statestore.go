// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package store

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/omniswap-relayer/state"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/syndtr/goleveldb/leveldb"
)

var SnapshotKey = "state:snapshot"

type foreignContractRecord struct {
	Chain      uint16
	Address    [32]byte
	BaseGas    [32]byte
	GasPerByte [32]byte
}

type priceManagerRecord struct {
	Chain               uint16
	Owner               [32]byte
	CurrentPriceRatio   uint64
	LastUpdateTimestamp uint64
}

type snapshotRecord struct {
	FeeOwner         [32]byte
	Beneficiary      [32]byte
	SoFee            uint64
	ActualReserve    uint64
	EstimateReserve  uint64
	RedeemerOwner    [32]byte
	Proxy            [32]byte
	ForeignContracts []foreignContractRecord
	PriceManagers    []priceManagerRecord
}

// StateStore persists the admin registry.
type StateStore struct {
	db KeyValueReaderWriter
}

func NewStateStore(db KeyValueReaderWriter) *StateStore {
	return &StateStore{
		db: db,
	}
}

func (ss *StateStore) StoreSnapshot(snapshot *state.Snapshot) error {
	r := &snapshotRecord{
		FeeOwner:        snapshot.FeeConfig.Owner,
		Beneficiary:     snapshot.FeeConfig.Beneficiary,
		SoFee:           snapshot.FeeConfig.SoFee,
		ActualReserve:   snapshot.FeeConfig.ActualReserve,
		EstimateReserve: snapshot.FeeConfig.EstimateReserve,
		RedeemerOwner:   snapshot.RedeemerConfig.Owner,
		Proxy:           snapshot.RedeemerConfig.Proxy,
	}
	for _, fc := range snapshot.ForeignContracts {
		r.ForeignContracts = append(r.ForeignContracts, foreignContractRecord{
			Chain:      fc.Chain,
			Address:    fc.Address,
			BaseGas:    fc.BaseGas.Bytes32(),
			GasPerByte: fc.GasPerByte.Bytes32(),
		})
	}
	for _, fc := range snapshot.ForeignContracts {
		pm, ok := snapshot.PriceManagers[fc.Chain]
		if !ok {
			continue
		}
		r.PriceManagers = append(r.PriceManagers, priceManagerRecord{
			Chain:               fc.Chain,
			Owner:               pm.Owner,
			CurrentPriceRatio:   pm.CurrentPriceRatio,
			LastUpdateTimestamp: pm.LastUpdateTimestamp,
		})
	}

	value, err := rlp.EncodeToBytes(r)
	if err != nil {
		return err
	}
	return ss.db.SetByKey([]byte(SnapshotKey), value)
}

// Snapshot returns the stored registry snapshot or nil if the registry was
// never initialized.
func (ss *StateStore) Snapshot() (*state.Snapshot, error) {
	v, err := ss.db.GetByKey([]byte(SnapshotKey))
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var r snapshotRecord
	if err := rlp.DecodeBytes(v, &r); err != nil {
		return nil, fmt.Errorf("corrupted state snapshot: %w", err)
	}

	snapshot := &state.Snapshot{
		FeeConfig: state.FeeConfig{
			Owner:           r.FeeOwner,
			Beneficiary:     r.Beneficiary,
			SoFee:           r.SoFee,
			ActualReserve:   r.ActualReserve,
			EstimateReserve: r.EstimateReserve,
		},
		RedeemerConfig: state.RedeemerConfig{
			Owner: r.RedeemerOwner,
			Proxy: r.Proxy,
		},
		ForeignContracts: make([]*state.ForeignContract, 0, len(r.ForeignContracts)),
		PriceManagers:    make(map[uint16]*state.PriceManager, len(r.PriceManagers)),
	}
	for _, fc := range r.ForeignContracts {
		snapshot.ForeignContracts = append(snapshot.ForeignContracts, &state.ForeignContract{
			Chain:      fc.Chain,
			Address:    fc.Address,
			BaseGas:    new(uint256.Int).SetBytes32(fc.BaseGas[:]),
			GasPerByte: new(uint256.Int).SetBytes32(fc.GasPerByte[:]),
		})
	}
	for _, pm := range r.PriceManagers {
		snapshot.PriceManagers[pm.Chain] = &state.PriceManager{
			Owner:               pm.Owner,
			CurrentPriceRatio:   pm.CurrentPriceRatio,
			LastUpdateTimestamp: pm.LastUpdateTimestamp,
		}
	}
	return snapshot, nil
}
