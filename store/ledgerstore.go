// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package store

import (
	"fmt"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/syndtr/goleveldb/leveldb"
)

var BalanceKey = "balance:%s:%s"

type balanceRecord struct {
	Owner  [32]byte
	Asset  [32]byte
	Amount uint64
}

// LedgerStore persists the balances of the host ledger so value moved by
// a step survives a restart together with the records the step wrote.
type LedgerStore struct {
	db KeyValueStore
}

func NewLedgerStore(db KeyValueStore) *LedgerStore {
	return &LedgerStore{
		db: db,
	}
}

// PutBalances adds balances to batch, zero balances are deleted.
func (ls *LedgerStore) PutBalances(batch *leveldb.Batch, balances []ledger.Balance) error {
	for _, b := range balances {
		key := balanceKey(b.Owner, b.Asset)
		if b.Amount == 0 {
			batch.Delete(key)
			continue
		}
		value, err := rlp.EncodeToBytes(&balanceRecord{Owner: b.Owner, Asset: b.Asset, Amount: b.Amount})
		if err != nil {
			return err
		}
		batch.Put(key, value)
	}
	return nil
}

// StoreBalances writes balances outside of a settlement step.
func (ls *LedgerStore) StoreBalances(balances []ledger.Balance) error {
	batch := new(leveldb.Batch)
	if err := ls.PutBalances(batch, balances); err != nil {
		return err
	}
	return ls.db.WriteBatch(batch)
}

// Balances returns every stored balance.
func (ls *LedgerStore) Balances() ([]ledger.Balance, error) {
	keys, err := ls.db.KeysWithPrefix([]byte("balance:"))
	if err != nil {
		return nil, err
	}

	balances := make([]ledger.Balance, 0, len(keys))
	for _, key := range keys {
		v, err := ls.db.GetByKey(key)
		if err != nil {
			return nil, err
		}
		var r balanceRecord
		if err := rlp.DecodeBytes(v, &r); err != nil {
			return nil, fmt.Errorf("corrupted balance %q: %w", key, err)
		}
		balances = append(balances, ledger.Balance{Owner: r.Owner, Asset: r.Asset, Amount: r.Amount})
	}
	return balances, nil
}

func balanceKey(owner, asset ledger.Address) []byte {
	return []byte(fmt.Sprintf(BalanceKey, owner.Hex(), asset.Hex()))
}
