// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package ledger

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sync"

	"golang.org/x/exp/slices"
)

type balanceKey struct {
	owner Address
	asset Address
}

// Memory is an in memory ledger used by the local backend and tests.
// Commit hooks run while the ledger lock is held and must not call back
// into the ledger.
type Memory struct {
	lock     sync.Mutex
	balances map[balanceKey]uint64
	assets   map[Address]uint8
}

func NewMemory() *Memory {
	return &Memory{
		balances: make(map[balanceKey]uint64),
		assets:   map[Address]uint8{NativeAsset: 9},
	}
}

// RegisterAsset registers an asset with its decimals.
func (m *Memory) RegisterAsset(asset Address, decimals uint8) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.assets[asset] = decimals
}

// Fund credits owner outside of any transaction.
func (m *Memory) Fund(owner, asset Address, amount uint64) error {
	return m.Atomic(context.Background(), func(tx Tx) error {
		return tx.Mint(asset, owner, amount)
	})
}

func (m *Memory) Balance(owner, asset Address) uint64 {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.balances[balanceKey{owner, asset}]
}

// Balances returns every non zero balance ordered by owner and asset.
func (m *Memory) Balances() []Balance {
	m.lock.Lock()
	defer m.lock.Unlock()
	return sortedBalances(m.balances)
}

// Restore replaces the balances of the ledger with balances, used to load
// persisted state on startup.
func (m *Memory) Restore(balances []Balance) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.balances = make(map[balanceKey]uint64, len(balances))
	for _, b := range balances {
		if b.Amount != 0 {
			m.balances[balanceKey{b.Owner, b.Asset}] = b.Amount
		}
	}
}

func (m *Memory) Atomic(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	tx := newMemTx(m, nil)
	if err := fn(tx); err != nil {
		return err
	}
	for k, v := range tx.writes {
		if v == 0 {
			delete(m.balances, k)
			continue
		}
		m.balances[k] = v
	}
	for _, hook := range tx.hooks {
		hook()
	}
	return nil
}

type memTx struct {
	ledger *Memory
	parent *memTx
	writes map[balanceKey]uint64
	hooks  []func()
}

func newMemTx(ledger *Memory, parent *memTx) *memTx {
	return &memTx{
		ledger: ledger,
		parent: parent,
		writes: make(map[balanceKey]uint64),
	}
}

func (t *memTx) get(k balanceKey) uint64 {
	for tx := t; tx != nil; tx = tx.parent {
		if v, ok := tx.writes[k]; ok {
			return v
		}
	}
	return t.ledger.balances[k]
}

func (t *memTx) Balance(owner, asset Address) uint64 {
	return t.get(balanceKey{owner, asset})
}

func (t *memTx) Decimals(asset Address) (uint8, error) {
	d, ok := t.ledger.assets[asset]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownAsset, asset)
	}
	return d, nil
}

func (t *memTx) credit(asset, to Address, amount uint64) error {
	k := balanceKey{to, asset}
	current := t.get(k)
	if current > math.MaxUint64-amount {
		return ErrBalanceOverflow
	}
	t.writes[k] = current + amount
	return nil
}

func (t *memTx) debit(asset, from Address, amount uint64) error {
	k := balanceKey{from, asset}
	current := t.get(k)
	if current < amount {
		return fmt.Errorf("%w: %s holds %d of %s, needs %d", ErrInsufficientFunds, from, current, asset, amount)
	}
	t.writes[k] = current - amount
	return nil
}

func (t *memTx) Transfer(asset, from, to Address, amount uint64) error {
	if _, err := t.Decimals(asset); err != nil {
		return err
	}
	if err := t.debit(asset, from, amount); err != nil {
		return err
	}
	return t.credit(asset, to, amount)
}

func (t *memTx) Mint(asset, to Address, amount uint64) error {
	if _, err := t.Decimals(asset); err != nil {
		return err
	}
	return t.credit(asset, to, amount)
}

func (t *memTx) Burn(asset, from Address, amount uint64) error {
	if _, err := t.Decimals(asset); err != nil {
		return err
	}
	return t.debit(asset, from, amount)
}

func (t *memTx) Nested(fn func(tx Tx) error) error {
	child := newMemTx(t.ledger, t)
	if err := fn(child); err != nil {
		return err
	}
	for k, v := range child.writes {
		t.writes[k] = v
	}
	t.hooks = append(t.hooks, child.hooks...)
	return nil
}

func (t *memTx) OnCommit(fn func()) {
	t.hooks = append(t.hooks, fn)
}

func (t *memTx) Changes() []Balance {
	return sortedBalances(t.writes)
}

func sortedBalances(m map[balanceKey]uint64) []Balance {
	balances := make([]Balance, 0, len(m))
	for k, v := range m {
		balances = append(balances, Balance{Owner: k.owner, Asset: k.asset, Amount: v})
	}
	slices.SortFunc(balances, func(a, b Balance) bool {
		if c := bytes.Compare(a.Owner[:], b.Owner[:]); c != 0 {
			return c < 0
		}
		return bytes.Compare(a.Asset[:], b.Asset[:]) < 0
	})
	return balances
}
