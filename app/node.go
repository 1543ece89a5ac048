// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/ChainSafe/omniswap-relayer/chains"
	"github.com/ChainSafe/omniswap-relayer/chains/bridge"
	"github.com/ChainSafe/omniswap-relayer/chains/dex"
	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ChainSafe/omniswap-relayer/config"
	"github.com/ChainSafe/omniswap-relayer/lvldb"
	"github.com/ChainSafe/omniswap-relayer/relayer/settlement"
	"github.com/ChainSafe/omniswap-relayer/state"
	"github.com/ChainSafe/omniswap-relayer/store"
	"github.com/rs/zerolog/log"
)

// ErrStrandedRequests is returned when staged requests hold deposits the
// restored ledger does not.
var ErrStrandedRequests = errors.New("staged requests without deposits")

// Node is the settlement program of the local chain connected to a loopback
// bridge network.
type Node struct {
	Ledger    *ledger.Memory
	Endpoint  *bridge.Endpoint
	Registry  *state.Registry
	Venues    *dex.Registry
	Transfers *store.TransferStore
	Engine    *settlement.Engine
}

func NewNode(cfg *config.Config, db *lvldb.LVLDB, network *bridge.Network, events settlement.EventSink) (*Node, error) {
	rc := cfg.RelayerConfig
	registry, err := state.NewRegistry(rc.LocalChain, store.NewStateStore(db))
	if err != nil {
		return nil, err
	}
	if err := initRegistry(registry, cfg); err != nil {
		return nil, err
	}

	if err := network.Restore(store.NewBridgeStore(db)); err != nil {
		return nil, err
	}

	l := ledger.NewMemory()
	for _, a := range cfg.Genesis.Assets {
		l.RegisterAsset(a.Address, a.Decimals)
	}
	endpoint := network.Connect(rc.LocalChain, l)
	for _, a := range cfg.Genesis.Attestations {
		network.AttestToken(a.Chain, a.Asset, a.Decimals)
	}

	whirlpool := dex.NewWhirlpool()
	pools := make([]*dex.LocalPool, 0, len(cfg.Genesis.Pools))
	for _, p := range cfg.Genesis.Pools {
		pool := dex.NewLocalPool(p.Address, p.AssetA, p.AssetB, p.FeeRate)
		whirlpool.AddPool(p.Address, pool)
		pools = append(pools, pool)
	}

	balances := store.NewLedgerStore(db)
	if err := loadLedger(l, balances, cfg.Genesis, pools); err != nil {
		return nil, err
	}
	requests := store.NewRequestStore(db, rc.ProgramID)
	if err := checkDeposits(l, requests, rc.ProgramID); err != nil {
		return nil, err
	}

	venues := dex.NewRegistry(whirlpool)
	transfers := store.NewTransferStore(db)
	engine := settlement.NewEngine(
		rc.LocalChain,
		rc.ProgramID,
		l,
		endpoint,
		registry,
		venues,
		requests,
		transfers,
		balances,
		db,
		events,
	)

	log.Info().Uint16("chain", rc.LocalChain).Str("program", rc.ProgramID.Hex()).Msgf("Started settlement program on %s", chains.ChainName(rc.LocalChain))
	return &Node{
		Ledger:    l,
		Endpoint:  endpoint,
		Registry:  registry,
		Venues:    venues,
		Transfers: transfers,
		Engine:    engine,
	}, nil
}

// initRegistry initializes a fresh registry from configuration and registers
// configured foreign contracts that are not registered yet. Persisted state
// wins over configuration.
func initRegistry(registry *state.Registry, cfg *config.Config) error {
	fc := cfg.RelayerConfig.FeeConfig
	if !registry.Initialized() {
		err := registry.Initialize(fc.Owner, fc.Beneficiary, fc.Proxy, fc.SoFee, fc.ActualReserve, fc.EstimateReserve)
		if err != nil {
			return err
		}
	}
	owner, err := registry.Owner()
	if err != nil {
		return err
	}

	for _, c := range cfg.ForeignContracts {
		_, err := registry.ForeignContract(c.Contract.Chain)
		if err == nil {
			continue
		}
		if !errors.Is(err, state.ErrForeignContractNotFound) {
			return err
		}
		err = registry.RegisterForeignContract(owner, c.Contract, c.PriceManagerOwner, c.PriceRatio, uint64(time.Now().Unix()))
		if err != nil {
			return err
		}
	}
	return nil
}

// loadLedger restores persisted balances or, on a fresh store, mints the
// genesis balances and pool reserves.
func loadLedger(l *ledger.Memory, ls *store.LedgerStore, genesis config.GenesisConfig, pools []*dex.LocalPool) error {
	persisted, err := ls.Balances()
	if err != nil {
		return err
	}
	if len(persisted) > 0 {
		l.Restore(persisted)
		log.Debug().Int("balances", len(persisted)).Msg("Restored ledger")
		return nil
	}

	for _, b := range genesis.Balances {
		if err := l.Fund(b.Owner, b.Asset, b.Amount); err != nil {
			return fmt.Errorf("genesis balance of %s: %w", b.Owner, err)
		}
	}
	for i, p := range genesis.Pools {
		if err := l.Fund(pools[i].Vault(), p.AssetA, p.ReserveA); err != nil {
			return fmt.Errorf("reserve A of pool %s: %w", p.Address, err)
		}
		if err := l.Fund(pools[i].Vault(), p.AssetB, p.ReserveB); err != nil {
			return fmt.Errorf("reserve B of pool %s: %w", p.Address, err)
		}
	}
	return ls.StoreBalances(l.Balances())
}

// checkDeposits refuses a ledger that lost the deposits of staged requests,
// they could never be cancelled or executed.
func checkDeposits(l *ledger.Memory, requests *store.RequestStore, programID ledger.Address) error {
	nonces, err := requests.Requests()
	if err != nil {
		return err
	}
	for _, nonce := range nonces {
		req, err := requests.Request(nonce)
		if err != nil {
			return err
		}
		account := store.RequestAccount(programID, nonce)
		if l.Balance(account, ledger.NativeAsset) < req.Deposit {
			return fmt.Errorf("%w: request %d", ErrStrandedRequests, nonce)
		}
	}
	return nil
}

func dbCheck(db *lvldb.LVLDB) func() error {
	return func() error {
		_, err := db.GetByKey([]byte("health"))
		if errors.Is(err, lvldb.ErrNotFound) {
			return nil
		}
		return err
	}
}
