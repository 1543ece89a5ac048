// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"fmt"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
)

// GenesisConfig is the initial state of a devnet ledger. Assets, attestations
// and pools are registered on every start, balances are minted only into a
// fresh ledger.
type GenesisConfig struct {
	Assets       []AssetConfig
	Balances     []ledger.Balance
	Attestations []AttestationConfig
	Pools        []PoolConfig
}

type AssetConfig struct {
	Address  ledger.Address
	Decimals uint8
}

// AttestationConfig makes a foreign asset redeemable on the local chain.
type AttestationConfig struct {
	Chain    uint16
	Asset    ledger.Address
	Decimals uint8
}

type PoolConfig struct {
	Address  ledger.Address
	AssetA   ledger.Address
	AssetB   ledger.Address
	FeeRate  uint64
	ReserveA uint64
	ReserveB uint64
}

type RawGenesisConfig struct {
	Assets []struct {
		Address  string `mapstructure:"address" json:"address"`
		Decimals uint8  `mapstructure:"decimals" json:"decimals"`
	} `mapstructure:"assets" json:"assets"`
	Balances []struct {
		Owner  string `mapstructure:"owner" json:"owner"`
		Asset  string `mapstructure:"asset" json:"asset"`
		Amount uint64 `mapstructure:"amount" json:"amount"`
	} `mapstructure:"balances" json:"balances"`
	Attestations []struct {
		Chain    uint16 `mapstructure:"chain" json:"chain"`
		Asset    string `mapstructure:"asset" json:"asset"`
		Decimals uint8  `mapstructure:"decimals" json:"decimals"`
	} `mapstructure:"attestations" json:"attestations"`
	Pools []struct {
		Address  string `mapstructure:"address" json:"address"`
		AssetA   string `mapstructure:"assetA" json:"assetA"`
		AssetB   string `mapstructure:"assetB" json:"assetB"`
		FeeRate  uint64 `mapstructure:"feeRate" json:"feeRate"`
		ReserveA uint64 `mapstructure:"reserveA" json:"reserveA"`
		ReserveB uint64 `mapstructure:"reserveB" json:"reserveB"`
	} `mapstructure:"pools" json:"pools"`
}

func newGenesisConfig(raw RawGenesisConfig) (GenesisConfig, error) {
	genesis := GenesisConfig{}
	for _, a := range raw.Assets {
		address, err := ledger.HexToAddress(a.Address)
		if err != nil {
			return genesis, fmt.Errorf("invalid genesis asset: %w", err)
		}
		if address == ledger.NativeAsset {
			return genesis, fmt.Errorf("genesis asset %s is the native asset", address)
		}
		genesis.Assets = append(genesis.Assets, AssetConfig{Address: address, Decimals: a.Decimals})
	}
	for _, b := range raw.Balances {
		owner, err := ledger.HexToAddress(b.Owner)
		if err != nil {
			return genesis, fmt.Errorf("invalid genesis balance owner: %w", err)
		}
		asset, err := assetOrNative(b.Asset)
		if err != nil {
			return genesis, fmt.Errorf("invalid genesis balance asset: %w", err)
		}
		genesis.Balances = append(genesis.Balances, ledger.Balance{Owner: owner, Asset: asset, Amount: b.Amount})
	}
	for _, a := range raw.Attestations {
		if a.Chain == 0 {
			return genesis, fmt.Errorf("genesis attestation 'chain' must be provided")
		}
		asset, err := ledger.HexToAddress(a.Asset)
		if err != nil {
			return genesis, fmt.Errorf("invalid genesis attestation of chain %d: %w", a.Chain, err)
		}
		genesis.Attestations = append(genesis.Attestations, AttestationConfig{Chain: a.Chain, Asset: asset, Decimals: a.Decimals})
	}
	for _, p := range raw.Pools {
		address, err := ledger.HexToAddress(p.Address)
		if err != nil {
			return genesis, fmt.Errorf("invalid genesis pool: %w", err)
		}
		assetA, err := assetOrNative(p.AssetA)
		if err != nil {
			return genesis, fmt.Errorf("invalid asset A of pool %s: %w", address, err)
		}
		assetB, err := assetOrNative(p.AssetB)
		if err != nil {
			return genesis, fmt.Errorf("invalid asset B of pool %s: %w", address, err)
		}
		if assetA == assetB {
			return genesis, fmt.Errorf("pool %s swaps %s with itself", address, assetA)
		}
		genesis.Pools = append(genesis.Pools, PoolConfig{
			Address:  address,
			AssetA:   assetA,
			AssetB:   assetB,
			FeeRate:  p.FeeRate,
			ReserveA: p.ReserveA,
			ReserveB: p.ReserveB,
		})
	}
	return genesis, nil
}

// an empty asset is the native asset
func assetOrNative(s string) (ledger.Address, error) {
	if s == "" {
		return ledger.NativeAsset, nil
	}
	return ledger.HexToAddress(s)
}
