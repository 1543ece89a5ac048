// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package app_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/ChainSafe/omniswap-relayer/app"
	"github.com/ChainSafe/omniswap-relayer/chains"
	"github.com/ChainSafe/omniswap-relayer/chains/bridge"
	"github.com/ChainSafe/omniswap-relayer/chains/dex"
	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ChainSafe/omniswap-relayer/config"
	"github.com/ChainSafe/omniswap-relayer/config/relayer"
	"github.com/ChainSafe/omniswap-relayer/cross"
	"github.com/ChainSafe/omniswap-relayer/lvldb"
	"github.com/ChainSafe/omniswap-relayer/relayer/settlement"
	"github.com/ChainSafe/omniswap-relayer/state"
	"github.com/ChainSafe/omniswap-relayer/store"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/suite"
)

var (
	owner   = ledger.Address{0x0a}
	proxy   = ledger.Address{0x0c}
	program = ledger.Address{0x51}
	foreign = ledger.Address{0x52}
	payer   = ledger.Address{0x0b}
	usdc    = ledger.Address{0xc1}
	pool    = ledger.Address{0xd1}
)

type NodeTestSuite struct {
	suite.Suite

	db  *lvldb.LVLDB
	cfg *config.Config
}

func TestRunNodeTestSuite(t *testing.T) {
	suite.Run(t, new(NodeTestSuite))
}

func (s *NodeTestSuite) SetupTest() {
	db, err := lvldb.NewMemLvlDB()
	s.Nil(err)
	s.db = db
	s.cfg = &config.Config{
		RelayerConfig: relayer.RelayerConfig{
			LocalChain: 1,
			ProgramID:  program,
			FeeConfig: relayer.FeeConfig{
				Owner:           owner,
				Beneficiary:     owner,
				Proxy:           proxy,
				SoFee:           1_000_000,
				ActualReserve:   100_000_000,
				EstimateReserve: 100_000_000,
				BridgeFee:       1000,
			},
		},
		ForeignContracts: []config.ForeignContractConfig{{
			Contract: state.ForeignContract{
				Chain:      30,
				Address:    foreign,
				BaseGas:    uint256.NewInt(700_000),
				GasPerByte: uint256.NewInt(68),
			},
			PriceManagerOwner: owner,
			PriceRatio:        100_000_000,
		}},
		Genesis: config.GenesisConfig{
			Assets:   []config.AssetConfig{{Address: usdc, Decimals: 6}},
			Balances: []ledger.Balance{{Owner: payer, Asset: ledger.NativeAsset, Amount: 10_000_000_000}},
			Attestations: []config.AttestationConfig{{Chain: 30, Asset: foreign, Decimals: 18}},
			Pools: []config.PoolConfig{{
				Address:  pool,
				AssetA:   usdc,
				AssetB:   ledger.NativeAsset,
				FeeRate:  3000,
				ReserveA: 1_000_000,
				ReserveB: 2_000_000,
			}},
		},
	}
}

func (s *NodeTestSuite) request() settlement.CrossRequest {
	soData := &cross.SoData{
		TransactionID:      make([]byte, 32),
		Receiver:           foreign[:],
		SourceChainID:      chains.ChainIDSolana,
		SendingAssetID:     usdc[:],
		DestinationChainID: chains.ChainIDBase,
		ReceivingAssetID:   foreign[:],
		Amount:             uint256.NewInt(1000),
	}
	wormhole := &cross.WormholeData{
		DstChainID:     chains.ChainIDBase,
		DstMaxGasPrice: uint256.NewInt(10_000_000_000),
		WormholeFee:    uint256.NewInt(100_000_000),
		DstSoDiamond:   foreign[:],
	}
	return settlement.CrossRequest{
		SoData:       soData.EncodeNormalized(),
		SwapDataSrc:  cross.EncodeNormalizedSwapData(nil),
		WormholeData: wormhole.EncodeNormalized(),
		SwapDataDst:  cross.EncodeNormalizedSwapData(nil),
	}
}

func (s *NodeTestSuite) TearDownTest() {
	s.Nil(s.db.Close())
}

func (s *NodeTestSuite) Test_InitializesRegistryFromConfig() {
	node, err := app.NewNode(s.cfg, s.db, bridge.NewNetwork(1000), settlement.LogSink{})

	s.Nil(err)
	redeemer, err := node.Registry.RedeemerConfig()
	s.Nil(err)
	s.Equal(proxy, redeemer.Proxy)
	fc, err := node.Registry.ForeignContract(30)
	s.Nil(err)
	s.Equal(foreign, fc.Address)
	s.Equal(uint16(1), node.Engine.LocalChain())
	s.Equal(program, node.Engine.ProgramID())
}

func (s *NodeTestSuite) Test_PersistedStateWins() {
	node, err := app.NewNode(s.cfg, s.db, bridge.NewNetwork(1000), settlement.LogSink{})
	s.Nil(err)
	s.Nil(node.Registry.SetPriceRatio(owner, 30, 42, 2))

	s.cfg.RelayerConfig.FeeConfig.Proxy = ledger.Address{0xff}
	restarted, err := app.NewNode(s.cfg, s.db, bridge.NewNetwork(1000), settlement.LogSink{})

	s.Nil(err)
	pm, err := restarted.Registry.PriceManager(30)
	s.Nil(err)
	s.Equal(uint64(42), pm.CurrentPriceRatio)
	redeemer, err := restarted.Registry.RedeemerConfig()
	s.Nil(err)
	s.Equal(proxy, redeemer.Proxy)
}

func (s *NodeTestSuite) Test_AppliesGenesis() {
	node, err := app.NewNode(s.cfg, s.db, bridge.NewNetwork(1000), settlement.LogSink{})

	s.Nil(err)
	s.Equal(uint64(10_000_000_000), node.Ledger.Balance(payer, ledger.NativeAsset))
	vault := dex.NewLocalPool(pool, usdc, ledger.NativeAsset, 3000).Vault()
	s.Equal(uint64(1_000_000), node.Ledger.Balance(vault, usdc))
	s.Equal(uint64(2_000_000), node.Ledger.Balance(vault, ledger.NativeAsset))
	// the attested asset is known to the ledger
	s.Nil(node.Ledger.Fund(payer, node.Endpoint.WrappedAsset(30, foreign), 1))
}

func (s *NodeTestSuite) Test_RequestSurvivesRestart() {
	node, err := app.NewNode(s.cfg, s.db, bridge.NewNetwork(1000), settlement.LogSink{})
	s.Nil(err)
	staged, err := node.Engine.PostRequest(context.Background(), payer, s.request())
	s.Nil(err)
	s.Equal(uint64(10_000_000_000)-staged.Deposit, node.Ledger.Balance(payer, ledger.NativeAsset))

	// genesis is not minted again into a persisted ledger
	s.cfg.Genesis.Balances[0].Amount = 1
	restarted, err := app.NewNode(s.cfg, s.db, bridge.NewNetwork(1000), settlement.LogSink{})
	s.Nil(err)
	s.Equal(staged.Deposit, restarted.Ledger.Balance(store.RequestAccount(program, staged.Nonce), ledger.NativeAsset))

	s.Nil(restarted.Engine.CancelRequest(context.Background(), payer, staged.Nonce))
	s.Equal(uint64(10_000_000_000), restarted.Ledger.Balance(payer, ledger.NativeAsset))
}

func (s *NodeTestSuite) Test_LostDepositRefusesToStart() {
	node, err := app.NewNode(s.cfg, s.db, bridge.NewNetwork(1000), settlement.LogSink{})
	s.Nil(err)
	staged, err := node.Engine.PostRequest(context.Background(), payer, s.request())
	s.Nil(err)
	account := store.RequestAccount(program, staged.Nonce)
	s.Nil(s.db.DeleteByKey([]byte(fmt.Sprintf(store.BalanceKey, account.Hex(), ledger.NativeAsset.Hex()))))

	_, err = app.NewNode(s.cfg, s.db, bridge.NewNetwork(1000), settlement.LogSink{})

	s.ErrorIs(err, app.ErrStrandedRequests)
}
