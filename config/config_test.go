// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package config_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ChainSafe/omniswap-relayer/config"
	"github.com/ChainSafe/omniswap-relayer/config/relayer"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

const (
	programID = "0x5100000000000000000000000000000000000000000000000000000000000000"
	owner     = "0x0a00000000000000000000000000000000000000000000000000000000000000"
	proxy     = "0x0c00000000000000000000000000000000000000000000000000000000000000"
	foreign   = "0x5200000000000000000000000000000000000000000000000000000000000000"
)

type GetConfigTestSuite struct {
	suite.Suite
}

func TestRunGetConfigTestSuite(t *testing.T) {
	suite.Run(t, new(GetConfigTestSuite))
}

func (s *GetConfigTestSuite) TearDownTest() {
	os.Clearenv()
}

func (s *GetConfigTestSuite) writeConfig(data map[string]interface{}) string {
	raw, err := json.Marshal(data)
	s.Nil(err)
	path := filepath.Join(s.T().TempDir(), "config.json")
	s.Nil(os.WriteFile(path, raw, 0600))
	return path
}

func address(hex string) ledger.Address {
	a, err := ledger.HexToAddress(hex)
	if err != nil {
		panic(err)
	}
	return a
}

func (s *GetConfigTestSuite) Test_GetConfigFromFile_InvalidPath() {
	_, err := config.GetConfigFromFile("invalid", &config.Config{})

	s.NotNil(err)
}

func (s *GetConfigTestSuite) Test_GetConfigFromFile_MissingProgramID() {
	path := s.writeConfig(map[string]interface{}{
		"relayer": map[string]interface{}{
			"localChain": 1,
			"feeConfig":  map[string]interface{}{"owner": owner},
		},
	})

	_, err := config.GetConfigFromFile(path, &config.Config{})

	s.NotNil(err)
}

func (s *GetConfigTestSuite) Test_GetConfigFromFile_DefaultsApplied() {
	path := s.writeConfig(map[string]interface{}{
		"relayer": map[string]interface{}{
			"localChain": 1,
			"programId":  programID,
			"feeConfig": map[string]interface{}{
				"owner": owner,
				"soFee": 1000000,
			},
		},
		"foreignContracts": []interface{}{
			map[string]interface{}{
				"chain":             30,
				"address":           foreign,
				"baseGas":           700000,
				"gasPerByte":        68,
				"priceManagerOwner": owner,
			},
		},
	})

	cnf, err := config.GetConfigFromFile(path, &config.Config{})

	s.Nil(err)
	s.Equal(relayer.RelayerConfig{
		LogLevel:       zerolog.InfoLevel,
		LogFile:        "out.log",
		APIPort:        9001,
		AllowedOrigins: []string{"*"},
		DBPath:         "./lvldbdata",
		SweepInterval:  10 * time.Second,
		LocalChain:     1,
		ProgramID:      address(programID),
		FeeConfig: relayer.FeeConfig{
			Owner:           address(owner),
			Beneficiary:     address(owner),
			Proxy:           address(owner),
			SoFee:           1000000,
			ActualReserve:   100000000,
			EstimateReserve: 100000000,
		},
	}, cnf.RelayerConfig)
	s.Len(cnf.ForeignContracts, 1)
	s.Equal(uint16(30), cnf.ForeignContracts[0].Contract.Chain)
	s.Equal(address(foreign), cnf.ForeignContracts[0].Contract.Address)
	s.Equal(uint256.NewInt(700000), cnf.ForeignContracts[0].Contract.BaseGas)
	s.Equal(uint64(100000000), cnf.ForeignContracts[0].PriceRatio)
}

func (s *GetConfigTestSuite) Test_GetConfigFromFile_Genesis() {
	path := s.writeConfig(map[string]interface{}{
		"relayer": map[string]interface{}{
			"localChain": 1,
			"programId":  programID,
			"feeConfig":  map[string]interface{}{"owner": owner},
		},
		"genesis": map[string]interface{}{
			"assets": []interface{}{
				map[string]interface{}{"address": foreign, "decimals": 6},
			},
			"balances": []interface{}{
				map[string]interface{}{"owner": owner, "amount": 10000000000},
				map[string]interface{}{"owner": owner, "asset": foreign, "amount": 5000},
			},
			"attestations": []interface{}{
				map[string]interface{}{"chain": 30, "asset": proxy, "decimals": 18},
			},
			"pools": []interface{}{
				map[string]interface{}{"address": proxy, "assetA": foreign, "feeRate": 3000, "reserveA": 100, "reserveB": 200},
			},
		},
	})

	cnf, err := config.GetConfigFromFile(path, &config.Config{})

	s.Nil(err)
	s.Equal(config.GenesisConfig{
		Assets: []config.AssetConfig{{Address: address(foreign), Decimals: 6}},
		Balances: []ledger.Balance{
			{Owner: address(owner), Asset: ledger.NativeAsset, Amount: 10000000000},
			{Owner: address(owner), Asset: address(foreign), Amount: 5000},
		},
		Attestations: []config.AttestationConfig{{Chain: 30, Asset: address(proxy), Decimals: 18}},
		Pools: []config.PoolConfig{{
			Address:  address(proxy),
			AssetA:   address(foreign),
			AssetB:   ledger.NativeAsset,
			FeeRate:  3000,
			ReserveA: 100,
			ReserveB: 200,
		}},
	}, cnf.Genesis)
}

func (s *GetConfigTestSuite) Test_GetConfigFromFile_InvalidGenesisBalance() {
	path := s.writeConfig(map[string]interface{}{
		"relayer": map[string]interface{}{
			"localChain": 1,
			"programId":  programID,
			"feeConfig":  map[string]interface{}{"owner": owner},
		},
		"genesis": map[string]interface{}{
			"balances": []interface{}{
				map[string]interface{}{"owner": "0x01", "amount": 1},
			},
		},
	})

	_, err := config.GetConfigFromFile(path, &config.Config{})

	s.NotNil(err)
}

func (s *GetConfigTestSuite) Test_GetConfigFromENV_Genesis() {
	_ = os.Setenv("OMNI_RELAYER_LOCALCHAIN", "1")
	_ = os.Setenv("OMNI_RELAYER_PROGRAMID", programID)
	_ = os.Setenv("OMNI_RELAYER_FEECONFIG_OWNER", owner)
	_ = os.Setenv("OMNI_GENESIS", `{"balances":[{"owner":"`+owner+`","amount":42}]}`)

	cnf, err := config.GetConfigFromENV(&config.Config{})

	s.Nil(err)
	s.Equal([]ledger.Balance{{Owner: address(owner), Amount: 42}}, cnf.Genesis.Balances)
}

func (s *GetConfigTestSuite) Test_GetConfigFromFile_DuplicateForeignContract() {
	fc := map[string]interface{}{"chain": 30, "address": foreign, "priceManagerOwner": owner}
	path := s.writeConfig(map[string]interface{}{
		"relayer": map[string]interface{}{
			"localChain": 1,
			"programId":  programID,
			"feeConfig":  map[string]interface{}{"owner": owner},
		},
		"foreignContracts": []interface{}{fc, fc},
	})

	_, err := config.GetConfigFromFile(path, &config.Config{})

	s.NotNil(err)
}

func (s *GetConfigTestSuite) Test_GetConfigFromENV() {
	_ = os.Setenv("OMNI_RELAYER_LOCALCHAIN", "1")
	_ = os.Setenv("OMNI_RELAYER_PROGRAMID", programID)
	_ = os.Setenv("OMNI_RELAYER_SWEEPINTERVAL", "2s")
	_ = os.Setenv("OMNI_RELAYER_APIPORT", "4000")
	_ = os.Setenv("OMNI_RELAYER_ENV", "TEST")
	_ = os.Setenv("OMNI_RELAYER_ID", "123")
	_ = os.Setenv("OMNI_RELAYER_FEECONFIG_OWNER", owner)
	_ = os.Setenv("OMNI_RELAYER_FEECONFIG_PROXY", proxy)
	_ = os.Setenv("OMNI_RELAYER_FEECONFIG_BRIDGEFEE", "1000")
	_ = os.Setenv("OMNI_FC_1", `{"chain":30,"address":"`+foreign+`","priceRatio":50000000}`)

	cnf, err := config.GetConfigFromENV(&config.Config{SharedForeignContracts: []map[string]interface{}{{
		"chain":             30,
		"baseGas":           700000,
		"gasPerByte":        68,
		"priceManagerOwner": owner,
		"priceRatio":        1,
	}}})

	s.Nil(err)
	s.Equal(uint16(1), cnf.RelayerConfig.LocalChain)
	s.Equal(uint16(4000), cnf.RelayerConfig.APIPort)
	s.Equal(2*time.Second, cnf.RelayerConfig.SweepInterval)
	s.Equal("TEST", cnf.RelayerConfig.Env)
	s.Equal("123", cnf.RelayerConfig.Id)
	s.Equal(address(proxy), cnf.RelayerConfig.FeeConfig.Proxy)
	s.Equal(uint64(1000), cnf.RelayerConfig.FeeConfig.BridgeFee)
	s.Len(cnf.ForeignContracts, 1)
	s.Equal(uint256.NewInt(68), cnf.ForeignContracts[0].Contract.GasPerByte)
	s.Equal(address(owner), cnf.ForeignContracts[0].PriceManagerOwner)
	// local entries win over shared ones
	s.Equal(uint64(50000000), cnf.ForeignContracts[0].PriceRatio)
}

func (s *GetConfigTestSuite) Test_GetConfigFromENV_InvalidSweepInterval() {
	_ = os.Setenv("OMNI_RELAYER_LOCALCHAIN", "1")
	_ = os.Setenv("OMNI_RELAYER_PROGRAMID", programID)
	_ = os.Setenv("OMNI_RELAYER_FEECONFIG_OWNER", owner)
	_ = os.Setenv("OMNI_RELAYER_SWEEPINTERVAL", "soon")

	_, err := config.GetConfigFromENV(&config.Config{})

	s.NotNil(err)
}

func (s *GetConfigTestSuite) Test_GetSharedConfigFromNetwork() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"foreignContracts":[{"chain":30,"baseGas":700000}]}`))
	}))
	defer srv.Close()

	cnf, err := config.GetSharedConfigFromNetwork(srv.URL, &config.Config{})

	s.Nil(err)
	s.Equal([]map[string]interface{}{{"chain": float64(30), "baseGas": float64(700000)}}, cnf.SharedForeignContracts)
}
