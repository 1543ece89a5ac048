// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ChainSafe/omniswap-relayer/config/relayer"
	"github.com/ChainSafe/omniswap-relayer/state"
	"github.com/creasty/defaults"
	"github.com/holiman/uint256"
	"github.com/imdario/mergo"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	RelayerConfig    relayer.RelayerConfig
	ForeignContracts []ForeignContractConfig
	Genesis          GenesisConfig
	// SharedForeignContracts are raw entries filling fields missing from the
	// locally configured entry of the same chain.
	SharedForeignContracts []map[string]interface{}
}

type ForeignContractConfig struct {
	Contract          state.ForeignContract
	PriceManagerOwner ledger.Address
	PriceRatio        uint64
}

type RawConfig struct {
	RelayerConfig    relayer.RawRelayerConfig `mapstructure:"relayer" json:"relayer"`
	ForeignContracts []map[string]interface{} `mapstructure:"foreignContracts" json:"foreignContracts"`
	Genesis          RawGenesisConfig         `mapstructure:"genesis" json:"genesis"`
}

type RawForeignContractConfig struct {
	Chain             uint16 `mapstructure:"chain"`
	Address           string `mapstructure:"address"`
	BaseGas           uint64 `mapstructure:"baseGas"`
	GasPerByte        uint64 `mapstructure:"gasPerByte"`
	PriceRatio        uint64 `mapstructure:"priceRatio" default:"100000000"`
	PriceManagerOwner string `mapstructure:"priceManagerOwner"`
}

// GetConfigFromENV reads config from Env variables, validates it and parses
// it into config suitable for application
//
// Properties of RelayerConfig are expected to be defined as separate Env variables
// where Env variable name reflects properties position in structure. Each Env variable needs to be prefixed with OMNI.
//
// For example, if you want to set Config.RelayerConfig.FeeConfig.SoFee this would
// translate to Env variable named OMNI_RELAYER_FEECONFIG_SOFEE.
func GetConfigFromENV(config *Config) (*Config, error) {
	rawConfig, err := loadFromEnv()
	if err != nil {
		return config, err
	}

	return processRawConfig(rawConfig, config)
}

// GetConfigFromFile reads config from file, validates it and parses
// it into config suitable for application
func GetConfigFromFile(path string, config *Config) (*Config, error) {
	rawConfig := RawConfig{}

	viper.SetConfigFile(path)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return config, err
	}

	err = viper.Unmarshal(&rawConfig)
	if err != nil {
		return config, err
	}

	return processRawConfig(rawConfig, config)
}

// GetSharedConfigFromNetwork fetches shared foreign contract entries from URL.
func GetSharedConfigFromNetwork(url string, config *Config) (*Config, error) {
	rawConfig := RawConfig{}

	resp, err := http.Get(url)
	if err != nil {
		return &Config{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Config{}, err
	}

	err = json.Unmarshal(body, &rawConfig)
	if err != nil {
		return &Config{}, err
	}

	config.SharedForeignContracts = rawConfig.ForeignContracts
	return config, err
}

func processRawConfig(rawConfig RawConfig, config *Config) (*Config, error) {
	if err := defaults.Set(&rawConfig); err != nil {
		return config, err
	}

	relayerConfig, err := relayer.NewRelayerConfig(rawConfig.RelayerConfig)
	if err != nil {
		return config, err
	}

	foreignContracts := make([]ForeignContractConfig, 0)
	seen := make(map[uint16]bool)
	for _, entry := range rawConfig.ForeignContracts {
		raw, err := decodeForeignContract(entry)
		if err != nil {
			return config, err
		}
		if shared := sharedEntry(config.SharedForeignContracts, raw.Chain); shared != nil {
			if err := mergo.Merge(&entry, shared); err != nil {
				return config, err
			}
			if raw, err = decodeForeignContract(entry); err != nil {
				return config, err
			}
		}

		if seen[raw.Chain] {
			return config, fmt.Errorf("duplicate foreign contract for chain %d", raw.Chain)
		}
		seen[raw.Chain] = true

		fc, err := newForeignContract(raw)
		if err != nil {
			return config, err
		}
		foreignContracts = append(foreignContracts, fc)
	}

	genesis, err := newGenesisConfig(rawConfig.Genesis)
	if err != nil {
		return config, err
	}

	config.ForeignContracts = foreignContracts
	config.RelayerConfig = relayerConfig
	config.Genesis = genesis
	return config, nil
}

func decodeForeignContract(entry map[string]interface{}) (RawForeignContractConfig, error) {
	raw := RawForeignContractConfig{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &raw,
	})
	if err != nil {
		return raw, err
	}
	if err := decoder.Decode(entry); err != nil {
		return raw, err
	}
	if err := defaults.Set(&raw); err != nil {
		return raw, err
	}
	return raw, nil
}

func sharedEntry(shared []map[string]interface{}, chain uint16) map[string]interface{} {
	for _, entry := range shared {
		raw, err := decodeForeignContract(entry)
		if err == nil && raw.Chain == chain {
			return entry
		}
	}
	return nil
}

func newForeignContract(raw RawForeignContractConfig) (ForeignContractConfig, error) {
	if raw.Chain == 0 {
		return ForeignContractConfig{}, fmt.Errorf("foreign contract 'chain' must be provided for every configured contract")
	}
	address, err := ledger.HexToAddress(raw.Address)
	if err != nil {
		return ForeignContractConfig{}, fmt.Errorf("invalid address of foreign contract %d: %w", raw.Chain, err)
	}
	owner, err := ledger.HexToAddress(raw.PriceManagerOwner)
	if err != nil {
		return ForeignContractConfig{}, fmt.Errorf("invalid price manager owner of foreign contract %d: %w", raw.Chain, err)
	}

	return ForeignContractConfig{
		Contract: state.ForeignContract{
			Chain:      raw.Chain,
			Address:    address,
			BaseGas:    uint256.NewInt(raw.BaseGas),
			GasPerByte: uint256.NewInt(raw.GasPerByte),
		},
		PriceManagerOwner: owner,
		PriceRatio:        raw.PriceRatio,
	}, nil
}
