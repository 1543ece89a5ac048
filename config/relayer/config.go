// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: BUSL-1.1

package relayer

import (
	"fmt"
	"time"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/rs/zerolog"
)

type RelayerConfig struct {
	OpenTelemetryCollectorURL string
	LogLevel                  zerolog.Level
	LogFile                   string
	Env                       string
	Id                        string
	APIPort                   uint16
	AllowedOrigins            []string
	DBPath                    string
	SweepInterval             time.Duration
	LocalChain                uint16
	ProgramID                 ledger.Address
	FeeConfig                 FeeConfig
}

type FeeConfig struct {
	Owner       ledger.Address
	Beneficiary ledger.Address
	Proxy       ledger.Address
	// SoFee is the protocol fee rate charged on delivered amounts, in RAY.
	SoFee           uint64
	ActualReserve   uint64
	EstimateReserve uint64
	BridgeFee       uint64
}

type RawRelayerConfig struct {
	OpenTelemetryCollectorURL string       `mapstructure:"OpenTelemetryCollectorURL" json:"opentelemetryCollectorURL"`
	LogLevel                  string       `mapstructure:"LogLevel" json:"logLevel" default:"info"`
	LogFile                   string       `mapstructure:"LogFile" json:"logFile" default:"out.log"`
	Env                       string       `mapstructure:"Env" json:"env"`
	Id                        string       `mapstructure:"Id" json:"id"`
	APIPort                   uint16       `mapstructure:"APIPort" json:"apiPort" default:"9001"`
	AllowedOrigins            []string     `mapstructure:"AllowedOrigins" json:"allowedOrigins" default:"[\"*\"]"`
	DBPath                    string       `mapstructure:"DBPath" json:"dbPath" default:"./lvldbdata"`
	SweepInterval             string       `mapstructure:"SweepInterval" json:"sweepInterval" default:"10s"`
	LocalChain                uint16       `mapstructure:"LocalChain" json:"localChain"`
	ProgramID                 string       `mapstructure:"ProgramID" json:"programId"`
	FeeConfig                 RawFeeConfig `mapstructure:"FeeConfig" json:"feeConfig"`
}

type RawFeeConfig struct {
	Owner           string `mapstructure:"Owner" json:"owner"`
	Beneficiary     string `mapstructure:"Beneficiary" json:"beneficiary"`
	Proxy           string `mapstructure:"Proxy" json:"proxy"`
	SoFee           uint64 `mapstructure:"SoFee" json:"soFee"`
	ActualReserve   uint64 `mapstructure:"ActualReserve" json:"actualReserve" default:"100000000"`
	EstimateReserve uint64 `mapstructure:"EstimateReserve" json:"estimateReserve" default:"100000000"`
	BridgeFee       uint64 `mapstructure:"BridgeFee" json:"bridgeFee"`
}

func (c *RawRelayerConfig) Validate() error {
	if c.LocalChain == 0 {
		return fmt.Errorf("required field localChain is missing")
	}
	if c.ProgramID == "" {
		return fmt.Errorf("required field programId is missing")
	}
	if c.FeeConfig.Owner == "" {
		return fmt.Errorf("required field feeConfig.owner is missing")
	}
	return nil
}

// NewRelayerConfig parses RawRelayerConfig into RelayerConfig
func NewRelayerConfig(rawConfig RawRelayerConfig) (RelayerConfig, error) {
	config := RelayerConfig{}
	err := rawConfig.Validate()
	if err != nil {
		return config, err
	}

	logLevel, err := zerolog.ParseLevel(rawConfig.LogLevel)
	if err != nil {
		return config, fmt.Errorf("unknown log level: %s", rawConfig.LogLevel)
	}
	config.LogLevel = logLevel

	sweepInterval, err := time.ParseDuration(rawConfig.SweepInterval)
	if err != nil {
		return config, fmt.Errorf("unable to parse sweep interval: %w", err)
	}
	if sweepInterval <= 0 {
		return config, fmt.Errorf("sweep interval must be positive")
	}
	config.SweepInterval = sweepInterval

	config.ProgramID, err = ledger.HexToAddress(rawConfig.ProgramID)
	if err != nil {
		return config, fmt.Errorf("invalid program id: %w", err)
	}
	config.FeeConfig, err = newFeeConfig(rawConfig.FeeConfig)
	if err != nil {
		return config, err
	}

	config.LogFile = rawConfig.LogFile
	config.OpenTelemetryCollectorURL = rawConfig.OpenTelemetryCollectorURL
	config.Env = rawConfig.Env
	config.Id = rawConfig.Id
	config.APIPort = rawConfig.APIPort
	config.AllowedOrigins = rawConfig.AllowedOrigins
	config.DBPath = rawConfig.DBPath
	config.LocalChain = rawConfig.LocalChain
	return config, nil
}

func newFeeConfig(raw RawFeeConfig) (FeeConfig, error) {
	owner, err := ledger.HexToAddress(raw.Owner)
	if err != nil {
		return FeeConfig{}, fmt.Errorf("invalid owner: %w", err)
	}
	// beneficiary and proxy fall back to the owner
	beneficiary, proxy := owner, owner
	if raw.Beneficiary != "" {
		if beneficiary, err = ledger.HexToAddress(raw.Beneficiary); err != nil {
			return FeeConfig{}, fmt.Errorf("invalid beneficiary: %w", err)
		}
	}
	if raw.Proxy != "" {
		if proxy, err = ledger.HexToAddress(raw.Proxy); err != nil {
			return FeeConfig{}, fmt.Errorf("invalid proxy: %w", err)
		}
	}

	return FeeConfig{
		Owner:           owner,
		Beneficiary:     beneficiary,
		Proxy:           proxy,
		SoFee:           raw.SoFee,
		ActualReserve:   raw.ActualReserve,
		EstimateReserve: raw.EstimateReserve,
		BridgeFee:       raw.BridgeFee,
	}, nil
}
