// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ChainSafe/omniswap-relayer/config/relayer"
)

type LoadFromEnvTestSuite struct {
	suite.Suite
}

func (s *LoadFromEnvTestSuite) TearDownTest() {
	os.Clearenv()
}

func TestRunLoadFromEnvTestSuite(t *testing.T) {
	suite.Run(t, new(LoadFromEnvTestSuite))
}

func (s *LoadFromEnvTestSuite) SetupTest() {
	os.Clearenv()
}

func (s *LoadFromEnvTestSuite) Test_ValidRelayerConfig() {
	_ = os.Setenv("OMNI_RELAYER_OPENTELEMETRYCOLLECTORURL", "test.opentelemetry.url")
	_ = os.Setenv("OMNI_RELAYER_LOGLEVEL", "info")
	_ = os.Setenv("OMNI_RELAYER_LOGFILE", "test.log")
	_ = os.Setenv("OMNI_RELAYER_APIPORT", "4000")
	_ = os.Setenv("OMNI_RELAYER_LOCALCHAIN", "30")
	_ = os.Setenv("OMNI_RELAYER_FEECONFIG_SOFEE", "1000000")
	_ = os.Setenv("OMNI_FC_1", `{"chain":1}`)
	_ = os.Setenv("OMNI_FC_2", `{"chain":2}`)
	_ = os.Setenv("NOT_OMNI_RELAYER_ID", "ignored")

	env, err := loadFromEnv()

	s.Nil(err)
	s.Equal(RawConfig{
		RelayerConfig: relayer.RawRelayerConfig{
			OpenTelemetryCollectorURL: "test.opentelemetry.url",
			LogLevel:                  "info",
			LogFile:                   "test.log",
			APIPort:                   4000,
			LocalChain:                30,
			FeeConfig: relayer.RawFeeConfig{
				SoFee: 1000000,
			},
		},
		ForeignContracts: []map[string]interface{}{
			{"chain": float64(1)},
			{"chain": float64(2)},
		},
	}, env)
}

func (s *LoadFromEnvTestSuite) Test_InvalidForeignContract() {
	_ = os.Setenv("OMNI_FC_1", `{"chain":`)

	_, err := loadFromEnv()

	s.NotNil(err)
}

func (s *LoadFromEnvTestSuite) Test_InvalidNumber() {
	_ = os.Setenv("OMNI_RELAYER_APIPORT", "port")

	_, err := loadFromEnv()

	s.NotNil(err)
}
