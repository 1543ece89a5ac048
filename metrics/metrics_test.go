// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package metrics_test

import (
	"context"
	"math"
	"testing"

	"github.com/ChainSafe/omniswap-relayer/metrics"
	"github.com/ChainSafe/omniswap-relayer/relayer/settlement"
	"github.com/ChainSafe/omniswap-relayer/relayer/transfer"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/suite"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type SettlementMetricsTestSuite struct {
	suite.Suite

	reader  sdkmetric.Reader
	metrics *metrics.SettlementMetrics
}

func TestRunSettlementMetricsTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementMetricsTestSuite))
}

func (s *SettlementMetricsTestSuite) SetupTest() {
	s.reader = sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(s.reader))
	m, err := metrics.NewSettlementMetrics(context.Background(), provider.Meter("test"), "test", "relayer-1")
	s.Nil(err)
	s.metrics = m
}

func (s *SettlementMetricsTestSuite) sum(name string) int64 {
	var rm metricdata.ResourceMetrics
	s.Nil(s.reader.Collect(context.Background(), &rm))

	var total int64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			data, ok := m.Data.(metricdata.Sum[int64])
			s.True(ok)
			for _, dp := range data.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func (s *SettlementMetricsTestSuite) Test_TransferStarted() {
	s.metrics.TransferStarted(&transfer.TransferStarted{DstChain: 30, RelayerFee: 500, DstMaxGas: uint256.NewInt(1)})
	s.metrics.TransferStarted(&transfer.TransferStarted{DstChain: 22, RelayerFee: 250, DstMaxGas: uint256.NewInt(1)})

	s.Equal(int64(2), s.sum("relayer.TransfersStarted"))
	s.Equal(int64(750), s.sum("relayer.RelayerFeeCharged"))
}

func (s *SettlementMetricsTestSuite) gauge(name string) (int64, bool) {
	var rm metricdata.ResourceMetrics
	s.Nil(s.reader.Collect(context.Background(), &rm))

	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			data, ok := m.Data.(metricdata.Gauge[int64])
			s.True(ok)
			if len(data.DataPoints) == 0 {
				return 0, false
			}
			return data.DataPoints[0].Value, true
		}
	}
	return 0, false
}

func (s *SettlementMetricsTestSuite) Test_RelayerFeeAboveMaxInt64IsClamped() {
	s.metrics.TransferStarted(&transfer.TransferStarted{DstChain: 30, RelayerFee: math.MaxUint64, DstMaxGas: uint256.NewInt(1)})

	s.Equal(int64(math.MaxInt64), s.sum("relayer.RelayerFeeCharged"))
}

func (s *SettlementMetricsTestSuite) Test_RelayRound() {
	_, observed := s.gauge("relayer.LastRelayRoundSeconds")
	s.False(observed)

	s.metrics.TrackRelayRound(4)

	pending, ok := s.gauge("relayer.PendingMessages")
	s.True(ok)
	s.Equal(int64(4), pending)
	last, ok := s.gauge("relayer.LastRelayRoundSeconds")
	s.True(ok)
	s.NotZero(last)
	start, ok := s.gauge("relayer.StartTimeSeconds")
	s.True(ok)
	s.GreaterOrEqual(last, start)
}

func (s *SettlementMetricsTestSuite) Test_FallbackCounted() {
	s.metrics.TransferCompleted(&transfer.TransferCompleted{Status: transfer.StatusSwapped})
	s.metrics.TransferCompleted(&transfer.TransferCompleted{Status: transfer.StatusFallback})

	s.Equal(int64(2), s.sum("relayer.TransfersCompleted"))
	s.Equal(int64(1), s.sum("relayer.SwapFallbacks"))
}

func (s *SettlementMetricsTestSuite) Test_RelayFailures() {
	s.metrics.TrackRelayFailure(settlement.KindReplay)

	s.Equal(int64(1), s.sum("relayer.RelayFailures"))
}

func (s *SettlementMetricsTestSuite) Test_NoCollector() {
	provider, err := metrics.InitMetricProvider(context.Background(), "")

	s.Nil(err)
	s.NotNil(provider.Meter("test"))
}
