// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package metrics

import (
	"context"
	"sync/atomic"
	"time"

	api "go.opentelemetry.io/otel/metric"
)

// RelayLoopMetrics observes the inbound relay loop of the relayer.
type RelayLoopMetrics struct {
	startTime     int64
	lastRoundTime atomic.Int64
	pending       atomic.Int64

	startTimeGauge api.Int64ObservableGauge
	lastRoundGauge api.Int64ObservableGauge
	pendingGauge   api.Int64ObservableGauge
}

// NewRelayLoopMetrics registers the relay loop gauges with meter
func NewRelayLoopMetrics(ctx context.Context, meter api.Meter, opts api.MeasurementOption) (*RelayLoopMetrics, error) {
	m := &RelayLoopMetrics{startTime: time.Now().Unix()}

	var err error
	m.startTimeGauge, err = meter.Int64ObservableGauge(
		"relayer.StartTimeSeconds",
		api.WithDescription("Start time of the relayer"),
		api.WithInt64Callback(func(ctx context.Context, result api.Int64Observer) error {
			result.Observe(m.startTime, opts)
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	m.lastRoundGauge, err = meter.Int64ObservableGauge(
		"relayer.LastRelayRoundSeconds",
		api.WithDescription("Time the relay loop last fetched pending messages"),
		api.WithInt64Callback(func(ctx context.Context, result api.Int64Observer) error {
			if last := m.lastRoundTime.Load(); last != 0 {
				result.Observe(last, opts)
			}
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	m.pendingGauge, err = meter.Int64ObservableGauge(
		"relayer.PendingMessages",
		api.WithDescription("Unsettled inbound messages seen by the last relay round"),
		api.WithInt64Callback(func(ctx context.Context, result api.Int64Observer) error {
			result.Observe(m.pending.Load(), opts)
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// TrackRelayRound records a relay round that found pending unsettled
// messages.
func (m *RelayLoopMetrics) TrackRelayRound(pending int) {
	m.pending.Store(int64(pending))
	m.lastRoundTime.Store(time.Now().Unix())
}
