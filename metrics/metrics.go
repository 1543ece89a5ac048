// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package metrics

import (
	"context"
	"math"
	"net/url"
	"time"

	"github.com/ChainSafe/omniswap-relayer/relayer/settlement"
	"github.com/ChainSafe/omniswap-relayer/relayer/transfer"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	api "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

type SettlementMetrics struct {
	*RelayLoopMetrics

	opts api.MeasurementOption

	TransfersStarted   api.Int64Counter
	TransfersCompleted api.Int64Counter
	SwapFallbacks      api.Int64Counter
	RelayerFeeCharged  api.Int64Counter
	RelayFailures      api.Int64Counter
}

// NewSettlementMetrics creates the settlement instruments of meter
func NewSettlementMetrics(ctx context.Context, meter api.Meter, env, relayerID string) (*SettlementMetrics, error) {
	opts := api.WithAttributes(attribute.String("env", env), attribute.String("relayerid", relayerID))
	loopMetrics, err := NewRelayLoopMetrics(ctx, meter, opts)
	if err != nil {
		return nil, err
	}

	transfersStarted, err := meter.Int64Counter(
		"relayer.TransfersStarted",
		api.WithDescription("Number of outbound transfers handed to the bridge"),
	)
	if err != nil {
		return nil, err
	}
	transfersCompleted, err := meter.Int64Counter(
		"relayer.TransfersCompleted",
		api.WithDescription("Number of inbound transfers settled, by status"),
	)
	if err != nil {
		return nil, err
	}
	swapFallbacks, err := meter.Int64Counter(
		"relayer.SwapFallbacks",
		api.WithDescription("Number of inbound transfers delivered in the bridged asset after a failed swap"),
	)
	if err != nil {
		return nil, err
	}
	relayerFeeCharged, err := meter.Int64Counter(
		"relayer.RelayerFeeCharged",
		api.WithDescription("Relayer fee charged on outbound transfers in native units"),
	)
	if err != nil {
		return nil, err
	}
	relayFailures, err := meter.Int64Counter(
		"relayer.RelayFailures",
		api.WithDescription("Number of failed completions, by error kind"),
	)
	if err != nil {
		return nil, err
	}

	return &SettlementMetrics{
		RelayLoopMetrics:   loopMetrics,
		opts:               opts,
		TransfersStarted:   transfersStarted,
		TransfersCompleted: transfersCompleted,
		SwapFallbacks:      swapFallbacks,
		RelayerFeeCharged:  relayerFeeCharged,
		RelayFailures:      relayFailures,
	}, nil
}

func (m *SettlementMetrics) TransferStarted(e *transfer.TransferStarted) {
	chain := api.WithAttributes(attribute.Int("dstChain", int(e.DstChain)))
	m.TransfersStarted.Add(context.Background(), 1, m.opts, chain)
	m.RelayerFeeCharged.Add(context.Background(), clampInt64(e.RelayerFee), m.opts, chain)
}

func (m *SettlementMetrics) TransferCompleted(e *transfer.TransferCompleted) {
	m.TransfersCompleted.Add(
		context.Background(),
		1,
		m.opts,
		api.WithAttributes(attribute.String("status", string(e.Status)), attribute.Int("sourceChain", int(e.SourceChain))),
	)
	if e.Status == transfer.StatusFallback {
		m.SwapFallbacks.Add(context.Background(), 1, m.opts)
	}
}

func (m *SettlementMetrics) TrackRelayFailure(kind settlement.Kind) {
	m.RelayFailures.Add(context.Background(), 1, m.opts, api.WithAttributes(attribute.String("kind", string(kind))))
}

// counters drop negative increments
func clampInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}

// InitMetricProvider returns a meter provider exporting to the OpenTelemetry
// collector at collectorURL. Measurements are dropped when it is empty.
func InitMetricProvider(ctx context.Context, collectorURL string) (*sdkmetric.MeterProvider, error) {
	res := resource.NewSchemaless(attribute.String("service.name", "omniswap-relayer"))
	if collectorURL == "" {
		return sdkmetric.NewMeterProvider(sdkmetric.WithResource(res)), nil
	}

	u, err := url.Parse(collectorURL)
	if err != nil {
		return nil, err
	}
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(u.Host),
		otlpmetrichttp.WithURLPath(u.Path),
	}
	if u.Scheme == "http" {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))),
	), nil
}
