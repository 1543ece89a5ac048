// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package relayer

import (
	"context"
	"errors"
	"sync"

	"github.com/ChainSafe/omniswap-relayer/chains"
	"github.com/ChainSafe/omniswap-relayer/chains/bridge"
	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ChainSafe/omniswap-relayer/cross"
	"github.com/ChainSafe/omniswap-relayer/relayer/retry"
	"github.com/ChainSafe/omniswap-relayer/relayer/settlement"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

type Observer interface {
	Pending(ctx context.Context) ([]*bridge.VAA, error)
}

type Completer interface {
	LocalChain() uint16
	Complete(ctx context.Context, params settlement.CompleteParams) (*settlement.CompleteReceipt, error)
}

type Metrics interface {
	TrackRelayFailure(kind settlement.Kind)
	TrackRelayRound(pending int)
}

// Agent completes inbound transfers observed on the bridge on behalf of
// the redeem proxy.
type Agent struct {
	observer  Observer
	engine    Completer
	transfers retry.TransferStorer
	metrics   Metrics
	proxy     ledger.Address
	exitLock  *sync.RWMutex
}

func NewAgent(
	observer Observer,
	engine Completer,
	transfers retry.TransferStorer,
	metrics Metrics,
	proxy ledger.Address,
	exitLock *sync.RWMutex,
) *Agent {
	return &Agent{
		observer:  observer,
		engine:    engine,
		transfers: transfers,
		metrics:   metrics,
		proxy:     proxy,
		exitLock:  exitLock,
	}
}

// Relay completes every pending message addressed to the local chain.
// Messages of a source chain are completed in sequence order, source chains
// are processed concurrently. Only fatal errors are returned.
func (a *Agent) Relay(ctx context.Context) error {
	a.exitLock.RLock()
	defer a.exitLock.RUnlock()

	vaas, err := a.observer.Pending(ctx)
	if err != nil {
		return err
	}
	pending, err := retry.FilterPending(a.transfers, vaas, a.engine.LocalChain())
	if err != nil {
		return err
	}
	count := 0
	for _, vaas := range pending {
		count += len(vaas)
	}
	a.metrics.TrackRelayRound(count)

	p := pool.New().WithErrors().WithContext(ctx)
	for source, vaas := range pending {
		source, vaas := source, vaas
		p.Go(func(ctx context.Context) error {
			log.Debug().Msgf("Relaying %d messages from %s", len(vaas), chains.ChainName(source))
			for _, vaa := range vaas {
				if err := a.complete(ctx, vaa); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return p.Wait()
}

func (a *Agent) complete(ctx context.Context, vaa *bridge.VAA) error {
	logger := log.With().Uint16("sourceChain", vaa.EmitterChain).Uint64("sequence", vaa.Sequence).Logger()

	recipient, err := recipientOf(vaa)
	if err != nil {
		logger.Warn().Err(err).Msg("Skipping message with invalid receiver")
		return nil
	}

	_, err = a.engine.Complete(ctx, settlement.CompleteParams{
		Caller:    a.proxy,
		VAA:       vaa,
		Recipient: recipient,
	})
	if err == nil {
		return nil
	}

	kind := settlement.Classify(err)
	a.metrics.TrackRelayFailure(kind)
	switch kind {
	case settlement.KindReplay:
		logger.Debug().Err(err).Msg("Message already settled")
		return nil
	case settlement.KindFatal:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		logger.Error().Err(err).Msg("Failed completing transfer")
		return err
	default:
		logger.Warn().Err(err).Str("kind", string(kind)).Msg("Rejected transfer")
		return nil
	}
}

func recipientOf(vaa *bridge.VAA) (ledger.Address, error) {
	t, err := vaa.Transfer()
	if err != nil {
		return ledger.Address{}, err
	}
	msg, err := cross.DecodeSoSwapMessage(t.Payload)
	if err != nil {
		return ledger.Address{}, err
	}
	receiver := msg.SoData.Receiver
	if len(receiver) == 0 || len(receiver) > 32 {
		return ledger.Address{}, settlement.ErrInvalidRecipient
	}
	return ledger.BytesToAddress(ledger.LeftPad32(receiver))
}
