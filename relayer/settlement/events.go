// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package settlement

import (
	"github.com/ChainSafe/omniswap-relayer/chains"
	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ChainSafe/omniswap-relayer/relayer/transfer"
	"github.com/rs/zerolog/log"
)

// LogSink writes settlement events to the global logger.
type LogSink struct{}

func (LogSink) TransferStarted(e *transfer.TransferStarted) {
	log.Info().
		Str("txid", ledger.Address(e.TransactionID).Hex()).
		Uint16("dstChain", e.DstChain).
		Uint64("sequence", e.Sequence).
		Uint64("relayerFee", e.RelayerFee).
		Str("dstMaxGas", e.DstMaxGas.Dec()).
		Msgf("Transfer started towards %s", chains.ChainName(e.DstChain))
}

func (LogSink) TransferCompleted(e *transfer.TransferCompleted) {
	log.Info().
		Str("txid", ledger.Address(e.TransactionID).Hex()).
		Uint16("sourceChain", e.SourceChain).
		Uint64("sequence", e.Sequence).
		Str("status", string(e.Status)).
		Str("recipient", e.Recipient.Hex()).
		Msgf("Transfer from %s completed", chains.ChainName(e.SourceChain))
}

// Sinks fans events out to every sink in order.
type Sinks []EventSink

func (s Sinks) TransferStarted(e *transfer.TransferStarted) {
	for _, sink := range s {
		sink.TransferStarted(e)
	}
}

func (s Sinks) TransferCompleted(e *transfer.TransferCompleted) {
	for _, sink := range s {
		sink.TransferCompleted(e)
	}
}
