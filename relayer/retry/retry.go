// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package retry

import (
	"github.com/ChainSafe/omniswap-relayer/chains/bridge"
	"github.com/ChainSafe/omniswap-relayer/relayer/transfer"
	"github.com/rs/zerolog/log"
)

type TransferStorer interface {
	Transfer(source uint16, sequence uint64) (*transfer.Record, error)
}

// FilterPending groups observed bridge messages addressed to destination by
// their emitter chain, dropping the ones already settled. Messages keep the
// order they were observed in.
func FilterPending(
	transferStorer TransferStorer,
	vaas []*bridge.VAA,
	destination uint16) (map[uint16][]*bridge.VAA, error) {
	filtered := make(map[uint16][]*bridge.VAA)
	for _, vaa := range vaas {
		t, err := vaa.Transfer()
		if err != nil {
			log.Warn().Err(err).Uint16("sourceChain", vaa.EmitterChain).Uint64("sequence", vaa.Sequence).Msg("Skipping undecodable bridge message")
			continue
		}
		if t.ToChain != destination {
			continue
		}

		isSettled, err := isSettled(vaa, transferStorer)
		if err != nil {
			log.Err(err).Uint16("sourceChain", vaa.EmitterChain).Uint64("sequence", vaa.Sequence).Msg("Failed checking if transfer settled")
			continue
		}
		if isSettled {
			log.Debug().Uint16("sourceChain", vaa.EmitterChain).Uint64("sequence", vaa.Sequence).Msg("Transfer marked as settled")
			continue
		}

		filtered[vaa.EmitterChain] = append(filtered[vaa.EmitterChain], vaa)
	}
	return filtered, nil
}

func isSettled(vaa *bridge.VAA, transferStorer TransferStorer) (bool, error) {
	record, err := transferStorer.Transfer(vaa.EmitterChain, vaa.Sequence)
	if err != nil {
		return true, err
	}
	return record.State == transfer.Settled, nil
}
