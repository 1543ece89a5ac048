// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package store

import (
	"fmt"

	"github.com/ChainSafe/omniswap-relayer/chains/bridge"
	"github.com/ethereum/go-ethereum/rlp"
)

var (
	MessageKey = "bridge:message:%d:%d"
	ClaimKey   = "bridge:claim:%d:%d"
)

type messageRecord struct {
	EmitterChain   uint16
	EmitterAddress [32]byte
	Sequence       uint64
	Payload        []byte
}

// BridgeStore journals the messages published and claimed on a loopback
// bridge network.
type BridgeStore struct {
	db KeyValueStore
}

func NewBridgeStore(db KeyValueStore) *BridgeStore {
	return &BridgeStore{
		db: db,
	}
}

func (bs *BridgeStore) StoreMessage(vaa *bridge.VAA) error {
	value, err := rlp.EncodeToBytes(&messageRecord{
		EmitterChain:   vaa.EmitterChain,
		EmitterAddress: vaa.EmitterAddress,
		Sequence:       vaa.Sequence,
		Payload:        vaa.Payload,
	})
	if err != nil {
		return err
	}
	return bs.db.SetByKey([]byte(fmt.Sprintf(MessageKey, vaa.EmitterChain, vaa.Sequence)), value)
}

func (bs *BridgeStore) StoreClaim(chain uint16, sequence uint64) error {
	return bs.db.SetByKey([]byte(fmt.Sprintf(ClaimKey, chain, sequence)), []byte{1})
}

func (bs *BridgeStore) Messages() ([]*bridge.VAA, error) {
	keys, err := bs.db.KeysWithPrefix([]byte("bridge:message:"))
	if err != nil {
		return nil, err
	}

	vaas := make([]*bridge.VAA, 0, len(keys))
	for _, key := range keys {
		v, err := bs.db.GetByKey(key)
		if err != nil {
			return nil, err
		}
		var r messageRecord
		if err := rlp.DecodeBytes(v, &r); err != nil {
			return nil, fmt.Errorf("corrupted bridge message %q: %w", key, err)
		}
		vaas = append(vaas, &bridge.VAA{
			EmitterChain:   r.EmitterChain,
			EmitterAddress: r.EmitterAddress,
			Sequence:       r.Sequence,
			Payload:        r.Payload,
		})
	}
	return vaas, nil
}

func (bs *BridgeStore) Claims() ([]bridge.Claim, error) {
	keys, err := bs.db.KeysWithPrefix([]byte("bridge:claim:"))
	if err != nil {
		return nil, err
	}

	claims := make([]bridge.Claim, 0, len(keys))
	for _, key := range keys {
		var c bridge.Claim
		if _, err := fmt.Sscanf(string(key), ClaimKey, &c.Chain, &c.Sequence); err != nil {
			return nil, fmt.Errorf("invalid claim key %q: %w", key, err)
		}
		claims = append(claims, c)
	}
	return claims, nil
}
