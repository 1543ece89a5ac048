// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ChainSafe/omniswap-relayer/state"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/syndtr/goleveldb/leveldb"
	"golang.org/x/exp/slices"
)

var (
	RequestKey      = "request:%d"
	SenderConfigKey = "sender_config"

	ErrRequestNotFound = errors.New("request not found")
)

// fixed part of a request account: discriminator, owner, payer
const requestBaseSize = 8 + 32 + 32

// StagedRequest is a cross request posted by a user and executed later by
// a relayer.
type StagedRequest struct {
	Owner        ledger.Address
	Payer        ledger.Address
	Nonce        uint64
	SoData       []byte
	SwapDataSrc  []byte
	WormholeData []byte
	SwapDataDst  []byte
	// Deposit is the storage rent paid by Payer, refunded when the request
	// is removed.
	Deposit uint64
}

// Size is the account size the request occupies on the host ledger.
func (r *StagedRequest) Size() int {
	return requestBaseSize + len(r.SoData) + len(r.SwapDataSrc) + len(r.WormholeData) + len(r.SwapDataDst)
}

// RequestAccount is the ledger account holding the request deposit.
func RequestAccount(programID ledger.Address, nonce uint64) ledger.Address {
	return ledger.DeriveAddress(programID, []byte("request"), binary.LittleEndian.AppendUint64(nil, nonce))
}

type senderConfigRecord struct {
	Owner [32]byte
	Nonce uint64
}

type requestRecord struct {
	Owner        [32]byte
	Payer        [32]byte
	Nonce        uint64
	SoData       []byte
	SwapDataSrc  []byte
	WormholeData []byte
	SwapDataDst  []byte
	Deposit      uint64
}

type RequestStore struct {
	db    KeyValueStore
	owner ledger.Address
}

// NewRequestStore returns a store of requests scoped to owner, the sender
// config address.
func NewRequestStore(db KeyValueStore, owner ledger.Address) *RequestStore {
	return &RequestStore{
		db:    db,
		owner: owner,
	}
}

// SenderConfig returns the sender config holding the next request nonce.
func (rs *RequestStore) SenderConfig() (*state.SenderConfig, error) {
	v, err := rs.db.GetByKey([]byte(SenderConfigKey))
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return &state.SenderConfig{Owner: rs.owner}, nil
		}
		return nil, err
	}

	var r senderConfigRecord
	if err := rlp.DecodeBytes(v, &r); err != nil {
		return nil, fmt.Errorf("corrupted sender config: %w", err)
	}
	return &state.SenderConfig{Owner: r.Owner, Nonce: r.Nonce}, nil
}

// PutRequest adds req to batch under its nonce and advances the sender
// config nonce past it.
func (rs *RequestStore) PutRequest(batch *leveldb.Batch, req *StagedRequest) error {
	value, err := rlp.EncodeToBytes(&requestRecord{
		Owner:        req.Owner,
		Payer:        req.Payer,
		Nonce:        req.Nonce,
		SoData:       req.SoData,
		SwapDataSrc:  req.SwapDataSrc,
		WormholeData: req.WormholeData,
		SwapDataDst:  req.SwapDataDst,
		Deposit:      req.Deposit,
	})
	if err != nil {
		return err
	}
	config, err := rlp.EncodeToBytes(&senderConfigRecord{Owner: rs.owner, Nonce: req.Nonce + 1})
	if err != nil {
		return err
	}

	batch.Put(requestKey(req.Nonce), value)
	batch.Put([]byte(SenderConfigKey), config)
	return nil
}

func (rs *RequestStore) DeleteRequest(batch *leveldb.Batch, nonce uint64) {
	batch.Delete(requestKey(nonce))
}

func (rs *RequestStore) Request(nonce uint64) (*StagedRequest, error) {
	v, err := rs.db.GetByKey(requestKey(nonce))
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, fmt.Errorf("%w: nonce %d", ErrRequestNotFound, nonce)
		}
		return nil, err
	}

	var r requestRecord
	if err := rlp.DecodeBytes(v, &r); err != nil {
		return nil, fmt.Errorf("corrupted request %d: %w", nonce, err)
	}
	return &StagedRequest{
		Owner:        r.Owner,
		Payer:        r.Payer,
		Nonce:        r.Nonce,
		SoData:       r.SoData,
		SwapDataSrc:  r.SwapDataSrc,
		WormholeData: r.WormholeData,
		SwapDataDst:  r.SwapDataDst,
		Deposit:      r.Deposit,
	}, nil
}

// Requests returns the nonces of every pending request in ascending order.
func (rs *RequestStore) Requests() ([]uint64, error) {
	keys, err := rs.db.KeysWithPrefix([]byte("request:"))
	if err != nil {
		return nil, err
	}

	nonces := make([]uint64, 0, len(keys))
	for _, key := range keys {
		nonce, err := strconv.ParseUint(strings.TrimPrefix(string(key), "request:"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid request key %q: %w", key, err)
		}
		nonces = append(nonces, nonce)
	}
	// keys are ordered as strings
	slices.Sort(nonces)
	return nonces, nil
}

func requestKey(nonce uint64) []byte {
	return []byte(fmt.Sprintf(RequestKey, nonce))
}
