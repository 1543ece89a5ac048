// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package store

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ChainSafe/omniswap-relayer/relayer/transfer"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/syndtr/goleveldb/leveldb"
)

var TransferKey = "source:%d:sequence:%d"

type transferRecord struct {
	State         string
	Status        string
	Amount        uint64
	Asset         [32]byte
	TransactionID [32]byte
}

// TransferStore persists transfer states keyed by the bridge message that
// carries them.
type TransferStore struct {
	db KeyValueReaderWriter
}

func NewTransferStore(db KeyValueReaderWriter) *TransferStore {
	return &TransferStore{
		db: db,
	}
}

// StoreTransfer stores the transfer record of a bridge message
func (ts *TransferStore) StoreTransfer(source uint16, sequence uint64, record *transfer.Record) error {
	value, err := encodeTransfer(record)
	if err != nil {
		return err
	}
	return ts.db.SetByKey(transferKey(source, sequence), value)
}

// PutTransfer adds the record to batch, it is stored once the batch is
// written.
func (ts *TransferStore) PutTransfer(batch *leveldb.Batch, source uint16, sequence uint64, record *transfer.Record) error {
	value, err := encodeTransfer(record)
	if err != nil {
		return err
	}
	batch.Put(transferKey(source, sequence), value)
	return nil
}

// Transfer returns the stored record or a Missing record when the transfer
// is unknown.
func (ts *TransferStore) Transfer(source uint16, sequence uint64) (*transfer.Record, error) {
	v, err := ts.db.GetByKey(transferKey(source, sequence))
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return &transfer.Record{State: transfer.Missing}, nil
		}
		return nil, err
	}

	var r transferRecord
	if err := rlp.DecodeBytes(v, &r); err != nil {
		return nil, fmt.Errorf("corrupted transfer record %d/%d: %w", source, sequence, err)
	}
	return &transfer.Record{
		State:         transfer.State(r.State),
		Status:        transfer.Status(r.Status),
		Amount:        r.Amount,
		Asset:         ledger.Address(r.Asset),
		TransactionID: r.TransactionID,
	}, nil
}

func (ts *TransferStore) TransferState(source uint16, sequence uint64) (transfer.State, error) {
	r, err := ts.Transfer(source, sequence)
	if err != nil {
		return transfer.Missing, err
	}
	return r.State, nil
}

func transferKey(source uint16, sequence uint64) []byte {
	return []byte(fmt.Sprintf(TransferKey, source, sequence))
}

func encodeTransfer(record *transfer.Record) ([]byte, error) {
	return rlp.EncodeToBytes(&transferRecord{
		State:         string(record.State),
		Status:        string(record.Status),
		Amount:        record.Amount,
		Asset:         record.Asset,
		TransactionID: record.TransactionID,
	})
}
