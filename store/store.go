// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package store

import (
	"github.com/syndtr/goleveldb/leveldb"
)

type KeyValueReaderWriter interface {
	GetByKey(key []byte) ([]byte, error)
	SetByKey(key []byte, value []byte) error
}

// KeyValueStore additionally lists keys and applies atomic batches.
type KeyValueStore interface {
	KeyValueReaderWriter
	KeysWithPrefix(prefix []byte) ([][]byte, error)
	WriteBatch(batch *leveldb.Batch) error
}
