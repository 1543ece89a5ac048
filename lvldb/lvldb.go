// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var ErrNotFound = leveldb.ErrNotFound

type LVLDB struct {
	db *leveldb.DB
}

func NewLvlDB(path string) (*LVLDB, error) {
	ldb, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "levelDB.OpenFile fail")
	}
	return &LVLDB{db: ldb}, nil
}

// NewMemLvlDB opens a database kept in memory, used by devnets and tests.
func NewMemLvlDB() (*LVLDB, error) {
	ldb, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "levelDB.Open fail")
	}
	return &LVLDB{db: ldb}, nil
}

func (db *LVLDB) GetByKey(key []byte) ([]byte, error) {
	return db.db.Get(key, nil)
}

func (db *LVLDB) SetByKey(key []byte, value []byte) error {
	return db.db.Put(key, value, &opt.WriteOptions{Sync: true})
}

func (db *LVLDB) DeleteByKey(key []byte) error {
	return db.db.Delete(key, &opt.WriteOptions{Sync: true})
}

// KeysWithPrefix returns every key starting with prefix in key order.
func (db *LVLDB) KeysWithPrefix(prefix []byte) ([][]byte, error) {
	iter := db.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	keys := make([][]byte, 0)
	for iter.Next() {
		keys = append(keys, append([]byte{}, iter.Key()...))
	}
	return keys, errors.Wrap(iter.Error(), "levelDB iterator fail")
}

// WriteBatch applies every operation of batch or none of them.
func (db *LVLDB) WriteBatch(batch *leveldb.Batch) error {
	return errors.Wrap(db.db.Write(batch, &opt.WriteOptions{Sync: true}), "levelDB.Write fail")
}

func (db *LVLDB) Close() error {
	return db.db.Close()
}
