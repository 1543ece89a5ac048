// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package lvldb_test

import (
	"testing"

	"github.com/ChainSafe/omniswap-relayer/lvldb"
	"github.com/stretchr/testify/suite"
	"github.com/syndtr/goleveldb/leveldb"
)

type LvlDBTestSuite struct {
	suite.Suite
	db *lvldb.LVLDB
}

func TestRunLvlDBTestSuite(t *testing.T) {
	suite.Run(t, new(LvlDBTestSuite))
}

func (s *LvlDBTestSuite) SetupTest() {
	db, err := lvldb.NewMemLvlDB()
	s.Nil(err)
	s.db = db
}

func (s *LvlDBTestSuite) TearDownTest() {
	s.Nil(s.db.Close())
}

func (s *LvlDBTestSuite) Test_SetGetDelete() {
	s.Nil(s.db.SetByKey([]byte("key"), []byte("value")))

	v, err := s.db.GetByKey([]byte("key"))
	s.Nil(err)
	s.Equal([]byte("value"), v)

	s.Nil(s.db.DeleteByKey([]byte("key")))
	_, err = s.db.GetByKey([]byte("key"))
	s.ErrorIs(err, lvldb.ErrNotFound)
}

func (s *LvlDBTestSuite) Test_WriteBatch() {
	s.Nil(s.db.SetByKey([]byte("request:1"), []byte("old")))

	batch := new(leveldb.Batch)
	batch.Delete([]byte("request:1"))
	batch.Put([]byte("request:2"), []byte("new"))
	batch.Put([]byte("nonce"), []byte{3})
	s.Nil(s.db.WriteBatch(batch))

	_, err := s.db.GetByKey([]byte("request:1"))
	s.ErrorIs(err, lvldb.ErrNotFound)
	keys, err := s.db.KeysWithPrefix([]byte("request:"))
	s.Nil(err)
	s.Equal([][]byte{[]byte("request:2")}, keys)
}

func (s *LvlDBTestSuite) Test_OpenFile() {
	db, err := lvldb.NewLvlDB(s.T().TempDir())
	s.Nil(err)
	s.Nil(db.SetByKey([]byte("key"), []byte("value")))
	s.Nil(db.Close())
}
