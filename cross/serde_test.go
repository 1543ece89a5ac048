// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package cross

import (
	"bytes"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/suite"
)

type SerdeTestSuite struct {
	suite.Suite
}

func TestRunSerdeTestSuite(t *testing.T) {
	suite.Run(t, new(SerdeTestSuite))
}

func seq(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i + 1)
	}
	return b
}

func (s *SerdeTestSuite) Test_SerializeIntegers() {
	s.Equal([]byte{1}, serializeU8(nil, 1))
	s.Equal([]byte{1, 2}, serializeU16(nil, 258))
	s.Equal(seq(8), serializeU64(nil, 72623859790382856))
	s.Equal(seq(32), serializeU256(nil, new(uint256.Int).SetBytes(seq(32))))
	s.Equal(make([]byte, 32), serializeU256(nil, nil))
}

func (s *SerdeTestSuite) Test_SerializeVectors() {
	s.Equal([]byte{0, 0, 0, 0, 0, 0, 0, 8, 1, 2, 3, 4, 5, 6, 7, 8}, serializeVector(nil, seq(8)))
	s.Len(serializeVector(nil, []byte{}), 0)

	compact, err := serializeCompactVector(nil, seq(8))
	s.Nil(err)
	s.Equal([]byte{8, 1, 2, 3, 4, 5, 6, 7, 8}, compact)

	_, err = serializeCompactVector(nil, make([]byte, 256))
	s.ErrorIs(err, ErrInvalidDataLength)
}

func (s *SerdeTestSuite) Test_CompactU256() {
	s.Equal([]byte{0}, SerializeU256Compact(new(uint256.Int)))
	s.Equal([]byte{0x27, 0x10}, SerializeU256Compact(uint256.NewInt(10000)))
	s.Equal(seq(32), SerializeU256Compact(new(uint256.Int).SetBytes(seq(32))))

	v, err := DeserializeU256Compact([]byte{0x27, 0x10})
	s.Nil(err)
	s.Equal(uint256.NewInt(10000), v)

	v, err = DeserializeU256Compact([]byte{})
	s.Nil(err)
	s.True(v.IsZero())

	_, err = DeserializeU256Compact(make([]byte, 33))
	s.ErrorIs(err, ErrInvalidDataLength)
}

func (s *SerdeTestSuite) Test_DecoderBounds() {
	d := newDecoder([]byte{0, 0, 0, 0, 0, 0, 0, 9, 1, 2})
	_, err := d.vector()
	s.ErrorIs(err, ErrInvalidDataLength)

	d = newDecoder(bytes.Repeat([]byte{0xff}, 8))
	_, err = d.vector()
	s.ErrorIs(err, ErrInvalidDataLength)

	d = newDecoder([]byte{3, 1})
	_, err = d.compactVector()
	s.ErrorIs(err, ErrInvalidDataLength)

	d = newDecoder([]byte{1})
	_, err = d.u16()
	s.ErrorIs(err, ErrInvalidDataLength)

	d = newDecoder([]byte{1, 2, 3})
	_, err = d.u16()
	s.Nil(err)
	s.ErrorIs(d.finish(), ErrInvalidDataLength)
}
