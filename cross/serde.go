// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package cross

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/holiman/uint256"
)

var (
	ErrInvalidDataLength = errors.New("invalid data length")
	ErrValueOverflow     = errors.New("value does not fit compact encoding")
	ErrInvalidCallData   = errors.New("invalid call data")
)

func serializeU8(buf []byte, v uint8) []byte {
	return append(buf, v)
}

func serializeU16(buf []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(buf, v)
}

func serializeU64(buf []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(buf, v)
}

func serializeU256(buf []byte, v *uint256.Int) []byte {
	b := orZero(v).Bytes32()
	return append(buf, b[:]...)
}

// serializeU256Compact writes v big-endian with leading zero bytes stripped.
// Zero is written as a single 0x00 byte.
func serializeU256Compact(buf []byte, v *uint256.Int) []byte {
	v = orZero(v)
	if v.IsZero() {
		return append(buf, 0)
	}
	return append(buf, v.Bytes()...)
}

// serializeVector writes v prefixed with an 8 byte length. Empty vectors
// are not written at all.
func serializeVector(buf []byte, v []byte) []byte {
	if len(v) == 0 {
		return buf
	}
	buf = serializeU64(buf, uint64(len(v)))
	return append(buf, v...)
}

// serializeCompactVector writes v prefixed with a single length byte. Empty
// vectors are not written at all.
func serializeCompactVector(buf []byte, v []byte) ([]byte, error) {
	if len(v) == 0 {
		return buf, nil
	}
	if len(v) > math.MaxUint8 {
		return buf, ErrInvalidDataLength
	}
	buf = serializeU8(buf, uint8(len(v)))
	return append(buf, v...), nil
}

func compactU64(v *uint256.Int) (uint64, error) {
	v = orZero(v)
	if !v.IsUint64() {
		return 0, ErrValueOverflow
	}
	return v.Uint64(), nil
}

func orZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v
}

// decoder reads big-endian values from data. Every read is bounds checked
// and reports ErrInvalidDataLength instead of reading past the end.
type decoder struct {
	data  []byte
	index int
}

func newDecoder(data []byte) *decoder {
	return &decoder{data: data}
}

func (d *decoder) remaining() int {
	return len(d.data) - d.index
}

func (d *decoder) next(n int) ([]byte, error) {
	if n < 0 || n > d.remaining() {
		return nil, ErrInvalidDataLength
	}
	b := d.data[d.index : d.index+n]
	d.index += n
	return b, nil
}

func (d *decoder) u8() (uint8, error) {
	b, err := d.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *decoder) u16() (uint16, error) {
	b, err := d.next(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (d *decoder) u64() (uint64, error) {
	b, err := d.next(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (d *decoder) u256() (*uint256.Int, error) {
	b, err := d.next(32)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes32(b), nil
}

func (d *decoder) vector() ([]byte, error) {
	l, err := d.u64()
	if err != nil {
		return nil, err
	}
	if l > uint64(d.remaining()) {
		return nil, ErrInvalidDataLength
	}
	return d.copyNext(int(l))
}

func (d *decoder) compactVector() ([]byte, error) {
	l, err := d.u8()
	if err != nil {
		return nil, err
	}
	return d.copyNext(int(l))
}

func (d *decoder) copyNext(n int) ([]byte, error) {
	b, err := d.next(n)
	if err != nil {
		return nil, err
	}
	return append([]byte{}, b...), nil
}

// finish fails unless every byte of data was consumed.
func (d *decoder) finish() error {
	if d.index != len(d.data) {
		return ErrInvalidDataLength
	}
	return nil
}

// DeserializeU256Compact left pads a compact big-endian value to 32 bytes.
func DeserializeU256Compact(b []byte) (*uint256.Int, error) {
	if len(b) > 32 {
		return nil, ErrInvalidDataLength
	}
	return new(uint256.Int).SetBytes(b), nil
}

// SerializeU256Compact returns the compact big-endian form of v.
func SerializeU256Compact(v *uint256.Int) []byte {
	return serializeU256Compact(nil, v)
}
