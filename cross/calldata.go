// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package cross

import (
	"bytes"

	"github.com/holiman/uint256"
)

const Delimiter = ','

// SplitDelimited splits call data into its Delimiter separated fields.
// The caller is responsible for checking the field count.
func SplitDelimited(data []byte) [][]byte {
	return bytes.Split(data, []byte{Delimiter})
}

// ParseDecimalOrZero parses an ASCII decimal field. Any field that is empty,
// contains a non digit byte or overflows 256 bits parses to zero, matching
// what the destination programs on other VMs do. Consumers must treat a zero
// bound as a reject rather than as "no bound".
func ParseDecimalOrZero(field []byte) *uint256.Int {
	v := new(uint256.Int)
	ten := uint256.NewInt(10)
	for _, c := range field {
		if c < '0' || c > '9' {
			return new(uint256.Int)
		}
		if _, overflow := v.MulOverflow(v, ten); overflow {
			return new(uint256.Int)
		}
		if _, overflow := v.AddOverflow(v, uint256.NewInt(uint64(c-'0'))); overflow {
			return new(uint256.Int)
		}
	}
	return v
}
