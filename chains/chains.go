// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package chains

// Bridge chain ids as assigned by the message bridge.
const (
	ChainIDSolana    uint16 = 1
	ChainIDEthereum  uint16 = 2
	ChainIDBSC       uint16 = 4
	ChainIDPolygon   uint16 = 5
	ChainIDAvalanche uint16 = 6
	ChainIDSui       uint16 = 21
	ChainIDAptos     uint16 = 22
	ChainIDArbitrum  uint16 = 23
	ChainIDOptimism  uint16 = 24
	ChainIDBase      uint16 = 30
)

var chainNames = map[uint16]string{
	ChainIDSolana:    "solana",
	ChainIDEthereum:  "ethereum",
	ChainIDBSC:       "bsc",
	ChainIDPolygon:   "polygon",
	ChainIDAvalanche: "avalanche",
	ChainIDSui:       "sui",
	ChainIDAptos:     "aptos",
	ChainIDArbitrum:  "arbitrum",
	ChainIDOptimism:  "optimism",
	ChainIDBase:      "base",
}

// ChainName returns a human readable name used in logs.
func ChainName(id uint16) string {
	if name, ok := chainNames[id]; ok {
		return name
	}
	return "unknown"
}
