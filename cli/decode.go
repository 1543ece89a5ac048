// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: BUSL-1.1

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/ChainSafe/omniswap-relayer/cross"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
)

var (
	decodeCMD = &cobra.Command{
		Use:       "decode [sodata|swapdata|wormhole|message] [hex]",
		Short:     "Decode a normalized cross chain encoding",
		Long:      "Decode a normalized cross chain encoding and print it as JSON",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"sodata", "swapdata", "wormhole", "message"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := decode(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
)

func decode(kind, data string) (string, error) {
	raw, err := hexutil.Decode(data)
	if err != nil {
		return "", err
	}

	var v interface{}
	switch kind {
	case "sodata":
		so, err := cross.DecodeNormalizedSoData(raw)
		if err != nil {
			return "", err
		}
		v = soDataView(so)
	case "swapdata":
		swaps, err := cross.DecodeNormalizedSwapData(raw)
		if err != nil {
			return "", err
		}
		v = swapDataViews(swaps)
	case "wormhole":
		w, err := cross.DecodeNormalizedWormholeData(raw)
		if err != nil {
			return "", err
		}
		v = map[string]interface{}{
			"dstChainId":     w.DstChainID,
			"dstMaxGasPrice": w.DstMaxGasPrice.Dec(),
			"wormholeFee":    w.WormholeFee.Dec(),
			"dstSoDiamond":   hexutil.Bytes(w.DstSoDiamond),
		}
	case "message":
		m, err := cross.DecodeSoSwapMessage(raw)
		if err != nil {
			return "", err
		}
		v = map[string]interface{}{
			"dstMaxGasPrice": m.DstMaxGasPrice.Dec(),
			"dstMaxGas":      m.DstMaxGas.Dec(),
			"soData":         soDataView(m.SoData),
			"swapData":       swapDataViews(m.SwapData),
		}
	default:
		return "", fmt.Errorf("unknown encoding %q", kind)
	}

	out, err := json.MarshalIndent(v, "", "  ")
	return string(out), err
}

func soDataView(so *cross.SoData) map[string]interface{} {
	return map[string]interface{}{
		"transactionId":      hexutil.Bytes(so.TransactionID),
		"receiver":           hexutil.Bytes(so.Receiver),
		"sourceChainId":      so.SourceChainID,
		"sendingAssetId":     hexutil.Bytes(so.SendingAssetID),
		"destinationChainId": so.DestinationChainID,
		"receivingAssetId":   hexutil.Bytes(so.ReceivingAssetID),
		"amount":             so.Amount.Dec(),
	}
}

func swapDataViews(swaps []*cross.SwapData) []map[string]interface{} {
	views := make([]map[string]interface{}, 0, len(swaps))
	for _, s := range swaps {
		views = append(views, map[string]interface{}{
			"callTo":           hexutil.Bytes(s.CallTo),
			"approveTo":        hexutil.Bytes(s.ApproveTo),
			"sendingAssetId":   hexutil.Bytes(s.SendingAssetID),
			"receivingAssetId": hexutil.Bytes(s.ReceivingAssetID),
			"fromAmount":       s.FromAmount.Dec(),
			"callData":         string(s.CallData),
		})
	}
	return views
}
