// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: BUSL-1.1

package cli

import (
	"fmt"
	"math/big"

	"github.com/ChainSafe/omniswap-relayer/app"
	"github.com/ChainSafe/omniswap-relayer/chains/bridge"
	"github.com/ChainSafe/omniswap-relayer/config"
	"github.com/ChainSafe/omniswap-relayer/fee"
	"github.com/ChainSafe/omniswap-relayer/lvldb"
	"github.com/ChainSafe/omniswap-relayer/relayer/settlement"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	quoteCMD = &cobra.Command{
		Use:   "quote",
		Short: "Estimate the fee of a cross chain swap",
		Long:  "Estimate the fee of a cross chain swap from the configured registry without touching stored state",
		RunE:  quote,
	}
)

var (
	soData         string
	wormholeData   string
	swapDataDst    string
	nativeDecimals int32
)

func init() {
	quoteCMD.Flags().StringVar(&soData, "so-data", "", "Hex encoded normalized so data")
	quoteCMD.Flags().StringVar(&wormholeData, "wormhole-data", "", "Hex encoded normalized wormhole data")
	quoteCMD.Flags().StringVar(&swapDataDst, "swap-data-dst", "0x", "Hex encoded normalized destination swap data")
	quoteCMD.Flags().Int32Var(&nativeDecimals, "decimals", 9, "Decimals of the native asset fees are paid in")
	_ = quoteCMD.MarkFlagRequired("so-data")
	_ = quoteCMD.MarkFlagRequired("wormhole-data")
}

func quote(cmd *cobra.Command, args []string) error {
	params, err := quoteParams(soData, wormholeData, swapDataDst)
	if err != nil {
		return err
	}

	configuration, err := config.Load()
	if err != nil {
		return err
	}
	db, err := lvldb.NewMemLvlDB()
	if err != nil {
		return err
	}
	defer db.Close()

	node, err := app.NewNode(configuration, db, bridge.NewNetwork(configuration.RelayerConfig.FeeConfig.BridgeFee), settlement.Sinks{})
	if err != nil {
		return err
	}
	q, err := node.Engine.QuoteFee(params)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), formatQuote(q, nativeDecimals))
	return nil
}

func quoteParams(soData, wormholeData, swapDataDst string) (settlement.QuoteParams, error) {
	so, err := hexutil.Decode(soData)
	if err != nil {
		return settlement.QuoteParams{}, fmt.Errorf("so data: %w", err)
	}
	wormhole, err := hexutil.Decode(wormholeData)
	if err != nil {
		return settlement.QuoteParams{}, fmt.Errorf("wormhole data: %w", err)
	}
	swapDst, err := hexutil.Decode(swapDataDst)
	if err != nil {
		return settlement.QuoteParams{}, fmt.Errorf("swap data dst: %w", err)
	}
	return settlement.QuoteParams{SoData: so, WormholeData: wormhole, SwapDataDst: swapDst}, nil
}

func formatAmount(amount uint64, decimals int32) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -decimals).String()
}

func formatQuote(q *fee.Quote, decimals int32) string {
	return fmt.Sprintf(`
Destination max gas: %s
Relayer fee:         %s
Bridge fee:          %s
Total:               %s
`,
		q.DstMaxGas.Dec(),
		formatAmount(q.RelayerFee, decimals),
		formatAmount(q.BridgeFee, decimals),
		formatAmount(q.Total, decimals),
	)
}
