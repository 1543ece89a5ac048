// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: BUSL-1.1

package cli

import (
	"fmt"
	"strings"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

var (
	addressCMD = &cobra.Command{
		Use:   "address [private-key]",
		Short: "Print the account address of a secp256k1 key",
		Long:  "Print the account address API requests signed with the key act on behalf of",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := keyAddress(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), address.Hex())
			return nil
		},
	}
)

func keyAddress(hexKey string) (ledger.Address, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return ledger.Address{}, err
	}
	return ledger.PubkeyToAddress(key.PublicKey), nil
}
