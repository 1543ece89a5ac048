package cli

import (
	"encoding/json"
	"testing"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ChainSafe/omniswap-relayer/cross"
	"github.com/ChainSafe/omniswap-relayer/fee"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/suite"
)

type CLITestSuite struct {
	suite.Suite
}

func TestRunCLITestSuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (s *CLITestSuite) Test_FormatAmount() {
	s.Equal("1.5", formatAmount(1_500_000_000, 9))
	s.Equal("0.000000001", formatAmount(1, 9))
	s.Equal("18446744073709.551615", formatAmount(^uint64(0), 6))
}

func (s *CLITestSuite) Test_FormatQuote() {
	out := formatQuote(&fee.Quote{DstMaxGas: uint256.NewInt(700000), RelayerFee: 1000, BridgeFee: 1000, Total: 2000}, 9)

	s.Contains(out, "Destination max gas: 700000")
	s.Contains(out, "Total:               0.000002")
}

func (s *CLITestSuite) Test_QuoteParamsInvalidHex() {
	_, err := quoteParams("0x01", "zz", "0x")

	s.NotNil(err)
}

func (s *CLITestSuite) Test_DecodeSoData() {
	so := &cross.SoData{
		TransactionID:      []byte{0x01},
		Receiver:           []byte{0x02},
		SourceChainID:      1,
		SendingAssetID:     []byte{0x04},
		DestinationChainID: 30,
		ReceivingAssetID:   []byte{0x03},
		Amount:             uint256.NewInt(1_000),
	}

	out, err := decode("sodata", hexutil.Encode(so.EncodeNormalized()))

	s.Nil(err)
	var v map[string]interface{}
	s.Nil(json.Unmarshal([]byte(out), &v))
	s.Equal("0x01", v["transactionId"])
	s.Equal("0x02", v["receiver"])
	s.Equal("0x04", v["sendingAssetId"])
	s.Equal(float64(30), v["destinationChainId"])
	s.Equal("1000", v["amount"])
}

func (s *CLITestSuite) Test_DecodeSoDataWithEmptyVectorRejected() {
	so := cross.PaddingSoData([]byte{0x01}, []byte{0x02}, []byte{0x03})

	_, err := decode("sodata", hexutil.Encode(so.EncodeNormalized()))

	s.NotNil(err)
}

func (s *CLITestSuite) Test_DecodeUnknownKind() {
	_, err := decode("vaa", "0x01")

	s.NotNil(err)
}

func (s *CLITestSuite) Test_DecodeMalformed() {
	_, err := decode("message", "0x0102")

	s.NotNil(err)
}

func (s *CLITestSuite) Test_KeyAddress() {
	key, err := crypto.GenerateKey()
	s.Nil(err)

	address, err := keyAddress(hexutil.Encode(crypto.FromECDSA(key)))

	s.Nil(err)
	s.Equal(ledger.PubkeyToAddress(key.PublicKey), address)
}

func (s *CLITestSuite) Test_KeyAddressInvalid() {
	_, err := keyAddress("0x01")

	s.NotNil(err)
}
