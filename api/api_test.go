// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package api_test

import (
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ChainSafe/omniswap-relayer/api"
	mock_api "github.com/ChainSafe/omniswap-relayer/api/mock"
	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ChainSafe/omniswap-relayer/fee"
	"github.com/ChainSafe/omniswap-relayer/relayer/settlement"
	"github.com/ChainSafe/omniswap-relayer/state"
	"github.com/ChainSafe/omniswap-relayer/store"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/suite"
)

var (
	payerKey, _    = crypto.HexToECDSA("b6b1d4e7f1c8a3f1d4c7e2a9b8c7d6e5f4a3b2c1d0e9f8a7b6c5d4e3f2a1b0c9")
	operatorKey, _ = crypto.HexToECDSA("1f2e3d4c5b6a79880796a5b4c3d2e1f00f1e2d3c4b5a69788796a5b4c3d2e1f0")
	strangerKey, _ = crypto.HexToECDSA("0a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f9")

	payer    = ledger.PubkeyToAddress(payerKey.PublicKey)
	operator = ledger.PubkeyToAddress(operatorKey.PublicKey)
	stranger = ledger.PubkeyToAddress(strangerKey.PublicKey)
)

type ServerTestSuite struct {
	suite.Suite

	settlement *mock_api.MockSettlement
	handler    http.Handler
}

func TestRunServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.settlement = mock_api.NewMockSettlement(ctrl)
	s.handler = api.NewServer(s.settlement, operator, []string{"*"}).Handler()
}

func (s *ServerTestSuite) request(method, path, body string, key *ecdsa.PrivateKey, at time.Time) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if key != nil {
		s.Nil(api.SignRequest(req, key, []byte(body), at))
	}
	return req
}

func (s *ServerTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) do(method, path, body string, key *ecdsa.PrivateKey) *httptest.ResponseRecorder {
	return s.serve(s.request(method, path, body, key, time.Now()))
}

func (s *ServerTestSuite) Test_Health() {
	rec := s.do(http.MethodGet, "/health", "", nil)

	s.Equal(http.StatusOK, rec.Code)
}

func (s *ServerTestSuite) Test_Quote() {
	s.settlement.EXPECT().QuoteFee(settlement.QuoteParams{
		SoData:       []byte{0x01, 0x02},
		WormholeData: []byte{0x03},
		SwapDataDst:  []byte{},
	}).Return(&fee.Quote{DstMaxGas: uint256.NewInt(700000), RelayerFee: 10, BridgeFee: 1000, Total: 1010}, nil)

	rec := s.do(http.MethodPost, "/v1/quote", `{"soData":"0x0102","wormholeData":"0x03","swapDataDst":"0x"}`, nil)

	s.Equal(http.StatusOK, rec.Code)
	s.NotEmpty(rec.Header().Get(api.RequestIDHeader))
	var resp map[string]interface{}
	s.Nil(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("700000", resp["dstMaxGas"])
	s.Equal(float64(1010), resp["total"])
}

func (s *ServerTestSuite) Test_QuoteMalformedBody() {
	rec := s.do(http.MethodPost, "/v1/quote", `{"soData":"nothex"}`, nil)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) Test_PostRequestUnsigned() {
	rec := s.do(http.MethodPost, "/v1/requests", `{}`, nil)

	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ServerTestSuite) Test_ForgedBodyIsRejected() {
	req := s.request(http.MethodPost, "/v1/requests", `{"soData":"0x01"}`, payerKey, time.Now())
	forged := httptest.NewRequest(http.MethodPost, "/v1/requests", strings.NewReader(`{"soData":"0x02"}`))
	forged.Header = req.Header

	rec := s.serve(forged)

	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ServerTestSuite) Test_SignatureForOtherPathIsRejected() {
	req := s.request(http.MethodPost, "/v1/requests/3/execute", "", payerKey, time.Now())
	cancel := httptest.NewRequest(http.MethodDelete, "/v1/requests/3", nil)
	cancel.Header = req.Header

	rec := s.serve(cancel)

	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ServerTestSuite) Test_ForgedCallerIsRejected() {
	req := s.request(http.MethodDelete, "/v1/requests/3", "", strangerKey, time.Now())
	req.Header.Set(api.CallerHeader, payer.Hex())

	rec := s.serve(req)

	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ServerTestSuite) Test_ExpiredSignatureIsRejected() {
	rec := s.serve(s.request(http.MethodDelete, "/v1/requests/3", "", payerKey, time.Now().Add(-api.MaxClockSkew-time.Minute)))

	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ServerTestSuite) Test_ReplayedRequestIsRejected() {
	s.settlement.EXPECT().CancelRequest(gomock.Any(), payer, uint64(3)).Return(nil)
	req := s.request(http.MethodDelete, "/v1/requests/3", "", payerKey, time.Now())
	replay := httptest.NewRequest(http.MethodDelete, "/v1/requests/3", nil)
	replay.Header = req.Header.Clone()

	s.Equal(http.StatusNoContent, s.serve(req).Code)
	s.Equal(http.StatusUnauthorized, s.serve(replay).Code)
}

func (s *ServerTestSuite) Test_PostRequest() {
	s.settlement.EXPECT().PostRequest(gomock.Any(), payer, gomock.Any()).Return(&store.StagedRequest{
		Owner:   payer,
		Payer:   payer,
		Nonce:   7,
		Deposit: 2000,
	}, nil)

	rec := s.do(http.MethodPost, "/v1/requests", `{"soData":"0x01"}`, payerKey)

	s.Equal(http.StatusCreated, rec.Code)
	var resp map[string]interface{}
	s.Nil(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(float64(7), resp["nonce"])
	s.Equal(payer.Hex(), resp["payer"])
}

func (s *ServerTestSuite) Test_PendingRequestNotFound() {
	s.settlement.EXPECT().PendingRequest(uint64(3)).Return(nil, fmt.Errorf("%w: nonce 3", store.ErrRequestNotFound))

	rec := s.do(http.MethodGet, "/v1/requests/3", "", nil)

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerTestSuite) Test_InvalidNonce() {
	rec := s.do(http.MethodGet, "/v1/requests/abc", "", nil)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) Test_ExecuteRequestFeeTooLow() {
	s.settlement.EXPECT().ExecuteRequest(gomock.Any(), payer, uint64(3)).Return(nil, fee.ErrCheckFeeFail)

	rec := s.do(http.MethodPost, "/v1/requests/3/execute", "", payerKey)

	s.Equal(http.StatusPaymentRequired, rec.Code)
}

func (s *ServerTestSuite) Test_ExecuteRequest() {
	s.settlement.EXPECT().ExecuteRequest(gomock.Any(), payer, uint64(3)).Return(&settlement.OutboundReceipt{
		Sequence:  12,
		Amount:    100,
		DstMaxGas: uint256.NewInt(1),
	}, nil)

	rec := s.do(http.MethodPost, "/v1/requests/3/execute", "", payerKey)

	s.Equal(http.StatusOK, rec.Code)
	var resp map[string]interface{}
	s.Nil(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(float64(12), resp["sequence"])
}

func (s *ServerTestSuite) Test_CancelRequestByStranger() {
	s.settlement.EXPECT().CancelRequest(gomock.Any(), stranger, uint64(3)).Return(fmt.Errorf("cancel: %w", state.ErrOwnerOnly))

	rec := s.do(http.MethodDelete, "/v1/requests/3", "", strangerKey)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) Test_MarkBridgedTwice() {
	s.settlement.EXPECT().MarkBridged(uint64(12)).Return(settlement.ErrAlreadyRedeemed)

	rec := s.do(http.MethodPost, "/v1/transfers/12/bridged", "", operatorKey)

	s.Equal(http.StatusConflict, rec.Code)
}

func (s *ServerTestSuite) Test_MarkBridgedByNonOperator() {
	rec := s.do(http.MethodPost, "/v1/transfers/12/bridged", "", payerKey)

	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *ServerTestSuite) Test_InternalError() {
	s.settlement.EXPECT().MarkBridged(uint64(12)).Return(errors.New("disk full"))

	rec := s.do(http.MethodPost, "/v1/transfers/12/bridged", "", operatorKey)

	s.Equal(http.StatusInternalServerError, rec.Code)
}

func (s *ServerTestSuite) Test_Initiate() {
	s.settlement.EXPECT().Initiate(gomock.Any(), payer, settlement.CrossRequest{
		SoData:       []byte{0x01},
		WormholeData: []byte{0x02},
	}).Return(&settlement.OutboundReceipt{Sequence: 1, DstMaxGas: uint256.NewInt(0)}, nil)

	rec := s.do(http.MethodPost, "/v1/transfers", `{"soData":"0x01","wormholeData":"0x02"}`, payerKey)

	s.Equal(http.StatusOK, rec.Code)
}
