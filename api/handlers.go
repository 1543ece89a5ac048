// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ChainSafe/omniswap-relayer/relayer/settlement"
	"github.com/ChainSafe/omniswap-relayer/store"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

var errBadRequest = errors.New("bad request")

type crossRequest struct {
	SoData       hexutil.Bytes `json:"soData"`
	SwapDataSrc  hexutil.Bytes `json:"swapDataSrc"`
	WormholeData hexutil.Bytes `json:"wormholeData"`
	SwapDataDst  hexutil.Bytes `json:"swapDataDst"`
}

func (c crossRequest) toSettlement() settlement.CrossRequest {
	return settlement.CrossRequest{
		SoData:       c.SoData,
		SwapDataSrc:  c.SwapDataSrc,
		WormholeData: c.WormholeData,
		SwapDataDst:  c.SwapDataDst,
	}
}

type quoteResponse struct {
	DstMaxGas  string `json:"dstMaxGas"`
	RelayerFee uint64 `json:"relayerFee"`
	BridgeFee  uint64 `json:"bridgeFee"`
	Total      uint64 `json:"total"`
}

type receiptResponse struct {
	Sequence   uint64 `json:"sequence"`
	Asset      string `json:"asset"`
	Amount     uint64 `json:"amount"`
	RelayerFee uint64 `json:"relayerFee"`
	DstMaxGas  string `json:"dstMaxGas"`
}

func toReceipt(r *settlement.OutboundReceipt) receiptResponse {
	return receiptResponse{
		Sequence:   r.Sequence,
		Asset:      r.Asset.Hex(),
		Amount:     r.Amount,
		RelayerFee: r.RelayerFee,
		DstMaxGas:  r.DstMaxGas.Dec(),
	}
}

type requestResponse struct {
	Nonce        uint64        `json:"nonce"`
	Owner        string        `json:"owner"`
	Payer        string        `json:"payer"`
	Deposit      uint64        `json:"deposit"`
	SoData       hexutil.Bytes `json:"soData"`
	SwapDataSrc  hexutil.Bytes `json:"swapDataSrc"`
	WormholeData hexutil.Bytes `json:"wormholeData"`
	SwapDataDst  hexutil.Bytes `json:"swapDataDst"`
}

func toRequest(r *store.StagedRequest) requestResponse {
	return requestResponse{
		Nonce:        r.Nonce,
		Owner:        r.Owner.Hex(),
		Payer:        r.Payer.Hex(),
		Deposit:      r.Deposit,
		SoData:       r.SoData,
		SwapDataSrc:  r.SwapDataSrc,
		WormholeData: r.WormholeData,
		SwapDataDst:  r.SwapDataDst,
	}
}

func (s *Server) quote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body crossRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, fmt.Errorf("%w: %s", errBadRequest, err))
		return
	}

	quote, err := s.settlement.QuoteFee(settlement.QuoteParams{
		SoData:       body.SoData,
		WormholeData: body.WormholeData,
		SwapDataDst:  body.SwapDataDst,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, quoteResponse{
		DstMaxGas:  quote.DstMaxGas.Dec(),
		RelayerFee: quote.RelayerFee,
		BridgeFee:  quote.BridgeFee,
		Total:      quote.Total,
	})
}

func (s *Server) initiate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	payer, body, err := s.callerAndBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	receipt, err := s.settlement.Initiate(r.Context(), payer, body.toSettlement())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReceipt(receipt))
}

func (s *Server) markBridged(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	caller, _, err := s.auth.authenticate(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if caller != s.operator {
		writeError(w, r, fmt.Errorf("%w: only the operator marks transfers bridged", errForbidden))
		return
	}
	sequence, err := uintParam(ps, "sequence")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.settlement.MarkBridged(sequence); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) postRequest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	payer, body, err := s.callerAndBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	req, err := s.settlement.PostRequest(r.Context(), payer, body.toSettlement())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRequest(req))
}

func (s *Server) pendingRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	nonce, err := uintParam(ps, "nonce")
	if err != nil {
		writeError(w, r, err)
		return
	}

	req, err := s.settlement.PendingRequest(nonce)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequest(req))
}

func (s *Server) cancelRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	caller, nonce, err := s.callerAndNonce(r, ps)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.settlement.CancelRequest(r.Context(), caller, nonce); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) executeRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	caller, nonce, err := s.callerAndNonce(r, ps)
	if err != nil {
		writeError(w, r, err)
		return
	}

	receipt, err := s.settlement.ExecuteRequest(r.Context(), caller, nonce)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReceipt(receipt))
}

func (s *Server) callerAndBody(r *http.Request) (ledger.Address, crossRequest, error) {
	var body crossRequest
	addr, raw, err := s.auth.authenticate(r)
	if err != nil {
		return addr, body, err
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return addr, body, fmt.Errorf("%w: %s", errBadRequest, err)
	}
	return addr, body, nil
}

func (s *Server) callerAndNonce(r *http.Request, ps httprouter.Params) (ledger.Address, uint64, error) {
	addr, _, err := s.auth.authenticate(r)
	if err != nil {
		return addr, 0, err
	}
	nonce, err := uintParam(ps, "nonce")
	return addr, nonce, err
}

func uintParam(ps httprouter.Params, name string) (uint64, error) {
	v, err := strconv.ParseUint(ps.ByName(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s", errBadRequest, name)
	}
	return v, nil
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errForbidden):
		return http.StatusForbidden
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	}
	if errors.Is(err, store.ErrRequestNotFound) {
		return http.StatusNotFound
	}

	switch settlement.Classify(err) {
	case settlement.KindValidation:
		return http.StatusBadRequest
	case settlement.KindEconomic:
		return http.StatusPaymentRequired
	case settlement.KindReplay:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	logger := zerolog.Ctx(r.Context())
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msg("Request failed")
	} else {
		logger.Debug().Err(err).Msgf("Request rejected with %d", status)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
