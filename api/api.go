// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ChainSafe/omniswap-relayer/fee"
	"github.com/ChainSafe/omniswap-relayer/health"
	"github.com/ChainSafe/omniswap-relayer/relayer/settlement"
	"github.com/ChainSafe/omniswap-relayer/store"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

const RequestIDHeader = "X-Request-Id"

type Settlement interface {
	QuoteFee(params settlement.QuoteParams) (*fee.Quote, error)
	PostRequest(ctx context.Context, payer ledger.Address, r settlement.CrossRequest) (*store.StagedRequest, error)
	PendingRequest(nonce uint64) (*store.StagedRequest, error)
	CancelRequest(ctx context.Context, caller ledger.Address, nonce uint64) error
	ExecuteRequest(ctx context.Context, caller ledger.Address, nonce uint64) (*settlement.OutboundReceipt, error)
	Initiate(ctx context.Context, payer ledger.Address, r settlement.CrossRequest) (*settlement.OutboundReceipt, error)
	MarkBridged(sequence uint64) error
}

// Server serves the relayer endpoints. Mutating endpoints act on behalf of
// the key that signed the request, marking transfers bridged is reserved to
// operator.
type Server struct {
	settlement Settlement
	operator   ledger.Address
	auth       *authenticator
	checks     []health.Check
	origins    []string
}

func NewServer(s Settlement, operator ledger.Address, origins []string, checks ...health.Check) *Server {
	return &Server{
		settlement: s,
		operator:   operator,
		auth:       newAuthenticator(time.Now),
		checks:     checks,
		origins:    origins,
	}
}

// Handler returns the router of the relayer endpoints wrapped with CORS
// handling.
func (s *Server) Handler() http.Handler {
	router := httprouter.New()
	router.Handler(http.MethodGet, "/health", health.Handler(s.checks...))
	router.POST("/v1/quote", s.withRequestID(s.quote))
	router.POST("/v1/transfers", s.withRequestID(s.initiate))
	router.POST("/v1/transfers/:sequence/bridged", s.withRequestID(s.markBridged))
	router.POST("/v1/requests", s.withRequestID(s.postRequest))
	router.GET("/v1/requests/:nonce", s.withRequestID(s.pendingRequest))
	router.DELETE("/v1/requests/:nonce", s.withRequestID(s.cancelRequest))
	router.POST("/v1/requests/:nonce/execute", s.withRequestID(s.executeRequest))

	return cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", CallerHeader, SignatureHeader, TimestampHeader},
		MaxAge:         600,
	}).Handler(router)
}

// Start serves the relayer endpoints on port until ctx is cancelled.
func (s *Server) Start(ctx context.Context, port uint16) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Msgf("Started relayer API on port %d", port)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) withRequestID(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id := uuid.New().String()
		w.Header().Set(RequestIDHeader, id)
		logger := log.With().Str("requestId", id).Str("path", r.URL.Path).Logger()
		h(w, r.WithContext(logger.WithContext(r.Context())), ps)
	}
}
