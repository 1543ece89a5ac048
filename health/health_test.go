package health_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ChainSafe/omniswap-relayer/health"
	"github.com/stretchr/testify/suite"
)

type HealthTestSuite struct {
	suite.Suite
}

func TestRunHealthTestSuite(t *testing.T) {
	suite.Run(t, new(HealthTestSuite))
}

func (s *HealthTestSuite) Test_Healthy() {
	rec := httptest.NewRecorder()

	health.Handler(func() error { return nil }).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("ok", rec.Body.String())
}

func (s *HealthTestSuite) Test_FailingCheck() {
	rec := httptest.NewRecorder()

	health.Handler(
		func() error { return nil },
		func() error { return errors.New("db closed") },
	).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.Equal("db closed", rec.Body.String())
}
