package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ChainSafe/omniswap-relayer/jobs"
	mock_jobs "github.com/ChainSafe/omniswap-relayer/jobs/mock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type SweeperJobTestSuite struct {
	suite.Suite

	relayer *mock_jobs.MockRelayer
}

func TestRunSweeperJobTestSuite(t *testing.T) {
	suite.Run(t, new(SweeperJobTestSuite))
}

func (s *SweeperJobTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.relayer = mock_jobs.NewMockRelayer(ctrl)
}

func (s *SweeperJobTestSuite) Test_RelaysUntilCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	gomock.InOrder(
		s.relayer.EXPECT().Relay(gomock.Any()).Return(errors.New("error")),
		s.relayer.EXPECT().Relay(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
			cancel()
			return nil
		}).MinTimes(1),
	)

	done := make(chan struct{})
	go func() {
		jobs.StartSweeperJob(ctx, s.relayer, time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		s.Fail("sweeper did not stop")
	}
}
