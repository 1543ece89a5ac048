// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package relayer_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ChainSafe/omniswap-relayer/chains/bridge"
	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ChainSafe/omniswap-relayer/cross"
	"github.com/ChainSafe/omniswap-relayer/relayer"
	mock_relayer "github.com/ChainSafe/omniswap-relayer/relayer/mock"
	mock_retry "github.com/ChainSafe/omniswap-relayer/relayer/retry/mock"
	"github.com/ChainSafe/omniswap-relayer/relayer/settlement"
	"github.com/ChainSafe/omniswap-relayer/relayer/transfer"
	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/suite"
)

var (
	proxy     = ledger.Address{0x0c}
	recipient = ledger.Address{0x77}
)

type AgentTestSuite struct {
	suite.Suite

	observer  *mock_relayer.MockObserver
	completer *mock_relayer.MockCompleter
	metrics   *mock_relayer.MockMetrics
	transfers *mock_retry.MockTransferStorer
	agent     *relayer.Agent
}

func TestRunAgentTestSuite(t *testing.T) {
	suite.Run(t, new(AgentTestSuite))
}

func (s *AgentTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.observer = mock_relayer.NewMockObserver(ctrl)
	s.completer = mock_relayer.NewMockCompleter(ctrl)
	s.metrics = mock_relayer.NewMockMetrics(ctrl)
	s.transfers = mock_retry.NewMockTransferStorer(ctrl)
	s.completer.EXPECT().LocalChain().Return(uint16(30)).AnyTimes()
	s.agent = relayer.NewAgent(s.observer, s.completer, s.transfers, s.metrics, proxy, &sync.RWMutex{})
}

func (s *AgentTestSuite) vaa(source uint16, sequence uint64, receiver []byte) *bridge.VAA {
	payload, err := (&cross.SoSwapMessage{
		DstMaxGasPrice: uint256.NewInt(1),
		DstMaxGas:      uint256.NewInt(1),
		SoData:         cross.PaddingSoData(make([]byte, 32), receiver, []byte{1}),
	}).Encode()
	s.Nil(err)
	t := &bridge.TransferWithPayload{
		Amount:  uint256.NewInt(100),
		ToChain: 30,
		Payload: payload,
	}
	return &bridge.VAA{EmitterChain: source, Sequence: sequence, Payload: t.Encode()}
}

func (s *AgentTestSuite) Test_ObserverFails() {
	s.observer.EXPECT().Pending(gomock.Any()).Return(nil, errors.New("error"))

	err := s.agent.Relay(context.Background())

	s.NotNil(err)
}

func (s *AgentTestSuite) Test_CompletesPendingAsProxy() {
	first := s.vaa(1, 1, recipient[:])
	settled := s.vaa(1, 2, recipient[:])
	s.observer.EXPECT().Pending(gomock.Any()).Return([]*bridge.VAA{first, settled}, nil)
	s.transfers.EXPECT().Transfer(uint16(1), uint64(1)).Return(&transfer.Record{State: transfer.Missing}, nil)
	s.transfers.EXPECT().Transfer(uint16(1), uint64(2)).Return(&transfer.Record{State: transfer.Settled}, nil)
	s.completer.EXPECT().Complete(gomock.Any(), settlement.CompleteParams{
		Caller:    proxy,
		VAA:       first,
		Recipient: recipient,
	}).Return(&settlement.CompleteReceipt{Status: transfer.StatusNoSwap}, nil)
	s.metrics.EXPECT().TrackRelayRound(1)

	err := s.agent.Relay(context.Background())

	s.Nil(err)
}

func (s *AgentTestSuite) Test_RejectedTransfersDoNotStopRelaying() {
	rejected := s.vaa(1, 1, recipient[:])
	replayed := s.vaa(1, 2, recipient[:])
	next := s.vaa(1, 3, recipient[:])
	s.observer.EXPECT().Pending(gomock.Any()).Return([]*bridge.VAA{rejected, replayed, next}, nil)
	s.transfers.EXPECT().Transfer(uint16(1), gomock.Any()).Return(&transfer.Record{State: transfer.Missing}, nil).Times(3)
	gomock.InOrder(
		s.completer.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(nil, settlement.ErrInvalidProxy),
		s.completer.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(nil, settlement.ErrAlreadyRedeemed),
		s.completer.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(&settlement.CompleteReceipt{}, nil),
	)
	s.metrics.EXPECT().TrackRelayFailure(settlement.KindValidation)
	s.metrics.EXPECT().TrackRelayFailure(settlement.KindReplay)
	s.metrics.EXPECT().TrackRelayRound(3)

	err := s.agent.Relay(context.Background())

	s.Nil(err)
}

func (s *AgentTestSuite) Test_FatalErrorIsReturned() {
	s.observer.EXPECT().Pending(gomock.Any()).Return([]*bridge.VAA{s.vaa(1, 1, recipient[:])}, nil)
	s.transfers.EXPECT().Transfer(uint16(1), uint64(1)).Return(&transfer.Record{State: transfer.Missing}, nil)
	s.completer.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(nil, errors.New("disk full"))
	s.metrics.EXPECT().TrackRelayFailure(settlement.KindFatal)
	s.metrics.EXPECT().TrackRelayRound(1)

	err := s.agent.Relay(context.Background())

	s.NotNil(err)
}

func (s *AgentTestSuite) Test_InvalidReceiverSkipped() {
	s.observer.EXPECT().Pending(gomock.Any()).Return([]*bridge.VAA{s.vaa(1, 1, make([]byte, 40))}, nil)
	s.transfers.EXPECT().Transfer(uint16(1), uint64(1)).Return(&transfer.Record{State: transfer.Missing}, nil)
	s.metrics.EXPECT().TrackRelayRound(1)

	err := s.agent.Relay(context.Background())

	s.Nil(err)
}
