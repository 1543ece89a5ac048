// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/suite"
)

var (
	alice = ledger.Address{1}
	bob   = ledger.Address{2}
	usdc  = ledger.Address{0xaa}
)

type MemoryLedgerTestSuite struct {
	suite.Suite

	ledger *ledger.Memory
}

func TestRunMemoryLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryLedgerTestSuite))
}

func (s *MemoryLedgerTestSuite) SetupTest() {
	s.ledger = ledger.NewMemory()
	s.ledger.RegisterAsset(usdc, 6)
	s.Nil(s.ledger.Fund(alice, usdc, 100))
}

func (s *MemoryLedgerTestSuite) Test_TransferCommits() {
	committed := false

	err := s.ledger.Atomic(context.Background(), func(tx ledger.Tx) error {
		tx.OnCommit(func() { committed = true })
		return tx.Transfer(usdc, alice, bob, 40)
	})

	s.Nil(err)
	s.True(committed)
	s.Equal(uint64(60), s.ledger.Balance(alice, usdc))
	s.Equal(uint64(40), s.ledger.Balance(bob, usdc))
}

func (s *MemoryLedgerTestSuite) Test_FailedStepRollsBack() {
	committed := false

	err := s.ledger.Atomic(context.Background(), func(tx ledger.Tx) error {
		tx.OnCommit(func() { committed = true })
		if err := tx.Transfer(usdc, alice, bob, 40); err != nil {
			return err
		}
		return tx.Transfer(usdc, alice, bob, 70)
	})

	s.ErrorIs(err, ledger.ErrInsufficientFunds)
	s.False(committed)
	s.Equal(uint64(100), s.ledger.Balance(alice, usdc))
	s.Equal(uint64(0), s.ledger.Balance(bob, usdc))
}

func (s *MemoryLedgerTestSuite) Test_NestedFailureKeepsOuterScope() {
	err := s.ledger.Atomic(context.Background(), func(tx ledger.Tx) error {
		if err := tx.Transfer(usdc, alice, bob, 10); err != nil {
			return err
		}
		nestedErr := tx.Nested(func(tx ledger.Tx) error {
			if err := tx.Transfer(usdc, bob, alice, 5); err != nil {
				return err
			}
			s.Equal(uint64(5), tx.Balance(bob, usdc))
			return errors.New("swap failed")
		})
		s.NotNil(nestedErr)
		s.Equal(uint64(10), tx.Balance(bob, usdc))
		return nil
	})

	s.Nil(err)
	s.Equal(uint64(90), s.ledger.Balance(alice, usdc))
	s.Equal(uint64(10), s.ledger.Balance(bob, usdc))
}

func (s *MemoryLedgerTestSuite) Test_NestedSuccessMerges() {
	err := s.ledger.Atomic(context.Background(), func(tx ledger.Tx) error {
		return tx.Nested(func(tx ledger.Tx) error {
			return tx.Burn(usdc, alice, 30)
		})
	})

	s.Nil(err)
	s.Equal(uint64(70), s.ledger.Balance(alice, usdc))
}

func (s *MemoryLedgerTestSuite) Test_UnknownAsset() {
	err := s.ledger.Fund(alice, ledger.Address{0xbb}, 1)

	s.ErrorIs(err, ledger.ErrUnknownAsset)
}

func (s *MemoryLedgerTestSuite) Test_CancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.ledger.Atomic(ctx, func(tx ledger.Tx) error { return nil })

	s.ErrorIs(err, context.Canceled)
}

func (s *MemoryLedgerTestSuite) Test_ChangesOfMergedScopes() {
	var changes []ledger.Balance

	err := s.ledger.Atomic(context.Background(), func(tx ledger.Tx) error {
		s.Nil(tx.Nested(func(tx ledger.Tx) error {
			return tx.Transfer(usdc, alice, bob, 100)
		}))
		s.NotNil(tx.Nested(func(tx ledger.Tx) error {
			if err := tx.Mint(usdc, ledger.Address{3}, 1); err != nil {
				return err
			}
			return errors.New("discarded")
		}))
		changes = tx.Changes()
		return nil
	})

	s.Nil(err)
	s.Equal([]ledger.Balance{
		{Owner: alice, Asset: usdc, Amount: 0},
		{Owner: bob, Asset: usdc, Amount: 100},
	}, changes)
}

func (s *MemoryLedgerTestSuite) Test_RestoreBalances() {
	s.Nil(s.ledger.Fund(bob, usdc, 5))
	balances := s.ledger.Balances()

	restored := ledger.NewMemory()
	restored.RegisterAsset(usdc, 6)
	restored.Restore(balances)

	s.Equal(balances, restored.Balances())
	s.Equal(uint64(100), restored.Balance(alice, usdc))
	s.Equal(uint64(5), restored.Balance(bob, usdc))
}

type AddressTestSuite struct {
	suite.Suite
}

func TestRunAddressTestSuite(t *testing.T) {
	suite.Run(t, new(AddressTestSuite))
}

func (s *AddressTestSuite) Test_DeriveAddressIsDeterministic() {
	program := ledger.Address{9}

	first := ledger.DeriveAddress(program, []byte("tmp"), []byte{1})
	second := ledger.DeriveAddress(program, []byte("tmp"), []byte{1})
	other := ledger.DeriveAddress(program, []byte("tmp"), []byte{2})

	s.Equal(first, second)
	s.NotEqual(first, other)
}

func (s *AddressTestSuite) Test_HexRoundTrip() {
	a := ledger.Address{0xde, 0xad}

	parsed, err := ledger.HexToAddress(a.Hex())

	s.Nil(err)
	s.Equal(a, parsed)
}

func (s *AddressTestSuite) Test_BytesToAddressRejectsShortInput() {
	_, err := ledger.BytesToAddress(make([]byte, 20))

	s.ErrorIs(err, ledger.ErrInvalidAddress)
}

func (s *AddressTestSuite) Test_RentExemptMinimum() {
	s.Equal(uint64((128+100)*3480*2), ledger.RentExemptMinimum(100))
}

func (s *AddressTestSuite) Test_PubkeyToAddress() {
	key, err := crypto.GenerateKey()
	s.Nil(err)

	address := ledger.PubkeyToAddress(key.PublicKey)

	s.Equal(crypto.PubkeyToAddress(key.PublicKey).Bytes(), address[12:])
}
