// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package api

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/ChainSafe/omniswap-relayer/chains/ledger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// CallerHeader carries the hex address of the account a mutating request
	// is made on behalf of. It must be the address of the signing key.
	CallerHeader = "X-Omni-Caller"
	// SignatureHeader carries the 65 byte secp256k1 signature of the request
	// digest.
	SignatureHeader = "X-Omni-Signature"
	// TimestampHeader carries the unix time the request was signed at.
	TimestampHeader = "X-Omni-Timestamp"

	MaxClockSkew = 5 * time.Minute
	maxBodySize  = 1 << 20
)

var (
	errUnauthorized = errors.New("unauthorized")
	errForbidden    = errors.New("forbidden")
)

// RequestDigest is the digest signed by the caller of a mutating endpoint.
func RequestDigest(method, path string, timestamp int64, body []byte) []byte {
	sep := []byte{'\n'}
	return crypto.Keccak256(
		[]byte(method), sep,
		[]byte(path), sep,
		[]byte(strconv.FormatInt(timestamp, 10)), sep,
		body,
	)
}

// SignRequest signs r with key at time now. body must be the request body.
func SignRequest(r *http.Request, key *ecdsa.PrivateKey, body []byte, now time.Time) error {
	timestamp := now.Unix()
	sig, err := crypto.Sign(RequestDigest(r.Method, r.URL.Path, timestamp, body), key)
	if err != nil {
		return err
	}
	r.Header.Set(CallerHeader, ledger.PubkeyToAddress(key.PublicKey).Hex())
	r.Header.Set(TimestampHeader, strconv.FormatInt(timestamp, 10))
	r.Header.Set(SignatureHeader, hexutil.Encode(sig))
	return nil
}

// authenticator recovers callers from signed requests. A signed request is
// accepted once while its timestamp is within MaxClockSkew.
type authenticator struct {
	lock sync.Mutex
	seen map[common.Hash]int64
	now  func() time.Time
}

func newAuthenticator(now func() time.Time) *authenticator {
	return &authenticator{
		seen: make(map[common.Hash]int64),
		now:  now,
	}
}

// authenticate reads the body of r and returns it with the caller once the
// signature proves the caller signed the request.
func (a *authenticator) authenticate(r *http.Request) (ledger.Address, []byte, error) {
	caller, err := ledger.HexToAddress(r.Header.Get(CallerHeader))
	if err != nil {
		return ledger.Address{}, nil, fmt.Errorf("%w: invalid %s header: %s", errUnauthorized, CallerHeader, err)
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return ledger.Address{}, nil, fmt.Errorf("%w: %s", errBadRequest, err)
	}

	timestamp, err := strconv.ParseInt(r.Header.Get(TimestampHeader), 10, 64)
	if err != nil {
		return ledger.Address{}, nil, fmt.Errorf("%w: invalid %s header", errUnauthorized, TimestampHeader)
	}
	now := a.now().Unix()
	skew := int64(MaxClockSkew / time.Second)
	if timestamp < now-skew || timestamp > now+skew {
		return ledger.Address{}, nil, fmt.Errorf("%w: request signed at %d is outside of the accepted window", errUnauthorized, timestamp)
	}

	sig, err := hexutil.Decode(r.Header.Get(SignatureHeader))
	if err != nil || len(sig) != crypto.SignatureLength {
		return ledger.Address{}, nil, fmt.Errorf("%w: invalid %s header", errUnauthorized, SignatureHeader)
	}
	digest := RequestDigest(r.Method, r.URL.Path, timestamp, body)
	pub, err := crypto.SigToPub(digest, sig)
	if err != nil {
		return ledger.Address{}, nil, fmt.Errorf("%w: %s", errUnauthorized, err)
	}
	if ledger.PubkeyToAddress(*pub) != caller {
		return ledger.Address{}, nil, fmt.Errorf("%w: request is not signed by %s", errUnauthorized, caller)
	}

	// keyed by digest, a malleated signature of the same request is a replay
	if err := a.markSeen(common.BytesToHash(digest), timestamp, now-skew); err != nil {
		return ledger.Address{}, nil, err
	}
	return caller, body, nil
}

func (a *authenticator) markSeen(digest common.Hash, timestamp, expired int64) error {
	a.lock.Lock()
	defer a.lock.Unlock()

	for k, ts := range a.seen {
		if ts < expired {
			delete(a.seen, k)
		}
	}
	if _, ok := a.seen[digest]; ok {
		return fmt.Errorf("%w: request was already handled", errUnauthorized)
	}
	a.seen[digest] = timestamp
	return nil
}
