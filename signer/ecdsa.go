// Copyright 2025 OpenPubkey
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package signer

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/openpubkey/jwssign/jose"
	"github.com/openpubkey/jwssign/util"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

var (
	// ErrCurveMismatch is returned when the key is not on P-521.
	ErrCurveMismatch = errors.New("the underlying elliptic curve must be P-521 to sign using ES512")
	// ErrOversizedScalar is returned when R or S does not fit the fixed
	// width of the algorithm. It can only happen with a broken curve
	// implementation, never with bad input.
	ErrOversizedScalar = errors.New("signature coefficient exceeds the fixed width")
)

// ES512Signer ties together a P-521 signing key and the ES512 algorithm.
// It only reads the key, so one ES512Signer can be used from several
// goroutines at once.
type ES512Signer struct {
	signingKey *ecdsa.PrivateKey
	params     jose.ECDSAParams
}

var _ Signer = (*ES512Signer)(nil)

// NewES512Signer checks that sk is on P-521 before any signing happens.
// Curves are compared by identity: a curve that merely has the same name
// or parameters is rejected.
func NewES512Signer(sk *ecdsa.PrivateKey) (*ES512Signer, error) {
	params := jose.ES512Params()
	if sk == nil || sk.D == nil {
		return nil, fmt.Errorf("no signing key provided")
	}
	if sk.Curve != params.Curve {
		curveName := "unknown"
		if sk.Curve != nil {
			curveName = sk.Curve.Params().Name
		}
		return nil, fmt.Errorf("%w: got %s", ErrCurveMismatch, curveName)
	}

	return &ES512Signer{
		signingKey: sk,
		params:     params,
	}, nil
}

// Sign hashes message with SHA-512, signs the digest and returns the 132
// byte R||S signature of RFC 7518 section 3.4. This is not the ASN.1 DER
// form returned by crypto/ecdsa.
func (s *ES512Signer) Sign(message []byte) ([]byte, error) {
	digest, err := hash(s.params.Hash, message)
	if err != nil {
		return nil, err
	}

	// sign the hashed message
	der, err := s.signingKey.Sign(rand.Reader, digest, s.params.Hash)
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}

	r, sv, err := parseASN1Signature(der)
	if err != nil {
		return nil, err
	}

	rPadded, err := PadScalar(r, s.params.ScalarSize)
	if err != nil {
		return nil, fmt.Errorf("r: %w", err)
	}
	sPadded, err := PadScalar(sv, s.params.ScalarSize)
	if err != nil {
		return nil, fmt.Errorf("s: %w", err)
	}

	signature := make([]byte, 0, s.params.SignatureSize())
	signature = append(signature, rPadded...)
	signature = append(signature, sPadded...)
	return signature, nil
}

func (s *ES512Signer) PublicKey() crypto.PublicKey {
	return s.signingKey.Public()
}

func (s *ES512Signer) KeyAlgorithm() jose.KeyAlgorithm {
	return s.params.Alg
}

// SignRaw signs signingInput with sk using ES512 and returns the raw 132
// byte signature.
func SignRaw(signingInput []byte, sk *ecdsa.PrivateKey) ([]byte, error) {
	s, err := NewES512Signer(sk)
	if err != nil {
		return nil, err
	}
	return s.Sign(signingInput)
}

// Sign signs signingInput with sk using ES512 and returns the signature as
// a base64url JWS segment.
func Sign(signingInput []byte, sk *ecdsa.PrivateKey) (string, error) {
	signature, err := SignRaw(signingInput, sk)
	if err != nil {
		return "", err
	}
	return util.Base64EncodeToStringForJWT(signature), nil
}

// parseASN1Signature extracts the unsigned big-endian magnitudes of r and s
// from an ASN.1 ECDSA-Sig-Value. Leading zeros are stripped, so the results
// can be shorter than the curve's coefficient size.
func parseASN1Signature(der []byte) (r, s []byte, err error) {
	var inner cryptobyte.String
	rInt, sInt := new(big.Int), new(big.Int)
	input := cryptobyte.String(der)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(rInt) ||
		!inner.ReadASN1Integer(sInt) ||
		!inner.Empty() {
		return nil, nil, fmt.Errorf("invalid ASN.1 ECDSA signature")
	}
	if rInt.Sign() <= 0 || sInt.Sign() <= 0 {
		return nil, nil, fmt.Errorf("invalid ECDSA signature: coefficients must be positive")
	}
	return rInt.Bytes(), sInt.Bytes(), nil
}
