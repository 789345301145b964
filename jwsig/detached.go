// Copyright 2025 OpenPubkey
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package jwsig

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/openpubkey/jwssign/internal/jwx"
	"github.com/openpubkey/jwssign/signer"
	"github.com/openpubkey/jwssign/util"
)

// SigningInput returns base64url(header) "." base64url(payload), the bytes
// an ES512 signature is computed over (RFC 7515 section 5.1). The payload
// is treated as opaque bytes.
func SigningInput(header Header, payload []byte) ([]byte, error) {
	headerJSON, err := header.Marshal()
	if err != nil {
		return nil, err
	}
	return util.JoinJWTSegments(
		util.Base64EncodeForJWT(headerJSON),
		util.Base64EncodeForJWT(payload),
	), nil
}

// SignCompact signs payload with s and returns the JWS in compact
// serialization: header.payload.signature.
//
// Check appendix A.4 of RFC 7515 for a worked ES512 example:
// https://www.rfc-editor.org/rfc/rfc7515.txt
func SignCompact(s signer.Signer, header Header, payload []byte) ([]byte, error) {
	if alg := jwx.ToJoseAlgorithm(header.Alg); alg != s.KeyAlgorithm() {
		return nil, fmt.Errorf("header alg %q does not match signer alg %q", alg, s.KeyAlgorithm())
	}

	// The header is serialized once so the signed segment and the emitted
	// segment are the same bytes.
	headerJSON, err := header.Marshal()
	if err != nil {
		return nil, err
	}
	protected := util.Base64EncodeForJWT(headerJSON)
	encodedPayload := util.Base64EncodeForJWT(payload)

	signature, err := s.Sign(util.JoinJWTSegments(protected, encodedPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to sign jws: %w", err)
	}

	return util.JoinJWTSegments(protected, encodedPayload, util.Base64EncodeForJWT(signature)), nil
}

// SignDetachedWith returns the JWS of payload signed by s with the payload
// segment removed: header..signature. The receiver needs the original
// payload bytes to rebuild the signing input.
func SignDetachedWith(s signer.Signer, header Header, payload []byte) (string, error) {
	compact, err := SignCompact(s, header, payload)
	if err != nil {
		return "", err
	}
	detached, err := util.DetachPayload(compact)
	if err != nil {
		return "", err
	}
	return string(detached), nil
}

// SignDetached signs payload with the P-521 key sk using ES512 and returns
// the detached JWS. Nothing is returned on error.
func SignDetached(header Header, payload []byte, sk *ecdsa.PrivateKey) (string, error) {
	s, err := signer.NewES512Signer(sk)
	if err != nil {
		return "", err
	}
	return SignDetachedWith(s, header, payload)
}
