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

package jose

import (
	"crypto"
	"crypto/elliptic"
)

type KeyAlgorithm = string

// ES512 is ECDSA using P-521 and SHA-512 (RFC 7518 section 3.4). It is the
// only algorithm we sign with.
const ES512 = KeyAlgorithm("ES512")

// ECDSAParams ties a JOSE ECDSA algorithm to its curve, digest and the
// fixed width of each signature coefficient.
type ECDSAParams struct {
	Alg   KeyAlgorithm
	Curve elliptic.Curve
	Hash  crypto.Hash
	// ScalarSize is the byte length R and S are each padded to.
	ScalarSize int
}

// SignatureSize is the length of the R||S signature in bytes.
func (p ECDSAParams) SignatureSize() int {
	return 2 * p.ScalarSize
}

// ES512Params returns the parameters of ES512. P-521 coefficients need
// ceil(521/8) = 66 bytes, so an ES512 signature is always 132 bytes.
func ES512Params() ECDSAParams {
	return ECDSAParams{
		Alg:        ES512,
		Curve:      elliptic.P521(),
		Hash:       crypto.SHA512,
		ScalarSize: (elliptic.P521().Params().BitSize + 7) / 8,
	}
}
