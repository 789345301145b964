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
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/lestrrat-go/jwx/v2/jwa"
)

// ErrSerialization is returned when the protected header can't be encoded
// as JSON.
var ErrSerialization = errors.New("failed to serialize jws header")

var marshalHeader = json.Marshal

// Header is the JWS protected header. It is a struct rather than a map so
// the field order, and therefore the encoded bytes, never change between
// serializations.
type Header struct {
	Alg   jwa.SignatureAlgorithm `json:"alg"`
	KeyID string                 `json:"kid"`
}

// NewHeader returns an ES512 header naming kid, the id of the public
// certificate that matches the signing key. kid is embedded verbatim.
func NewHeader(kid string) Header {
	return Header{
		Alg:   jwa.ES512,
		KeyID: kid,
	}
}

// Marshal returns the JSON encoding of h, e.g. {"alg":"ES512","kid":"..."}
func (h Header) Marshal() ([]byte, error) {
	headerJSON, err := marshalHeader(h)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return headerJSON, nil
}
