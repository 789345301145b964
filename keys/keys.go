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

// Package keys loads the elliptic curve private keys used to sign requests.
package keys

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/awnumar/memguard"
	"github.com/sirupsen/logrus"
)

var (
	// ErrKeyFormat means the key bytes are not a parseable PEM private key.
	ErrKeyFormat = errors.New("private key is not a valid PEM encoded private key")
	// ErrNotEllipticCurveKey means the key parsed but belongs to another
	// key family, for example RSA or Ed25519.
	ErrNotEllipticCurveKey = errors.New("private key must be an elliptic curve key")
	// ErrKeyVerification means the key failed the consistency check.
	ErrKeyVerification = errors.New("private key verification failed")
)

// ReadSKFile reads and parses the PEM encoded EC private key at fpath. The
// file contents are only kept in a locked buffer, which is destroyed before
// returning.
func ReadSKFile(fpath string) (*ecdsa.PrivateKey, error) {
	f, err := os.Open(fpath)
	if err != nil {
		return nil, fmt.Errorf("failed to read the private key file: %w", err)
	}
	defer f.Close()

	buf, err := memguard.NewBufferFromEntireReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read the private key file: %w", err)
	}
	defer buf.Destroy()

	logrus.Debugf("read %d bytes of private key material from %s", buf.Size(), fpath)
	return ParsePrivateKey(buf.Bytes())
}

// ParsePrivateKey parses a SEC 1 ("EC PRIVATE KEY") or PKCS #8
// ("PRIVATE KEY") PEM block and checks the key is consistent. The curve is
// not restricted here; signers decide which curves they accept.
func ParsePrivateKey(pemBytes []byte) (*ecdsa.PrivateKey, error) {
	// openssl ecparam -genkey writes an EC PARAMETERS block before the key
	block, rest := pem.Decode(pemBytes)
	for block != nil && block.Type == "EC PARAMETERS" {
		block, rest = pem.Decode(rest)
	}
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrKeyFormat)
	}

	var sk *ecdsa.PrivateKey
	switch block.Type {
	case "EC PRIVATE KEY":
		var err error
		if sk, err = x509.ParseECPrivateKey(block.Bytes); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrKeyFormat, err)
		}
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrKeyFormat, err)
		}
		var ok bool
		if sk, ok = key.(*ecdsa.PrivateKey); !ok {
			return nil, fmt.Errorf("%w: got %T", ErrNotEllipticCurveKey, key)
		}
	case "RSA PRIVATE KEY":
		return nil, fmt.Errorf("%w: got PEM block of type %q", ErrNotEllipticCurveKey, block.Type)
	default:
		return nil, fmt.Errorf("%w: unexpected PEM block type %q", ErrKeyFormat, block.Type)
	}

	if err := CheckKey(sk); err != nil {
		return nil, err
	}
	logrus.Debugf("loaded %s private key", sk.Curve.Params().Name)
	return sk, nil
}
