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

package commands

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/openpubkey/jwssign/keys"
	"github.com/openpubkey/jwssign/signer"
	"github.com/openpubkey/jwssign/util"
	"github.com/stretchr/testify/require"
)

func writeKeyFile(t *testing.T, curve elliptic.Curve) (*ecdsa.PrivateKey, string) {
	sk, err := ecdsa.GenerateKey(curve, rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalECPrivateKey(sk)
	require.NoError(t, err)

	fpath := filepath.Join(t.TempDir(), "ec512-private-key.pem")
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der})
	require.NoError(t, os.WriteFile(fpath, pemBytes, 0600))
	return sk, fpath
}

func TestSignCmd(t *testing.T) {
	sk, keyPath := writeKeyFile(t, elliptic.P521())
	kid, err := ParseKeyID("45FD3A3B-8A55-4DD5-9F0B-C3E4A2E4C5B3")
	require.NoError(t, err)
	body := []byte(`{"currency":"GBP","amount_in_minor":100}`)

	cmd := SignCmd{KeyPath: keyPath, KeyID: kid, Body: body}
	var out bytes.Buffer
	require.NoError(t, cmd.Run(&out))

	line := out.String()
	require.True(t, strings.HasSuffix(line, "\n"))
	require.Equal(t, 1, strings.Count(line, "\n"), "output must be a single line")
	detached := strings.TrimSuffix(line, "\n")
	require.Contains(t, detached, "..")

	protected, _, _, err := util.SplitCompact([]byte(detached))
	require.NoError(t, err)
	headerJSON, err := util.Base64DecodeForJWT(protected)
	require.NoError(t, err)
	require.Equal(t, `{"alg":"ES512","kid":"45fd3a3b-8a55-4dd5-9f0b-c3e4a2e4c5b3"}`, string(headerJSON))

	_, err = jws.Verify([]byte(detached),
		jws.WithKey(jwa.ES512, &sk.PublicKey),
		jws.WithDetachedPayload(body))
	require.NoError(t, err)
}

func TestSignCmdErrors(t *testing.T) {
	_, p521Path := writeKeyFile(t, elliptic.P521())
	_, p256Path := writeKeyFile(t, elliptic.P256())
	kid := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	garbagePath := filepath.Join(t.TempDir(), "garbage.pem")
	require.NoError(t, os.WriteFile(garbagePath, []byte("-----BEGIN NOTHING-----"), 0600))

	testCases := []struct {
		name        string
		cmd         SignCmd
		expectedErr error
		errContains string
	}{
		{name: "wrong curve", cmd: SignCmd{KeyPath: p256Path, KeyID: kid, Body: []byte("hello")},
			expectedErr: signer.ErrCurveMismatch},
		{name: "bad key file", cmd: SignCmd{KeyPath: garbagePath, KeyID: kid, Body: []byte("hello")},
			expectedErr: keys.ErrKeyFormat},
		{name: "missing key file", cmd: SignCmd{KeyPath: filepath.Join(t.TempDir(), "nope.pem"), KeyID: kid},
			expectedErr: os.ErrNotExist},
		{name: "nil kid", cmd: SignCmd{KeyPath: p521Path, KeyID: uuid.Nil, Body: []byte("hello")},
			errContains: "nil UUID"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			err := tc.cmd.Run(&out)
			require.Error(t, err)
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
			}
			if tc.errContains != "" {
				require.ErrorContains(t, err, tc.errContains)
			}
			require.Empty(t, out.String(), "nothing may be printed on failure")
		})
	}
}

func TestParseKeyID(t *testing.T) {
	id, err := ParseKeyID("11111111-1111-1111-1111-111111111111")
	require.NoError(t, err)
	require.Equal(t, "11111111-1111-1111-1111-111111111111", id.String())

	id, err = ParseKeyID("{ABCDEF01-2345-6789-ABCD-EF0123456789}")
	require.NoError(t, err)
	require.Equal(t, "abcdef01-2345-6789-abcd-ef0123456789", id.String())

	_, err = ParseKeyID("not-a-uuid")
	require.Error(t, err)
}

func TestReadBody(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "body.json")
	require.NoError(t, os.WriteFile(fpath, []byte(`{"a":1}`+"\n"), 0600))

	body, err := ReadBody(fpath, nil)
	require.NoError(t, err)
	require.Equal(t, []byte(`{"a":1}`+"\n"), body, "body bytes must be kept as is")

	body, err = ReadBody("-", strings.NewReader("from stdin"))
	require.NoError(t, err)
	require.Equal(t, []byte("from stdin"), body)

	_, err = ReadBody(filepath.Join(t.TempDir(), "missing.json"), nil)
	require.ErrorIs(t, err, os.ErrNotExist)
}
