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
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/openpubkey/jwssign/jwsig"
	"github.com/openpubkey/jwssign/keys"
	"github.com/sirupsen/logrus"
)

// SignCmd signs a request body for the Payouts API and prints the JWS with
// a detached payload.
type SignCmd struct {
	// KeyPath is the PEM file holding the P-521 private key.
	KeyPath string
	// KeyID is the id of the public certificate uploaded to the console. It
	// becomes the kid header.
	KeyID uuid.UUID
	// Body is the exact request body that will be sent.
	Body []byte
}

// ParseKeyID parses the certificate id given on the command line. Any form
// accepted by uuid.Parse is allowed; the canonical lowercase form is what
// ends up in the header.
func ParseKeyID(kid string) (uuid.UUID, error) {
	id, err := uuid.Parse(kid)
	if err != nil {
		return uuid.Nil, fmt.Errorf("kid must be a UUID: %w", err)
	}
	return id, nil
}

// ReadBody returns the request body stored in fpath, or stdin when fpath
// is "-".
func ReadBody(fpath string, stdin io.Reader) ([]byte, error) {
	if fpath == "-" {
		body, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read body from stdin: %w", err)
		}
		return body, nil
	}
	body, err := os.ReadFile(fpath)
	if err != nil {
		return nil, fmt.Errorf("failed to read body file: %w", err)
	}
	return body, nil
}

// Run loads the key, signs Body and writes the detached JWS followed by a
// newline to out. Nothing is written to out on failure.
func (s *SignCmd) Run(out io.Writer) error {
	if s.KeyID == uuid.Nil {
		return fmt.Errorf("kid must not be the nil UUID")
	}

	sk, err := keys.ReadSKFile(s.KeyPath)
	if err != nil {
		return err
	}

	logrus.Debugf("signing %d byte body with kid %s", len(s.Body), s.KeyID)
	detached, err := jwsig.SignDetached(jwsig.NewHeader(s.KeyID.String()), s.Body, sk)
	if err != nil {
		return fmt.Errorf("failed to sign body: %w", err)
	}

	if _, err := fmt.Fprintln(out, detached); err != nil {
		return fmt.Errorf("failed to write jws: %w", err)
	}
	return nil
}
