package signer

import (
	"crypto"
	_ "crypto/sha512" // registers SHA-512 for crypto.SHA512.New
	"fmt"

	"github.com/openpubkey/jwssign/jose"
)

// Signer produces JOSE signatures with a single, fixed key and algorithm.
type Signer interface {
	// Sign returns the raw JOSE signature over message. The message is
	// hashed by the signer.
	Sign(message []byte) ([]byte, error)
	PublicKey() crypto.PublicKey
	KeyAlgorithm() jose.KeyAlgorithm
}

func hash(h crypto.Hash, message []byte) ([]byte, error) {
	if !h.Available() {
		return nil, fmt.Errorf("hash function %s is not available", h)
	}
	// hash the message
	msgHash := h.New()
	_, err := msgHash.Write(message)
	if err != nil {
		return nil, err
	}
	msgHashSum := msgHash.Sum(nil)

	return msgHashSum, nil
}
