package util

import (
	"bytes"
	"fmt"
)

// SplitCompact splits a JWS in compact serialization into its protected
// header, payload and signature segments. The segments are returned still
// base64url encoded. A token with anything other than exactly two dots is
// rejected.
func SplitCompact(token []byte) (protected, payload, signature []byte, err error) {
	parts := bytes.Split(token, []byte{'.'})
	if len(parts) != 3 {
		return nil, nil, nil, fmt.Errorf("compact jws must have 3 segments, got %d", len(parts))
	}
	return parts[0], parts[1], parts[2], nil
}

// DetachPayload turns a compact JWS into one with a detached payload
// (RFC 7515 appendix F) by emptying the middle segment: header..signature.
func DetachPayload(token []byte) ([]byte, error) {
	protected, _, signature, err := SplitCompact(token)
	if err != nil {
		return nil, err
	}
	if len(protected) == 0 || len(signature) == 0 {
		return nil, fmt.Errorf("compact jws has an empty header or signature segment")
	}
	return JoinJWTSegments(protected, nil, signature), nil
}
