package jwx

import (
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/openpubkey/jwssign/jose"
)

func ToJoseAlgorithm(alg jwa.SignatureAlgorithm) jose.KeyAlgorithm {
	return jose.KeyAlgorithm(alg.String())
}
