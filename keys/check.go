package keys

import (
	"crypto/ecdsa"
	"fmt"

	"filippo.io/bigmod"
)

// CheckKey verifies that sk is internally consistent: the public point is
// on the curve, the private scalar lies in [1, N-1] and the public point is
// D*G.
func CheckKey(sk *ecdsa.PrivateKey) error {
	if sk == nil || sk.Curve == nil || sk.D == nil || sk.X == nil || sk.Y == nil {
		return fmt.Errorf("%w: incomplete key", ErrKeyVerification)
	}
	params := sk.Curve.Params()

	if !sk.Curve.IsOnCurve(sk.X, sk.Y) {
		return fmt.Errorf("%w: public point is not on %s", ErrKeyVerification, params.Name)
	}

	if sk.D.Sign() <= 0 {
		return fmt.Errorf("%w: private scalar is not positive", ErrKeyVerification)
	}
	n, err := bigmod.NewModulusFromBig(params.N)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKeyVerification, err)
	}
	// SetBytes fails when D >= N
	if _, err := bigmod.NewNat().SetBytes(sk.D.Bytes(), n); err != nil {
		return fmt.Errorf("%w: private scalar is not below the curve order", ErrKeyVerification)
	}

	x, y := sk.Curve.ScalarBaseMult(sk.D.Bytes())
	if x.Cmp(sk.X) != 0 || y.Cmp(sk.Y) != 0 {
		return fmt.Errorf("%w: public key does not match private key", ErrKeyVerification)
	}
	return nil
}
