package arithmetic

import (
	"math/big"
)

// Group is an elliptic curve group with an affine representation A, used for
// storage, and a projective representation J, used for arithmetic.
// Methods never modify their arguments.
type Group[A, J any] interface {
	// Zero returns the identity in projective form.
	Zero() J
	FromAffine(a *A) J
	// ToAffine normalizes a batch of projective points.
	ToAffine(p []J) []A
	Add(p, q *J) J
	AddMixed(p *J, a *A) J
	Double(p *J) J
	Neg(p *J) J
	// ScalarMul returns s·p for a non negative s.
	ScalarMul(p *J, s *big.Int) J
}

// ScalarField is the prime field of group scalars.
type ScalarField interface {
	Modulus() *big.Int
	// RootOfUnity returns a primitive n-th root of unity, n a power of two.
	// It fails when the field has no such root.
	RootOfUnity(n uint64) (*big.Int, error)
}

// Pairing is a bilinear map e: G1 × G2 -> GT split in its two stages.
type Pairing[G1, G2, GT any] interface {
	// MillerLoop returns the product of the Miller loops of (p[i], q[i]).
	MillerLoop(p []G1, q []G2) (GT, error)
	FinalExponentiation(z *GT) GT
	IsOne(z *GT) bool
	NegG2(q *G2) G2
}
