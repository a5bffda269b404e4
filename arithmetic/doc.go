// Package arithmetic contains the curve independent algorithms used on a
// structured reference string: the parallel executor, multi-scalar
// multiplication, the monomial to Lagrange basis conversion and the
// randomized same-ratio check.
//
// The algorithms are written against small capability interfaces (Group,
// ScalarField, Pairing) which the curve package implements on top of
// gnark-crypto. Go cannot infer the affine and projective types from an
// interface argument, so callers pass the type parameters explicitly:
//
//	sum, err := arithmetic.MultiExp[bn254.G1Affine, bn254.G1Jac](group, scalars, points, 0)
package arithmetic
