package arithmetic

import (
	"fmt"
	"io"
	"math/big"
)

// bytes drawn per random scalar, twice the field size so the reduction bias is
// negligible
const scalarEntropy = 64

// RandomScalars draws n scalars uniformly from the field using rng.
func RandomScalars(field ScalarField, rng io.Reader, n int) ([]*big.Int, error) {
	modulus := field.Modulus()
	buf := make([]byte, scalarEntropy)
	res := make([]*big.Int, n)
	for i := range res {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, fmt.Errorf("error drawing random scalar: %w", err)
		}
		res[i] = new(big.Int).SetBytes(buf)
		res[i].Mod(res[i], modulus)
	}
	return res, nil
}

// SameRatio reports whether g is a geometric sequence with the ratio that maps
// g2 to sG2, i.e. whether g[i+1] = s·g[i] for every i where sG2 = s·g2.
//
// With n = len(g) it draws c_1 … c_{n-1} from rng and checks
//
//	e(Σ c_i·g[i], sG2) = e(Σ c_i·g[i+1], g2)
//
// as a single product of two Miller loops and one final exponentiation. A
// sequence that breaks the ratio passes with probability about 1/r. Sequences
// shorter than two points are trivially accepted.
func SameRatio[G1, J, G2, GT any](group Group[G1, J], field ScalarField,
	pairing Pairing[G1, G2, GT], g []G1, g2, sG2 *G2, rng io.Reader, workers int) (bool, error) {

	n := len(g)
	if n < 2 {
		return true, nil
	}
	coeffs, err := RandomScalars(field, rng, n-1)
	if err != nil {
		return false, err
	}

	lhs, err := MultiExp(group, coeffs, g[:n-1], workers)
	if err != nil {
		return false, err
	}
	rhs, err := MultiExp(group, coeffs, g[1:], workers)
	if err != nil {
		return false, err
	}
	p := group.ToAffine([]J{lhs, rhs})
	q := []G2{*sG2, pairing.NegG2(g2)}

	ml, err := pairing.MillerLoop(p, q)
	if err != nil {
		return false, fmt.Errorf("error computing miller loop: %w", err)
	}
	res := pairing.FinalExponentiation(&ml)
	return pairing.IsOne(&res), nil
}
