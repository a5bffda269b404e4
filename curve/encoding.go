package curve

import (
	"fmt"
	"math/big"
)

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformedPoint}, args...)...)
}

func wrapMalformed(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrMalformedPoint, what, err)
}

func checkSize(what string, b []byte, size int) error {
	if len(b) != size {
		return malformed("%s: expected %d bytes, got %d", what, size, len(b))
	}
	return nil
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// pickSign resolves the two square roots of y² for a perpetual encoding.
// candidateSmaller tells whether the candidate's y is the smaller of y and
// -y, greatest is the sign flag stored with the point. The candidate is kept
// iff candidateSmaller XOR greatest.
func pickSign[T any](candidate, neg T, candidateSmaller, greatest bool) T {
	if candidateSmaller != greatest {
		return candidate
	}
	return neg
}

// montgomeryFactors returns R = 2^(8·size) mod p and R⁻¹ mod p, the factors
// between a field element and its Montgomery residue.
func montgomeryFactors(p *big.Int, size int) (r, rInv *big.Int) {
	r = new(big.Int).Lsh(big.NewInt(1), uint(8*size))
	r.Mod(r, p)
	rInv = new(big.Int).ModInverse(r, p)
	return r, rInv
}
