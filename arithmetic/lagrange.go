package arithmetic

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"
)

var errNotPowerOfTwo = errors.New("length is not a power of two")

// ToLagrange converts the monomial basis g[i] = s^i·G into the Lagrange basis
// L_i(s)·G of the multiplicative subgroup of size n = len(g), n a power of two.
//
// The conversion is an inverse FFT over group elements: a bit reversal
// permutation, log2(n) stages of radix-2 butterflies with ω⁻¹ twiddles, then
// a scaling of every point by n⁻¹. Butterflies of a stage touch disjoint index
// pairs and run across workers; the output does not depend on workers.
func ToLagrange[A, J any](group Group[A, J], field ScalarField, g []A, workers int) ([]A, error) {
	n := len(g)
	if n == 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("lagrange: %w: %d", errNotPowerOfTwo, n)
	}
	if n == 1 {
		return []A{g[0]}, nil
	}

	modulus := field.Modulus()
	omega, err := field.RootOfUnity(uint64(n))
	if err != nil {
		return nil, fmt.Errorf("lagrange: root of unity of order %d: %w", n, err)
	}
	omegaInv := new(big.Int).ModInverse(omega, modulus)
	nInv := new(big.Int).ModInverse(big.NewInt(int64(n)), modulus)
	if omegaInv == nil || nInv == nil {
		return nil, fmt.Errorf("lagrange: domain of size %d is not invertible", n)
	}

	a := make([]J, n)
	_ = Parallelize(a, workers, func(chunk []J, start int) error {
		for i := range chunk {
			chunk[i] = group.FromAffine(&g[start+i])
		}
		return nil
	})
	bitReverse(a)

	twiddles := powers(omegaInv, n/2, modulus)
	for m := 1; m < n; m <<= 1 {
		stride := n / (2 * m)
		_ = Execute(n/2, workers, func(_, start, end int) error {
			for b := start; b < end; b++ {
				j := b % m
				i := (b/m)*2*m + j
				t := a[i+m]
				if j != 0 {
					t = group.ScalarMul(&t, twiddles[j*stride])
				}
				u := a[i]
				a[i] = group.Add(&u, &t)
				t = group.Neg(&t)
				a[i+m] = group.Add(&u, &t)
			}
			return nil
		})
	}

	out := make([]A, n)
	_ = Execute(n, workers, func(_, start, end int) error {
		for i := start; i < end; i++ {
			a[i] = group.ScalarMul(&a[i], nInv)
		}
		copy(out[start:end], group.ToAffine(a[start:end]))
		return nil
	})
	return out, nil
}

// powers returns x^0 … x^(n-1) mod m.
func powers(x *big.Int, n int, m *big.Int) []*big.Int {
	res := make([]*big.Int, n)
	acc := big.NewInt(1)
	for i := range res {
		res[i] = new(big.Int).Set(acc)
		acc.Mul(acc, x).Mod(acc, m)
	}
	return res
}

func bitReverse[T any](v []T) {
	n := uint64(len(v))
	shift := 64 - uint64(bits.TrailingZeros64(n))
	for i := uint64(0); i < n; i++ {
		j := bits.Reverse64(i) >> shift
		if i < j {
			v[i], v[j] = v[j], v[i]
		}
	}
}
