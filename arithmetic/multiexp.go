package arithmetic

import (
	"fmt"
	"math"
	"math/big"
)

// below this many terms the bucket method costs more than it saves
const smallMultiExp = 16

// MultiExp returns Σ scalars[i]·points[i] in projective form.
//
// Small inputs are accumulated term by term; larger inputs use the windowed
// bucket method on contiguous ranges of terms, one range per worker, and the
// partial sums are added in range order. The strategy never changes the
// result. Scalars must be non negative.
func MultiExp[A, J any](group Group[A, J], scalars []*big.Int, points []A, workers int) (J, error) {
	if len(scalars) != len(points) {
		return group.Zero(), fmt.Errorf("multiexp: %d scalars for %d points",
			len(scalars), len(points))
	}
	maxBits := 0
	for i, s := range scalars {
		if s.Sign() < 0 {
			return group.Zero(), fmt.Errorf("multiexp: negative scalar at index %d", i)
		}
		if b := s.BitLen(); b > maxBits {
			maxBits = b
		}
	}
	if len(points) < smallMultiExp {
		return multiExpSerial(group, scalars, points), nil
	}

	c := windowSize(len(points))
	chunks := Chunks(len(points), workers)
	partial := make([]J, len(chunks))
	err := Execute(len(points), workers, func(chunk, start, end int) error {
		partial[chunk] = multiExpBuckets(group, scalars[start:end], points[start:end], c, maxBits)
		return nil
	})
	if err != nil {
		return group.Zero(), err
	}

	acc := group.Zero()
	for i := range partial {
		acc = group.Add(&acc, &partial[i])
	}
	return acc, nil
}

// MultiExpAffine is MultiExp normalized to affine form.
func MultiExpAffine[A, J any](group Group[A, J], scalars []*big.Int, points []A, workers int) (A, error) {
	p, err := MultiExp(group, scalars, points, workers)
	if err != nil {
		var zero A
		return zero, err
	}
	return group.ToAffine([]J{p})[0], nil
}

func multiExpSerial[A, J any](group Group[A, J], scalars []*big.Int, points []A) J {
	acc := group.Zero()
	for i := range points {
		if scalars[i].Sign() == 0 {
			continue
		}
		p := group.FromAffine(&points[i])
		p = group.ScalarMul(&p, scalars[i])
		acc = group.Add(&acc, &p)
	}
	return acc
}

// windowSize returns the bucket window in bits for n terms.
func windowSize(n int) int {
	switch {
	case n < 4:
		return 1
	case n < 32:
		return 3
	default:
		return int(math.Ceil(math.Log(float64(n))))
	}
}

func multiExpBuckets[A, J any](group Group[A, J], scalars []*big.Int, points []A, c, maxBits int) J {
	acc := group.Zero()
	if maxBits == 0 {
		return acc
	}
	nbWindows := (maxBits + c - 1) / c
	buckets := make([]J, (1<<c)-1)

	for w := nbWindows - 1; w >= 0; w-- {
		for i := 0; i < c; i++ {
			acc = group.Double(&acc)
		}

		for i := range buckets {
			buckets[i] = group.Zero()
		}
		for i := range points {
			d := digit(scalars[i], w*c, c)
			if d == 0 {
				continue
			}
			buckets[d-1] = group.AddMixed(&buckets[d-1], &points[i])
		}

		// Σ j·bucket[j] as a running sum from the top bucket down
		running, sum := group.Zero(), group.Zero()
		for j := len(buckets) - 1; j >= 0; j-- {
			running = group.Add(&running, &buckets[j])
			sum = group.Add(&sum, &running)
		}
		acc = group.Add(&acc, &sum)
	}
	return acc
}

// digit returns the c bits of s starting at bit offset.
func digit(s *big.Int, offset, c int) int {
	d := 0
	for b := 0; b < c; b++ {
		d |= int(s.Bit(offset+b)) << b
	}
	return d
}
