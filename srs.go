package kzgsrs

import (
	"fmt"
	"io"
	"slices"
	"time"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/rs/zerolog"

	"github.com/giuliop/kzgsrs/ceremony"
	"github.com/giuliop/kzgsrs/curve"
)

// Srs is a structured reference string of degree K on the curve whose affine
// G1 and G2 point types are G1 and G2.
//
// G[i] = s^i·G1 and GLagrange[i] = L_i(s)·G1 for i < 2^K, where L_i is the
// i-th Lagrange polynomial of the multiplicative subgroup of size 2^K.
// SG2 = s·G2.
//
// The zero value is not usable: an Srs comes from Read, ReadPartial, New,
// or Clone.
type Srs[G1, G2 any] struct {
	K         uint32
	G         []G1
	GLagrange []G1
	G2        G2
	SG2       G2

	curve curve.Curve[G1, G2]
	opts  options
}

type (
	BN254    = Srs[bn254.G1Affine, bn254.G2Affine]
	BLS12381 = Srs[bls12381.G1Affine, bls12381.G2Affine]
)

// Read imports a ceremony file at the degree it stores.
func Read[G1, G2 any](c curve.Curve[G1, G2], r io.ReadSeeker, format ceremony.Format,
	opts ...Option) (*Srs[G1, G2], error) {

	k, err := ceremony.Degree(r, format)
	if err != nil {
		return nil, err
	}
	return ReadPartial(c, r, format, k, opts...)
}

// ReadPartial imports the first 2^desiredK powers of a ceremony file,
// computes the Lagrange basis unless the file stores it at that degree, and
// validates the result. Nothing is returned unless validation succeeds.
func ReadPartial[G1, G2 any](c curve.Curve[G1, G2], r io.ReadSeeker, format ceremony.Format,
	desiredK uint32, opts ...Option) (*Srs[G1, G2], error) {

	o := newOptions(opts)
	log := o.log.With().Str("curve", c.String()).Stringer("format", format).
		Uint32("k", desiredK).Logger()
	start := time.Now()

	points, err := ceremony.Read(c, r, format, desiredK, o.workers)
	if err != nil {
		return nil, err
	}
	log.Debug().Dur("took", time.Since(start)).Msg("points decoded")

	srs := &Srs[G1, G2]{
		K:         points.K,
		G:         points.G,
		GLagrange: points.GLagrange,
		G2:        points.G2,
		SG2:       points.SG2,
		curve:     c,
		opts:      o,
	}
	if srs.GLagrange == nil {
		if srs.GLagrange, err = srs.lagrange(srs.G, log); err != nil {
			return nil, err
		}
	}
	if err := srs.validate(o.rng, log); err != nil {
		return nil, err
	}
	log.Info().Dur("took", time.Since(start)).Msg("srs imported")
	return srs, nil
}

// New builds an Srs of degree k from the first 2^k powers in g and the pair
// (g2, sG2), computes its Lagrange basis and validates it.
func New[G1, G2 any](c curve.Curve[G1, G2], k uint32, g []G1, g2, sG2 G2,
	opts ...Option) (*Srs[G1, G2], error) {

	if k > c.MaxDegree() {
		return nil, fmt.Errorf("%w: %s supports at most degree %d", ErrDegreeTooLarge, c, c.MaxDegree())
	}
	n := 1 << k
	if len(g) < n {
		return nil, fmt.Errorf("%w: degree %d needs %d powers, got %d",
			ErrDegreeTooLarge, k, n, len(g))
	}
	o := newOptions(opts)
	log := o.log.With().Str("curve", c.String()).Uint32("k", k).Logger()

	srs := &Srs[G1, G2]{
		K:     k,
		G:     slices.Clone(g[:n]),
		G2:    g2,
		SG2:   sG2,
		curve: c,
		opts:  o,
	}
	var err error
	if srs.GLagrange, err = srs.lagrange(srs.G, log); err != nil {
		return nil, err
	}
	if err := srs.validate(o.rng, log); err != nil {
		return nil, err
	}
	return srs, nil
}

// Curve returns the curve of the Srs.
func (s *Srs[G1, G2]) Curve() curve.Curve[G1, G2] {
	return s.curve
}

// Validate checks with fresh coefficients from rng that every power shares the
// ratio of (G2, SG2). A nil rng uses the source the Srs was read with.
func (s *Srs[G1, G2]) Validate(rng io.Reader) error {
	if rng == nil {
		rng = s.opts.rng
	}
	return s.validate(rng, s.logger())
}

func (s *Srs[G1, G2]) validate(rng io.Reader, log zerolog.Logger) error {
	if s.curve.IsIdentityG2(&s.G2) {
		return fmt.Errorf("%w: g2 is the identity", ErrValidationFailure)
	}
	if len(s.G) == 0 || s.curve.IsIdentityG1(&s.G[0]) {
		return fmt.Errorf("%w: g[0] is the identity", ErrValidationFailure)
	}

	start := time.Now()
	ok, err := s.curve.SameRatio(s.G, &s.G2, &s.SG2, rng, s.opts.workers)
	if err != nil {
		return fmt.Errorf("error running same ratio check: %w", err)
	}
	if !ok {
		log.Warn().Msg("same ratio check failed")
		return fmt.Errorf("%w: powers do not share the ratio of (g2, s·g2)", ErrValidationFailure)
	}
	log.Debug().Dur("took", time.Since(start)).Msg("same ratio check passed")
	return nil
}

// Downsize truncates the Srs to degree k and recomputes the Lagrange basis.
// k equal to the current degree is a no-op; on error the Srs is unchanged.
func (s *Srs[G1, G2]) Downsize(k uint32) error {
	if k > s.K {
		return fmt.Errorf("%w: cannot downsize degree %d to %d", ErrDegreeTooLarge, s.K, k)
	}
	if k == s.K {
		return nil
	}
	g := slices.Clone(s.G[:1<<k])
	log := s.logger().With().Uint32("k", k).Logger()
	lagrange, err := s.lagrange(g, log)
	if err != nil {
		return err
	}
	s.K, s.G, s.GLagrange = k, g, lagrange
	return nil
}

// Clone returns a deep copy of the Srs.
func (s *Srs[G1, G2]) Clone() *Srs[G1, G2] {
	c := *s
	c.G = slices.Clone(s.G)
	c.GLagrange = slices.Clone(s.GLagrange)
	return &c
}

// Equal reports whether both Srs hold the same degree and points.
func (s *Srs[G1, G2]) Equal(other *Srs[G1, G2]) bool {
	if s.K != other.K || len(s.G) != len(other.G) || len(s.GLagrange) != len(other.GLagrange) {
		return false
	}
	for i := range s.G {
		if !s.curve.EqualG1(&s.G[i], &other.G[i]) {
			return false
		}
	}
	for i := range s.GLagrange {
		if !s.curve.EqualG1(&s.GLagrange[i], &other.GLagrange[i]) {
			return false
		}
	}
	return s.curve.EqualG2(&s.G2, &other.G2) && s.curve.EqualG2(&s.SG2, &other.SG2)
}

func (s *Srs[G1, G2]) lagrange(g []G1, log zerolog.Logger) ([]G1, error) {
	start := time.Now()
	lagrange, err := s.curve.ToLagrange(g, s.opts.workers)
	if err != nil {
		return nil, fmt.Errorf("error computing lagrange basis: %w", err)
	}
	log.Debug().Dur("took", time.Since(start)).Msg("lagrange basis computed")
	return lagrange, nil
}

func (s *Srs[G1, G2]) logger() zerolog.Logger {
	return s.opts.log.With().Str("curve", s.curve.String()).Uint32("k", s.K).Logger()
}
