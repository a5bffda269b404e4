// Package curve provides the pairing friendly curves a structured reference
// string can live on, together with every point encoding the ceremony files
// use.
//
// A Curve is implemented for BN254 and BLS12-381 on top of gnark-crypto. The
// group, field and pairing arithmetic comes from gnark-crypto, the generic
// algorithms from the arithmetic package.
package curve

import (
	"errors"
	"io"

	"github.com/consensys/gnark-crypto/ecc"
)

// ErrMalformedPoint is returned when bytes do not encode a valid point: an
// out of range coordinate, an x with no matching y, a point off the curve or
// outside the prime order subgroup.
var ErrMalformedPoint = errors.New("malformed point")

// Curve is the capability a structured reference string needs from its
// curve. G1 and G2 are the affine point types of the two source groups.
//
// Encodings:
//   - compressed: gnark-crypto compressed form, big endian x with flag bits
//   - raw: gnark-crypto uncompressed form, big endian x || y
//   - perpetual: the powers-of-tau response file form, big endian x with the
//     ceremony's own flag bits
//   - montgomery: snarkjs form, little endian Montgomery residues of x and y,
//     c0 before c1 for G2 coordinates
type Curve[G1, G2 any] interface {
	ID() ecc.ID
	String() string

	// MaxDegree is the largest k for which a size 2^k evaluation domain exists.
	MaxDegree() uint32

	BaseFieldSize() int
	G1Size() int
	G2Size() int
	G1RawSize() int
	G2RawSize() int

	EncodeG1(p *G1) []byte
	DecodeG1(b []byte) (G1, error)
	EncodeG2(p *G2) []byte
	DecodeG2(b []byte) (G2, error)

	EncodeRawG1(p *G1) []byte
	DecodeRawG1(b []byte) (G1, error)
	EncodeRawG2(p *G2) []byte
	DecodeRawG2(b []byte) (G2, error)

	EncodePerpetualG1(p *G1) []byte
	DecodePerpetualG1(b []byte) (G1, error)
	EncodePerpetualG2(p *G2) []byte
	DecodePerpetualG2(b []byte) (G2, error)

	EncodeMontgomeryG1(p *G1) []byte
	DecodeMontgomeryG1(b []byte) (G1, error)
	EncodeMontgomeryG2(p *G2) []byte
	DecodeMontgomeryG2(b []byte) (G2, error)

	EqualG1(p, q *G1) bool
	EqualG2(p, q *G2) bool
	IsIdentityG1(p *G1) bool
	IsIdentityG2(p *G2) bool

	// ToLagrange converts a monomial basis of size 2^k into the Lagrange basis.
	ToLagrange(g []G1, workers int) ([]G1, error)

	// SameRatio reports whether g[i+1] = s·g[i] for all i, where sG2 = s·g2,
	// using random coefficients drawn from rng.
	SameRatio(g []G1, g2, sG2 *G2, rng io.Reader, workers int) (bool, error)
}
