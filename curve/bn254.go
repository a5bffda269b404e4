package curve

import (
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"

	"github.com/giuliop/kzgsrs/arithmetic"
)

// flag bits of the most significant byte of a BN254 point
const (
	bn254PerpetualMask     byte = 0b11 << 6
	bn254PerpetualGreatest byte = 0b10 << 6
	bn254PerpetualInfinity byte = 0b01 << 6

	// gnark-crypto compressed flag selecting the smaller y
	bn254CompressedSmallest byte = 0b10 << 6

	// two-adicity of the BN254 scalar field
	bn254MaxDegree = 28
)

var bn254R, bn254RInv fp.Element

func init() {
	r, rInv := montgomeryFactors(fp.Modulus(), fp.Bytes)
	bn254R.SetBigInt(r)
	bn254RInv.SetBigInt(rInv)
}

type bn254Curve struct{}

// BN254 returns the BN254 (alt_bn128) curve.
func BN254() Curve[bn254.G1Affine, bn254.G2Affine] {
	return bn254Curve{}
}

func (bn254Curve) ID() ecc.ID         { return ecc.BN254 }
func (bn254Curve) String() string     { return ecc.BN254.String() }
func (bn254Curve) MaxDegree() uint32  { return bn254MaxDegree }
func (bn254Curve) BaseFieldSize() int { return fp.Bytes }
func (bn254Curve) G1Size() int        { return bn254.SizeOfG1AffineCompressed }
func (bn254Curve) G2Size() int        { return bn254.SizeOfG2AffineCompressed }
func (bn254Curve) G1RawSize() int     { return bn254.SizeOfG1AffineUncompressed }
func (bn254Curve) G2RawSize() int     { return bn254.SizeOfG2AffineUncompressed }

func (bn254Curve) EncodeG1(p *bn254.G1Affine) []byte {
	b := p.Bytes()
	return b[:]
}

func (bn254Curve) DecodeG1(b []byte) (bn254.G1Affine, error) {
	var p bn254.G1Affine
	if err := checkSize("g1", b, bn254.SizeOfG1AffineCompressed); err != nil {
		return p, err
	}
	if _, err := p.SetBytes(b); err != nil {
		return p, wrapMalformed("g1", err)
	}
	return p, nil
}

func (bn254Curve) EncodeG2(p *bn254.G2Affine) []byte {
	b := p.Bytes()
	return b[:]
}

func (bn254Curve) DecodeG2(b []byte) (bn254.G2Affine, error) {
	var p bn254.G2Affine
	if err := checkSize("g2", b, bn254.SizeOfG2AffineCompressed); err != nil {
		return p, err
	}
	if _, err := p.SetBytes(b); err != nil {
		return p, wrapMalformed("g2", err)
	}
	return p, nil
}

func (bn254Curve) EncodeRawG1(p *bn254.G1Affine) []byte {
	b := p.RawBytes()
	return b[:]
}

func (bn254Curve) DecodeRawG1(b []byte) (bn254.G1Affine, error) {
	var p bn254.G1Affine
	if err := checkSize("raw g1", b, bn254.SizeOfG1AffineUncompressed); err != nil {
		return p, err
	}
	n, err := p.SetBytes(b)
	if err != nil {
		return p, wrapMalformed("raw g1", err)
	}
	if n != len(b) {
		return p, malformed("raw g1: compressed flags in uncompressed encoding")
	}
	return p, nil
}

func (bn254Curve) EncodeRawG2(p *bn254.G2Affine) []byte {
	b := p.RawBytes()
	return b[:]
}

func (bn254Curve) DecodeRawG2(b []byte) (bn254.G2Affine, error) {
	var p bn254.G2Affine
	if err := checkSize("raw g2", b, bn254.SizeOfG2AffineUncompressed); err != nil {
		return p, err
	}
	n, err := p.SetBytes(b)
	if err != nil {
		return p, wrapMalformed("raw g2", err)
	}
	if n != len(b) {
		return p, malformed("raw g2: compressed flags in uncompressed encoding")
	}
	return p, nil
}

// EncodePerpetualG1 writes x big endian, setting the top bit when y is the
// greater of y and -y and the next bit for the point at infinity.
func (bn254Curve) EncodePerpetualG1(p *bn254.G1Affine) []byte {
	res := make([]byte, bn254.SizeOfG1AffineCompressed)
	if p.IsInfinity() {
		res[0] = bn254PerpetualInfinity
		return res
	}
	x := p.X.Bytes()
	copy(res, x[:])
	var negY fp.Element
	negY.Neg(&p.Y)
	if p.Y.Cmp(&negY) > 0 {
		res[0] |= bn254PerpetualGreatest
	}
	return res
}

func (bn254Curve) DecodePerpetualG1(b []byte) (bn254.G1Affine, error) {
	var p bn254.G1Affine
	if err := checkSize("perpetual g1", b, bn254.SizeOfG1AffineCompressed); err != nil {
		return p, err
	}
	var buf [bn254.SizeOfG1AffineCompressed]byte
	copy(buf[:], b)
	flags := buf[0] & bn254PerpetualMask
	buf[0] &^= bn254PerpetualMask

	if flags&bn254PerpetualInfinity != 0 {
		if flags != bn254PerpetualInfinity || !allZero(buf[:]) {
			return p, malformed("perpetual g1: invalid infinity encoding")
		}
		return p, nil
	}

	buf[0] |= bn254CompressedSmallest
	if _, err := p.SetBytes(buf[:]); err != nil {
		return p, wrapMalformed("perpetual g1", err)
	}
	var neg bn254.G1Affine
	neg.Neg(&p)
	return pickSign(p, neg, p.Y.Cmp(&neg.Y) < 0, flags&bn254PerpetualGreatest != 0), nil
}

// EncodePerpetualG2 writes x.c1 || x.c0 big endian with the G1 flag layout;
// y is compared c1 first.
func (bn254Curve) EncodePerpetualG2(p *bn254.G2Affine) []byte {
	res := make([]byte, bn254.SizeOfG2AffineCompressed)
	if p.IsInfinity() {
		res[0] = bn254PerpetualInfinity
		return res
	}
	x1, x0 := p.X.A1.Bytes(), p.X.A0.Bytes()
	copy(res[:fp.Bytes], x1[:])
	copy(res[fp.Bytes:], x0[:])
	var neg bn254.G2Affine
	neg.Neg(p)
	if p.Y.Cmp(&neg.Y) > 0 {
		res[0] |= bn254PerpetualGreatest
	}
	return res
}

func (bn254Curve) DecodePerpetualG2(b []byte) (bn254.G2Affine, error) {
	var p bn254.G2Affine
	if err := checkSize("perpetual g2", b, bn254.SizeOfG2AffineCompressed); err != nil {
		return p, err
	}
	var buf [bn254.SizeOfG2AffineCompressed]byte
	copy(buf[:], b)
	flags := buf[0] & bn254PerpetualMask
	buf[0] &^= bn254PerpetualMask

	if flags&bn254PerpetualInfinity != 0 {
		if flags != bn254PerpetualInfinity || !allZero(buf[:]) {
			return p, malformed("perpetual g2: invalid infinity encoding")
		}
		return p, nil
	}

	buf[0] |= bn254CompressedSmallest
	if _, err := p.SetBytes(buf[:]); err != nil {
		return p, wrapMalformed("perpetual g2", err)
	}
	var neg bn254.G2Affine
	neg.Neg(&p)
	return pickSign(p, neg, p.Y.Cmp(&neg.Y) < 0, flags&bn254PerpetualGreatest != 0), nil
}

func (bn254Curve) EncodeMontgomeryG1(p *bn254.G1Affine) []byte {
	res := make([]byte, 2*fp.Bytes)
	bn254ToMontgomery(res[:fp.Bytes], &p.X)
	bn254ToMontgomery(res[fp.Bytes:], &p.Y)
	return res
}

func (bn254Curve) DecodeMontgomeryG1(b []byte) (bn254.G1Affine, error) {
	var p bn254.G1Affine
	if err := checkSize("montgomery g1", b, 2*fp.Bytes); err != nil {
		return p, err
	}
	var err error
	if p.X, err = bn254FromMontgomery(b[:fp.Bytes]); err != nil {
		return p, wrapMalformed("montgomery g1 x", err)
	}
	if p.Y, err = bn254FromMontgomery(b[fp.Bytes:]); err != nil {
		return p, wrapMalformed("montgomery g1 y", err)
	}
	if !p.IsOnCurve() || !p.IsInSubGroup() {
		return p, malformed("montgomery g1: not in the prime order subgroup")
	}
	return p, nil
}

func (bn254Curve) EncodeMontgomeryG2(p *bn254.G2Affine) []byte {
	res := make([]byte, 4*fp.Bytes)
	bn254ToMontgomery(res[0:fp.Bytes], &p.X.A0)
	bn254ToMontgomery(res[fp.Bytes:2*fp.Bytes], &p.X.A1)
	bn254ToMontgomery(res[2*fp.Bytes:3*fp.Bytes], &p.Y.A0)
	bn254ToMontgomery(res[3*fp.Bytes:], &p.Y.A1)
	return res
}

func (bn254Curve) DecodeMontgomeryG2(b []byte) (bn254.G2Affine, error) {
	var p bn254.G2Affine
	if err := checkSize("montgomery g2", b, 4*fp.Bytes); err != nil {
		return p, err
	}
	coords := []*fp.Element{&p.X.A0, &p.X.A1, &p.Y.A0, &p.Y.A1}
	for i, c := range coords {
		e, err := bn254FromMontgomery(b[i*fp.Bytes : (i+1)*fp.Bytes])
		if err != nil {
			return p, wrapMalformed("montgomery g2", err)
		}
		*c = e
	}
	if !p.IsOnCurve() || !p.IsInSubGroup() {
		return p, malformed("montgomery g2: not in the prime order subgroup")
	}
	return p, nil
}

// bn254FromMontgomery reads a little endian residue a·R and returns a.
func bn254FromMontgomery(b []byte) (fp.Element, error) {
	e, err := fp.LittleEndian.Element((*[fp.Bytes]byte)(b))
	if err != nil {
		return e, err
	}
	e.Mul(&e, &bn254RInv)
	return e, nil
}

func bn254ToMontgomery(dst []byte, e *fp.Element) {
	var m fp.Element
	m.Mul(e, &bn254R)
	fp.LittleEndian.PutElement((*[fp.Bytes]byte)(dst), m)
}

func (bn254Curve) EqualG1(p, q *bn254.G1Affine) bool   { return p.Equal(q) }
func (bn254Curve) EqualG2(p, q *bn254.G2Affine) bool   { return p.Equal(q) }
func (bn254Curve) IsIdentityG1(p *bn254.G1Affine) bool { return p.IsInfinity() }
func (bn254Curve) IsIdentityG2(p *bn254.G2Affine) bool { return p.IsInfinity() }

func (bn254Curve) ToLagrange(g []bn254.G1Affine, workers int) ([]bn254.G1Affine, error) {
	return arithmetic.ToLagrange[bn254.G1Affine, bn254.G1Jac](g1BN254{}, frBN254{}, g, workers)
}

func (bn254Curve) SameRatio(g []bn254.G1Affine, g2, sG2 *bn254.G2Affine, rng io.Reader,
	workers int) (bool, error) {
	return arithmetic.SameRatio[bn254.G1Affine, bn254.G1Jac, bn254.G2Affine, bn254.GT](
		g1BN254{}, frBN254{}, pairingBN254{}, g, g2, sG2, rng, workers)
}

type frBN254 struct{}

func (frBN254) Modulus() *big.Int { return fr.Modulus() }

func (frBN254) RootOfUnity(n uint64) (*big.Int, error) {
	w, err := fft.Generator(n)
	if err != nil {
		return nil, err
	}
	return w.BigInt(new(big.Int)), nil
}

type g1BN254 struct{}

func (g1BN254) Zero() bn254.G1Jac {
	var p bn254.G1Jac
	p.FromAffine(&bn254.G1Affine{})
	return p
}

func (g1BN254) FromAffine(a *bn254.G1Affine) bn254.G1Jac {
	var p bn254.G1Jac
	p.FromAffine(a)
	return p
}

func (g1BN254) ToAffine(p []bn254.G1Jac) []bn254.G1Affine {
	return bn254.BatchJacobianToAffineG1(p)
}

func (g1BN254) Add(p, q *bn254.G1Jac) bn254.G1Jac {
	r := *p
	r.AddAssign(q)
	return r
}

func (g1BN254) AddMixed(p *bn254.G1Jac, a *bn254.G1Affine) bn254.G1Jac {
	r := *p
	r.AddMixed(a)
	return r
}

func (g1BN254) Double(p *bn254.G1Jac) bn254.G1Jac {
	r := *p
	r.DoubleAssign()
	return r
}

func (g1BN254) Neg(p *bn254.G1Jac) bn254.G1Jac {
	var r bn254.G1Jac
	r.Neg(p)
	return r
}

func (g1BN254) ScalarMul(p *bn254.G1Jac, s *big.Int) bn254.G1Jac {
	var r bn254.G1Jac
	r.ScalarMultiplication(p, s)
	return r
}

type pairingBN254 struct{}

func (pairingBN254) MillerLoop(p []bn254.G1Affine, q []bn254.G2Affine) (bn254.GT, error) {
	return bn254.MillerLoop(p, q)
}

func (pairingBN254) FinalExponentiation(z *bn254.GT) bn254.GT {
	return bn254.FinalExponentiation(z)
}

func (pairingBN254) IsOne(z *bn254.GT) bool { return z.IsOne() }

func (pairingBN254) NegG2(q *bn254.G2Affine) bn254.G2Affine {
	var r bn254.G2Affine
	r.Neg(q)
	return r
}
