package curve

import (
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"

	"github.com/giuliop/kzgsrs/arithmetic"
)

// flag bits of the most significant byte of a BLS12-381 point, as written by
// the zcash powers-of-tau response files
const (
	bls12381PerpetualMask       byte = 0b111 << 5
	bls12381PerpetualCompressed byte = 0b100 << 5
	bls12381PerpetualInfinity   byte = 0b010 << 5
	bls12381PerpetualGreatest   byte = 0b001 << 5

	// gnark-crypto compressed flag selecting the smaller y
	bls12381CompressedSmallest byte = 0b100 << 5

	// two-adicity of the BLS12-381 scalar field
	bls12381MaxDegree = 32
)

var bls12381R, bls12381RInv fp.Element

func init() {
	r, rInv := montgomeryFactors(fp.Modulus(), fp.Bytes)
	bls12381R.SetBigInt(r)
	bls12381RInv.SetBigInt(rInv)
}

type bls12381Curve struct{}

// BLS12381 returns the BLS12-381 curve.
func BLS12381() Curve[bls12381.G1Affine, bls12381.G2Affine] {
	return bls12381Curve{}
}

func (bls12381Curve) ID() ecc.ID         { return ecc.BLS12_381 }
func (bls12381Curve) String() string     { return ecc.BLS12_381.String() }
func (bls12381Curve) MaxDegree() uint32  { return bls12381MaxDegree }
func (bls12381Curve) BaseFieldSize() int { return fp.Bytes }
func (bls12381Curve) G1Size() int        { return bls12381.SizeOfG1AffineCompressed }
func (bls12381Curve) G2Size() int        { return bls12381.SizeOfG2AffineCompressed }
func (bls12381Curve) G1RawSize() int     { return bls12381.SizeOfG1AffineUncompressed }
func (bls12381Curve) G2RawSize() int     { return bls12381.SizeOfG2AffineUncompressed }

func (bls12381Curve) EncodeG1(p *bls12381.G1Affine) []byte {
	b := p.Bytes()
	return b[:]
}

func (bls12381Curve) DecodeG1(b []byte) (bls12381.G1Affine, error) {
	var p bls12381.G1Affine
	if err := checkSize("g1", b, bls12381.SizeOfG1AffineCompressed); err != nil {
		return p, err
	}
	if _, err := p.SetBytes(b); err != nil {
		return p, wrapMalformed("g1", err)
	}
	return p, nil
}

func (bls12381Curve) EncodeG2(p *bls12381.G2Affine) []byte {
	b := p.Bytes()
	return b[:]
}

func (bls12381Curve) DecodeG2(b []byte) (bls12381.G2Affine, error) {
	var p bls12381.G2Affine
	if err := checkSize("g2", b, bls12381.SizeOfG2AffineCompressed); err != nil {
		return p, err
	}
	if _, err := p.SetBytes(b); err != nil {
		return p, wrapMalformed("g2", err)
	}
	return p, nil
}

func (bls12381Curve) EncodeRawG1(p *bls12381.G1Affine) []byte {
	b := p.RawBytes()
	return b[:]
}

func (bls12381Curve) DecodeRawG1(b []byte) (bls12381.G1Affine, error) {
	var p bls12381.G1Affine
	if err := checkSize("raw g1", b, bls12381.SizeOfG1AffineUncompressed); err != nil {
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

func (bls12381Curve) EncodeRawG2(p *bls12381.G2Affine) []byte {
	b := p.RawBytes()
	return b[:]
}

func (bls12381Curve) DecodeRawG2(b []byte) (bls12381.G2Affine, error) {
	var p bls12381.G2Affine
	if err := checkSize("raw g2", b, bls12381.SizeOfG2AffineUncompressed); err != nil {
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

// EncodePerpetualG1 writes x big endian with the zcash flags: the top bit
// marks compression, the next one infinity and the third one a y greater than
// -y.
func (bls12381Curve) EncodePerpetualG1(p *bls12381.G1Affine) []byte {
	res := make([]byte, bls12381.SizeOfG1AffineCompressed)
	if p.IsInfinity() {
		res[0] = bls12381PerpetualCompressed | bls12381PerpetualInfinity
		return res
	}
	x := p.X.Bytes()
	copy(res, x[:])
	res[0] |= bls12381PerpetualCompressed
	var negY fp.Element
	negY.Neg(&p.Y)
	if p.Y.Cmp(&negY) > 0 {
		res[0] |= bls12381PerpetualGreatest
	}
	return res
}

func (bls12381Curve) DecodePerpetualG1(b []byte) (bls12381.G1Affine, error) {
	var p bls12381.G1Affine
	if err := checkSize("perpetual g1", b, bls12381.SizeOfG1AffineCompressed); err != nil {
		return p, err
	}
	var buf [bls12381.SizeOfG1AffineCompressed]byte
	copy(buf[:], b)
	flags, err := bls12381PerpetualFlags(&buf[0], buf[:])
	if err != nil || flags&bls12381PerpetualInfinity != 0 {
		return p, err
	}

	buf[0] |= bls12381CompressedSmallest
	if _, err := p.SetBytes(buf[:]); err != nil {
		return p, wrapMalformed("perpetual g1", err)
	}
	var neg bls12381.G1Affine
	neg.Neg(&p)
	return pickSign(p, neg, p.Y.Cmp(&neg.Y) < 0, flags&bls12381PerpetualGreatest != 0), nil
}

// EncodePerpetualG2 writes x.c1 || x.c0 big endian with the G1 flag layout;
// y is compared c1 first.
func (bls12381Curve) EncodePerpetualG2(p *bls12381.G2Affine) []byte {
	res := make([]byte, bls12381.SizeOfG2AffineCompressed)
	if p.IsInfinity() {
		res[0] = bls12381PerpetualCompressed | bls12381PerpetualInfinity
		return res
	}
	x1, x0 := p.X.A1.Bytes(), p.X.A0.Bytes()
	copy(res[:fp.Bytes], x1[:])
	copy(res[fp.Bytes:], x0[:])
	res[0] |= bls12381PerpetualCompressed
	var neg bls12381.G2Affine
	neg.Neg(p)
	if p.Y.Cmp(&neg.Y) > 0 {
		res[0] |= bls12381PerpetualGreatest
	}
	return res
}

func (bls12381Curve) DecodePerpetualG2(b []byte) (bls12381.G2Affine, error) {
	var p bls12381.G2Affine
	if err := checkSize("perpetual g2", b, bls12381.SizeOfG2AffineCompressed); err != nil {
		return p, err
	}
	var buf [bls12381.SizeOfG2AffineCompressed]byte
	copy(buf[:], b)
	flags, err := bls12381PerpetualFlags(&buf[0], buf[:])
	if err != nil || flags&bls12381PerpetualInfinity != 0 {
		return p, err
	}

	buf[0] |= bls12381CompressedSmallest
	if _, err := p.SetBytes(buf[:]); err != nil {
		return p, wrapMalformed("perpetual g2", err)
	}
	var neg bls12381.G2Affine
	neg.Neg(&p)
	return pickSign(p, neg, p.Y.Cmp(&neg.Y) < 0, flags&bls12381PerpetualGreatest != 0), nil
}

// bls12381PerpetualFlags strips the flag bits from msb and checks them against
// the rest of the encoding.
func bls12381PerpetualFlags(msb *byte, buf []byte) (byte, error) {
	flags := *msb & bls12381PerpetualMask
	*msb &^= bls12381PerpetualMask
	if flags&bls12381PerpetualCompressed == 0 {
		return flags, malformed("perpetual: uncompressed encoding")
	}
	if flags&bls12381PerpetualInfinity != 0 {
		if flags&bls12381PerpetualGreatest != 0 || !allZero(buf) {
			return flags, malformed("perpetual: invalid infinity encoding")
		}
	}
	return flags, nil
}

func (bls12381Curve) EncodeMontgomeryG1(p *bls12381.G1Affine) []byte {
	res := make([]byte, 2*fp.Bytes)
	bls12381ToMontgomery(res[:fp.Bytes], &p.X)
	bls12381ToMontgomery(res[fp.Bytes:], &p.Y)
	return res
}

func (bls12381Curve) DecodeMontgomeryG1(b []byte) (bls12381.G1Affine, error) {
	var p bls12381.G1Affine
	if err := checkSize("montgomery g1", b, 2*fp.Bytes); err != nil {
		return p, err
	}
	var err error
	if p.X, err = bls12381FromMontgomery(b[:fp.Bytes]); err != nil {
		return p, wrapMalformed("montgomery g1 x", err)
	}
	if p.Y, err = bls12381FromMontgomery(b[fp.Bytes:]); err != nil {
		return p, wrapMalformed("montgomery g1 y", err)
	}
	if !p.IsOnCurve() || !p.IsInSubGroup() {
		return p, malformed("montgomery g1: not in the prime order subgroup")
	}
	return p, nil
}

func (bls12381Curve) EncodeMontgomeryG2(p *bls12381.G2Affine) []byte {
	res := make([]byte, 4*fp.Bytes)
	bls12381ToMontgomery(res[0:fp.Bytes], &p.X.A0)
	bls12381ToMontgomery(res[fp.Bytes:2*fp.Bytes], &p.X.A1)
	bls12381ToMontgomery(res[2*fp.Bytes:3*fp.Bytes], &p.Y.A0)
	bls12381ToMontgomery(res[3*fp.Bytes:], &p.Y.A1)
	return res
}

func (bls12381Curve) DecodeMontgomeryG2(b []byte) (bls12381.G2Affine, error) {
	var p bls12381.G2Affine
	if err := checkSize("montgomery g2", b, 4*fp.Bytes); err != nil {
		return p, err
	}
	coords := []*fp.Element{&p.X.A0, &p.X.A1, &p.Y.A0, &p.Y.A1}
	for i, c := range coords {
		e, err := bls12381FromMontgomery(b[i*fp.Bytes : (i+1)*fp.Bytes])
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

// bls12381FromMontgomery reads a little endian residue a·R and returns a.
func bls12381FromMontgomery(b []byte) (fp.Element, error) {
	e, err := fp.LittleEndian.Element((*[fp.Bytes]byte)(b))
	if err != nil {
		return e, err
	}
	e.Mul(&e, &bls12381RInv)
	return e, nil
}

func bls12381ToMontgomery(dst []byte, e *fp.Element) {
	var m fp.Element
	m.Mul(e, &bls12381R)
	fp.LittleEndian.PutElement((*[fp.Bytes]byte)(dst), m)
}

func (bls12381Curve) EqualG1(p, q *bls12381.G1Affine) bool   { return p.Equal(q) }
func (bls12381Curve) EqualG2(p, q *bls12381.G2Affine) bool   { return p.Equal(q) }
func (bls12381Curve) IsIdentityG1(p *bls12381.G1Affine) bool { return p.IsInfinity() }
func (bls12381Curve) IsIdentityG2(p *bls12381.G2Affine) bool { return p.IsInfinity() }

func (bls12381Curve) ToLagrange(g []bls12381.G1Affine, workers int) ([]bls12381.G1Affine, error) {
	return arithmetic.ToLagrange[bls12381.G1Affine, bls12381.G1Jac](g1BLS12381{}, frBLS12381{}, g, workers)
}

func (bls12381Curve) SameRatio(g []bls12381.G1Affine, g2, sG2 *bls12381.G2Affine, rng io.Reader,
	workers int) (bool, error) {
	return arithmetic.SameRatio[bls12381.G1Affine, bls12381.G1Jac, bls12381.G2Affine, bls12381.GT](
		g1BLS12381{}, frBLS12381{}, pairingBLS12381{}, g, g2, sG2, rng, workers)
}

type frBLS12381 struct{}

func (frBLS12381) Modulus() *big.Int { return fr.Modulus() }

func (frBLS12381) RootOfUnity(n uint64) (*big.Int, error) {
	w, err := fft.Generator(n)
	if err != nil {
		return nil, err
	}
	return w.BigInt(new(big.Int)), nil
}

type g1BLS12381 struct{}

func (g1BLS12381) Zero() bls12381.G1Jac {
	var p bls12381.G1Jac
	p.FromAffine(&bls12381.G1Affine{})
	return p
}

func (g1BLS12381) FromAffine(a *bls12381.G1Affine) bls12381.G1Jac {
	var p bls12381.G1Jac
	p.FromAffine(a)
	return p
}

func (g1BLS12381) ToAffine(p []bls12381.G1Jac) []bls12381.G1Affine {
	return bls12381.BatchJacobianToAffineG1(p)
}

func (g1BLS12381) Add(p, q *bls12381.G1Jac) bls12381.G1Jac {
	r := *p
	r.AddAssign(q)
	return r
}

func (g1BLS12381) AddMixed(p *bls12381.G1Jac, a *bls12381.G1Affine) bls12381.G1Jac {
	r := *p
	r.AddMixed(a)
	return r
}

func (g1BLS12381) Double(p *bls12381.G1Jac) bls12381.G1Jac {
	r := *p
	r.DoubleAssign()
	return r
}

func (g1BLS12381) Neg(p *bls12381.G1Jac) bls12381.G1Jac {
	var r bls12381.G1Jac
	r.Neg(p)
	return r
}

func (g1BLS12381) ScalarMul(p *bls12381.G1Jac, s *big.Int) bls12381.G1Jac {
	var r bls12381.G1Jac
	r.ScalarMultiplication(p, s)
	return r
}

type pairingBLS12381 struct{}

func (pairingBLS12381) MillerLoop(p []bls12381.G1Affine, q []bls12381.G2Affine) (bls12381.GT, error) {
	return bls12381.MillerLoop(p, q)
}

func (pairingBLS12381) FinalExponentiation(z *bls12381.GT) bls12381.GT {
	return bls12381.FinalExponentiation(z)
}

func (pairingBLS12381) IsOne(z *bls12381.GT) bool { return z.IsOne() }

func (pairingBLS12381) NegG2(q *bls12381.G2Affine) bls12381.G2Affine {
	var r bls12381.G2Affine
	r.Neg(q)
	return r
}
