// package testutils builds synthetic ceremonies from a known secret and
// serializes them in every layout a ceremony file can have.
//
// Nothing here is secure: the secret is known by construction.
package testutils

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	fp_bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
	fr_bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	fp_bn254 "github.com/consensys/gnark-crypto/ecc/bn254/fp"
	fr_bn254 "github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/giuliop/kzgsrs/curve"
)

// Ceremony holds the output of a powers-of-tau ceremony of degree K run with
// a known secret: 2·2^K−1 powers in G1 and 2^K powers in G2.
type Ceremony[G1, G2 any] struct {
	Curve  curve.Curve[G1, G2]
	K      uint32
	Secret *big.Int
	G1     []G1
	G2     []G2

	baseModulus *big.Int
}

// NewBN254Ceremony runs a BN254 ceremony of degree k with secret s.
// A nil s draws a random one.
func NewBN254Ceremony(k uint32, s *big.Int) *Ceremony[bn254.G1Affine, bn254.G2Affine] {
	if s == nil {
		s = RandomBigInt(250)
	}
	_, _, g1, g2 := bn254.Generators()
	g1Powers := powers(fr_bn254.Modulus(), s, 2<<k-1)
	g1Scalars := make([]fr_bn254.Element, len(g1Powers))
	for i := range g1Powers {
		g1Scalars[i].SetBigInt(g1Powers[i])
	}
	return &Ceremony[bn254.G1Affine, bn254.G2Affine]{
		Curve:       curve.BN254(),
		K:           k,
		Secret:      s,
		G1:          bn254.BatchScalarMultiplicationG1(&g1, g1Scalars),
		G2:          bn254.BatchScalarMultiplicationG2(&g2, g1Scalars[:1<<k]),
		baseModulus: fp_bn254.Modulus(),
	}
}

// NewBLS12381Ceremony runs a BLS12-381 ceremony of degree k with secret s.
// A nil s draws a random one.
func NewBLS12381Ceremony(k uint32, s *big.Int) *Ceremony[bls12381.G1Affine, bls12381.G2Affine] {
	if s == nil {
		s = RandomBigInt(250)
	}
	_, _, g1, g2 := bls12381.Generators()
	g1Powers := powers(fr_bls12381.Modulus(), s, 2<<k-1)
	g1Scalars := make([]fr_bls12381.Element, len(g1Powers))
	for i := range g1Powers {
		g1Scalars[i].SetBigInt(g1Powers[i])
	}
	return &Ceremony[bls12381.G1Affine, bls12381.G2Affine]{
		Curve:       curve.BLS12381(),
		K:           k,
		Secret:      s,
		G1:          bls12381.BatchScalarMultiplicationG1(&g1, g1Scalars),
		G2:          bls12381.BatchScalarMultiplicationG2(&g2, g1Scalars[:1<<k]),
		baseModulus: fp_bls12381.Modulus(),
	}
}

// PerpetualBytes returns the ceremony as a perpetual powers-of-tau response
// file: a 64 byte hash, the G1 powers, then the G2 powers.
func (c *Ceremony[G1, G2]) PerpetualBytes() []byte {
	var buf bytes.Buffer
	hash := make([]byte, 64)
	if _, err := rand.Read(hash); err != nil {
		panic(err)
	}
	buf.Write(hash)
	for i := range c.G1 {
		buf.Write(c.Curve.EncodePerpetualG1(&c.G1[i]))
	}
	for i := range c.G2 {
		buf.Write(c.Curve.EncodePerpetualG2(&c.G2[i]))
	}
	return buf.Bytes()
}

// SnarkJSBytes returns the ceremony as a snarkjs .ptau file with the header,
// tauG1 and tauG2 sections.
func (c *Ceremony[G1, G2]) SnarkJSBytes() []byte {
	fs := c.Curve.BaseFieldSize()
	var buf bytes.Buffer
	buf.WriteString("ptau")
	putUint32(&buf, 1)
	putUint32(&buf, 3)

	// header: n8, q, power, ceremonyPower
	putUint32(&buf, 1)
	putUint64(&buf, uint64(fs+12))
	putUint32(&buf, uint32(fs))
	q := c.baseModulus.FillBytes(make([]byte, fs))
	for i, j := 0, len(q)-1; i < j; i, j = i+1, j-1 {
		q[i], q[j] = q[j], q[i]
	}
	buf.Write(q)
	putUint32(&buf, c.K)
	putUint32(&buf, c.K)

	putUint32(&buf, 2)
	putUint64(&buf, uint64(len(c.G1)*2*fs))
	for i := range c.G1 {
		buf.Write(c.Curve.EncodeMontgomeryG1(&c.G1[i]))
	}

	putUint32(&buf, 3)
	putUint64(&buf, uint64(len(c.G2)*4*fs))
	for i := range c.G2 {
		buf.Write(c.Curve.EncodeMontgomeryG2(&c.G2[i]))
	}
	return buf.Bytes()
}

// NativeBytes returns the first 2^k powers in the native layout, compressed
// or raw.
func (c *Ceremony[G1, G2]) NativeBytes(k uint32, raw bool) ([]byte, error) {
	if k > c.K {
		return nil, fmt.Errorf("ceremony has degree %d, asked for %d", c.K, k)
	}
	encodeG1, encodeG2 := c.Curve.EncodeG1, c.Curve.EncodeG2
	if raw {
		encodeG1, encodeG2 = c.Curve.EncodeRawG1, c.Curve.EncodeRawG2
	}
	g := c.G1[:1<<k]
	lagrange, err := c.Curve.ToLagrange(g, 1)
	if err != nil {
		return nil, fmt.Errorf("error computing lagrange basis: %v", err)
	}

	var buf bytes.Buffer
	putUint32(&buf, k)
	for i := range g {
		buf.Write(encodeG1(&g[i]))
	}
	for i := range lagrange {
		buf.Write(encodeG1(&lagrange[i]))
	}
	buf.Write(encodeG2(&c.G2[0]))
	buf.Write(encodeG2(&c.G2[1]))
	return buf.Bytes(), nil
}

// LagrangeScalars returns L_i(s) for the 2^k Lagrange polynomials of the size
// 2^k subgroup generated by omega, modulo r:
// L_i(s) = ω^i·(s^n − 1) / (n·(s − ω^i)).
func LagrangeScalars(r, omega, s *big.Int, k uint32) []*big.Int {
	n := int64(1) << k
	sn := new(big.Int).Exp(s, big.NewInt(n), r)
	num := sn.Sub(sn, big.NewInt(1))
	res := make([]*big.Int, n)
	wi := big.NewInt(1)
	for i := range res {
		den := new(big.Int).Sub(s, wi)
		den.Mul(den, big.NewInt(n))
		den.Mod(den, r)
		den.ModInverse(den, r)
		l := new(big.Int).Mul(wi, num)
		l.Mul(l, den)
		res[i] = l.Mod(l, r)
		wi = new(big.Int).Mul(wi, omega)
		wi.Mod(wi, r)
	}
	return res
}

// RandomBigInt returns a random big integer bigger than 1 of up to
// maxBits bits. If maxBits is less than 1, it defaults to 32.
func RandomBigInt(maxBits int64) *big.Int {
	if maxBits < 1 {
		maxBits = 32
	}
	var max *big.Int = big.NewInt(0).Exp(big.NewInt(2), big.NewInt(maxBits), nil)
	for {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		if n.Cmp(big.NewInt(2)) > 0 {
			return n
		}
	}
}

func powers(m, x *big.Int, n int) []*big.Int {
	res := make([]*big.Int, n)
	acc := big.NewInt(1)
	for i := range res {
		res[i] = new(big.Int).Set(acc)
		acc.Mul(acc, x).Mod(acc, m)
	}
	return res
}

func putUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func putUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}
