package kzgsrs

import (
	"bytes"
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/giuliop/kzgsrs/ceremony"
	"github.com/giuliop/kzgsrs/curve"
	"github.com/giuliop/kzgsrs/testutils"
)

const testK = 6

func seeded(seed int64) Option {
	return WithRandomness(rand.New(rand.NewSource(seed)))
}

func quiet() Option {
	return WithLogger(zerolog.Nop())
}

func readPerpetual(t *testing.T, c *testutils.Ceremony[bn254.G1Affine, bn254.G2Affine],
	k uint32) *BN254 {
	t.Helper()
	srs, err := ReadPartial(curve.BN254(), bytes.NewReader(c.PerpetualBytes()),
		ceremony.PerpetualPowersOfTau{K: c.K}, k, seeded(1), quiet())
	require.NoError(t, err)
	return srs
}

func TestReadAllFormats(t *testing.T) {
	c := testutils.NewBN254Ceremony(testK, nil)
	want := readPerpetual(t, c, testK)

	native, err := c.NativeBytes(testK, false)
	require.NoError(t, err)
	nativeRaw, err := c.NativeBytes(testK, true)
	require.NoError(t, err)

	for _, tc := range []struct {
		format ceremony.Format
		data   []byte
	}{
		{ceremony.Native{}, native},
		{ceremony.NativeRaw{}, nativeRaw},
		{ceremony.SnarkJS{}, c.SnarkJSBytes()},
	} {
		srs, err := Read(curve.BN254(), bytes.NewReader(tc.data), tc.format, quiet(), WithWorkers(3))
		require.NoError(t, err, tc.format.String())
		require.True(t, want.Equal(srs), tc.format.String())
	}
}

func TestLagrangeMatchesSecret(t *testing.T) {
	secret := big.NewInt(0xC0FFEE)
	c := testutils.NewBN254Ceremony(testK, secret)
	srs := readPerpetual(t, c, testK)

	n := uint64(1) << testK
	omega, err := fft.Generator(n)
	require.NoError(t, err)
	scalars := testutils.LagrangeScalars(fr.Modulus(), omega.BigInt(new(big.Int)), secret, testK)

	_, _, g1, _ := bn254.Generators()
	for i, l := range scalars {
		var want bn254.G1Affine
		want.ScalarMultiplication(&g1, l)
		require.True(t, want.Equal(&srs.GLagrange[i]), "lagrange[%d]", i)
	}

	var sum bn254.G1Jac
	for i := range srs.GLagrange {
		sum.AddMixed(&srs.GLagrange[i])
	}
	var sumAffine bn254.G1Affine
	sumAffine.FromJacobian(&sum)
	require.True(t, sumAffine.Equal(&g1), "the lagrange polynomials sum to 1")
}

func TestWriteRoundTrip(t *testing.T) {
	c := testutils.NewBN254Ceremony(testK, nil)
	srs := readPerpetual(t, c, testK)

	var buf bytes.Buffer
	require.NoError(t, srs.Write(&buf))
	require.Equal(t, 4+2*(1<<testK)*bn254.SizeOfG1AffineCompressed+2*bn254.SizeOfG2AffineCompressed, buf.Len())
	back, err := Read(curve.BN254(), bytes.NewReader(buf.Bytes()), ceremony.Native{}, quiet())
	require.NoError(t, err)
	require.True(t, srs.Equal(back))

	buf.Reset()
	require.NoError(t, srs.WriteRaw(&buf))
	require.Equal(t, 4+2*(1<<testK)*bn254.SizeOfG1AffineUncompressed+2*bn254.SizeOfG2AffineUncompressed, buf.Len())
	back, err = Read(curve.BN254(), bytes.NewReader(buf.Bytes()), ceremony.NativeRaw{}, quiet())
	require.NoError(t, err)
	require.True(t, srs.Equal(back))
}

func TestWriteRoundTripBLS12381(t *testing.T) {
	c := testutils.NewBLS12381Ceremony(4, nil)
	srs, err := Read(curve.BLS12381(), bytes.NewReader(c.SnarkJSBytes()), ceremony.SnarkJS{}, quiet())
	require.NoError(t, err)
	require.Equal(t, uint32(4), srs.K)

	var buf bytes.Buffer
	require.NoError(t, srs.Write(&buf))
	back, err := Read(curve.BLS12381(), bytes.NewReader(buf.Bytes()), ceremony.Native{}, quiet())
	require.NoError(t, err)
	require.True(t, srs.Equal(back))

	require.NoError(t, back.Downsize(2))
	perpetual, err := ReadPartial(curve.BLS12381(), bytes.NewReader(c.PerpetualBytes()),
		ceremony.PerpetualPowersOfTau{K: 4}, 2, quiet())
	require.NoError(t, err)
	require.True(t, perpetual.Equal(back))
}

func TestWriteRawG1G2(t *testing.T) {
	c := testutils.NewBN254Ceremony(testK, nil)
	srs := readPerpetual(t, c, 3)
	cv := curve.BN254()

	var g1, g2 bytes.Buffer
	require.NoError(t, srs.WriteRawG1(&g1))
	require.NoError(t, srs.WriteRawG2(&g2))
	require.Equal(t, 8*cv.G1RawSize(), g1.Len())
	require.Equal(t, 2*cv.G2RawSize(), g2.Len())

	for i := 0; i < 8; i++ {
		p, err := cv.DecodeRawG1(g1.Next(cv.G1RawSize()))
		require.NoError(t, err)
		require.True(t, p.Equal(&c.G1[i]))
	}
	for i := 0; i < 2; i++ {
		p, err := cv.DecodeRawG2(g2.Next(cv.G2RawSize()))
		require.NoError(t, err)
		require.True(t, p.Equal(&c.G2[i]))
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteError(t *testing.T) {
	srs := readPerpetual(t, testutils.NewBN254Ceremony(2, nil), 2)
	require.ErrorIs(t, srs.Write(failingWriter{}), ErrIO)
	require.ErrorIs(t, srs.WriteRaw(failingWriter{}), ErrIO)
	require.ErrorIs(t, srs.WriteRawG1(failingWriter{}), ErrIO)
	require.ErrorIs(t, srs.WriteRawG2(failingWriter{}), ErrIO)
}

func TestDownsize(t *testing.T) {
	c := testutils.NewBN254Ceremony(testK, nil)
	full := readPerpetual(t, c, testK)
	partial := make([]*BN254, testK+1)
	for k := range partial {
		partial[k] = readPerpetual(t, c, uint32(k))
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("downsize matches a partial read", prop.ForAll(
		func(k uint32) bool {
			srs := full.Clone()
			if err := srs.Downsize(k); err != nil {
				return false
			}
			return srs.Equal(partial[k]) && srs.Validate(nil) == nil
		},
		gen.UInt32Range(0, testK),
	))

	properties.Property("downsizing composes", prop.ForAll(
		func(a, b uint32) bool {
			if a < b {
				a, b = b, a
			}
			srs := full.Clone()
			if srs.Downsize(a) != nil || srs.Downsize(b) != nil {
				return false
			}
			return srs.Equal(partial[b])
		},
		gen.UInt32Range(0, testK),
		gen.UInt32Range(0, testK),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))

	srs := full.Clone()
	require.NoError(t, srs.Downsize(testK))
	require.True(t, srs.Equal(full))
	require.ErrorIs(t, srs.Downsize(testK+1), ErrDegreeTooLarge)
	require.True(t, srs.Equal(full), "a failed downsize leaves the srs unchanged")
}

func TestCloneIsDeep(t *testing.T) {
	srs := readPerpetual(t, testutils.NewBN254Ceremony(3, nil), 3)
	clone := srs.Clone()
	require.True(t, clone.Equal(srs))

	clone.G[1] = clone.G[2]
	require.False(t, clone.Equal(srs))
	require.NoError(t, srs.Validate(nil))
}

func TestPerturbedPowersFailValidation(t *testing.T) {
	c := testutils.NewBN254Ceremony(testK, nil)
	cv := curve.BN254()
	_, _, g1, _ := bn254.Generators()

	for _, i := range []int{1, 17, (1 << testK) - 1} {
		var p bn254.G1Affine
		p.Add(&c.G1[i], &g1)
		data := c.PerpetualBytes()
		copy(data[ceremony.PerpetualG1Offset+i*cv.G1Size():], cv.EncodePerpetualG1(&p))

		_, err := Read(cv, bytes.NewReader(data), ceremony.PerpetualPowersOfTau{K: testK},
			seeded(int64(i)), quiet())
		require.ErrorIs(t, err, ErrValidationFailure, "perturbed g[%d]", i)
	}
}

func TestPerturbedG2FailsValidation(t *testing.T) {
	c := testutils.NewBN254Ceremony(3, nil)
	cv := curve.BN254()

	_, err := New(cv, 3, c.G1, c.G2[0], c.G2[2], seeded(1), quiet())
	require.ErrorIs(t, err, ErrValidationFailure)

	var zero bn254.G2Affine
	_, err = New(cv, 3, c.G1, zero, c.G2[1], quiet())
	require.ErrorIs(t, err, ErrValidationFailure)

	var zeroG1 bn254.G1Affine
	g := append([]bn254.G1Affine{zeroG1}, c.G1[1:]...)
	_, err = New(cv, 3, g, c.G2[0], c.G2[1], quiet())
	require.ErrorIs(t, err, ErrValidationFailure)
}

func TestNew(t *testing.T) {
	c := testutils.NewBN254Ceremony(3, nil)
	cv := curve.BN254()

	srs, err := New(cv, 2, c.G1, c.G2[0], c.G2[1], quiet())
	require.NoError(t, err)
	require.Equal(t, uint32(2), srs.K)
	require.Len(t, srs.G, 4)
	require.Len(t, srs.GLagrange, 4)
	require.Equal(t, cv, srs.Curve())
	require.True(t, srs.Equal(readPerpetual(t, c, 2)))

	_, err = New(cv, 5, c.G1, c.G2[0], c.G2[1], quiet())
	require.ErrorIs(t, err, ErrDegreeTooLarge)
	_, err = New(cv, 29, c.G1, c.G2[0], c.G2[1], quiet())
	require.ErrorIs(t, err, ErrDegreeTooLarge)
}

func TestValidateShortRandomness(t *testing.T) {
	srs := readPerpetual(t, testutils.NewBN254Ceremony(3, nil), 3)
	err := srs.Validate(bytes.NewReader(make([]byte, 10)))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrValidationFailure)
}

func TestDegree8Fixtures(t *testing.T) {
	c := testutils.NewBN254Ceremony(8, nil)
	perpetual, err := Read(curve.BN254(), bytes.NewReader(c.PerpetualBytes()),
		ceremony.PerpetualPowersOfTau{K: 8}, quiet())
	require.NoError(t, err)
	snarkJS, err := Read(curve.BN254(), bytes.NewReader(c.SnarkJSBytes()), ceremony.SnarkJS{}, quiet())
	require.NoError(t, err)
	require.True(t, perpetual.Equal(snarkJS))
	require.Len(t, perpetual.G, 256)
	require.Len(t, perpetual.GLagrange, 256)

	var buf bytes.Buffer
	require.NoError(t, snarkJS.Write(&buf))
	native, err := Read(curve.BN254(), bytes.NewReader(buf.Bytes()), ceremony.Native{}, quiet())
	require.NoError(t, err)
	require.True(t, perpetual.Equal(native))
}
