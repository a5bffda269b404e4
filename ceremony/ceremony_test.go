package ceremony

import (
	"bytes"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	gp "github.com/mdehoog/gnark-ptau"
	"github.com/stretchr/testify/require"

	"github.com/giuliop/kzgsrs/curve"
	"github.com/giuliop/kzgsrs/testutils"
)

const testK = 3

func TestOffsets(t *testing.T) {
	require.Equal(t, int64(4+32*2*8), NativeG2Offset(32, 3))
	require.Equal(t, int64(4+64*2*8), NativeG2Offset(64, 3))
	require.Equal(t, int64(64+32*7), PerpetualG2Offset(32, 2))
	require.Equal(t, int64(64+48*7), PerpetualG2Offset(48, 2))
	require.Equal(t, int64(100+2*32*7+12), SnarkJSG2Offset(100, 32, 2))

	c := testutils.NewBN254Ceremony(testK, nil)
	r := bytes.NewReader(c.SnarkJSBytes())
	headerSize, err := ReadSnarkJSHeaderSize(r)
	require.NoError(t, err)
	require.Equal(t, uint64(32+12), headerSize)
	g1Offset, err := ReadSnarkJSG1Offset(r)
	require.NoError(t, err)
	require.Equal(t, int64(24+44+12), g1Offset)
}

func TestDegree(t *testing.T) {
	c := testutils.NewBN254Ceremony(testK, nil)
	native, err := c.NativeBytes(2, false)
	require.NoError(t, err)

	for _, tc := range []struct {
		format Format
		data   []byte
		want   uint32
	}{
		{Native{}, native, 2},
		{PerpetualPowersOfTau{K: testK}, c.PerpetualBytes(), testK},
		{SnarkJS{}, c.SnarkJSBytes(), testK},
	} {
		k, err := Degree(bytes.NewReader(tc.data), tc.format)
		require.NoError(t, err, tc.format.String())
		require.Equal(t, tc.want, k, tc.format.String())
	}
}

func checkPoints[G1, G2 any](t *testing.T, c *testutils.Ceremony[G1, G2], p *Points[G1, G2], k uint32) {
	t.Helper()
	require.Equal(t, k, p.K)
	require.Len(t, p.G, 1<<k)
	for i := range p.G {
		require.True(t, c.Curve.EqualG1(&c.G1[i], &p.G[i]), "g[%d]", i)
	}
	require.True(t, c.Curve.EqualG2(&c.G2[0], &p.G2), "g2")
	require.True(t, c.Curve.EqualG2(&c.G2[1], &p.SG2), "s·g2")
}

func testReadAllFormats[G1, G2 any](t *testing.T, c *testutils.Ceremony[G1, G2]) {
	native, err := c.NativeBytes(c.K, false)
	require.NoError(t, err)
	nativeRaw, err := c.NativeBytes(c.K, true)
	require.NoError(t, err)

	files := map[Format][]byte{
		Native{}:                     native,
		NativeRaw{}:                  nativeRaw,
		PerpetualPowersOfTau{K: c.K}: c.PerpetualBytes(),
		SnarkJS{}:                    c.SnarkJSBytes(),
	}
	for format, data := range files {
		for k := uint32(0); k <= c.K; k++ {
			p, err := Read(c.Curve, bytes.NewReader(data), format, k, 2)
			require.NoError(t, err, "%v at degree %d", format, k)
			checkPoints(t, c, p, k)

			_, isNative := format.(Native)
			_, isNativeRaw := format.(NativeRaw)
			if (isNative || isNativeRaw) && k == c.K {
				want, err := c.Curve.ToLagrange(c.G1[:1<<k], 1)
				require.NoError(t, err)
				require.Len(t, p.GLagrange, len(want))
				for i := range want {
					require.True(t, c.Curve.EqualG1(&want[i], &p.GLagrange[i]), "lagrange[%d]", i)
				}
			} else {
				require.Nil(t, p.GLagrange, "%v at degree %d", format, k)
			}
		}
	}
}

func TestReadAllFormatsBN254(t *testing.T) {
	testReadAllFormats(t, testutils.NewBN254Ceremony(testK, nil))
}

func TestReadAllFormatsBLS12381(t *testing.T) {
	testReadAllFormats(t, testutils.NewBLS12381Ceremony(testK, nil))
}

func TestDegreeTooLarge(t *testing.T) {
	c := testutils.NewBN254Ceremony(testK, nil)

	_, err := Read(c.Curve, bytes.NewReader(c.SnarkJSBytes()), SnarkJS{}, testK+1, 1)
	require.ErrorIs(t, err, ErrDegreeTooLarge)

	_, err = Read(c.Curve, bytes.NewReader(c.PerpetualBytes()), PerpetualPowersOfTau{K: 29}, 2, 1)
	require.ErrorIs(t, err, ErrDegreeTooLarge, "bn254 has no size 2^29 domain")

	native, err := c.NativeBytes(2, false)
	require.NoError(t, err)
	_, err = Read(c.Curve, bytes.NewReader(native), Native{}, 3, 1)
	require.ErrorIs(t, err, ErrDegreeTooLarge)
}

func TestShortRead(t *testing.T) {
	c := testutils.NewBN254Ceremony(testK, nil)
	native, err := c.NativeBytes(testK, false)
	require.NoError(t, err)

	snarkJS := c.SnarkJSBytes()
	g1Offset, err := ReadSnarkJSG1Offset(bytes.NewReader(snarkJS))
	require.NoError(t, err)

	// cut inside the last point read: s·g2 for native files, the last G1
	// power for the others, whose files end with more G2 powers
	for _, tc := range []struct {
		format Format
		data   []byte
	}{
		{Native{}, native[:len(native)-1]},
		{PerpetualPowersOfTau{K: testK}, c.PerpetualBytes()[:PerpetualG1Offset+7*c.Curve.G1Size()+1]},
		{SnarkJS{}, snarkJS[:g1Offset+7*2*32+1]},
	} {
		_, err := Read(c.Curve, bytes.NewReader(tc.data), tc.format, testK, 1)
		require.ErrorIs(t, err, ErrIO, tc.format.String())
	}

	_, err = Degree(bytes.NewReader([]byte{1, 2}), Native{})
	require.ErrorIs(t, err, ErrIO)
	_, err = Degree(bytes.NewReader([]byte("ptau")), SnarkJS{})
	require.ErrorIs(t, err, ErrIO)
}

func TestMalformedPoint(t *testing.T) {
	c := testutils.NewBN254Ceremony(testK, nil)
	data := c.PerpetualBytes()

	// x = 0x3fff...ff is above the base field modulus
	third := PerpetualG1Offset + 2*c.Curve.G1Size()
	data[third] = 0x3f
	for i := 1; i < c.Curve.G1Size(); i++ {
		data[third+i] = 0xff
	}
	_, err := Read(c.Curve, bytes.NewReader(data), PerpetualPowersOfTau{K: testK}, testK, 2)
	require.ErrorIs(t, err, curve.ErrMalformedPoint)
	require.ErrorContains(t, err, "point 2")

	// fewer points do not reach the malformed one
	_, err = Read(c.Curve, bytes.NewReader(data), PerpetualPowersOfTau{K: testK}, 1, 2)
	require.NoError(t, err)
}

func TestSnarkJSMatchesGnarkPtau(t *testing.T) {
	c := testutils.NewBN254Ceremony(testK, nil)
	data := c.SnarkJSBytes()

	srs, err := gp.ToSRS(bytes.NewReader(data))
	require.NoError(t, err)

	p, err := Read(curve.BN254(), bytes.NewReader(data), SnarkJS{}, testK, 1)
	require.NoError(t, err)
	for i := range p.G {
		require.True(t, srs.Pk.G1[i].Equal(&p.G[i]), "g[%d]", i)
	}
	require.True(t, srs.Vk.G2[0].Equal(&p.G2))
	require.True(t, srs.Vk.G2[1].Equal(&p.SG2))

	_, _, g1, _ := bn254.Generators()
	require.True(t, p.G[0].Equal(&g1))
}

func TestDecodeBatches(t *testing.T) {
	c := curve.BN254()
	_, _, g1, _ := bn254.Generators()
	n := decodeBatch + 3
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		buf.Write(c.EncodeG1(&g1))
	}
	points, err := DecodeNativeG1s(c, &buf, false, n, 4)
	require.NoError(t, err)
	require.Len(t, points, n)
	require.True(t, points[n-1].Equal(&g1))
}
