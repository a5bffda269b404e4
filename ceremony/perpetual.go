package ceremony

import (
	"io"

	"github.com/giuliop/kzgsrs/curve"
)

// PerpetualG1Offset skips the hash of the previous contribution at the start
// of a response file.
const PerpetualG1Offset = 64

// PerpetualG2Offset returns the offset of the first G2 point of a response
// file of degree k: it follows the 2·2^k - 1 powers in G1.
func PerpetualG2Offset(g1Size int, k uint32) int64 {
	return PerpetualG1Offset + int64(g1Size)*((int64(2)<<k)-1)
}

// ReadPerpetualG1s reads the first 2^desiredK powers in G1 of a response file.
func ReadPerpetualG1s[G1, G2 any](c curve.Curve[G1, G2], r io.ReadSeeker, desiredK uint32,
	workers int) ([]G1, error) {
	if err := seek(r, PerpetualG1Offset); err != nil {
		return nil, err
	}
	return DecodePerpetualG1s(c, r, 1<<desiredK, workers)
}

// DecodePerpetualG1s decodes n consecutive perpetual G1 points from the current
// position.
func DecodePerpetualG1s[G1, G2 any](c curve.Curve[G1, G2], r io.Reader, n, workers int) ([]G1, error) {
	return decodePoints(r, n, c.G1Size(), workers, c.DecodePerpetualG1)
}

// ReadPerpetualG2s reads g2 and τ·g2 from a response file of degree fileK.
func ReadPerpetualG2s[G1, G2 any](c curve.Curve[G1, G2], r io.ReadSeeker, fileK uint32) (g2, sG2 G2, err error) {
	if err = seek(r, PerpetualG2Offset(c.G1Size(), fileK)); err != nil {
		return g2, sG2, err
	}
	return DecodePerpetualG2s(c, r)
}

// DecodePerpetualG2s decodes two consecutive perpetual G2 points from the
// current position.
func DecodePerpetualG2s[G1, G2 any](c curve.Curve[G1, G2], r io.Reader) (g2, sG2 G2, err error) {
	return decodePair(r, c.G2Size(), c.DecodePerpetualG2)
}
