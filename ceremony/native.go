package ceremony

import (
	"io"

	"github.com/giuliop/kzgsrs/curve"
)

// NativeG1Offset is the offset of the first G1 point of a native file.
const NativeG1Offset = 4

// ReadNativeDegree reads the degree stored at the start of a native file.
func ReadNativeDegree(r io.ReadSeeker) (uint32, error) {
	if err := seek(r, 0); err != nil {
		return 0, err
	}
	k, err := readUint32(r)
	if err != nil {
		return 0, ioError("reading native degree", err)
	}
	return k, nil
}

// NativeG2Offset returns the offset of the G2 points of a native file of
// degree k storing G1 points of g1Size bytes: both the monomial and the
// Lagrange blocks precede them.
func NativeG2Offset(g1Size int, k uint32) int64 {
	return NativeG1Offset + int64(g1Size)*2*(int64(1)<<k)
}

// ReadNativeG1s reads 2^desiredK monomial points from a native file of degree
// fileK. The Lagrange basis stored in the file is returned only when
// desiredK == fileK, otherwise it is nil.
func ReadNativeG1s[G1, G2 any](c curve.Curve[G1, G2], r io.ReadSeeker, raw bool, desiredK,
	fileK uint32, workers int) (g, lagrange []G1, err error) {

	if err := seek(r, NativeG1Offset); err != nil {
		return nil, nil, err
	}
	n := 1 << desiredK
	if g, err = DecodeNativeG1s(c, r, raw, n, workers); err != nil {
		return nil, nil, err
	}
	if desiredK != fileK {
		return g, nil, nil
	}
	if lagrange, err = DecodeNativeG1s(c, r, raw, n, workers); err != nil {
		return nil, nil, err
	}
	return g, lagrange, nil
}

// DecodeNativeG1s decodes n consecutive G1 points from the current position.
func DecodeNativeG1s[G1, G2 any](c curve.Curve[G1, G2], r io.Reader, raw bool, n,
	workers int) ([]G1, error) {
	if raw {
		return decodePoints(r, n, c.G1RawSize(), workers, c.DecodeRawG1)
	}
	return decodePoints(r, n, c.G1Size(), workers, c.DecodeG1)
}

// ReadNativeG2s reads g2 and s·g2 from a native file of degree fileK.
func ReadNativeG2s[G1, G2 any](c curve.Curve[G1, G2], r io.ReadSeeker, raw bool,
	fileK uint32) (g2, sG2 G2, err error) {

	size := c.G1Size()
	if raw {
		size = c.G1RawSize()
	}
	if err = seek(r, NativeG2Offset(size, fileK)); err != nil {
		return g2, sG2, err
	}
	return DecodeNativeG2s(c, r, raw)
}

// DecodeNativeG2s decodes g2 and s·g2 from the current position.
func DecodeNativeG2s[G1, G2 any](c curve.Curve[G1, G2], r io.Reader, raw bool) (g2, sG2 G2, err error) {
	if raw {
		return decodePair(r, c.G2RawSize(), c.DecodeRawG2)
	}
	return decodePair(r, c.G2Size(), c.DecodeG2)
}
