package ceremony

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/giuliop/kzgsrs/curve"
)

const (
	// SnarkJSHeaderSizeOffset is the offset of the u64 size of the header
	// section.
	SnarkJSHeaderSizeOffset = 16
	// SnarkJSHeaderOffset is the offset of the header section content.
	SnarkJSHeaderOffset = 24

	// section type u32 and section size u64
	snarkJSSectionPrefix = 12
	// power u32 and ceremonyPower u32 close the header
	snarkJSHeaderTail = 8
)

// ReadSnarkJSHeaderSize reads the size of the header section of a .ptau file.
func ReadSnarkJSHeaderSize(r io.ReadSeeker) (uint64, error) {
	if err := seek(r, SnarkJSHeaderSizeOffset); err != nil {
		return 0, err
	}
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, ioError("reading snarkjs header size", err)
	}
	size := binary.LittleEndian.Uint64(b[:])
	if size < snarkJSHeaderTail || size > 1<<16 {
		return 0, fmt.Errorf("%w: snarkjs header size %d", ErrIO, size)
	}
	return size, nil
}

// ReadSnarkJSDegree reads the power of a .ptau file, stored in the last eight
// bytes of the header before the ceremony power.
func ReadSnarkJSDegree(r io.ReadSeeker) (uint32, error) {
	headerSize, err := ReadSnarkJSHeaderSize(r)
	if err != nil {
		return 0, err
	}
	if err := seek(r, SnarkJSHeaderOffset+int64(headerSize)-snarkJSHeaderTail); err != nil {
		return 0, err
	}
	k, err := readUint32(r)
	if err != nil {
		return 0, ioError("reading snarkjs power", err)
	}
	return k, nil
}

// ReadSnarkJSG1Offset returns the offset of the first G1 point of a .ptau file.
func ReadSnarkJSG1Offset(r io.ReadSeeker) (int64, error) {
	headerSize, err := ReadSnarkJSHeaderSize(r)
	if err != nil {
		return 0, err
	}
	return SnarkJSHeaderOffset + int64(headerSize) + snarkJSSectionPrefix, nil
}

// SnarkJSG2Offset returns the offset of the first G2 point of a .ptau file of
// power k whose base field elements take fieldSize bytes.
func SnarkJSG2Offset(g1Offset int64, fieldSize int, k uint32) int64 {
	return g1Offset + 2*int64(fieldSize)*((int64(2)<<k)-1) + snarkJSSectionPrefix
}

// ReadSnarkJSG2Offset returns the offset of the first G2 point of a .ptau file
// of power k.
func ReadSnarkJSG2Offset(r io.ReadSeeker, fieldSize int, k uint32) (int64, error) {
	g1Offset, err := ReadSnarkJSG1Offset(r)
	if err != nil {
		return 0, err
	}
	return SnarkJSG2Offset(g1Offset, fieldSize, k), nil
}

// ReadSnarkJSG1s reads the first 2^desiredK powers in G1 of a .ptau file.
func ReadSnarkJSG1s[G1, G2 any](c curve.Curve[G1, G2], r io.ReadSeeker, desiredK uint32,
	workers int) ([]G1, error) {
	offset, err := ReadSnarkJSG1Offset(r)
	if err != nil {
		return nil, err
	}
	if err := seek(r, offset); err != nil {
		return nil, err
	}
	return DecodeSnarkJSG1s(c, r, 1<<desiredK, workers)
}

// DecodeSnarkJSG1s decodes n consecutive Montgomery G1 points from the
// current position.
func DecodeSnarkJSG1s[G1, G2 any](c curve.Curve[G1, G2], r io.Reader, n, workers int) ([]G1, error) {
	return decodePoints(r, n, 2*c.BaseFieldSize(), workers, c.DecodeMontgomeryG1)
}

// ReadSnarkJSG2s reads g2 and τ·g2 from a .ptau file of power fileK.
func ReadSnarkJSG2s[G1, G2 any](c curve.Curve[G1, G2], r io.ReadSeeker, fileK uint32) (g2, sG2 G2, err error) {
	offset, err := ReadSnarkJSG2Offset(r, c.BaseFieldSize(), fileK)
	if err != nil {
		return g2, sG2, err
	}
	if err = seek(r, offset); err != nil {
		return g2, sG2, err
	}
	return DecodeSnarkJSG2s(c, r)
}

// DecodeSnarkJSG2s decodes two consecutive Montgomery G2 points from the
// current position.
func DecodeSnarkJSG2s[G1, G2 any](c curve.Curve[G1, G2], r io.Reader) (g2, sG2 G2, err error) {
	return decodePair(r, 4*c.BaseFieldSize(), c.DecodeMontgomeryG2)
}
