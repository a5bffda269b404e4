package kzgsrs

import (
	"bufio"
	"encoding/binary"
	"io"
)

// Write serializes the Srs in the native layout with compressed points:
// K as a little endian u32, the 2^K monomial points, the 2^K Lagrange points,
// then G2 and SG2. Read with ceremony.Native loads it back.
func (s *Srs[G1, G2]) Write(w io.Writer) error {
	return s.write(w, s.curve.EncodeG1, s.curve.EncodeG2)
}

// WriteRaw is like Write with uncompressed points, which load faster. Read
// with ceremony.NativeRaw loads it back.
func (s *Srs[G1, G2]) WriteRaw(w io.Writer) error {
	return s.write(w, s.curve.EncodeRawG1, s.curve.EncodeRawG2)
}

// WriteRawG1 writes the 2^K uncompressed monomial points with no header.
func (s *Srs[G1, G2]) WriteRawG1(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := writePoints(bw, s.G, s.curve.EncodeRawG1); err != nil {
		return writeError("g1 points", err)
	}
	if err := bw.Flush(); err != nil {
		return writeError("g1 points", err)
	}
	return nil
}

// WriteRawG2 writes the uncompressed G2 and SG2 with no header.
func (s *Srs[G1, G2]) WriteRawG2(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := writePoints(bw, []G2{s.G2, s.SG2}, s.curve.EncodeRawG2); err != nil {
		return writeError("g2 points", err)
	}
	if err := bw.Flush(); err != nil {
		return writeError("g2 points", err)
	}
	return nil
}

func (s *Srs[G1, G2]) write(w io.Writer, encodeG1 func(*G1) []byte, encodeG2 func(*G2) []byte) error {
	bw := bufio.NewWriter(w)

	var k [4]byte
	binary.LittleEndian.PutUint32(k[:], s.K)
	if _, err := bw.Write(k[:]); err != nil {
		return writeError("degree", err)
	}
	if err := writePoints(bw, s.G, encodeG1); err != nil {
		return writeError("monomial basis", err)
	}
	if err := writePoints(bw, s.GLagrange, encodeG1); err != nil {
		return writeError("lagrange basis", err)
	}
	if err := writePoints(bw, []G2{s.G2, s.SG2}, encodeG2); err != nil {
		return writeError("g2 points", err)
	}
	if err := bw.Flush(); err != nil {
		return writeError("srs", err)
	}
	return nil
}

func writePoints[T any](w io.Writer, points []T, encode func(*T) []byte) error {
	for i := range points {
		if _, err := w.Write(encode(&points[i])); err != nil {
			return err
		}
	}
	return nil
}
