package ceremony

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/giuliop/kzgsrs/arithmetic"
	"github.com/giuliop/kzgsrs/curve"
)

var (
	// ErrIO is returned when a ceremony file cannot be read: a failed seek,
	// a short read or a header that does not describe a readable layout.
	ErrIO = errors.New("ceremony i/o error")

	// ErrDegreeTooLarge is returned when more points are requested than a
	// file stores or than the curve supports.
	ErrDegreeTooLarge = errors.New("degree too large")
)

func ioError(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, what, err)
}

// Format identifies the layout of a ceremony file.
type Format interface {
	fmt.Stringer
	isFormat()
}

// Native is the canonical layout with compressed points.
type Native struct{}

// NativeRaw is the canonical layout with uncompressed points.
type NativeRaw struct{}

// PerpetualPowersOfTau is a perpetual powers-of-tau response file storing
// 2^K powers.
type PerpetualPowersOfTau struct {
	K uint32
}

// SnarkJS is a snarkjs .ptau file.
type SnarkJS struct{}

func (Native) isFormat()               {}
func (NativeRaw) isFormat()            {}
func (PerpetualPowersOfTau) isFormat() {}
func (SnarkJS) isFormat()              {}

func (Native) String() string    { return "native" }
func (NativeRaw) String() string { return "native-raw" }
func (f PerpetualPowersOfTau) String() string {
	return fmt.Sprintf("perpetual-powers-of-tau-%d", f.K)
}
func (SnarkJS) String() string { return "snarkjs" }

// Points is the content of a ceremony file decoded at degree K.
type Points[G1, G2 any] struct {
	K uint32
	G []G1
	// GLagrange is nil when the file does not store the Lagrange basis at
	// degree K and it has to be computed.
	GLagrange []G1
	G2        G2
	SG2       G2
}

// Degree returns the degree stored in a ceremony file.
func Degree(r io.ReadSeeker, f Format) (uint32, error) {
	switch f := f.(type) {
	case Native, NativeRaw:
		return ReadNativeDegree(r)
	case PerpetualPowersOfTau:
		return f.K, nil
	case SnarkJS:
		return ReadSnarkJSDegree(r)
	default:
		return 0, fmt.Errorf("unsupported ceremony format %v", f)
	}
}

// Read decodes the first 2^desiredK powers of a ceremony file together with
// its two G2 points.
func Read[G1, G2 any](c curve.Curve[G1, G2], r io.ReadSeeker, f Format, desiredK uint32,
	workers int) (*Points[G1, G2], error) {

	fileK, err := Degree(r, f)
	if err != nil {
		return nil, err
	}
	if err := checkDegree(c, desiredK, fileK); err != nil {
		return nil, err
	}

	res := Points[G1, G2]{K: desiredK}
	switch f.(type) {
	case Native, NativeRaw:
		_, raw := f.(NativeRaw)
		res.G, res.GLagrange, err = ReadNativeG1s(c, r, raw, desiredK, fileK, workers)
		if err == nil {
			res.G2, res.SG2, err = ReadNativeG2s(c, r, raw, fileK)
		}
	case PerpetualPowersOfTau:
		res.G, err = ReadPerpetualG1s(c, r, desiredK, workers)
		if err == nil {
			res.G2, res.SG2, err = ReadPerpetualG2s(c, r, fileK)
		}
	case SnarkJS:
		res.G, err = ReadSnarkJSG1s(c, r, desiredK, workers)
		if err == nil {
			res.G2, res.SG2, err = ReadSnarkJSG2s(c, r, fileK)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %v file: %w", f, err)
	}
	return &res, nil
}

func checkDegree[G1, G2 any](c curve.Curve[G1, G2], desiredK, fileK uint32) error {
	if fileK > c.MaxDegree() {
		return fmt.Errorf("%w: file stores degree %d, %s supports at most %d",
			ErrDegreeTooLarge, fileK, c, c.MaxDegree())
	}
	if desiredK > fileK {
		return fmt.Errorf("%w: requested degree %d, file stores degree %d",
			ErrDegreeTooLarge, desiredK, fileK)
	}
	return nil
}

// points read and decoded per batch
const decodeBatch = 1 << 16

// decodePoints reads n encodings of size bytes from r and decodes them with
// workers goroutines, one batch at a time.
func decodePoints[T any](r io.Reader, n, size, workers int, decode func([]byte) (T, error)) ([]T, error) {
	res := make([]T, n)
	buf := make([]byte, min(n, decodeBatch)*size)
	for done := 0; done < n; {
		m := min(n-done, decodeBatch)
		b := buf[:m*size]
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, ioError(fmt.Sprintf("reading points %d to %d", done, done+m-1), err)
		}
		err := arithmetic.Parallelize(res[done:done+m], workers, func(chunk []T, start int) error {
			for i := range chunk {
				j := start + i
				p, err := decode(b[j*size : (j+1)*size])
				if err != nil {
					return fmt.Errorf("point %d: %w", done+j, err)
				}
				chunk[i] = p
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		done += m
	}
	return res, nil
}

func decodePair[T any](r io.Reader, size int, decode func([]byte) (T, error)) (a, b T, err error) {
	buf := make([]byte, 2*size)
	if _, err = io.ReadFull(r, buf); err != nil {
		return a, b, ioError("reading g2 points", err)
	}
	if a, err = decode(buf[:size]); err != nil {
		return a, b, fmt.Errorf("g2: %w", err)
	}
	if b, err = decode(buf[size:]); err != nil {
		return a, b, fmt.Errorf("s·g2: %w", err)
	}
	return a, b, nil
}

func seek(r io.Seeker, offset int64) error {
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return ioError(fmt.Sprintf("seeking to offset %d", offset), err)
	}
	return nil
}

func readUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}
