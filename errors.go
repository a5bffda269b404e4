package kzgsrs

import (
	"errors"
	"fmt"

	"github.com/giuliop/kzgsrs/ceremony"
	"github.com/giuliop/kzgsrs/curve"
)

var (
	// ErrValidationFailure is returned when the powers of an Srs do not share
	// the ratio of its G2 points, or when the Srs is degenerate.
	ErrValidationFailure = errors.New("srs validation failed")

	ErrIO             = ceremony.ErrIO
	ErrDegreeTooLarge = ceremony.ErrDegreeTooLarge
	ErrMalformedPoint = curve.ErrMalformedPoint
)

func writeError(what string, err error) error {
	return fmt.Errorf("%w: writing %s: %w", ErrIO, what, err)
}
