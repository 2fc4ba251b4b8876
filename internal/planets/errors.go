package planets

import "errors"

// Domain errors for body generation parameters.
var (
	// ErrInvalidBounds indicates non-positive or inverted size bounds.
	ErrInvalidBounds = errors.New("planets: size bounds must satisfy 0 < min <= max")

	// ErrInvalidSpeed indicates a negative or non-finite base drift speed.
	ErrInvalidSpeed = errors.New("planets: base speed must be a finite value >= 0")

	// ErrInvalidCount indicates a negative body count.
	ErrInvalidCount = errors.New("planets: body count must be >= 0")

	// ErrNoPalettes indicates an empty palette set.
	ErrNoPalettes = errors.New("planets: palette set is empty")
)

// ValidateBounds checks generator inputs.
func ValidateBounds(minSize, maxSize, speed float64) error {
	if !(minSize > 0) || maxSize < minSize || isInf(maxSize) {
		return ErrInvalidBounds
	}
	if !(speed >= 0) || isInf(speed) {
		return ErrInvalidSpeed
	}
	return nil
}
