package grid

import (
	"fmt"

	flexerrors "github.com/matzehuels/flexgrid/pkg/errors"
)

// InvalidSpecError reports a malformed layout configuration: negative or
// non-finite values, a non-positive container width, or conflicting or
// missing width-resolution fields.
type InvalidSpecError struct {
	Field  string // Offending field (e.g. "ContainerWidth")
	Reason string // Human-readable reason
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid layout spec: %s: %s", e.Field, e.Reason)
}

// Code returns flexerrors.ErrCodeInvalidSpec.
func (e *InvalidSpecError) Code() flexerrors.Code { return flexerrors.ErrCodeInvalidSpec }

// DegenerateLayoutError reports a valid spec whose resolved item width is
// not positive, typically too many columns for the container.
type DegenerateLayoutError struct {
	Columns   int
	ItemWidth float64
}

func (e *DegenerateLayoutError) Error() string {
	return fmt.Sprintf("degenerate layout: %d columns leave item width %.2f", e.Columns, e.ItemWidth)
}

// Code returns flexerrors.ErrCodeDegenerateLayout.
func (e *DegenerateLayoutError) Code() flexerrors.Code { return flexerrors.ErrCodeDegenerateLayout }

func invalid(field, format string, args ...any) error {
	return &InvalidSpecError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
