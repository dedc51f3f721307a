package model

import "fmt"

// The calculation fails fast on the first data problem it finds; there are
// no partial estimates. Each error names enough context for the caller to
// point the user at the offending input.

// InvalidGeometryError reports a malformed input segment: non-finite
// coordinates or zero length.
type InvalidGeometryError struct {
	SegmentIndex int
	Reason       string
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid geometry: segment %d: %s", e.SegmentIndex, e.Reason)
}

// UnknownFenceSpecError reports a fence type / height combination missing
// from the configuration. Nothing is silently defaulted.
type UnknownFenceSpecError struct {
	FenceType string
	Height    float64
}

func (e *UnknownFenceSpecError) Error() string {
	return fmt.Sprintf("unknown fence spec: no configuration for %s at %g ft", e.FenceType, e.Height)
}

// PieceTooLongError reports a required cut that exceeds the largest stock
// length available for its fence type.
type PieceTooLongError struct {
	RunID    string
	Length   float64
	MaxStock float64
}

func (e *PieceTooLongError) Error() string {
	return fmt.Sprintf("piece too long: %s requires a %.2f ft piece but the largest stock is %.2f ft", e.RunID, e.Length, e.MaxStock)
}

// PricingNotFoundError reports a fence type / height combination missing
// from the injected price table.
type PricingNotFoundError struct {
	FenceType string
	Height    float64
}

func (e *PricingNotFoundError) Error() string {
	return fmt.Sprintf("pricing not found: no price entry for %s at %g ft", e.FenceType, e.Height)
}
