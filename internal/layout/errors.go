package layout

import "errors"

// ErrEmptyLayout is returned when a layout has no rows or a row has no cells.
var ErrEmptyLayout = errors.New("layout must have at least one non-empty row")

// ValidationError describes a malformed stack specification.
type ValidationError struct {
	Row, Col int
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid stack spec: " + e.Reason
	}
	return "invalid stack spec " + e.Field + ": " + e.Reason
}
