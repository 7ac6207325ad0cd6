package boundary

import "errors"

// Errors returned when boundary points or ranges are malformed.
var (
	// ErrInvalidArgument indicates an unset boundary point, an offset past the
	// end of its container, or a range whose start is after its end.
	ErrInvalidArgument = errors.New("invalid argument")
)
