package dial

import "errors"

// ErrInvalidArgument is wrapped by every construction-time validation error.
// Runtime touch anomalies are never reported as errors.
var ErrInvalidArgument = errors.New("invalid argument")
