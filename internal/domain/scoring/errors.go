package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrInvalidCalibration = errors.New("invalid calibration")
)
