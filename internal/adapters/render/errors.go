package render

import "errors"

// Sentinel kinds for card rendering errors.
var (
	ErrUnavailable = errors.New("rasterizer unavailable")
	ErrTemplate    = errors.New("card template failed")
	ErrWrite       = errors.New("card write failed")
)
