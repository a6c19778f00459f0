package bindings

import "errors"

// Sentinel kinds for binding store errors.
var (
	ErrUnbound      = errors.New("chat user not bound")
	ErrStoreIO      = errors.New("binding store io failed")
	ErrCorruptStore = errors.New("binding store corrupt")
)
