package callback

import "errors"

// ErrInvalidCallback is returned when a descriptor cannot be turned into an
// invokable function, fallback included.
var ErrInvalidCallback = errors.New("invalid callback")
