package merger

import "errors"

// ErrConfiguration is returned when the user configuration misses a required
// field or carries a value the kernel cannot use. It is a developer mistake
// and aborts the bootstrap.
var ErrConfiguration = errors.New("configuration error")
