package history

import "errors"

// ErrNotFound is returned when no refresh attempt has been recorded.
var ErrNotFound = errors.New("no refresh attempts recorded")
