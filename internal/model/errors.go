package model

import "errors"

// ErrOrderMismatch is returned by repositories when a replace-order request does
// not list exactly the current siblings of its scope.
var ErrOrderMismatch = errors.New("order does not match current siblings")
