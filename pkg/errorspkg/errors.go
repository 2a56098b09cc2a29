// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates that the storage layer or another internal dependency
// failed; callers map it to a 5xx response. Validation failures never use it.
var ErrInternal = errors.New("internal")
