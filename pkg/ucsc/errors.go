package ucsc

import (
	"errors"
	"fmt"
)

// ErrNotLoggedIn is returned by operations that need a session cookie when
// the handle has none; call Login (or ResumeSession) first.
var ErrNotLoggedIn = errors.New("not logged in")

// OperationError is a failure of a high-level operation (the pkg/admin/...
// layers): a precondition such as "the parent object exists" did not hold.
type OperationError struct {
	Op     string
	Reason string
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// IsNotFound reports whether err is the endpoint's "cannot find dn" error.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == errCodeNotFound
}
