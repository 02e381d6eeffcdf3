package lock

import "errors"

// ErrLockTimeout means another operation on the same account held the lock
// for longer than the caller was willing to wait.
var ErrLockTimeout = errors.New("account lock wait timed out")
