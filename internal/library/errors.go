package library

import "errors"

// ErrNotFound reports a definitive miss: neither the cache nor the live
// storefront search knows the requested game. No placeholder is cached.
var ErrNotFound = errors.New("no matching game found")

// IsNotFound reports whether err is a definitive miss rather than a
// transient upstream failure worth retrying.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
