package edux

import (
	"errors"
	"fmt"
)

// Edux answers most failures with a regular 200 page, so these are detected
// from the page body rather than from status codes.
var (
	// ErrBadCookieConfig means the local credentials are missing, malformed or conflicting.
	ErrBadCookieConfig = errors.New("bad cookie configuration")

	// ErrPermissionDenied means the cookie does not grant access to the requested page.
	ErrPermissionDenied = errors.New("your cookie does not work on requested page, permission denied")

	// ErrNotFound means the requested page does not exist.
	ErrNotFound = errors.New("requested URL does not exist")

	// ErrEmptyResult is the parent of every "page parsed, nothing found" error.
	ErrEmptyResult = errors.New("empty result")

	ErrNoCourses    = fmt.Errorf("%w: no courses found on the landing page", ErrEmptyResult)
	ErrEmptyTree    = fmt.Errorf("%w: the classification tree is empty", ErrEmptyResult)
	ErrFormNotFound = fmt.Errorf("%w: could not find scores form on parsed page", ErrEmptyResult)
)

// PageError ties a failure to the page that produced it.
type PageError struct {
	URL string
	Err error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("%s: %v", e.URL, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}
