package credential

import "errors"

// Resolution errors.
var (
	// ErrInvalidCredentials is returned when the server rejects the
	// operator-supplied credentials during validation. This is fatal
	// for the run: an invalid credential cannot produce meaningful
	// results on the rest of the matrix, so no protocol probing
	// happens after it.
	ErrInvalidCredentials = errors.New("server rejected the supplied credentials")

	// ErrEmptyUsername is returned when the operator supplies an empty
	// username and no default could be determined.
	ErrEmptyUsername = errors.New("username must not be empty")
)
