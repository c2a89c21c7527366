package service

// NotFoundError reports that no crypto data exists for a requested symbol
// or day. Handlers translate it into a 404 with the CRYPTO_DATA_NOT_FOUND
// code; every other error from this package is treated as internal.
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string { return e.msg }

func newNotFound(msg string) *NotFoundError {
	return &NotFoundError{msg: msg}
}
