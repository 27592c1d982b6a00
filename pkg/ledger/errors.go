package ledger

import "fmt"

// MalformedError reports a stored history that could not be decoded.
type MalformedError struct {
	Key string
	Err error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed history in %q: %v", e.Key, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}
