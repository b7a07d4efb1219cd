package ledger

import "fmt"

// StorageError marks a ledger operation that failed because the underlying
// key-value store could not complete a read or write. Callers distinguish it
// with errors.As to report "could not save/delete" instead of a generic
// failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("ledger %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
