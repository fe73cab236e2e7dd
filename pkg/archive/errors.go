package archive

import (
	"errors"
	"fmt"
)

var (
	ErrNoMatch     = errors.New("no matching entry")
	ErrIllegalPath = errors.New("entry path outside of destination")
)

// ExtractionError is reported for all failures reading an archive or
// writing extracted entries.
type ExtractionError struct {
	Archive string
	Entry   string
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("cannot extract %q from %q: %s", e.Entry, e.Archive, e.Err)
	}
	return fmt.Sprintf("cannot extract %q: %s", e.Archive, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func newError(archive, entry string, err error) error {
	return &ExtractionError{Archive: archive, Entry: entry, Err: err}
}
