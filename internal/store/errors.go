package store

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned for index-addressed mutations on a stale or
// invalid position.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError carries the details of a rejected index.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index out of range: have %d, got %d", e.Op, e.Len, e.Index)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }
