package errors

import (
	"errors"
	"fmt"
)

// requested record does not exist.
var ErrMissing = errors.New("missing")

// a record with the same identity already exists.
var ErrAlreadyExists = errors.New("already exists")

// Missing tells which record of which table is not found.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s", m.Identity, m.Table)
}
func (m Missing) Unwrap() error {
	return ErrMissing
}

// AlreadyExists tells which record of which table collides.
type AlreadyExists struct {
	Table    string
	Identity string
}

var _ error = AlreadyExists{}

func (a AlreadyExists) Error() string {
	return fmt.Sprintf("%s already exists in %s", a.Identity, a.Table)
}
func (a AlreadyExists) Unwrap() error {
	return ErrAlreadyExists
}
