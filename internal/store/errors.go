package store

import "errors"

var (
	ErrDuplicateRoll = errors.New("roll number already exists")
	ErrNotFound      = errors.New("student not found")
	ErrEmptyStore    = errors.New("no student records available")
	ErrFileOpen      = errors.New("could not open file")
	ErrMalformedFile = errors.New("malformed student file")
)
