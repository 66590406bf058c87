package database

import "errors"

var (
	// ErrCorpusNotFound is returned when no corpus with the given name was imported.
	ErrCorpusNotFound = errors.New("corpus not found in store")

	// ErrInvalidCorpusName is returned for an empty corpus name.
	ErrInvalidCorpusName = errors.New("corpus name must not be empty")
)
