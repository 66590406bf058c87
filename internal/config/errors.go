package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoCorpus is returned when neither a word list nor a stored corpus is configured.
	ErrNoCorpus = errors.New("no corpus configured: set a word list path or a stored corpus name")

	// ErrInvalidEncoding is returned for an encoding other than latin1 or utf8.
	ErrInvalidEncoding = errors.New("invalid encoding: must be latin1 or utf8")

	// ErrInvalidFormat is returned for an unknown report format.
	ErrInvalidFormat = errors.New("invalid format: must be text, markdown or json")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrEmptyExitKeyword is returned when the exit keyword is blank.
	ErrEmptyExitKeyword = errors.New("invalid exit keyword: must not be empty")

	// ErrInvalidProgressEvery is returned when the progress interval is not positive.
	ErrInvalidProgressEvery = errors.New("invalid progress interval: must be positive")

	// ErrInvalidFailOn is returned when the fail-on threshold is not a classification.
	ErrInvalidFailOn = errors.New("invalid fail-on: must be very_weak, weak, fair, good or excellent")
)
