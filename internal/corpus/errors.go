package corpus

import "errors"

var (
	// ErrCorpusMissing is returned by LoadResult.Err when the word list does not exist.
	ErrCorpusMissing = errors.New("corpus not found")

	// ErrCorpusEmpty is returned by LoadResult.Err when the word list holds no passwords.
	ErrCorpusEmpty = errors.New("corpus is empty")

	// ErrUnknownEncoding is returned when a load is requested with an unsupported encoding.
	ErrUnknownEncoding = errors.New("unknown corpus encoding")
)
