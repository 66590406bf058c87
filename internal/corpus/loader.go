package corpus

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Encoding selects how raw word-list bytes are turned into passwords.
type Encoding string

const (
	// EncodingLatin1 maps every byte to the code point of the same value.
	// Decoding can never fail, which matches how rockyou.txt is usually read.
	EncodingLatin1 Encoding = "latin1"

	// EncodingUTF8 keeps valid UTF-8 and silently drops invalid byte sequences.
	EncodingUTF8 Encoding = "utf8"
)

// ParseEncoding parses an encoding name. Common aliases such as
// "iso-8859-1" and "utf-8" are accepted.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return EncodingLatin1, nil
	case "utf8", "utf-8":
		return EncodingUTF8, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

// Status describes the outcome of a corpus load.
type Status int

const (
	// StatusLoaded means the word list was read and holds at least one password.
	StatusLoaded Status = iota

	// StatusMissing means the word list does not exist.
	StatusMissing

	// StatusEmpty means the word list exists but holds no passwords.
	StatusEmpty
)

// String returns a short description of the status.
func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusMissing:
		return "missing"
	case StatusEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// LoadResult is the outcome of Load.
type LoadResult struct {
	// Status tells whether the corpus can be used.
	Status Status

	// Path is the word list that was requested.
	Path string

	// Index holds the loaded passwords. It is never nil; for StatusMissing
	// and StatusEmpty it is empty.
	Index *Index

	// Lines is the number of lines read, including blank and duplicate ones.
	Lines int
}

// Err returns nil for a usable corpus and a sentinel error wrapping the path
// otherwise.
func (r *LoadResult) Err() error {
	switch r.Status {
	case StatusMissing:
		return fmt.Errorf("%w: %s", ErrCorpusMissing, r.Path)
	case StatusEmpty:
		return fmt.Errorf("%w: %s", ErrCorpusEmpty, r.Path)
	default:
		return nil
	}
}

// ProgressFunc receives the number of lines read so far.
type ProgressFunc func(lines int)

type loadOptions struct {
	encoding      Encoding
	progress      ProgressFunc
	progressEvery int
}

// LoadOption configures Load and Read.
type LoadOption func(*loadOptions)

// WithEncoding sets the word-list encoding. Default is EncodingLatin1.
func WithEncoding(enc Encoding) LoadOption {
	return func(o *loadOptions) {
		o.encoding = enc
	}
}

// WithProgress calls fn every `every` lines and once more at the end.
func WithProgress(every int, fn ProgressFunc) LoadOption {
	return func(o *loadOptions) {
		if every > 0 {
			o.progressEvery = every
		}
		o.progress = fn
	}
}

func newLoadOptions(opts []LoadOption) loadOptions {
	o := loadOptions{
		encoding:      EncodingLatin1,
		progressEvery: 1_000_000,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Load reads the word list at path into an Index.
//
// A missing file yields StatusMissing and no error; a file without any
// non-blank line yields StatusEmpty. Other failures, such as permission
// problems or context cancellation, are returned as errors.
func Load(ctx context.Context, path string, opts ...LoadOption) (*LoadResult, error) {
	result := &LoadResult{Path: path, Index: NewIndex()}

	f, err := os.Open(path) //nolint:gosec // User-provided corpus path is intentional
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			result.Status = StatusMissing
			return result, nil
		}
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	idx, lines, err := Read(ctx, f, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus %s: %w", path, err)
	}

	result.Index = idx
	result.Lines = lines
	if idx.Empty() {
		result.Status = StatusEmpty
	} else {
		result.Status = StatusLoaded
	}
	return result, nil
}

// Read builds an Index from r. It returns the index and the number of lines read.
func Read(ctx context.Context, r io.Reader, opts ...LoadOption) (*Index, int, error) {
	b := NewBuilder(0)
	lines, err := scan(ctx, r, newLoadOptions(opts), func(entry string) error {
		b.Add(entry)
		return nil
	})
	if err != nil {
		return nil, lines, err
	}
	return b.Build(), lines, nil
}

// Scan decodes r line by line and calls fn with every trimmed, non-blank
// entry. Duplicates are passed through; deduplication is up to fn.
// It returns the number of lines read.
func Scan(ctx context.Context, r io.Reader, fn func(entry string) error, opts ...LoadOption) (int, error) {
	return scan(ctx, r, newLoadOptions(opts), fn)
}

// ctxCheckInterval is how many lines are read between context checks.
const ctxCheckInterval = 4096

func scan(ctx context.Context, r io.Reader, o loadOptions, fn func(entry string) error) (int, error) {
	var src io.Reader
	switch o.encoding {
	case EncodingLatin1:
		src = charmap.ISO8859_1.NewDecoder().Reader(r)
	case EncodingUTF8:
		src = r
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEncoding, o.encoding)
	}

	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, scanBufferSize), math.MaxInt)
	sc.Split(scanLines)

	lines := 0
	for sc.Scan() {
		lines++

		line := sc.Text()
		if o.encoding == EncodingUTF8 {
			line = strings.ToValidUTF8(line, "")
		}
		if entry := strings.TrimSpace(line); entry != "" {
			if err := fn(entry); err != nil {
				return lines, err
			}
		}

		if lines%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return lines, err
			}
		}
		if o.progress != nil && lines%o.progressEvery == 0 {
			o.progress(lines)
		}
	}
	if err := sc.Err(); err != nil {
		return lines, err
	}

	if o.progress != nil {
		o.progress(lines)
	}
	return lines, nil
}

// scanBufferSize is the initial line buffer. Longer lines grow it without limit.
const scanBufferSize = 64 * 1024

// scanLines is a bufio.SplitFunc that ends a line at "\n", "\r\n" or a
// lone "\r". A final line without a terminator is returned as well.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		switch {
		case i+1 < len(data) && data[i+1] == '\n':
			return i + 2, data[:i], nil
		case i+1 < len(data) || atEOF:
			return i + 1, data[:i], nil
		default:
			// A "\r" at the end of the buffer may be followed by "\n".
			return 0, nil, nil
		}
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
