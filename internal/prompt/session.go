package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/nao1215/pwcheck/internal/model"
	"github.com/nao1215/pwcheck/internal/report"
)

const (
	// DefaultPrompt is printed before each read.
	DefaultPrompt = "Password to evaluate: "

	// DefaultExitKeyword ends the session, compared case-insensitively.
	DefaultExitKeyword = "exit"

	// Goodbye is printed when the session ends.
	Goodbye = "Goodbye."
)

// Evaluator evaluates a single password. *strength.Engine satisfies it.
type Evaluator interface {
	Evaluate(password string) *model.EvaluationResult
}

// LineReader returns the next line of input without its terminator.
// It returns io.EOF when the input is exhausted.
type LineReader func() (string, error)

// terminalGuard saves the terminal mode and returns a function restoring it.
type terminalGuard func() (restore func() error, err error)

// Session is one interactive evaluation loop.
type Session struct {
	engine      Evaluator
	writer      report.Writer
	in          io.Reader
	out         io.Writer
	prompt      string
	exitKeyword string
	readLine    LineReader
	hiddenFD    int
	hidden      bool
	guard       terminalGuard
	logger      *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithInput sets the input stream. Defaults to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(s *Session) {
		s.in = r
	}
}

// WithOutput sets where prompts and the goodbye line go. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Session) {
		s.out = w
	}
}

// WithPrompt sets the prompt string.
func WithPrompt(prompt string) Option {
	return func(s *Session) {
		s.prompt = prompt
	}
}

// WithExitKeyword sets the keyword that ends the session. Empty keeps the default.
func WithExitKeyword(keyword string) Option {
	return func(s *Session) {
		if k := strings.TrimSpace(keyword); k != "" {
			s.exitKeyword = k
		}
	}
}

// WithHiddenInput reads passwords from the terminal fd without echo.
// The terminal mode is restored when Run returns, including after a
// cancellation that leaves a read pending. It has no effect when fd is
// not a terminal.
func WithHiddenInput(fd int) Option {
	return func(s *Session) {
		if !term.IsTerminal(fd) {
			return
		}
		s.hidden = true
		s.hiddenFD = fd
		s.guard = func() (func() error, error) {
			state, err := term.GetState(fd)
			if err != nil {
				return nil, err
			}
			return func() error { return term.Restore(fd, state) }, nil
		}
	}
}

// WithLineReader replaces the input stream with a custom line source.
func WithLineReader(read LineReader) Option {
	return func(s *Session) {
		s.readLine = read
	}
}

// WithLogger sets the session logger. Passwords are never logged.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession creates a Session that evaluates with engine and renders with writer.
func NewSession(engine Evaluator, writer report.Writer, opts ...Option) *Session {
	s := &Session{
		engine:      engine,
		writer:      writer,
		in:          os.Stdin,
		out:         os.Stdout,
		prompt:      DefaultPrompt,
		exitKeyword: DefaultExitKeyword,
		logger:      slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.readLine == nil {
		if s.hidden {
			s.readLine = s.readHidden
		} else {
			s.readLine = newStreamReader(s.in)
		}
	}

	return s
}

// ExitKeyword returns the keyword that ends the session.
func (s *Session) ExitKeyword() string {
	return s.exitKeyword
}

type lineResult struct {
	line string
	err  error
}

// Run loops until the exit keyword, end of input or cancellation of ctx.
// These all end the session normally and return nil. Read and write
// failures are returned as errors.
func (s *Session) Run(ctx context.Context) error {
	// term.ReadPassword restores echo only when it returns, which a read
	// abandoned on cancellation never does.
	if s.guard != nil {
		restore, err := s.guard()
		if err != nil {
			return fmt.Errorf("failed to save terminal state: %w", err)
		}
		defer func() {
			if err := restore(); err != nil {
				s.logger.Warn("failed to restore terminal state", "error", err)
			}
		}()
	}

	done := make(chan struct{})
	defer close(done)

	next := make(chan struct{})
	lines := make(chan lineResult)

	// A blocked read cannot be interrupted, so reads happen in their own
	// goroutine and the loop selects on ctx. The goroutine exits after its
	// current read once done is closed.
	go func() {
		for {
			select {
			case <-next:
			case <-done:
				return
			}
			line, err := s.readLine()
			select {
			case lines <- lineResult{line: line, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()

	s.logger.Debug("interactive session started", "exitKeyword", s.exitKeyword)
	evaluated := 0

	for {
		if _, err := fmt.Fprint(s.out, s.prompt); err != nil {
			return fmt.Errorf("failed to write prompt: %w", err)
		}

		select {
		case next <- struct{}{}:
		case <-ctx.Done():
			return s.finish("\n", evaluated)
		}

		var res lineResult
		select {
		case res = <-lines:
		case <-ctx.Done():
			return s.finish("\n", evaluated)
		}

		if res.err != nil {
			if errors.Is(res.err, io.EOF) {
				return s.finish("\n", evaluated)
			}
			return fmt.Errorf("failed to read input: %w", res.err)
		}

		input := strings.TrimSpace(res.line)
		if input == "" {
			continue
		}
		if strings.EqualFold(input, s.exitKeyword) {
			return s.finish("", evaluated)
		}

		if _, err := s.writer.Write(s.engine.Evaluate(input)); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		evaluated++
	}
}

// finish prints the goodbye line, preceded by prefix.
func (s *Session) finish(prefix string, evaluated int) error {
	s.logger.Debug("interactive session ended", "evaluated", evaluated)
	if _, err := fmt.Fprint(s.out, prefix+Goodbye+"\n"); err != nil {
		return fmt.Errorf("failed to write goodbye: %w", err)
	}
	return nil
}

// readHidden reads one line from the terminal without echo.
func (s *Session) readHidden() (string, error) {
	b, err := term.ReadPassword(s.hiddenFD)
	// The terminal swallowed the newline along with the echo.
	fmt.Fprintln(s.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// newStreamReader returns a LineReader over r. A final line without a
// trailing newline is still returned before io.EOF.
func newStreamReader(r io.Reader) LineReader {
	br := bufio.NewReader(r)
	return func() (string, error) {
		line, err := br.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && line != "" {
				return line, nil
			}
			return "", err
		}
		return line, nil
	}
}
