package util

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors used throughout homeview
var (
	ErrNoSource          = errors.New("no table source given")
	ErrAmbiguousSource   = errors.New("more than one table source given")
	ErrQueryRequired     = errors.New("a query is required for database sources")
	ErrInvalidChoice     = errors.New("invalid choice")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrEmptyTable        = errors.New("table has no columns")
	ErrUnsupportedColumn = errors.New("unsupported column type")
)

// HomeviewError is a structured error with context and suggestions
type HomeviewError struct {
	Title       string   // Short error title
	Message     string   // Detailed message
	Context     string   // What was being attempted
	Causes      []string // Possible causes
	Suggestions []string // Actionable suggestions with commands
	Err         error    // Wrapped error
}

func (e *HomeviewError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Title, e.Err)
	}
	return e.Title
}

func (e *HomeviewError) Unwrap() error {
	return e.Err
}

// Format returns a nicely formatted error message
func (e *HomeviewError) Format() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error: %s\n", e.Title))

	if e.Message != "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Message))
	}
	if e.Context != "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Context))
	}
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf("\n  %v\n", e.Err))
	}

	if len(e.Causes) > 0 {
		sb.WriteString("\n  Possible causes:\n")
		for _, cause := range e.Causes {
			sb.WriteString(fmt.Sprintf("    • %s\n", cause))
		}
	}

	if len(e.Suggestions) > 0 {
		sb.WriteString("\n  Try:\n")
		for _, sug := range e.Suggestions {
			sb.WriteString(fmt.Sprintf("    $ %s\n", sug))
		}
	}

	return sb.String()
}

// NewError creates a new HomeviewError
func NewError(title string) *HomeviewError {
	return &HomeviewError{Title: title}
}

// WithMessage adds a detailed message
func (e *HomeviewError) WithMessage(msg string) *HomeviewError {
	e.Message = msg
	return e
}

// WithContext adds context about what was being attempted
func (e *HomeviewError) WithContext(ctx string) *HomeviewError {
	e.Context = ctx
	return e
}

// WithCause adds a possible cause
func (e *HomeviewError) WithCause(cause string) *HomeviewError {
	e.Causes = append(e.Causes, cause)
	return e
}

// WithCauses adds multiple possible causes
func (e *HomeviewError) WithCauses(causes ...string) *HomeviewError {
	e.Causes = append(e.Causes, causes...)
	return e
}

// WithSuggestion adds an actionable suggestion
func (e *HomeviewError) WithSuggestion(sug string) *HomeviewError {
	e.Suggestions = append(e.Suggestions, sug)
	return e
}

// WithSuggestions adds multiple suggestions
func (e *HomeviewError) WithSuggestions(sugs ...string) *HomeviewError {
	e.Suggestions = append(e.Suggestions, sugs...)
	return e
}

// Wrap wraps an underlying error
func (e *HomeviewError) Wrap(err error) *HomeviewError {
	e.Err = err
	return e
}

// ══════════════════════════════════════════════════════════════════════════
// Pre-built error constructors for common cases
// ══════════════════════════════════════════════════════════════════════════

// NoSourceError is returned when a command has nothing to load.
func NoSourceError(cmd string) *HomeviewError {
	return NewError("No table source given").
		WithMessage("Pass exactly one of --csv, --parquet, --sqlite or --dsn").
		WithSuggestions(
			fmt.Sprintf("homeview %s --csv home_values.csv", cmd),
			fmt.Sprintf("homeview %s --dsn postgres://localhost/zillow --query 'SELECT * FROM home_values'", cmd),
		).
		Wrap(ErrNoSource)
}

// SourceError wraps a failure to load a table.
func SourceError(source string, err error) *HomeviewError {
	return NewError("Cannot load table").
		WithContext(source).
		WithCauses(
			"The file does not exist or is not readable",
			"The file is not in the expected format",
			"The query failed or returned no columns",
		).
		Wrap(err)
}

// DatabaseConnectionError returns a structured error for DB connection issues
func DatabaseConnectionError(url string, err error) *HomeviewError {
	return NewError("Cannot connect to database").
		WithContext(url).
		WithCauses(
			"Database server is not running",
			"Invalid connection credentials",
			"Network connectivity issues",
			"Database does not exist",
		).
		WithSuggestions(
			"homeview config source.dsn <url>   # Set the default connection",
			"homeview config source.timeout 60s # Allow slower servers",
		).
		Wrap(err)
}

// InvalidChoiceError reports a flag value that is not one of options,
// suggesting the closest one.
func InvalidChoiceError(flag, got string, options []string) *HomeviewError {
	e := NewError(fmt.Sprintf("Invalid value %q for --%s", got, flag)).
		WithMessage(fmt.Sprintf("Valid values: %s", strings.Join(truncate(options, 12), ", "))).
		Wrap(ErrInvalidChoice)
	if best, ok := Closest(got, options); ok {
		e.WithMessage(fmt.Sprintf("Did you mean %q?", best)).
			WithContext(fmt.Sprintf("Valid values: %s", strings.Join(truncate(options, 12), ", ")))
	}
	return e
}

// UnknownConfigKeyError reports a config key that does not exist.
func UnknownConfigKeyError(key string, known []string) *HomeviewError {
	e := NewError(fmt.Sprintf("Unknown config key '%s'", key)).
		WithSuggestion("homeview config --list   # Show all keys").
		Wrap(ErrUnknownConfigKey)
	if best, ok := Closest(key, known); ok {
		e.WithMessage(fmt.Sprintf("Did you mean '%s'?", best))
	}
	return e
}

// MissingArgumentError returns an error for missing required argument
func MissingArgumentError(argName, example string) *HomeviewError {
	e := NewError(fmt.Sprintf("Missing required argument: <%s>", argName))
	if example != "" {
		e.WithSuggestion(example)
	}
	return e
}

func truncate(options []string, n int) []string {
	if len(options) <= n {
		return options
	}
	out := append([]string(nil), options[:n]...)
	return append(out, fmt.Sprintf("... (%d more)", len(options)-n))
}
