package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/roach88/fieldq/internal/canon"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Query failure (unknown field, type mismatch, null field during evaluation)
	ExitCommandError = 2 // Command error (bad flags, missing files, unknown record, invalid plan)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Errors that are not ExitErrors come from cobra's flag and argument
// parsing, so they map to ExitCommandError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// OutputFormatter writes command results as text, canonical JSON, or
// MessagePack.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool

	// NewTraceID generates the trace_id of structured responses.
	// Defaults to a UUIDv7.
	NewTraceID func() string
}

// CLIResponse is the standard structured response.
type CLIResponse struct {
	Status  string    `json:"status" msgpack:"status"`                     // "ok" or "error"
	Data    any       `json:"data,omitempty" msgpack:"data,omitempty"`     // success payload
	Error   *CLIError `json:"error,omitempty" msgpack:"error,omitempty"`   // error details
	TraceID string    `json:"trace_id,omitempty" msgpack:"trace_id,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code" msgpack:"code"`                           // "E001", "E002", etc.
	Message string `json:"message" msgpack:"message"`                     // human-readable message
	Details any    `json:"details,omitempty" msgpack:"details,omitempty"` // additional context
}

// Structured reports whether the format is machine-readable.
func (f *OutputFormatter) Structured() bool {
	return f.Format == "json" || f.Format == "msgpack"
}

// Success writes data. In text format text is called to render it;
// structured formats encode data, which must hold only maps with string
// keys, slices, and scalars.
func (f *OutputFormatter) Success(data any, text func(w io.Writer) error) error {
	if f.Structured() {
		return f.write(CLIResponse{Status: "ok", Data: data, TraceID: f.traceID()})
	}
	return text(f.Writer)
}

// Error writes an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Structured() {
		return f.write(CLIResponse{
			Status:  "error",
			Error:   &CLIError{Code: code, Message: message, Details: details},
			TraceID: f.traceID(),
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

func (f *OutputFormatter) write(resp CLIResponse) error {
	if f.Format == "msgpack" {
		enc := msgpack.NewEncoder(f.Writer)
		enc.SetSortMapKeys(true)
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("failed to encode MessagePack: %w", err)
		}
		return nil
	}

	data, err := canon.Marshal(resp.asMap())
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = f.Writer.Write(data)
	return err
}

func (f *OutputFormatter) traceID() string {
	if f.NewTraceID != nil {
		return f.NewTraceID()
	}
	return newTraceID()
}

// newTraceID returns a time-ordered UUIDv7, or "" if the generator fails.
func newTraceID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return ""
	}
	return id.String()
}

// asMap mirrors the struct tags for the canonical JSON encoder, which only
// encodes maps.
func (r CLIResponse) asMap() map[string]any {
	m := map[string]any{"status": r.Status}
	if r.Data != nil {
		m["data"] = r.Data
	}
	if r.Error != nil {
		e := map[string]any{"code": r.Error.Code, "message": r.Error.Message}
		if r.Error.Details != nil {
			e["details"] = r.Error.Details
		}
		m["error"] = e
	}
	if r.TraceID != "" {
		m["trace_id"] = r.TraceID
	}
	return m
}
