package cli

import (
	"errors"

	"github.com/roach88/fieldq/internal/catalog"
	"github.com/roach88/fieldq/internal/plan"
	"github.com/roach88/fieldq/internal/record"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE or dataset load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeWriteFailed = "E007" // Database write error
	ErrCodeUsage       = "E008" // Invalid flag combination

	// Query errors
	ErrCodeUnknownRecord = "E101" // Record type not in catalog
	ErrCodeUnknownField  = "E102" // Field not declared on the record type
	ErrCodeTypeMismatch  = "E103" // Operation or literal does not fit the field type
	ErrCodeNullField     = "E104" // Null field reached during evaluation
	ErrCodeInvalidPlan   = "E105" // Plan or literal could not be compiled
)

// classify maps an error to its output code and exit code.
func classify(err error) (code string, exit int) {
	var loadErr *plan.LoadError
	if errors.As(err, &loadErr) {
		switch loadErr.Stage {
		case plan.StageNotFound:
			return ErrCodeNotFound, ExitCommandError
		case plan.StageScan:
			return ErrCodeScanError, ExitCommandError
		case plan.StageNoFiles:
			return ErrCodeNoFiles, ExitCommandError
		case plan.StageBuild:
			return ErrCodeBuildFailed, ExitCommandError
		default:
			return ErrCodeLoadFailed, ExitCommandError
		}
	}

	var compileErr *plan.CompileError
	switch {
	case errors.As(err, &compileErr):
		return ErrCodeInvalidPlan, ExitCommandError
	case catalog.IsUnknownRecord(err):
		return ErrCodeUnknownRecord, ExitCommandError
	case record.IsUnknownField(err):
		return ErrCodeUnknownField, ExitFailure
	case record.IsTypeMismatch(err):
		return ErrCodeTypeMismatch, ExitFailure
	case record.IsNullField(err):
		return ErrCodeNullField, ExitFailure
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return ErrCodeGeneric, exitErr.Code
	}
	return ErrCodeGeneric, ExitFailure
}

// fail writes err through the formatter and returns the matching ExitError.
func fail(f *OutputFormatter, message string, err error, details any) error {
	code, exit := classify(err)
	_ = f.Error(code, err.Error(), details)
	return WrapExitError(exit, code+": "+message, err)
}

// failWith writes an error with an explicit code.
func failWith(f *OutputFormatter, code string, exit int, message string, err error) error {
	text := message
	if err != nil {
		text = message + ": " + err.Error()
	}
	_ = f.Error(code, text, nil)
	return WrapExitError(exit, code+": "+message, err)
}
