package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/minopp/internal/feature"
	"github.com/roach88/minopp/internal/store"
)

// Error code constants, unified across all CLI commands.
const (
	ErrCodeInvalidInput = "E001" // Bad flags or arguments
	ErrCodeNotFound     = "E002" // File, run or language not found
	ErrCodeReadFailed   = "E003" // Dataset read error
	ErrCodeWriteFailed  = "E004" // File write error

	ErrCodeParse = "E101" // Unparsable descriptor
	ErrCodeTable = "E102" // Invalid glyph table

	ErrCodeStorage = "E201" // Database error
)

// errorCode picks the code for err.
func errorCode(err error) string {
	var te *feature.TableError
	switch {
	case feature.IsParseError(err):
		return ErrCodeParse
	case errors.As(err, &te):
		return ErrCodeTable
	case errors.Is(err, store.ErrRunNotFound), errors.Is(err, os.ErrNotExist):
		return ErrCodeNotFound
	}
	return ErrCodeInvalidInput
}

// commandError reports err through the formatter and returns an exit
// error with code ExitCommandError.
func commandError(f *OutputFormatter, message string, err error) error {
	code := errorCode(err)
	_ = f.Error(code, fmt.Sprintf("%s: %v", message, err), nil)
	return WrapExitError(ExitCommandError, message, err)
}

// commandErrorCode is commandError with an explicit code.
func commandErrorCode(f *OutputFormatter, code, message string, err error) error {
	_ = f.Error(code, fmt.Sprintf("%s: %v", message, err), nil)
	return WrapExitError(ExitCommandError, message, err)
}
