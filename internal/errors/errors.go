// Package errors provides the structured error types for pshcalc.
// Law violations carry a category, a code, a message and the witness
// (the morphisms or sections that break the law) so callers can match
// them with errors.Is and report the offending entries.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors by the structure being validated.
type ErrorCategory string

const (
	ErrCategoryCategory ErrorCategory = "CATEGORY"
	ErrCategoryPresheaf ErrorCategory = "PRESHEAF"
	ErrCategoryConfig   ErrorCategory = "CONFIG"
	ErrCategoryInternal ErrorCategory = "INTERNAL"
)

// Error codes for each category.
const (
	// Category codes
	CodeIncompatibleComposition = "INCOMPATIBLE_COMPOSITION"
	CodeNonAssociative          = "NON_ASSOCIATIVE"
	CodeNotAnIdentity           = "NOT_AN_IDENTITY"

	// Presheaf codes
	CodeNotWellDefined = "NOT_WELL_DEFINED"
	CodeNonFunctorial  = "NON_FUNCTORIAL"

	// Config codes
	CodeInvalidConfig = "INVALID_CONFIG"

	// Internal codes
	CodeUnexpected = "UNEXPECTED"
)

// LawError is the structured error used for every validation outcome.
type LawError struct {
	Category ErrorCategory
	Code     string
	Message  string
	// Witness lists the indices that violate the law, in the order the
	// law names them (g, f for a composition; h, g, f for a triple).
	Witness []int
	Cause   error
}

// Error returns a formatted error string.
func (e *LawError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *LawError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's category and code.
func (e *LawError) Is(target error) bool {
	var t *LawError
	if errors.As(target, &t) {
		return e.Category == t.Category && e.Code == t.Code
	}
	return false
}

// Sentinels for errors.Is. They carry no witness.
var (
	ErrIncompatibleComposition = &LawError{Category: ErrCategoryCategory, Code: CodeIncompatibleComposition}
	ErrNonAssociative          = &LawError{Category: ErrCategoryCategory, Code: CodeNonAssociative}
	ErrNotAnIdentity           = &LawError{Category: ErrCategoryCategory, Code: CodeNotAnIdentity}
	ErrNotWellDefined          = &LawError{Category: ErrCategoryPresheaf, Code: CodeNotWellDefined}
	ErrNonFunctorial           = &LawError{Category: ErrCategoryPresheaf, Code: CodeNonFunctorial}
	ErrInvalidConfig           = &LawError{Category: ErrCategoryConfig, Code: CodeInvalidConfig}
)

// New creates a new LawError.
func New(category ErrorCategory, code, message string, witness ...int) *LawError {
	return &LawError{
		Category: category,
		Code:     code,
		Message:  message,
		Witness:  witness,
	}
}

// Wrap creates a new LawError wrapping an existing error.
func Wrap(category ErrorCategory, code, message string, cause error) *LawError {
	return &LawError{
		Category: category,
		Code:     code,
		Message:  message,
		Cause:    cause,
	}
}

// GetCategory extracts the error category from an error chain.
// Returns empty string if the error is not a LawError.
func GetCategory(err error) ErrorCategory {
	var le *LawError
	if errors.As(err, &le) {
		return le.Category
	}
	return ""
}

// GetCode extracts the error code from an error chain.
// Returns empty string if the error is not a LawError.
func GetCode(err error) string {
	var le *LawError
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}

// WitnessOf returns the witness of the first LawError in the chain, or nil.
func WitnessOf(err error) []int {
	var le *LawError
	if errors.As(err, &le) {
		return le.Witness
	}
	return nil
}

// Convenience constructors for the law violations.

// IncompatibleComposition reports that g∘f holds a value its endpoints forbid.
func IncompatibleComposition(g, f int) *LawError {
	return New(ErrCategoryCategory, CodeIncompatibleComposition,
		fmt.Sprintf("incompatible composition: g=%d and f=%d", g, f), g, f)
}

// NonAssociative reports that (h∘g)∘f differs from h∘(g∘f).
func NonAssociative(h, g, f int) *LawError {
	return New(ErrCategoryCategory, CodeNonAssociative,
		fmt.Sprintf("non-associative composition: (%d, %d, %d)", h, g, f), h, g, f)
}

// NotAnIdentity reports a morphism on which an identity law fails.
func NotAnIdentity(morphism int) *LawError {
	return New(ErrCategoryCategory, CodeNotAnIdentity,
		fmt.Sprintf("morphism %d is not an identity", morphism), morphism)
}

// NotWellDefined reports that the action of f on section s leaves its fiber.
func NotWellDefined(s, f int) *LawError {
	return New(ErrCategoryPresheaf, CodeNotWellDefined,
		fmt.Sprintf("not well-defined: s=%d and f=%d", s, f), s, f)
}

// NonFunctorial reports that s·(g∘f) differs from (s·g)·f.
func NonFunctorial(s, g, f int) *LawError {
	return New(ErrCategoryPresheaf, CodeNonFunctorial,
		fmt.Sprintf("non-functorial action: s=%d, g=%d, f=%d", s, g, f), s, g, f)
}

// NewConfigError reports an invalid run configuration or malformed input.
func NewConfigError(message string) *LawError {
	return New(ErrCategoryConfig, CodeInvalidConfig, message)
}

// NewInternalError wraps an unexpected failure, such as a violation code
// no checker produces.
func NewInternalError(message string, cause error) *LawError {
	return Wrap(ErrCategoryInternal, CodeUnexpected, message, cause)
}
