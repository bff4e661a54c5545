package blog

import (
	"errors"
	"fmt"
)

// FailureCode classifies every way an operation can fail. Callers branch on
// the code to pick a user-facing message and an HTTP status.
type FailureCode string

const (
	// CodeValidation: empty or malformed input, rejected before any I/O.
	CodeValidation FailureCode = "VALIDATION"
	// CodeNotFound: the blog id does not exist.
	CodeNotFound FailureCode = "NOT_FOUND"
	// CodeTargetNotFound: the edit descriptor matched nothing in the document.
	// User-correctable, never a system error.
	CodeTargetNotFound FailureCode = "TARGET_NOT_FOUND"
	// CodeGeneration: the model call failed or timed out.
	CodeGeneration FailureCode = "GENERATION_FAILED"
	// CodeStore: the blog could not be read or written.
	CodeStore FailureCode = "STORE_FAILED"
)

type DomainError struct {
	Code    FailureCode
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// CodeOf extracts the failure code from an error chain, or "" for plain errors.
func CodeOf(err error) FailureCode {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

const targetNotFoundHint = `Target not found. Pass the EXACT sentence or use: starts with "..." ends with "..."`

func validationError(msg string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: msg}
}

func notFoundError(id string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: fmt.Sprintf("blog %s not found", id)}
}

func targetNotFoundError() *DomainError {
	return &DomainError{Code: CodeTargetNotFound, Message: targetNotFoundHint}
}

func generationError(err error) *DomainError {
	return &DomainError{Code: CodeGeneration, Message: "content generation failed", Err: err}
}

func storeError(op string, err error) *DomainError {
	return &DomainError{Code: CodeStore, Message: op, Err: err}
}
