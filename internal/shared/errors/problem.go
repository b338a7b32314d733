// Package errors holds the error shapes shared by the storefront client and the fake API:
// RFC 7807 problem details on the wire and the remote failure types clients inspect.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail is an RFC 7807 problem body. The storefront client reads Detail, then Title.
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	// Fields carries per-field validation messages.
	Fields map[string]string `json:"fields,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithDetailf is WithDetail with formatting.
func (p ProblemDetail) WithDetailf(format string, args ...any) ProblemDetail {
	return p.WithDetail(fmt.Sprintf(format, args...))
}

// WithField returns a copy carrying one more field-level message.
func (p ProblemDetail) WithField(field, message string) ProblemDetail {
	fields := make(map[string]string, len(p.Fields)+1)
	for k, v := range p.Fields {
		fields[k] = v
	}
	fields[field] = message
	p.Fields = fields
	return p
}

const (
	TypeValidation   = "/problems/validation-error"
	TypeNotFound     = "/problems/not-found"
	TypeConflict     = "/problems/conflict"
	TypeInternal     = "/problems/internal-error"
	TypeUnauthorized = "/problems/unauthorized"
	TypeBadRequest   = "/problems/bad-request"
)

var (
	ErrNotFound = ProblemDetail{
		Type:   TypeNotFound,
		Title:  "Resource Not Found",
		Status: http.StatusNotFound,
	}
	ErrValidation = ProblemDetail{
		Type:   TypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
	}
	ErrBadRequest = ProblemDetail{
		Type:   TypeBadRequest,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
	}
	ErrConflict = ProblemDetail{
		Type:   TypeConflict,
		Title:  "Conflict",
		Status: http.StatusConflict,
	}
	ErrInternal = ProblemDetail{
		Type:   TypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
	}
	ErrUnauthorized = ProblemDetail{
		Type:   TypeUnauthorized,
		Title:  "Unauthorized",
		Status: http.StatusUnauthorized,
	}
)

// NewNotFoundProblem reports a missing resource by kind and id.
func NewNotFoundProblem(resourceType, identifier string) ProblemDetail {
	return ErrNotFound.WithDetailf("%s %q not found", resourceType, identifier)
}
