package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for problem responses.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper translates an error raised by a handler into a problem, reporting whether it applied.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes problem responses for gin handlers.
type Responder struct {
	mappers []ErrorMapper
}

// NewResponder builds a responder consulting mappers in order before the defaults.
func NewResponder(mappers ...ErrorMapper) *Responder {
	return &Responder{mappers: mappers}
}

// Respond writes problem with the problem+json content type.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// Abort writes problem and stops the handler chain. Used by middleware.
func (r *Responder) Abort(c *gin.Context, problem ProblemDetail) {
	r.Respond(c, problem)
	c.Abort()
}

// RespondError maps err to a problem. Unmapped errors become 500s.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	r.Respond(c, ErrInternal.WithDetail(err.Error()))
}
