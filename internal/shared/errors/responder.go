package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper turns an application error into a problem when it recognizes it.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes problems, consulting its mappers in order before falling
// back to a generic 500.
type Responder struct {
	// BaseURI is prepended to relative problem types.
	BaseURI string
	mappers []ErrorMapper
}

func NewResponder(baseURI string, mappers ...ErrorMapper) *Responder {
	return &Responder{BaseURI: baseURI, mappers: mappers}
}

// DefaultResponder has no mappers and relative problem types.
var DefaultResponder = NewResponder("")

func (r *Responder) With(mappers ...ErrorMapper) *Responder {
	combined := make([]ErrorMapper, 0, len(r.mappers)+len(mappers))
	combined = append(combined, r.mappers...)
	combined = append(combined, mappers...)
	return &Responder{BaseURI: r.BaseURI, mappers: combined}
}

func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" && c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError never exposes the raw message of an unrecognized error.
func (r *Responder) RespondError(c *gin.Context, err error) {
	r.Respond(c, r.Resolve(err))
}

// Resolve is the mapping half of RespondError.
func (r *Responder) Resolve(err error) ProblemDetail {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem
	}
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			return problem
		}
	}
	return ErrInternal.WithDetail("an unexpected error occurred")
}

// Abort writes the problem and stops the handler chain.
func (r *Responder) Abort(c *gin.Context, problem ProblemDetail) {
	r.Respond(c, problem)
	c.Abort()
}

func Respond(c *gin.Context, problem ProblemDetail) {
	DefaultResponder.Respond(c, problem)
}

func Abort(c *gin.Context, problem ProblemDetail) {
	DefaultResponder.Abort(c, problem)
}

func HTTPStatusFromError(err error) int {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem.Status
	}
	return http.StatusInternalServerError
}
