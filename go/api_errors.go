package shopserver

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"

	ordersapp "github.com/Apurer/go-gin-shop/internal/domains/orders/application"
	orderports "github.com/Apurer/go-gin-shop/internal/domains/orders/ports"
	productsapp "github.com/Apurer/go-gin-shop/internal/domains/products/application"
	productports "github.com/Apurer/go-gin-shop/internal/domains/products/ports"
	apierrors "github.com/Apurer/go-gin-shop/internal/shared/errors"
)

var responder = apierrors.NewResponder("", catalogProblems, orderProblems)

func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func catalogProblems(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, productports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, productsapp.ErrInvalidInput):
		return apierrors.NewValidationProblem(err.Error(), nil), true
	}
	return apierrors.ProblemDetail{}, false
}

func orderProblems(err error) (apierrors.ProblemDetail, bool) {
	var creationErr *ordersapp.OrderCreationError
	if errors.As(err, &creationErr) {
		var problem apierrors.ProblemDetail
		switch {
		case errors.Is(creationErr.Reason, ordersapp.ErrProductNotFound):
			problem = apierrors.ErrProductNotFound
		case errors.Is(creationErr.Reason, ordersapp.ErrInsufficientStock):
			problem = apierrors.ErrInsufficientStock.
				WithExtension("requested", creationErr.Requested).
				WithExtension("available", creationErr.Available)
		case errors.Is(creationErr.Reason, ordersapp.ErrUpstreamUnavailable):
			// the cause may reveal internal addresses
			return apierrors.ErrUpstreamUnavailable.
				WithDetail("product service could not be reached").
				WithExtension("productId", creationErr.ProductID), true
		default:
			return apierrors.ProblemDetail{}, false
		}
		return problem.WithDetail(creationErr.Error()).WithExtension("productId", creationErr.ProductID), true
	}
	switch {
	case errors.Is(err, orderports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.NewValidationProblem(err.Error(), nil), true
	case errors.Is(err, ordersapp.ErrUpstreamUnavailable):
		return apierrors.ErrUpstreamUnavailable.WithDetail("order placement is temporarily unavailable"), true
	}
	return apierrors.ProblemDetail{}, false
}

// bindJSON answers 400 with per-field messages when the body does not bind.
func bindJSON(c *gin.Context, target any) bool {
	err := c.ShouldBindJSON(target)
	if err == nil {
		return true
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[jsonName(fe.Field())] = fe.Tag()
		}
		respondProblem(c, apierrors.NewValidationProblem("request body is missing required fields", fields))
		return false
	}
	respondProblem(c, apierrors.NewValidationProblem("malformed request body: "+err.Error(), nil))
	return false
}

func jsonName(field string) string {
	r, size := utf8.DecodeRuneInString(field)
	if r == utf8.RuneError {
		return field
	}
	return string(unicode.ToLower(r)) + field[size:]
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		respondProblem(c, apierrors.NewValidationProblem(
			"path parameter "+name+" must be an integer",
			map[string]string{name: strings.TrimSpace(c.Param(name))},
		))
		return 0, false
	}
	return id, true
}
