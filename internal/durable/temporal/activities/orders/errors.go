package orders

import (
	"errors"
	"fmt"

	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-shop/internal/domains/orders/application"
)

// Application error types carried across the workflow boundary.
const (
	ErrTypeInvalidInput        = "InvalidInput"
	ErrTypeProductNotFound     = "ProductNotFound"
	ErrTypeInsufficientStock   = "InsufficientStock"
	ErrTypeUpstreamUnavailable = "UpstreamUnavailable"
	ErrTypePersistenceFailed   = "PersistenceFailed"
)

// ErrorDetails is the payload attached to order rejections.
type ErrorDetails struct {
	ProductID int64
	Requested int32
	Available int32
}

// ToApplicationError classifies err. Only upstream failures stay retryable;
// business rejections and persistence failures end the workflow.
func ToApplicationError(err error) error {
	if err == nil {
		return nil
	}
	var creationErr *application.OrderCreationError
	if errors.As(err, &creationErr) {
		details := ErrorDetails{
			ProductID: creationErr.ProductID,
			Requested: creationErr.Requested,
			Available: creationErr.Available,
		}
		switch {
		case errors.Is(creationErr.Reason, application.ErrProductNotFound):
			return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeProductNotFound, nil, details)
		case errors.Is(creationErr.Reason, application.ErrInsufficientStock):
			return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInsufficientStock, nil, details)
		case errors.Is(creationErr.Reason, application.ErrUpstreamUnavailable):
			return temporal.NewApplicationError(err.Error(), ErrTypeUpstreamUnavailable, details)
		}
	}
	if errors.Is(err, application.ErrInvalidInput) {
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidInput, nil)
	}
	return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypePersistenceFailed, nil)
}

// FromApplicationError rebuilds the application error a workflow failure
// stands for. Unrecognized errors come back unchanged.
func FromApplicationError(err error) error {
	var appErr *temporal.ApplicationError
	if err == nil || !errors.As(err, &appErr) {
		return err
	}
	var details ErrorDetails
	if appErr.HasDetails() {
		_ = appErr.Details(&details)
	}
	switch appErr.Type() {
	case ErrTypeInvalidInput:
		return fmt.Errorf("%w: %s", application.ErrInvalidInput, appErr.Error())
	case ErrTypeProductNotFound:
		return &application.OrderCreationError{Reason: application.ErrProductNotFound, ProductID: details.ProductID}
	case ErrTypeInsufficientStock:
		return &application.OrderCreationError{
			Reason:    application.ErrInsufficientStock,
			ProductID: details.ProductID,
			Requested: details.Requested,
			Available: details.Available,
		}
	case ErrTypeUpstreamUnavailable:
		return &application.OrderCreationError{
			Reason:    application.ErrUpstreamUnavailable,
			ProductID: details.ProductID,
			Cause:     errors.New(appErr.Error()),
		}
	}
	return err
}
