package apierr

import (
	"errors"
	"net/http"

	govalidator "github.com/go-playground/validator/v10"

	"github.com/trinhdvt/storefront/internal/apperr"
	"github.com/trinhdvt/storefront/pkg/apperror"
	"github.com/trinhdvt/storefront/pkg/validator"
)

// FieldError describes a single failed validation constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the error response for the API. Both services share it;
// the code values are the stable, documented part of the contract.
type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`

	// StatusCode is the status code for the error response.
	StatusCode int `json:"-"`
}

var InternalServerErr = ErrorResponse{
	Code:       "INTERNAL_SERVER_ERROR",
	Message:    "an unknown error occurred",
	StatusCode: http.StatusInternalServerError,
}

// New classifies err into an ErrorResponse. Raw store or runtime error
// details never reach the client: anything unrecognized collapses into a
// generic 500.
func New(err error) ErrorResponse {
	var appErr apperror.Error
	if errors.As(err, &appErr) {
		return ErrorResponse{
			Code:       appErr.Code(),
			Message:    appErr.Msg(),
			StatusCode: appErr.Kind().HTTPStatus(),
		}
	}

	var validationErrs govalidator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]FieldError, len(validationErrs))
		for i, fe := range validationErrs {
			details[i] = FieldError{
				Field:   fe.Field(),
				Message: validator.ValidationErrorMessage(fe),
			}
		}

		return ErrorResponse{
			Code:       apperr.ErrRequestPayloadNotValid.Code(),
			Message:    apperr.ErrRequestPayloadNotValid.Msg(),
			Details:    details,
			StatusCode: http.StatusUnprocessableEntity,
		}
	}

	return InternalServerErr
}
