package util

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/fadilmartias/pathfinder/internal/apperror"
	"github.com/fadilmartias/pathfinder/internal/config"
	"github.com/fadilmartias/pathfinder/internal/response"
	"github.com/gofiber/fiber/v2"
)

type SuccessResponseFormat struct {
	Code       int
	Message    string
	Data       any
	Pagination *response.Pagination
	Meta       any
}

type OrderedSuccessResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Meta       any                  `json:"meta,omitempty"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
	Data       any                  `json:"data,omitempty"`
}

type ErrorResponseFormat struct {
	Code       int
	Message    string
	DevMessage string
	Details    any
	Trace      string
}

type OrderedErrorResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DevMessage string `json:"dev_message,omitempty"`
	Details    any    `json:"details,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

type FormError struct {
	Errors  map[string]string
	Message string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("form error: %s", e.Message)
}

func NewFormError(message string, errors map[string]string) *FormError {
	return &FormError{
		Message: message,
		Errors:  errors,
	}
}

// SuccessResponse writes the standard success envelope.
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	response := OrderedSuccessResponse{
		Success:    true,
		Message:    params.Message,
		Data:       params.Data,
		Pagination: params.Pagination,
		Meta:       params.Meta,
	}
	code := params.Code
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(response)
}

// ErrorResponse writes the standard error envelope. Dev fields are only
// filled outside production.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	response := OrderedErrorResponse{
		Success: false,
		Message: params.Message,
	}
	if params.Details != nil {
		response.Details = params.Details
	}
	if !config.LoadAppConfig().IsProduction() {
		if len(errs) > 0 && errs[0] != nil {
			response.DevMessage = errs[0].Error()
			if response.Details == nil {
				response.Details = errs[0]
			}
			response.Trace = string(debug.Stack())
		}

		if params.DevMessage != "" {
			response.DevMessage = params.DevMessage
		}
		if params.Trace != "" {
			response.Trace = params.Trace
		}
	}

	errorCode := params.Code
	if params.Code == 0 {
		errorCode = fiber.StatusInternalServerError
	}
	return c.Status(errorCode).JSON(response)
}

// AppErrorResponse maps engine errors onto HTTP statuses. mayDuplicate marks
// storage failures of writes, where the row may already have been stored.
func AppErrorResponse(c *fiber.Ctx, err error, mayDuplicate bool) error {
	var formErr *FormError
	var fiberErr *fiber.Error
	validation, isValidation := apperror.AsValidation(err)

	switch {
	case errors.As(err, &formErr):
		return ErrorResponse(c, ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: formErr.Message,
			Details: formErr.Errors,
		}, err)
	case isValidation:
		details := fiber.Map{"kind": validation.Kind}
		if validation.QuestionID != "" {
			details["question_id"] = validation.QuestionID
		}
		return ErrorResponse(c, ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: validation.Message,
			Details: details,
		}, err)
	case errors.Is(err, apperror.ErrUnauthenticated):
		return ErrorResponse(c, ErrorResponseFormat{
			Code:    fiber.StatusUnauthorized,
			Message: "authentication required",
		}, err)
	case errors.Is(err, apperror.ErrNotFound):
		return ErrorResponse(c, ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "resource not found",
		}, err)
	case errors.Is(err, apperror.ErrStorageUnavailable):
		details := fiber.Map{"retryable": true}
		if mayDuplicate {
			details["may_duplicate"] = true
		}
		return ErrorResponse(c, ErrorResponseFormat{
			Code:    fiber.StatusServiceUnavailable,
			Message: "storage temporarily unavailable",
			Details: details,
		}, err)
	case errors.As(err, &fiberErr):
		return ErrorResponse(c, ErrorResponseFormat{
			Code:    fiberErr.Code,
			Message: fiberErr.Message,
		}, err)
	default:
		return ErrorResponse(c, ErrorResponseFormat{
			Message: "internal server error",
		}, err)
	}
}

// FiberErrorHandler renders errors that escape handlers in the same envelope.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	return AppErrorResponse(c, err, false)
}
