package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"bitoption/internal/domain"
)

// Response represents a standardized API response
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// SuccessResponse sends a success response
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{
		Status: "success",
		Data:   data,
	})
}

// CreatedResponse sends a 201 Created response
func CreatedResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{
		Status: "success",
		Data:   data,
	})
}

// ErrorResponse sends an error response
func ErrorResponse(c echo.Context, statusCode int, message string, err interface{}) error {
	return c.JSON(statusCode, Response{
		Status:  "error",
		Message: message,
		Error:   err,
	})
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusBadRequest, message, nil)
}

// UnauthorizedResponse sends a 401 Unauthorized response
func UnauthorizedResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusUnauthorized, message, nil)
}

// NotFoundResponse sends a 404 Not Found response
func NotFoundResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusNotFound, message, nil)
}

// ConflictResponse sends a 409 Conflict response
func ConflictResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusConflict, message, nil)
}

// UnprocessableResponse sends a 422 Unprocessable Entity response
func UnprocessableResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusUnprocessableEntity, message, nil)
}

// InternalServerErrorResponse sends a 500 Internal Server Error response
func InternalServerErrorResponse(c echo.Context, message string, err error) error {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	return ErrorResponse(c, http.StatusInternalServerError, message, errMsg)
}

// DomainErrorResponse maps a domain error to its HTTP status. Validation
// errors are 400, missing entities 404, race losers and repeated reviews
// 409, underfunded debits 422; anything else is a persistence failure.
func DomainErrorResponse(c echo.Context, err error) error {
	switch {
	case domain.IsValidationError(err):
		return BadRequestResponse(c, err.Error())
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTradeNotFound),
		errors.Is(err, domain.ErrTransferNotFound):
		return NotFoundResponse(c, err.Error())
	case errors.Is(err, domain.ErrTradeAlreadyResolved),
		errors.Is(err, domain.ErrTransferAlreadyReviewed):
		return ConflictResponse(c, err.Error())
	case errors.Is(err, domain.ErrInsufficientBalance):
		return UnprocessableResponse(c, err.Error())
	default:
		return InternalServerErrorResponse(c, "Internal server error", err)
	}
}
