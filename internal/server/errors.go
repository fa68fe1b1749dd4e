package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/studiokit/atelier/internal/catalog/domain"
	customerdomain "github.com/studiokit/atelier/internal/customer/domain"
	intakedomain "github.com/studiokit/atelier/internal/intake/domain"
	"github.com/studiokit/atelier/internal/observability/logger"
	paymentdomain "github.com/studiokit/atelier/internal/payment/domain"
	"go.uber.org/zap"
)

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not_found")
	ErrTooManyRequests = errors.New("too_many_requests")
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *apiError) Error() string { return e.Message }

func invalidRequestError() *apiError {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "request body could not be parsed",
	}
}

func newValidationError(field, code, message string) *apiError {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    code,
		Message: message,
		Field:   field,
	}
}

// AbortWithError translates service errors into JSON responses. Unclassified
// errors surface as 500 with a generic body; the cause stays in the logs.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(status, gin.H{"error": &apiError{
			Code:    "internal",
			Message: "internal server error",
		}})
		return
	}

	c.AbortWithStatusJSON(status, gin.H{"error": &apiError{
		Code:    err.Error(),
		Message: err.Error(),
	}})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrNotFound),
		errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, customerdomain.ErrProjectNotFound),
		errors.Is(err, paymentdomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrCustomerNotFound),
		errors.Is(err, intakedomain.ErrNotFound),
		errors.Is(err, catalogdomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, customerdomain.ErrDuplicateEmail),
		errors.Is(err, paymentdomain.ErrDuplicateInvoiceNumber),
		errors.Is(err, catalogdomain.ErrDuplicateSlug):
		return http.StatusConflict
	case isValidationError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isValidationError(err error) bool {
	validation := []error{
		customerdomain.ErrInvalidID,
		customerdomain.ErrInvalidName,
		customerdomain.ErrInvalidEmail,
		customerdomain.ErrInvalidStatus,
		customerdomain.ErrInvalidProject,
		customerdomain.ErrInvalidBudget,
		customerdomain.ErrInvalidProgress,
		customerdomain.ErrInvalidMilestone,
		paymentdomain.ErrInvalidID,
		paymentdomain.ErrInvalidCustomer,
		paymentdomain.ErrInvalidAmount,
		paymentdomain.ErrInvalidCurrency,
		paymentdomain.ErrInvalidType,
		paymentdomain.ErrInvalidMethod,
		paymentdomain.ErrInvalidStatus,
		intakedomain.ErrInvalidID,
		intakedomain.ErrInvalidName,
		intakedomain.ErrInvalidEmail,
		intakedomain.ErrInvalidMessage,
		intakedomain.ErrInvalidStatus,
		catalogdomain.ErrInvalidID,
		catalogdomain.ErrInvalidName,
		catalogdomain.ErrInvalidSlug,
		catalogdomain.ErrInvalidPrice,
	}
	for _, sentinel := range validation {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
