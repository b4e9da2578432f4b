package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tixmarket/internal/shared/apperr"
	"tixmarket/pkg/logger"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// StatusFor maps service errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err in the standard envelope. Internal errors are
// reported with the fallback message only.
func RespondError(c *gin.Context, fallback string, err error) {
	code := StatusFor(err)
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
		logger.GetDefault().LogHTTPError(c, err, code)
		RespondJSON(c, "error", code, fallback, nil, nil)
		return
	}
	RespondJSON(c, "error", code, err.Error(), nil, nil)
}
