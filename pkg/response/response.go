package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geo-directory/backend/internal/apperr"
	"github.com/geo-directory/backend/internal/metrics"
)

// Body is the standard API response envelope.
type Body struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// OK sends a 200 JSON response with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Body{Success: true, Data: data})
}

// BadRequest sends 400 with a validation code.
func BadRequest(c *gin.Context, err string) {
	fail(c, http.StatusBadRequest, apperr.CodeValidation, err)
}

// Unauthorized sends 401.
func Unauthorized(c *gin.Context, code, err string) {
	fail(c, http.StatusUnauthorized, code, err)
}

// NotFound sends 404.
func NotFound(c *gin.Context, code, err string) {
	fail(c, http.StatusNotFound, code, err)
}

// Internal sends 500. The cause is never echoed to the client.
func Internal(c *gin.Context) {
	fail(c, http.StatusInternalServerError, apperr.CodeInternal, "internal server error")
}

// Error maps a service error onto a status by kind and writes it. Unclassified errors become 500
// and are attached to the gin context so the request logger records the cause.
func Error(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) || e.Kind == apperr.KindInternal {
		_ = c.Error(err)
		Internal(c)
		return
	}
	fail(c, StatusFor(e.Kind), e.Code, e.Message)
}

// StatusFor returns the HTTP status a given error kind maps to.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, status int, code, msg string) {
	metrics.DomainErrors.WithLabelValues(code).Inc()
	c.JSON(status, Body{Success: false, Error: msg, Code: code})
}
