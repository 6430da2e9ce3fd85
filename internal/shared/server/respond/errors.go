package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvmatch-backend/internal/shared/apperr"
	"cvmatch-backend/internal/shared/telemetry"
)

// ErrorResponse is the uniform error envelope every endpoint returns.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// FromError normalizes any failure to the error taxonomy and its HTTP status.
// Unclassified errors become a generic 500 outside dev-like environments.
func FromError(c *gin.Context, env string, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperr.KindUnauthenticated:
			Error(c, http.StatusUnauthorized, appErr.Code, appErr.Message, nil)
		case apperr.KindUnauthorized:
			Error(c, http.StatusForbidden, appErr.Code, appErr.Message, nil)
		case apperr.KindNotFound:
			Error(c, http.StatusNotFound, appErr.Code, appErr.Message, nil)
		case apperr.KindValidation:
			Error(c, http.StatusBadRequest, appErr.Code, appErr.Message, appErr.Details)
		case apperr.KindDispatchFailure:
			Error(c, http.StatusInternalServerError, appErr.Code, appErr.Message, nil)
		default:
			internalError(c, env, appErr)
		}
		return
	}
	internalError(c, env, err)
}

func internalError(c *gin.Context, env string, err error) {
	message := "Unexpected server error"
	if isDevLike(env) && err != nil {
		message = err.Error()
	}
	Error(c, http.StatusInternalServerError, "internal_error", message, nil)
}

func isDevLike(env string) bool {
	switch env {
	case "dev", "local", "":
		return true
	default:
		return false
	}
}
