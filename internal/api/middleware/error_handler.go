package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "stt-frontend/internal/api/errors"
)

// ErrorHandler turns panics into the `{error}` payload.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := GetRequestID(c)

		var apiErr *apierrors.APIError
		switch err := recovered.(type) {
		case *apierrors.APIError:
			apiErr = err
		case error:
			logger.Error("Internal server error",
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			apiErr = apierrors.NewInternalError("Internal server error")
		default:
			logger.Error("Unknown panic occurred",
				zap.Any("recovered", recovered),
				zap.String("request_id", requestID),
			)
			apiErr = apierrors.NewInternalError("Internal server error")
		}

		apiErr.RequestID = requestID
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
	})
}

// HandleError writes err as an `{error}` response. Errors that are not
// APIErrors are reported as internal errors and logged by the logging
// middleware.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		_ = c.Error(err)
		apiErr = apierrors.NewInternalError(err.Error())
	}
	apiErr.RequestID = GetRequestID(c)
	c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
}
