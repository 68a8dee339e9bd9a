package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetscribe/meetscribe/errors"
)

// StatusCompleted is the terminal status reported for every successful
// request, including those that degraded to a fallback document.
const StatusCompleted = "completed"

// errorBody is the error payload shape the UI expects
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// HandleError centralizes error handling and logging. AppErrors keep
// their HTTP code; anything else becomes an internal server error.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		body := errorBody{Error: appErr.Message}
		if appErr.Raw != nil {
			body.Details = appErr.Raw.Error()
		}
		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.JSON(http.StatusInternalServerError, errorBody{
		Error:   "Internal server error",
		Details: err.Error(),
	})
}
