package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/melatron/hft-service/pkg/apperror"
)

type errorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler maps a handler's returned error to a wire status code and a
// stable-for-logs {"error": "..."} body. Domain errors (*apperror.Error)
// carry their own kind; anything else is an opaque 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	var appErr *apperror.Error
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		message = appErr.Message
		status = statusForKind(appErr.Kind)
	case errors.As(err, &echoErr):
		status = echoErr.Code
		if m, ok := echoErr.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(echoErr.Code)
		}
	default:
		log.Errorf("unhandled error: %s", err)
	}

	if jsonErr := c.JSON(status, errorResponse{Error: message}); jsonErr != nil {
		log.Errorf("failed writing error response: %s", jsonErr)
	}
}

func statusForKind(k apperror.Kind) int {
	switch k {
	case apperror.KindSymbolNotFound:
		return http.StatusNotFound
	case apperror.KindBadRequest, apperror.KindNotEnoughData:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
