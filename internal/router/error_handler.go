package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apperrors "messagely/internal/errors"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that renders every
// error as the canonical {"error": ..., "code": ...} envelope and logs
// unexpected failures without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			var body apperrors.ErrorResponse
			switch msg := he.Message.(type) {
			case apperrors.ErrorResponse:
				body = msg
			case string:
				body = apperrors.ErrorResponse{Error: msg, Code: codeFromStatus(he.Code)}
			default:
				body = apperrors.ErrorResponse{Error: fmt.Sprintf("%v", msg), Code: codeFromStatus(he.Code)}
			}
			if he.Code >= http.StatusInternalServerError {
				log.Error().Err(err).
					Str("method", c.Request().Method).
					Str("path", c.Path()).
					Msg("request failed")
			}
			_ = c.JSON(he.Code, body)
			return
		}

		// Anything that is not an echo.HTTPError escaped the handler layer.
		log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")
		_ = c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "internal server error",
			Code:  "INTERNAL_ERROR",
		})
	}
}

func codeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return "ERROR"
	}
}
