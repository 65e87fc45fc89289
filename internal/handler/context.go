package handler

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"messagely/internal/auth"
	apperrors "messagely/internal/errors"
)

// usernameFromContext extracts the authenticated username that the JWT
// middleware stored on the request context. Empty when unauthenticated.
func usernameFromContext(c echo.Context) string {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return ""
	}
	return claims.Username
}

// domainError translates a domain error into the echo error the router's
// error handler renders.
func domainError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
