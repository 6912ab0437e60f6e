// Package apierror maps service errors to JSON error responses.
package apierror

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jeevankiran1503/Prodigy-FS-03/logging"
	"github.com/Jeevankiran1503/Prodigy-FS-03/services"
)

const serverError = "Server Error"

// Status returns the HTTP status for err. upstreamStatus is used for store and
// image failures, which some routes report as 400 instead of 500.
func Status(err error, upstreamStatus int) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	default:
		return upstreamStatus
	}
}

// Respond writes {"message": ...} for err and logs the cause of upstream failures.
func Respond(c *gin.Context, err error, upstreamStatus int) {
	status := Status(err, upstreamStatus)
	msg := services.Message(err)
	if status == upstreamStatus && !errors.Is(err, services.ErrValidation) {
		logging.Ctx(c.Request.Context()).Error().Err(err).Str("route", c.FullPath()).Msg("request failed")
	}
	if msg == "" {
		msg = serverError
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}
