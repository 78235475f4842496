package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sm8ta/carsharing_microservice/internal/core/domain"
	"github.com/sm8ta/carsharing_microservice/internal/core/services"
)

type errorResponse struct {
	Message string            `json:"message" example:"car not found for id: 3"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{Message: message})
}

func newValidationErrorResponse(c *gin.Context, err error) {
	resp := errorResponse{Message: "validation error"}

	var verr *domain.ValidationError
	if errors.As(services.ValidationErrorFrom(err), &verr) {
		resp.Fields = verr.Fields
	}
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, resp)
}

// statusFor maps service errors onto response codes.
func statusFor(err error) int {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrCarNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBadTrip), errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError answers with the status for err. Server errors get a
// generic message; the cause only goes to the log.
func writeServiceError(c *gin.Context, err error, serverMessage string) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		newValidationErrorResponse(c, verr)
		return
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		newErrorResponse(c, status, serverMessage)
		return
	}
	newErrorResponse(c, status, err.Error())
}
