package handler

import (
	"errors"
	"net/http"

	"redirector/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Response is the standard API response
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the error API response
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Code:    status,
		Message: message,
	})
}

// respondError maps service errors to HTTP statuses. Anything unexpected is
// logged and reported as a 500 with the given message.
func respondError(c *gin.Context, err error, message string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		fail(c, http.StatusBadRequest, verr.Field+": "+verr.Reason)
	case errors.Is(err, service.ErrLinkNotFound):
		fail(c, http.StatusNotFound, "Link not found")
	case errors.Is(err, service.ErrLinkExists):
		fail(c, http.StatusConflict, "Link code already exists")
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg(message)
		fail(c, http.StatusInternalServerError, message)
	}
}
