package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jwalitptl/healthapp-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{Status: "success", Data: data}
}

func NewErrorResponse(message string) *Response {
	return &Response{Status: "error", Message: message}
}

// RespondWithSuccess sends a 200 success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, NewSuccessResponse(data))
}

func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, NewSuccessResponse(data))
}

// RespondWithError renders err with the status of its AppError code. Any other error is
// logged and answered with a generic 500.
func RespondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code == apperrors.ErrInternal {
		log.Error().Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.FullPath()).
			Msg("internal error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, NewErrorResponse("internal server error"))
		return
	}

	resp := NewErrorResponse(appErr.Message)
	if len(appErr.Details) > 0 {
		resp.Data = appErr.Details
	}
	c.AbortWithStatusJSON(appErr.Code.HTTPStatus(), resp)
}
