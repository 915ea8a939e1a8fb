package httperr

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFoundJSON(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Status(kind Kind) int {
	switch kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// Respond writes err as JSON. Business errors keep their message; anything
// else is logged and reported generically.
func Respond(c *gin.Context, err error) {
	if be, ok := As(err); ok {
		c.JSON(Status(be.Kind), HTTPError{
			Code:    be.Code,
			Message: be.Message,
			Field:   be.Field,
		})
		return
	}

	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	Internal(c, "internal_error", "An internal error occurred.")
}
