// internal/interfaces/http/handlers/response.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/your-org/pos-backend/internal/pkg/apperr"
	"github.com/your-org/pos-backend/internal/pkg/validation"
)

// respond writes the standard success envelope
func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"message": message,
		"data":    data,
	})
}

// respondError maps err onto a status code and the notification payload.
// Anything that is not an *apperr.Error is reported as an internal error
// without leaking its text.
func respondError(c *gin.Context, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Something went wrong. Please try again.",
			"kind":  "internal",
			"level": "error",
		})
		return
	}

	status := appErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}

	level := "error"
	if appErr.IsWarning() {
		level = "warning"
	}

	c.JSON(status, gin.H{
		"error": appErr.Message,
		"kind":  appErr.Kind,
		"level": level,
	})
}

// bindJSON decodes the request body into req, responding with a validation
// error when it cannot. It reports whether the handler should continue.
func bindJSON(c *gin.Context, op string, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		respondError(c, apperr.Validation(op, validation.Message(err)))
	} else {
		respondError(c, apperr.Validation(op, "Invalid request data"))
	}
	return false
}
