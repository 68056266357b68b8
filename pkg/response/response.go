package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quizbase/quizbase/pkg/apperror"
)

// Envelope is the uniform response body every endpoint returns.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Error converts a service error into the failure envelope. Unknown errors
// are logged and collapsed into a generic message so internals never leak.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)
	msg := err.Error()

	if code == http.StatusInternalServerError {
		if l, ok := c.Get("logger"); ok {
			if zl, ok := l.(*zap.Logger); ok {
				zl.Error("request failed",
					zap.String("path", c.FullPath()),
					zap.Error(err),
				)
			}
		}
		if !errors.Is(err, apperror.ErrInternal) {
			msg = apperror.ErrInternal.Error()
		}
	}

	c.JSON(code, Envelope{Success: false, Message: msg, Data: nil})
}
