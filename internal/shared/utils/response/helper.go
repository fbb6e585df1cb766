package response

import (
	"net/http"

	"aerobook/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// Success writes a success envelope with the given payload.
func Success(c *gin.Context, code int, message string, data interface{}) {
	RespondJSON(c, "success", code, message, data, nil)
}

// Error writes an error envelope, deriving status code and message from the
// error's kind so handlers never translate failures by hand.
func Error(c *gin.Context, err error) {
	code := apperrors.HTTPStatus(err)
	message := apperrors.Message(err)
	if code == http.StatusInternalServerError {
		// Never leak internal error details to clients.
		RespondJSON(c, "error", code, message, nil, nil)
		return
	}
	RespondJSON(c, "error", code, message, nil, gin.H{"kind": apperrors.KindOf(err)})
}
