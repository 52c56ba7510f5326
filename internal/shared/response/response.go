package response

import (
	"github.com/gin-gonic/gin"
)

// ApiEnvelope is the shape of every error body. Successful responses are
// written bare so that clients get the resource itself.
type ApiEnvelope struct {
	Ok    bool `json:"ok"`
	Error any  `json:"error,omitempty"`
}

func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// OK writes {"ok": true}.
func OK(c *gin.Context, status int) {
	c.JSON(status, ApiEnvelope{Ok: true})
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, ApiEnvelope{
		Ok: false,
		Error: map[string]any{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}

// Attachment writes a downloadable file.
func Attachment(c *gin.Context, status int, contentType, filename string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(status, contentType, body)
}
