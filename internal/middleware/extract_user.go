package middleware

import (
	"go-payroll/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
)

const anonymousUser = "anonymous"

// ExtractUserID resolves the caller identity used to scope idempotency keys.
func ExtractUserID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID := ctx.GetString("user_id")
		if userID == "" {
			userID = anonymousUser
		}
		ctx.Set("user_id_validated", userID)
		ctx.Request = ctx.Request.WithContext(contextutil.WithUserID(ctx.Request.Context(), userID))
		ctx.Next()
	}
}
