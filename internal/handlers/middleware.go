package handlers

import (
	"net/http"
	"strings"

	"chatStream/internal/errs"
	"chatStream/internal/models"
	"chatStream/internal/msgs"

	"github.com/gin-gonic/gin"
)

const (
	claimsContextKey = "claims"
	tokenContextKey  = "token"
)

func (rh *RestHandler) MustAuthenticateMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ExtractToken(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
				Success: false,
				Message: msgs.MsgOperationFailed,
				Errors:  []error{errs.ErrUnauthorized},
			})
			return
		}

		claims, err := rh.authService.Authenticate(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
				Success: false,
				Message: msgs.MsgOperationFailed,
				Errors:  []error{errs.ErrUnauthorized},
			})
			return
		}

		ctx.Set(claimsContextKey, claims)
		ctx.Set(tokenContextKey, token)
		ctx.Next()
	}
}

// ExtractToken finds the login token in the Authorization header (with or
// without the Bearer prefix), the jwt_token cookie, or the token query
// parameter, in that order.
func ExtractToken(ctx *gin.Context) string {
	token := ctx.GetHeader("Authorization")
	if token != "" {
		return strings.TrimPrefix(token, "Bearer ")
	}
	if cookie, err := ctx.Cookie("jwt_token"); err == nil && cookie != "" {
		return cookie
	}
	return ctx.Query("token")
}

func ClaimsFromContext(ctx *gin.Context) *models.Claims {
	value, exists := ctx.Get(claimsContextKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.Claims)
	if !ok {
		return nil
	}
	return claims
}

func TokenFromContext(ctx *gin.Context) string {
	return ctx.GetString(tokenContextKey)
}
