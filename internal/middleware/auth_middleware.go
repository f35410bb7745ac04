package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	autherrors "worklane/internal/auth/errors"
	"worklane/internal/domain"
	"worklane/internal/shared/contextutil"
	"worklane/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by AuthMiddleware for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxEmail  = "email"
	CtxName   = "name"
)

// PrincipalFromContext rebuilds the principal set by AuthMiddleware.
func PrincipalFromContext(c *gin.Context) domain.Principal {
	return domain.Principal{
		ID:    c.GetString(CtxUserID),
		Role:  c.GetString(CtxRole),
		Email: c.GetString(CtxEmail),
		Name:  c.GetString(CtxName),
	}
}

// AuthMiddleware verifies the bearer token and resolves the subject to a
// live principal. A token whose subject no longer exists is rejected the
// same way as a bad token.
func AuthMiddleware(principals domain.PrincipalSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			response.Error(c, http.StatusUnauthorized, autherrors.ErrInvalidToken.Code, "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, autherrors.ErrInvalidToken.Code, "Invalid token claims", nil)
			c.Abort()
			return
		}

		subject, ok := claims["sub"].(string)
		if !ok || subject == "" {
			response.Error(c, http.StatusUnauthorized, autherrors.ErrInvalidToken.Code, "Subject not found in token", nil)
			c.Abort()
			return
		}

		principal, err := principals.PrincipalByID(c.Request.Context(), subject)
		if err != nil {
			errObj := autherrors.ErrPrincipalNotFound
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		c.Set(CtxUserID, principal.ID)
		c.Set(CtxRole, principal.Role)
		c.Set(CtxEmail, principal.Email)
		c.Set(CtxName, principal.Name)

		ctx := contextutil.WithUserID(c.Request.Context(), principal.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
