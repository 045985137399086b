package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"campus-parking/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const identityKey = "identity"

// JWTAuth 驗證 Bearer token 並把 {userID, role} 放進請求 context。
// core 只消費解析後的身分，不自己做帳密驗證
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		userID, ok := subjectUserID(claims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid subject"})
			return
		}

		role, _ := claims["role"].(string)
		if role == "" {
			role = model.RoleUser
		}

		c.Set(identityKey, model.Identity{UserID: userID, Role: role})
		c.Next()
	}
}

// subjectUserID sub claim 可能是數字或字串，兩種都收
func subjectUserID(claims jwt.MapClaims) (int, bool) {
	switch v := claims["sub"].(type) {
	case float64:
		return int(v), true
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return id, true
	}
	return 0, false
}

func GetIdentity(c *gin.Context) model.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(model.Identity); ok {
			return identity
		}
	}
	return model.Identity{}
}

// RequireRole 管理端路由的角色守門
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := GetIdentity(c)
		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}
