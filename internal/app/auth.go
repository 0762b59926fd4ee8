package app

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AuthConfig struct {
	StaticTokens []string
	JWTSecret    string
}

func AuthConfigFromEnv() AuthConfig {
	cfg := AuthConfig{
		JWTSecret: strings.TrimSpace(os.Getenv("JWT_HMAC_SECRET")),
	}
	for _, token := range strings.Split(os.Getenv("STATIC_TOKENS"), ",") {
		if token = strings.TrimSpace(token); token != "" {
			cfg.StaticTokens = append(cfg.StaticTokens, token)
		}
	}
	return cfg
}

// AuthMiddleware accepts either an HMAC-signed JWT or one of the
// configured static bearer tokens.
func AuthMiddleware(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
			return
		}
		parts := strings.Fields(auth)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		tokenStr := parts[1]

		if cfg.JWTSecret != "" && validJWT(tokenStr, cfg.JWTSecret) {
			c.Next()
			return
		}

		for _, token := range cfg.StaticTokens {
			if tokenStr == token {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	}
}

func validJWT(tokenStr, secret string) bool {
	_, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	}, jwt.WithLeeway(5*time.Second))
	return err == nil
}
