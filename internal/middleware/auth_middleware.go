package middleware

import (
	"strings"

	"poolride/internal/utils"
	"poolride/pkg/auth"
	"poolride/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SubjectKey is the gin context key holding the verified token subject.
const SubjectKey = "subject"

// AuthRequired verifies the bearer token and stores the resulting
// subject in the request context. Every API route sits behind it.
func AuthRequired(verifier auth.TokenVerifier, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		subject, err := verifier.VerifyToken(c.Request.Context(), tokenString)
		if err != nil {
			log.WithError(err).Debug("Token verification failed")
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		c.Set(SubjectKey, subject)
		c.Next()
	}
}

// Subject returns the verified subject set by AuthRequired.
func Subject(c *gin.Context) string {
	return c.GetString(SubjectKey)
}
