package middleware

import (
	"net/http"
	"strings"

	"lumera_back_end/internal/auth"
	"lumera_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// AuthRequired extrait le bearer token, le fait vérifier par le
// TokenVerifier injecté, et attache le principal résolu (rôle courant
// compris) au contexte de la requête.
func AuthRequired(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token manquant"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Format Authorization invalide"})
			c.Abort()
			return
		}

		user, err := verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
			c.Abort()
			return
		}

		c.Set(principalKey, user)
		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
		c.Next()
	}
}

// Principal renvoie l'utilisateur attaché par AuthRequired.
func Principal(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
