package auth

import (
	"context"
	"fmt"
	"time"

	"lumera_back_end/internal/common"
	"lumera_back_end/internal/models"
	"lumera_back_end/internal/store"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 7 * 24 * time.Hour

// TokenVerifier est la capacité injectée dans le middleware : les tests
// le substituent sans store vivant.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*models.User, error)
}

// TokenService émet et vérifie des JWT HS256 porteurs du seul user_id.
// Ni rôle ni email dans les claims : le principal est re-résolu à chaque
// vérification, donc changements de rôle et suppressions de compte
// prennent effet dès la requête suivante, en remplacement d'une
// liste de révocation.
type TokenService struct {
	secret []byte
	users  store.Users
}

func NewTokenService(secret []byte, users store.Users) *TokenService {
	return &TokenService{secret: secret, users: users}
}

func (t *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify enchaîne quatre contrôles, dans l'ordre, chacun se repliant sur
// ErrUnauthenticated : présence, signature+expiration, existence du
// sujet, puis résolution du principal avec son rôle courant. Un token
// valide cryptographiquement mais dont le sujet a disparu est rejeté.
func (t *TokenService) Verify(ctx context.Context, tokenString string) (*models.User, error) {
	if tokenString == "" {
		return nil, common.ErrUnauthenticated
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, common.ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, common.ErrUnauthenticated
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, common.ErrUnauthenticated
	}

	user, err := t.users.GetByID(ctx, userID)
	if err != nil {
		return nil, common.ErrUnauthenticated
	}

	return user, nil
}
