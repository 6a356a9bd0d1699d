package auth

import (
	"context"
	"testing"
	"time"

	"lumera_back_end/internal/common"
	"lumera_back_end/internal/models"
	"lumera_back_end/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("secret-de-test")

func newTokenService() (*TokenService, *store.MemoryUsers) {
	users := store.NewMemoryUsers()
	return NewTokenService(testSecret, users), users
}

func TestIssueThenVerify(t *testing.T) {
	tokens, users := newTokenService()
	ctx := context.Background()

	user := &models.User{ID: "11111111-1111-1111-1111-111111111111", Email: "a@b.fr", Role: "user"}
	require.NoError(t, users.Create(ctx, user))

	token, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	principal, err := tokens.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.ID)
	assert.Equal(t, "user", principal.Role)
}

// Le rôle n'est pas dans les claims : il est re-résolu à chaque requête,
// donc une promotion admin prend effet sans réémettre de token.
func TestVerifyPicksUpCurrentRole(t *testing.T) {
	tokens, users := newTokenService()
	ctx := context.Background()

	user := &models.User{ID: "11111111-1111-1111-1111-111111111111", Email: "a@b.fr", Role: "user"}
	require.NoError(t, users.Create(ctx, user))

	token, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	user.Role = "admin"
	require.NoError(t, users.Create(ctx, user))

	principal, err := tokens.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", principal.Role)
}

// Token cryptographiquement valide mais sujet supprimé : rejeté.
func TestVerifyDeletedSubject(t *testing.T) {
	tokens, users := newTokenService()
	ctx := context.Background()

	user := &models.User{ID: "11111111-1111-1111-1111-111111111111", Email: "a@b.fr", Role: "user"}
	require.NoError(t, users.Create(ctx, user))

	token, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	users.Delete(user.ID)

	_, err = tokens.Verify(ctx, token)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	tokens, users := newTokenService()
	ctx := context.Background()

	user := &models.User{ID: "11111111-1111-1111-1111-111111111111", Email: "a@b.fr", Role: "user"}
	require.NoError(t, users.Create(ctx, user))

	// Signé avec un autre secret
	otherClaims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, otherClaims).
		SignedString([]byte("autre-secret"))
	require.NoError(t, err)

	// Expiré
	expiredClaims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).
		SignedString(testSecret)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"token absent", ""},
		{"token illisible", "pas.un.jwt"},
		{"mauvaise signature", forged},
		{"token expiré", expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.Verify(ctx, tt.token)
			assert.ErrorIs(t, err, common.ErrUnauthenticated)
		})
	}
}
