// Package auth porte le cœur identité : comptes, mots de passe et
// credentials bearer sans état côté serveur.
package auth

import (
	"context"
	"errors"
	"strings"

	"lumera_back_end/internal/common"
	"lumera_back_end/internal/models"
	"lumera_back_end/internal/store"
	"lumera_back_end/internal/utils"

	"github.com/google/uuid"
)

// Champs modifiables via la mise à jour de profil. Email et rôle ne
// passent jamais par ce chemin.
var profileColumns = map[string]string{
	"name":       "name",
	"phone":      "phone",
	"street":     "street",
	"city":       "city",
	"postalCode": "postal_code",
	"country":    "country",
}

type Service struct {
	users store.Users
}

func NewService(users store.Users) *Service {
	return &Service{users: users}
}

// NormalizeEmail met l'email en forme canonique : minuscules, sans
// espaces. C'est la clé d'unicité et de recherche des comptes.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register crée un compte avec le rôle user. Échoue en conflit si un
// compte existe déjà pour l'email normalisé.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") || password == "" {
		return nil, common.ErrValidation
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrConflict
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate vérifie le couple email/mot de passe. Email inconnu et
// mot de passe erroné renvoient la même erreur : un attaquant ne doit
// pas pouvoir distinguer les deux cas.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, common.ErrInvalidCredentials
	}

	ok, err := utils.VerifyPassword(password, user.Password)
	if err != nil || !ok {
		return nil, common.ErrInvalidCredentials
	}

	return user, nil
}

// UpdateProfile n'accepte que les champs de la liste blanche ; tout
// autre nom de champ est rejeté.
func (s *Service) UpdateProfile(ctx context.Context, userID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return common.ErrValidation
	}

	columns := make(map[string]string, len(fields))
	for name, value := range fields {
		column, allowed := profileColumns[name]
		if !allowed {
			return common.ErrValidation
		}
		text, ok := value.(string)
		if !ok {
			return common.ErrValidation
		}
		columns[column] = text
	}

	return s.users.UpdateProfile(ctx, userID, columns)
}
