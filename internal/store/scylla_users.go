package store

import (
	"context"
	"errors"
	"fmt"

	"lumera_back_end/internal/common"
	"lumera_back_end/internal/database"
	"lumera_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ScyllaUsers stocke les comptes dans le keyspace users : table `users`
// (partition user_id) et table de recherche `users_by_email`.
type ScyllaUsers struct{}

func NewScyllaUsers() *ScyllaUsers {
	return &ScyllaUsers{}
}

func (s *ScyllaUsers) Create(ctx context.Context, user *models.User) error {
	session, err := database.GetUsersSession()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	uid, err := parseUUID(user.ID)
	if err != nil {
		return err
	}

	if err := session.Query(`INSERT INTO users (user_id, email, name, password, role, phone, street, city, postal_code, country)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uid, user.Email, user.Name, user.Password, user.Role,
		user.Phone, user.Street, user.City, user.PostalCode, user.Country).
		WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	if err := session.Query(`INSERT INTO users_by_email (email, user_id) VALUES (?, ?)`,
		user.Email, uid).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	return nil
}

func (s *ScyllaUsers) GetByID(ctx context.Context, userID string) (*models.User, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	uid, err := parseUUID(userID)
	if err != nil {
		return nil, common.ErrNotFound
	}

	user := models.User{ID: userID}
	if err := session.Query(`SELECT email, name, password, role, phone, street, city, postal_code, country
		FROM users WHERE user_id = ?`, uid).WithContext(ctx).Scan(
		&user.Email, &user.Name, &user.Password, &user.Role,
		&user.Phone, &user.Street, &user.City, &user.PostalCode, &user.Country); err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	return &user, nil
}

func (s *ScyllaUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	var uid gocql.UUID
	if err := session.Query(`SELECT user_id FROM users_by_email WHERE email = ?`, email).
		WithContext(ctx).Scan(&uid); err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	return s.GetByID(ctx, uid.String())
}

// UpdateProfile écrit les colonnes fournies. L'appelant (service auth) a
// déjà filtré les champs autorisés ; email et rôle ne passent jamais ici.
func (s *ScyllaUsers) UpdateProfile(ctx context.Context, userID string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}

	session, err := database.GetUsersSession()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	uid, err := parseUUID(userID)
	if err != nil {
		return common.ErrNotFound
	}

	for column, value := range fields {
		if err := session.Query(fmt.Sprintf(`UPDATE users SET %s = ? WHERE user_id = ?`, column),
			value, uid).WithContext(ctx).Exec(); err != nil {
			return fmt.Errorf("%w: %v", common.ErrPersistence, err)
		}
	}

	return nil
}

func parseUUID(id string) (gocql.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return gocql.UUID{}, common.ErrValidation
	}
	return gocql.UUID(parsed), nil
}
