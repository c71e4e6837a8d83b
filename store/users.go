package store

import (
	"context"
	"errors"
	"fmt"

	"beach-review/models"
)

// CreateUser inserts a user. A taken email yields ErrConflict.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		err = classify(err)
		if errors.Is(err, ErrConflict) {
			return ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return user, classify(err)
	}
	return user, nil
}

func (s *Store) UserByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return user, classify(err)
	}
	return user, nil
}
