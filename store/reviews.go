package store

import (
	"context"
	"errors"
	"fmt"

	"beach-review/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewsByBeach returns the reviews of one beach in insertion order.
func (s *Store) ReviewsByBeach(ctx context.Context, beachID uint) ([]models.Review, error) {
	reviews := []models.Review{}
	err := s.db.WithContext(ctx).
		Where("beach_id = ?", beachID).
		Order("id").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("load reviews for beach %d: %w", beachID, err)
	}
	return reviews, nil
}

// Review returns a single review.
func (s *Store) Review(ctx context.Context, id uint) (models.Review, error) {
	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return review, classify(err)
	}
	return review, nil
}

// CreateReview inserts review and fills in its ID. NumLikes always starts at 0.
func (s *Store) CreateReview(ctx context.Context, review *models.Review) error {
	review.ID = 0
	review.NumLikes = 0
	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", classify(err))
	}
	return nil
}

// UpdateReview replaces the title and body of a review. When owner is not
// empty the review must have been written by owner.
func (s *Store) UpdateReview(ctx context.Context, id uint, title, body, owner string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockReview(tx, id, owner); err != nil {
			return err
		}
		err := tx.Model(&models.Review{}).
			Where("id = ?", id).
			Updates(map[string]any{"review_title": title, "review": body}).Error
		if err != nil {
			return fmt.Errorf("update review %d: %w", id, classify(err))
		}
		return nil
	})
}

// DeleteReview removes a review together with its likes. When owner is not
// empty the review must have been written by owner.
func (s *Store) DeleteReview(ctx context.Context, id uint, owner string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockReview(tx, id, owner); err != nil {
			return err
		}
		if err := tx.Where("review_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return fmt.Errorf("delete likes of review %d: %w", id, classify(err))
		}
		if err := tx.Delete(&models.Review{}, id).Error; err != nil {
			return fmt.Errorf("delete review %d: %w", id, classify(err))
		}
		return nil
	})
}

// lockReview loads a review inside tx with a row lock where the dialect has
// one, and checks ownership.
func lockReview(tx *gorm.DB, id uint, owner string) (models.Review, error) {
	var review models.Review
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return review, ErrNotFound
		}
		return review, fmt.Errorf("load review %d: %w", id, classify(err))
	}
	if owner != "" && review.User != owner {
		return review, ErrForbidden
	}
	return review, nil
}
