package store

import (
	"context"
	"fmt"

	"beach-review/models"

	"gorm.io/gorm"
)

// Liked reports whether liker has a like on the review.
func (s *Store) Liked(ctx context.Context, reviewID, likerID uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("review_id = ? AND liker_id = ?", reviewID, likerID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check like on review %d: %w", reviewID, err)
	}
	return n > 0, nil
}

// ToggleLike flips the like state of (reviewID, likerID) and moves the
// review's num_likes counter by one in the same transaction.
//
// Calls for the same review are serialized in-process, and the review row is
// locked in the database, so concurrent toggles never lose an update.
func (s *Store) ToggleLike(ctx context.Context, reviewID, likerID uint) (models.LikeState, error) {
	unlock := s.locks.Lock(reviewID)
	defer unlock()

	var state models.LikeState
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockReview(tx, reviewID, ""); err != nil {
			return err
		}

		res := tx.Where("review_id = ? AND liker_id = ?", reviewID, likerID).Delete(&models.Like{})
		if res.Error != nil {
			return fmt.Errorf("unlike review %d: %w", reviewID, classify(res.Error))
		}

		delta := -1
		if res.RowsAffected == 0 {
			if err := tx.Create(&models.Like{ReviewID: reviewID, LikerID: likerID}).Error; err != nil {
				return fmt.Errorf("like review %d: %w", reviewID, classify(err))
			}
			delta = 1
		}
		state.Liked = delta > 0

		err := tx.Model(&models.Review{}).
			Where("id = ?", reviewID).
			UpdateColumn("num_likes", gorm.Expr("num_likes + ?", delta)).Error
		if err != nil {
			return fmt.Errorf("update likes of review %d: %w", reviewID, classify(err))
		}

		var review models.Review
		if err := tx.Select("num_likes").First(&review, reviewID).Error; err != nil {
			return fmt.Errorf("reload review %d: %w", reviewID, classify(err))
		}
		state.NumLikes = review.NumLikes
		return nil
	})
	if err != nil {
		return models.LikeState{}, err
	}
	return state, nil
}

// CountLikes counts the like rows of a review.
func (s *Store) CountLikes(ctx context.Context, reviewID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Like{}).Where("review_id = ?", reviewID).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count likes of review %d: %w", reviewID, err)
	}
	return n, nil
}
