package store

import (
	"context"
	"fmt"

	"beach-review/models"
)

// Counties returns all counties.
func (s *Store) Counties(ctx context.Context) ([]models.County, error) {
	counties := []models.County{}
	if err := s.db.WithContext(ctx).Order("id").Find(&counties).Error; err != nil {
		return nil, fmt.Errorf("load counties: %w", err)
	}
	return counties, nil
}

// BeachesByCounty returns the beaches of one county.
func (s *Store) BeachesByCounty(ctx context.Context, countyID uint) ([]models.Beach, error) {
	beaches := []models.Beach{}
	err := s.db.WithContext(ctx).
		Where("county_reference_id = ?", countyID).
		Order("id").
		Find(&beaches).Error
	if err != nil {
		return nil, fmt.Errorf("load beaches for county %d: %w", countyID, err)
	}
	return beaches, nil
}

// Beaches returns every beach.
func (s *Store) Beaches(ctx context.Context) ([]models.Beach, error) {
	beaches := []models.Beach{}
	if err := s.db.WithContext(ctx).Order("id").Find(&beaches).Error; err != nil {
		return nil, fmt.Errorf("load beaches: %w", err)
	}
	return beaches, nil
}

// BeachExists reports whether a beach with id is present.
func (s *Store) BeachExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Beach{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check beach %d: %w", id, err)
	}
	return n > 0, nil
}
