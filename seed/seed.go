// Package seed loads the county and beach reference data and, optionally,
// fake demo users and reviews.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"beach-review/models"
	"beach-review/store"
	"beach-review/utils"

	"github.com/brianvoe/gofakeit/v6"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

//go:embed places.json
var placesJSON []byte

type placeFile struct {
	Counties []models.County `json:"counties"`
	Beaches  []struct {
		models.Beach
		CountyCode string `json:"county_id"`
	} `json:"beaches"`
}

// Places inserts the reference counties and beaches unless counties already
// exist. It returns the number of counties and beaches inserted.
func Places(ctx context.Context, db *gorm.DB) (int, int, error) {
	var existing int64
	if err := db.WithContext(ctx).Model(&models.County{}).Count(&existing).Error; err != nil {
		return 0, 0, fmt.Errorf("count counties: %w", err)
	}
	if existing > 0 {
		log.Infof("Reference data present (%d counties), skipping", existing)
		return 0, 0, nil
	}

	var file placeFile
	if err := json.Unmarshal(placesJSON, &file); err != nil {
		return 0, 0, fmt.Errorf("decode places: %w", err)
	}

	var beaches []models.Beach
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&file.Counties).Error; err != nil {
			return fmt.Errorf("insert counties: %w", err)
		}
		byCode := make(map[string]uint, len(file.Counties))
		for _, c := range file.Counties {
			byCode[c.CountyID] = c.ID
		}
		for _, b := range file.Beaches {
			countyID, ok := byCode[b.CountyCode]
			if !ok {
				return fmt.Errorf("beach %q references unknown county %q", b.BeachName, b.CountyCode)
			}
			beach := b.Beach
			beach.CountyReferenceID = countyID
			beaches = append(beaches, beach)
		}
		if err := tx.Create(&beaches).Error; err != nil {
			return fmt.Errorf("insert beaches: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return len(file.Counties), len(beaches), nil
}

// Demo creates the given number of fake users. Each writes one review on a
// random beach and likes up to three reviews. A fixed seed gives the same
// data on every run.
func Demo(ctx context.Context, s *store.Store, seed int64, users int) error {
	faker := gofakeit.New(seed)

	beaches, err := s.Beaches(ctx)
	if err != nil {
		return err
	}
	if len(beaches) == 0 {
		return fmt.Errorf("no beaches to review, seed places first")
	}

	hash, err := utils.HashPassword("beach-demo")
	if err != nil {
		return err
	}

	created := make([]models.User, 0, users)
	reviews := make([]models.Review, 0, users)
	for i := 0; i < users; i++ {
		user := models.User{
			Email:     faker.Email(),
			Password:  hash,
			FirstName: faker.FirstName(),
			LastName:  faker.LastName(),
		}
		if err := s.CreateUser(ctx, &user); err != nil {
			log.Warnf("Skipping demo user %s: %v", user.Email, err)
			continue
		}
		created = append(created, user)

		beach := beaches[faker.Number(0, len(beaches)-1)]
		review := models.Review{
			ReviewTitle: faker.Sentence(4),
			Review:      faker.Paragraph(1, 3, 12, " "),
			BeachID:     beach.ID,
			User:        user.Email,
			Image:       faker.ImageURL(640, 480),
		}
		if err := s.CreateReview(ctx, &review); err != nil {
			return err
		}
		reviews = append(reviews, review)
	}

	likes := 0
	for _, user := range created {
		for j := 0; j < 3 && len(reviews) > 0; j++ {
			review := reviews[faker.Number(0, len(reviews)-1)]
			liked, err := s.Liked(ctx, review.ID, user.ID)
			if err != nil {
				return err
			}
			if liked {
				continue
			}
			if _, err := s.ToggleLike(ctx, review.ID, user.ID); err != nil {
				return err
			}
			likes++
		}
	}

	log.WithFields(log.Fields{"users": len(created), "reviews": len(reviews), "likes": likes}).Info("Demo data created")
	return nil
}
