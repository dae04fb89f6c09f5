package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

type Review struct {
	ID uint `gorm:"primaryKey"`

	Username string `gorm:"not null;size:64"`
	Drink    string `gorm:"not null;size:64"`
	Text     string `gorm:"not null;type:text"`

	CreatedAt time.Time `gorm:"not null"`
}

type ReviewDAO struct {
	db *gorm.DB
}

func NewReviewDAO(db *gorm.DB) *ReviewDAO {
	return &ReviewDAO{
		db: db,
	}
}

// InsertRedeeming persists the review and flips the backing code to used in
// one transaction. The flip is conditional on the code still being unused, so
// a replayed submission aborts with ErrCodeUsed and leaves no review behind.
func (d *ReviewDAO) InsertRedeeming(ctx context.Context, review Review, codeID uint) (Review, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		result := tx.Model(&Code{}).
			Where("id = ? AND used = ?", codeID, false).
			Update("used", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCodeUsed
		}

		return nil
	})
	if err != nil {
		return Review{}, err
	}

	return review, nil
}

func (d *ReviewDAO) FindByID(ctx context.Context, id uint) (Review, error) {
	var review Review

	result := d.db.WithContext(ctx).First(&review, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Review{}, ErrReviewNotFound
		}

		return Review{}, result.Error
	}

	return review, nil
}

// ListAll returns reviews in insertion order.
func (d *ReviewDAO) ListAll(ctx context.Context) ([]Review, error) {
	var reviews []Review

	result := d.db.WithContext(ctx).Order("id ASC").Find(&reviews)
	if result.Error != nil {
		return nil, result.Error
	}

	return reviews, nil
}
