package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var ErrLikeExists = errors.New("like already exists")

type Like struct {
	ID uint `gorm:"primaryKey"`

	ReviewID uint   `gorm:"not null;uniqueIndex:idx_likes_code_review,priority:2"`
	CodeID   uint   `gorm:"not null;uniqueIndex:idx_likes_code_review,priority:1"`
	Username string `gorm:"not null;size:64"`

	CreatedAt time.Time `gorm:"not null"`
}

type LikeDAO struct {
	db *gorm.DB
}

func NewLikeDAO(db *gorm.DB) *LikeDAO {
	return &LikeDAO{
		db: db,
	}
}

// Insert relies on the (code_id, review_id) unique index to reject duplicates,
// including two concurrent likes that both passed the existence check.
func (d *LikeDAO) Insert(ctx context.Context, like Like) (Like, error) {
	result := d.db.WithContext(ctx).Create(&like)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, "idx_likes_code_review") {
			return Like{}, ErrLikeExists
		}

		return Like{}, result.Error
	}

	return like, nil
}

func (d *LikeDAO) Exists(ctx context.Context, codeID, reviewID uint) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Like{}).
		Where("code_id = ? AND review_id = ?", codeID, reviewID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// CountsByReview returns like totals keyed by review ID. Reviews without
// likes are absent from the map.
func (d *LikeDAO) CountsByReview(ctx context.Context) (map[uint]int, error) {
	var rows []struct {
		ReviewID uint
		Total    int
	}

	result := d.db.WithContext(ctx).
		Model(&Like{}).
		Select("review_id, COUNT(*) AS total").
		Group("review_id").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	counts := make(map[uint]int, len(rows))
	for _, row := range rows {
		counts[row.ReviewID] = row.Total
	}

	return counts, nil
}
