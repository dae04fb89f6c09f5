package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAdminNotFound = errors.New("admin not found")

type Admin struct {
	ID uint `gorm:"primaryKey"`

	Username     string `gorm:"uniqueIndex:idx_admins_username;not null;size:64"`
	PasswordHash string `gorm:"not null;size:128"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type AdminDAO struct {
	db *gorm.DB
}

func NewAdminDAO(db *gorm.DB) *AdminDAO {
	return &AdminDAO{
		db: db,
	}
}

// EnsureSeed inserts the admin row if it doesn't exist yet. An existing row
// keeps its current password hash.
func (d *AdminDAO) EnsureSeed(ctx context.Context, username, passwordHash string) error {
	admin := Admin{
		Username:     username,
		PasswordHash: passwordHash,
	}

	result := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoNothing: true,
		}).
		Create(&admin)

	return result.Error
}

func (d *AdminDAO) FindByUsername(ctx context.Context, username string) (Admin, error) {
	var admin Admin

	result := d.db.WithContext(ctx).First(&admin, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Admin{}, ErrAdminNotFound
		}

		return Admin{}, result.Error
	}

	return admin, nil
}

func (d *AdminDAO) UpdatePasswordHash(ctx context.Context, username, passwordHash string) error {
	result := d.db.WithContext(ctx).
		Model(&Admin{}).
		Where("username = ?", username).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdminNotFound
	}

	return nil
}
