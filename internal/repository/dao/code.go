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

var (
	ErrCodeExists   = errors.New("code already exists")
	ErrCodeNotFound = errors.New("code not found")
	ErrCodeUsed     = errors.New("code already used")
)

type Code struct {
	ID uint `gorm:"primaryKey"`

	Code     string `gorm:"uniqueIndex:idx_codes_code;not null;size:64"`
	Username string `gorm:"not null;size:64"`
	Drink    string `gorm:"not null;size:64"`
	Used     bool   `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
}

type CodeDAO struct {
	db *gorm.DB
}

func NewCodeDAO(db *gorm.DB) *CodeDAO {
	return &CodeDAO{
		db: db,
	}
}

func (d *CodeDAO) Insert(ctx context.Context, code Code) (Code, error) {
	result := d.db.WithContext(ctx).Create(&code)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, "idx_codes_code") {
			return Code{}, ErrCodeExists
		}

		return Code{}, result.Error
	}

	return code, nil
}

// FindUnused looks up a code by its token, restricted to codes that have not
// been redeemed yet. A used code is indistinguishable from a missing one.
func (d *CodeDAO) FindUnused(ctx context.Context, token string) (Code, error) {
	var code Code

	result := d.db.WithContext(ctx).First(&code, "code = ? AND used = ?", token, false)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Code{}, ErrCodeNotFound
		}

		return Code{}, result.Error
	}

	return code, nil
}

func (d *CodeDAO) FindByToken(ctx context.Context, token string) (Code, error) {
	var code Code

	result := d.db.WithContext(ctx).First(&code, "code = ?", token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Code{}, ErrCodeNotFound
		}

		return Code{}, result.Error
	}

	return code, nil
}

func (d *CodeDAO) ListNewestFirst(ctx context.Context) ([]Code, error) {
	var codes []Code

	result := d.db.WithContext(ctx).Order("id DESC").Find(&codes)
	if result.Error != nil {
		return nil, result.Error
	}

	return codes, nil
}
