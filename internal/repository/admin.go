package repository

import (
	"context"
	"fmt"

	"github.com/CbIpok/energos/internal/domain"
	"github.com/CbIpok/energos/internal/repository/dao"
)

var ErrAdminNotFound = dao.ErrAdminNotFound

type AdminDAO interface {
	FindByUsername(ctx context.Context, username string) (dao.Admin, error)
	UpdatePasswordHash(ctx context.Context, username, passwordHash string) error
}

type AdminRepository struct {
	dao AdminDAO
}

func NewAdminRepository(dao AdminDAO) *AdminRepository {
	return &AdminRepository{
		dao: dao,
	}
}

func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (domain.Admin, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *AdminRepository) UpdatePasswordHash(ctx context.Context, username, passwordHash string) error {
	if err := r.dao.UpdatePasswordHash(ctx, username, passwordHash); err != nil {
		return fmt.Errorf("r.dao.UpdatePasswordHash -> %w", err)
	}

	return nil
}

func (r *AdminRepository) daoToDomain(a dao.Admin) domain.Admin {
	return domain.Admin{
		ID:           a.ID,
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
	}
}
