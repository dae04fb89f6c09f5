package repository

import (
	"context"
	"fmt"

	"github.com/CbIpok/energos/internal/domain"
	"github.com/CbIpok/energos/internal/repository/dao"
)

var (
	ErrCodeExists   = dao.ErrCodeExists
	ErrCodeNotFound = dao.ErrCodeNotFound
)

type CodeDAO interface {
	Insert(ctx context.Context, code dao.Code) (dao.Code, error)
	FindUnused(ctx context.Context, token string) (dao.Code, error)
	FindByToken(ctx context.Context, token string) (dao.Code, error)
	ListNewestFirst(ctx context.Context) ([]dao.Code, error)
}

type CodeRepository struct {
	dao CodeDAO
}

func NewCodeRepository(dao CodeDAO) *CodeRepository {
	return &CodeRepository{
		dao: dao,
	}
}

func (r *CodeRepository) Create(ctx context.Context, code domain.Code) (domain.Code, error) {
	created, err := r.dao.Insert(ctx, dao.Code{
		Code:     code.Code,
		Username: code.Username,
		Drink:    code.Drink,
		Used:     code.Used,
	})
	if err != nil {
		return domain.Code{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *CodeRepository) FindUnused(ctx context.Context, token string) (domain.Code, error) {
	found, err := r.dao.FindUnused(ctx, token)
	if err != nil {
		return domain.Code{}, fmt.Errorf("r.dao.FindUnused -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CodeRepository) FindByToken(ctx context.Context, token string) (domain.Code, error) {
	found, err := r.dao.FindByToken(ctx, token)
	if err != nil {
		return domain.Code{}, fmt.Errorf("r.dao.FindByToken -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CodeRepository) ListNewestFirst(ctx context.Context) ([]domain.Code, error) {
	found, err := r.dao.ListNewestFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListNewestFirst -> %w", err)
	}

	codes := make([]domain.Code, 0, len(found))
	for _, c := range found {
		codes = append(codes, r.daoToDomain(c))
	}

	return codes, nil
}

func (r *CodeRepository) daoToDomain(c dao.Code) domain.Code {
	return domain.Code{
		ID:        c.ID,
		Code:      c.Code,
		Username:  c.Username,
		Drink:     c.Drink,
		Used:      c.Used,
		CreatedAt: c.CreatedAt,
	}
}
