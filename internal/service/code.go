package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/CbIpok/energos/internal/domain"
	"github.com/CbIpok/energos/internal/repository"
)

var (
	// ErrInvalidCode covers both an unknown token and an already redeemed one.
	ErrInvalidCode = repository.ErrCodeNotFound

	ErrCodeExists = repository.ErrCodeExists
)

type CodeRepository interface {
	Create(ctx context.Context, code domain.Code) (domain.Code, error)
	FindUnused(ctx context.Context, token string) (domain.Code, error)
	FindByToken(ctx context.Context, token string) (domain.Code, error)
	ListNewestFirst(ctx context.Context) ([]domain.Code, error)
}

// CodeService issues invite codes and redeems them into a guest identity.
// A code is marked used only when its review lands, not at redemption.
type CodeService struct {
	repo CodeRepository
}

func NewCodeService(repo CodeRepository) *CodeService {
	return &CodeService{
		repo: repo,
	}
}

func (s *CodeService) Issue(ctx context.Context, username, drink string) (domain.Code, error) {
	// First segment of a v4 UUID: 8 hex chars, collisions are backstopped
	// by the unique index on the token column.
	token := strings.SplitN(uuid.New().String(), "-", 2)[0]

	created, err := s.repo.Create(ctx, domain.Code{
		Code:     token,
		Username: username,
		Drink:    drink,
		Used:     false,
	})
	if err != nil {
		return domain.Code{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CodeService) Redeem(ctx context.Context, token string) (domain.Code, error) {
	code, err := s.repo.FindUnused(ctx, token)
	if err != nil {
		return domain.Code{}, fmt.Errorf("s.repo.FindUnused -> %w", err)
	}

	return code, nil
}

func (s *CodeService) ListCodes(ctx context.Context) ([]domain.Code, error) {
	codes, err := s.repo.ListNewestFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListNewestFirst -> %w", err)
	}

	return codes, nil
}
