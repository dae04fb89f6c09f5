package repository

import (
	"context"
	"fmt"

	"github.com/CbIpok/energos/internal/domain"
	"github.com/CbIpok/energos/internal/repository/dao"
)

var (
	ErrReviewNotFound = dao.ErrReviewNotFound
	ErrCodeUsed       = dao.ErrCodeUsed
	ErrLikeExists     = dao.ErrLikeExists
)

type ReviewDAO interface {
	InsertRedeeming(ctx context.Context, review dao.Review, codeID uint) (dao.Review, error)
	FindByID(ctx context.Context, id uint) (dao.Review, error)
	ListAll(ctx context.Context) ([]dao.Review, error)
}

type LikeDAO interface {
	Insert(ctx context.Context, like dao.Like) (dao.Like, error)
	Exists(ctx context.Context, codeID, reviewID uint) (bool, error)
	CountsByReview(ctx context.Context) (map[uint]int, error)
}

// ReviewRepository owns both reviews and their likes.
type ReviewRepository struct {
	reviewDAO ReviewDAO
	likeDAO   LikeDAO
}

func NewReviewRepository(reviewDAO ReviewDAO, likeDAO LikeDAO) *ReviewRepository {
	return &ReviewRepository{
		reviewDAO: reviewDAO,
		likeDAO:   likeDAO,
	}
}

func (r *ReviewRepository) CreateRedeeming(ctx context.Context, review domain.Review, codeID uint) (domain.Review, error) {
	created, err := r.reviewDAO.InsertRedeeming(ctx, dao.Review{
		Username: review.Username,
		Drink:    review.Drink,
		Text:     review.Text,
	}, codeID)
	if err != nil {
		return domain.Review{}, fmt.Errorf("r.reviewDAO.InsertRedeeming -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id uint) (domain.Review, error) {
	found, err := r.reviewDAO.FindByID(ctx, id)
	if err != nil {
		return domain.Review{}, fmt.Errorf("r.reviewDAO.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ReviewRepository) ListAll(ctx context.Context) ([]domain.Review, error) {
	found, err := r.reviewDAO.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.reviewDAO.ListAll -> %w", err)
	}

	reviews := make([]domain.Review, 0, len(found))
	for _, rv := range found {
		reviews = append(reviews, r.daoToDomain(rv))
	}

	return reviews, nil
}

func (r *ReviewRepository) CreateLike(ctx context.Context, like domain.Like) (domain.Like, error) {
	created, err := r.likeDAO.Insert(ctx, dao.Like{
		ReviewID: like.ReviewID,
		CodeID:   like.CodeID,
		Username: like.Username,
	})
	if err != nil {
		return domain.Like{}, fmt.Errorf("r.likeDAO.Insert -> %w", err)
	}

	return domain.Like{
		ID:        created.ID,
		ReviewID:  created.ReviewID,
		CodeID:    created.CodeID,
		Username:  created.Username,
		CreatedAt: created.CreatedAt,
	}, nil
}

func (r *ReviewRepository) LikeExists(ctx context.Context, codeID, reviewID uint) (bool, error) {
	exists, err := r.likeDAO.Exists(ctx, codeID, reviewID)
	if err != nil {
		return false, fmt.Errorf("r.likeDAO.Exists -> %w", err)
	}

	return exists, nil
}

func (r *ReviewRepository) LikeCountsByReview(ctx context.Context) (map[uint]int, error) {
	counts, err := r.likeDAO.CountsByReview(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.likeDAO.CountsByReview -> %w", err)
	}

	return counts, nil
}

func (r *ReviewRepository) daoToDomain(rv dao.Review) domain.Review {
	return domain.Review{
		ID:        rv.ID,
		Username:  rv.Username,
		Drink:     rv.Drink,
		Text:      rv.Text,
		CreatedAt: rv.CreatedAt,
	}
}
