package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/CbIpok/energos/internal/domain"
	"github.com/CbIpok/energos/internal/repository"
)

var (
	ErrCodeAlreadyUsed   = repository.ErrCodeUsed
	ErrReviewNotFound    = repository.ErrReviewNotFound
	ErrAlreadyLiked      = errors.New("review already liked with this code")
	ErrLikeQuotaExceeded = errors.New("like quota exceeded")
	ErrSelfLike          = errors.New("cannot like own review")
)

type ReviewRepository interface {
	CreateRedeeming(ctx context.Context, review domain.Review, codeID uint) (domain.Review, error)
	FindByID(ctx context.Context, id uint) (domain.Review, error)
	ListAll(ctx context.Context) ([]domain.Review, error)
	CreateLike(ctx context.Context, like domain.Like) (domain.Like, error)
	LikeExists(ctx context.Context, codeID, reviewID uint) (bool, error)
	LikeCountsByReview(ctx context.Context) (map[uint]int, error)
}

// ReviewService enforces the one-review-per-code and one-like-per-review
// rules. Each code may like a given review once, and a session holds a single
// like that is replenished only by submitting another review.
type ReviewService struct {
	repo  ReviewRepository
	codes CodeRepository
}

func NewReviewService(repo ReviewRepository, codes CodeRepository) *ReviewService {
	return &ReviewService{
		repo:  repo,
		codes: codes,
	}
}

// Submit persists the review and finalizes the redemption of the backing
// code. A second submission with the same code fails with ErrCodeAlreadyUsed
// and creates nothing.
func (s *ReviewService) Submit(ctx context.Context, codeToken, username, drink, text string) (domain.Review, error) {
	code, err := s.codes.FindByToken(ctx, codeToken)
	if err != nil {
		return domain.Review{}, fmt.Errorf("s.codes.FindByToken -> %w", err)
	}

	created, err := s.repo.CreateRedeeming(ctx, domain.Review{
		Username: username,
		Drink:    drink,
		Text:     text,
	}, code.ID)
	if err != nil {
		return domain.Review{}, fmt.Errorf("s.repo.CreateRedeeming -> %w", err)
	}

	return created, nil
}

// Like applies the per-review like rules in order: the session must map to a
// known code, the code must not have liked this review before, the session
// quota must be free, the review must exist and not be the liker's own.
func (s *ReviewService) Like(ctx context.Context, codeToken, username string, likesUsed int, reviewID uint) error {
	code, err := s.codes.FindByToken(ctx, codeToken)
	if err != nil {
		return fmt.Errorf("s.codes.FindByToken -> %w", err)
	}

	liked, err := s.repo.LikeExists(ctx, code.ID, reviewID)
	if err != nil {
		return fmt.Errorf("s.repo.LikeExists -> %w", err)
	}
	if liked {
		return ErrAlreadyLiked
	}

	if likesUsed >= 1 {
		return ErrLikeQuotaExceeded
	}

	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if review.Username == username {
		return ErrSelfLike
	}

	_, err = s.repo.CreateLike(ctx, domain.Like{
		ReviewID: reviewID,
		CodeID:   code.ID,
		Username: username,
	})
	if err != nil {
		// The unique index catches a concurrent duplicate that slipped
		// past the existence check.
		if errors.Is(err, repository.ErrLikeExists) {
			return ErrAlreadyLiked
		}

		return fmt.Errorf("s.repo.CreateLike -> %w", err)
	}

	return nil
}

// ListRated returns all reviews with their like counts, most liked first.
// Ties keep insertion order.
func (s *ReviewService) ListRated(ctx context.Context) ([]domain.RatedReview, error) {
	reviews, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListAll -> %w", err)
	}

	counts, err := s.repo.LikeCountsByReview(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.LikeCountsByReview -> %w", err)
	}

	rated := make([]domain.RatedReview, 0, len(reviews))
	for _, review := range reviews {
		rated = append(rated, domain.RatedReview{
			Review: review,
			Likes:  counts[review.ID],
		})
	}

	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Likes > rated[j].Likes
	})

	return rated, nil
}
