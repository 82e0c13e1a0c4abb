package service

import (
	"context"
	"errors"

	"studiosite/internal/models"
	"studiosite/internal/repository"
	"studiosite/internal/session"
)

type ReviewService interface {
	ListReviews(ctx context.Context, filter repository.ReviewFilter) ([]models.Review, int, error)
	MyReviews(ctx context.Context, userID string) ([]models.Review, error)
	CreateReview(ctx context.Context, userID string, rating int, content string) (*models.Review, error)
	UpdateReview(ctx context.Context, caller session.Identity, req repository.UpdateReviewRequest) (*models.Review, error)
	DeleteReview(ctx context.Context, caller session.Identity, reviewID string) error
	SetApproval(ctx context.Context, reviewID string, approved bool) (*models.Review, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo}
}

func (s *reviewService) ListReviews(ctx context.Context, filter repository.ReviewFilter) ([]models.Review, int, error) {
	return s.reviewRepo.List(ctx, filter)
}

// MyReviews returns the caller's review as a list with at most one element.
func (s *reviewService) MyReviews(ctx context.Context, userID string) ([]models.Review, error) {
	review, err := s.reviewRepo.GetByAuthorID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []models.Review{}, nil
		}
		return nil, err
	}

	return []models.Review{*review}, nil
}

func (s *reviewService) CreateReview(ctx context.Context, userID string, rating int, content string) (*models.Review, error) {
	_, err := s.reviewRepo.GetByAuthorID(ctx, userID)
	if err == nil {
		return nil, ErrReviewExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	review := &models.Review{
		AuthorID: userID,
		Rating:   rating,
		Content:  content,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	return s.getReview(ctx, review.ReviewID)
}

// UpdateReview edits a pending review. The approval flag is left untouched, so
// an edited pending review stays pending.
func (s *reviewService) UpdateReview(ctx context.Context, caller session.Identity, req repository.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.getReview(ctx, req.ReviewID)
	if err != nil {
		return nil, err
	}

	if !caller.CanModify(review.AuthorID) {
		return nil, ErrForbidden
	}

	if review.IsApproved {
		return nil, ErrReviewApproved
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Content != nil {
		review.Content = *req.Content
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		// approved or deleted after it was read
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewApproved
		}
		return nil, err
	}

	return s.getReview(ctx, review.ReviewID)
}

func (s *reviewService) DeleteReview(ctx context.Context, caller session.Identity, reviewID string) error {
	review, err := s.getReview(ctx, reviewID)
	if err != nil {
		return err
	}

	if !caller.CanModify(review.AuthorID) {
		return ErrForbidden
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	return nil
}

func (s *reviewService) SetApproval(ctx context.Context, reviewID string, approved bool) (*models.Review, error) {
	if err := s.reviewRepo.SetApproval(ctx, reviewID, approved); err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidInput) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	return s.getReview(ctx, reviewID)
}

func (s *reviewService) getReview(ctx context.Context, reviewID string) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidInput) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	return review, nil
}
