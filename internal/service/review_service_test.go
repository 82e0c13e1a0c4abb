package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"studiosite/internal/models"
	"studiosite/internal/repository"
)

func TestReviewService_CreateReview(t *testing.T) {
	ctx := context.Background()

	t.Run("first review is pending", func(t *testing.T) {
		repo := new(MockReviewRepository)
		svc := NewReviewService(repo)

		repo.On("GetByAuthorID", ctx, "u1").Return(nil, repository.ErrNotFound)
		repo.On("Create", ctx, mock.MatchedBy(func(r *models.Review) bool {
			return r.AuthorID == "u1" && r.Rating == 3 && !r.IsApproved
		})).Run(func(args mock.Arguments) { args.Get(1).(*models.Review).ReviewID = "r1" }).Return(nil)
		repo.On("GetByID", ctx, "r1").Return(&models.Review{ReviewID: "r1", AuthorID: "u1", Rating: 3}, nil)

		review, err := svc.CreateReview(ctx, "u1", 3, "Good service overall, would recommend.")

		require.NoError(t, err)
		assert.False(t, review.IsApproved)
		repo.AssertExpectations(t)
	})

	t.Run("second review conflicts", func(t *testing.T) {
		repo := new(MockReviewRepository)
		svc := NewReviewService(repo)

		repo.On("GetByAuthorID", ctx, "u1").Return(&models.Review{ReviewID: "r1"}, nil)

		_, err := svc.CreateReview(ctx, "u1", 5, "Another review text")

		assert.ErrorIs(t, err, ErrReviewExists)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("race on unique author", func(t *testing.T) {
		repo := new(MockReviewRepository)
		svc := NewReviewService(repo)

		repo.On("GetByAuthorID", ctx, "u1").Return(nil, repository.ErrNotFound)
		repo.On("Create", ctx, mock.Anything).Return(fmt.Errorf("create: %w", repository.ErrConflict))

		_, err := svc.CreateReview(ctx, "u1", 5, "Another review text")

		assert.ErrorIs(t, err, ErrReviewExists)
	})
}

func TestReviewService_UpdateReview(t *testing.T) {
	ctx := context.Background()
	rating := 5

	tests := []struct {
		name    string
		stored  models.Review
		update  error
		wantErr error
	}{
		{
			name:   "owner edits pending review",
			stored: models.Review{ReviewID: "r1", AuthorID: "owner"},
		},
		{
			name:    "approved review is locked",
			stored:  models.Review{ReviewID: "r1", AuthorID: "owner", IsApproved: true},
			wantErr: ErrReviewApproved,
		},
		{
			name:    "approved between read and write",
			stored:  models.Review{ReviewID: "r1", AuthorID: "owner"},
			update:  fmt.Errorf("update: %w", repository.ErrNotFound),
			wantErr: ErrReviewApproved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockReviewRepository)
			svc := NewReviewService(repo)

			stored := tt.stored
			repo.On("GetByID", ctx, "r1").Return(&stored, nil)
			repo.On("Update", ctx, mock.Anything).Return(tt.update).Maybe()

			review, err := svc.UpdateReview(ctx, owner, repository.UpdateReviewRequest{ReviewID: "r1", Rating: &rating})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 5, review.Rating)
			assert.False(t, review.IsApproved)
		})
	}

	t.Run("stranger is forbidden", func(t *testing.T) {
		repo := new(MockReviewRepository)
		svc := NewReviewService(repo)
		repo.On("GetByID", ctx, "r1").Return(&models.Review{ReviewID: "r1", AuthorID: "owner"}, nil)

		_, err := svc.UpdateReview(ctx, stranger, repository.UpdateReviewRequest{ReviewID: "r1", Rating: &rating})

		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestReviewService_DeleteReview(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReviewRepository)
	svc := NewReviewService(repo)

	repo.On("GetByID", ctx, "r1").Return(&models.Review{ReviewID: "r1", AuthorID: "owner", IsApproved: true}, nil)
	repo.On("Delete", ctx, "r1").Return(nil).Twice()

	assert.ErrorIs(t, svc.DeleteReview(ctx, stranger, "r1"), ErrForbidden)
	assert.NoError(t, svc.DeleteReview(ctx, owner, "r1"))
	assert.NoError(t, svc.DeleteReview(ctx, admin, "r1"))
	repo.AssertExpectations(t)
}

func TestReviewService_MyReviewsAndApproval(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReviewRepository)
	svc := NewReviewService(repo)

	repo.On("GetByAuthorID", ctx, "u1").Return(nil, repository.ErrNotFound)
	reviews, err := svc.MyReviews(ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)

	repo.On("SetApproval", ctx, "r1", true).Return(nil)
	repo.On("GetByID", ctx, "r1").Return(&models.Review{ReviewID: "r1", IsApproved: true}, nil)
	review, err := svc.SetApproval(ctx, "r1", true)
	require.NoError(t, err)
	assert.True(t, review.IsApproved)

	repo.On("SetApproval", ctx, "missing", false).Return(repository.ErrNotFound)
	_, err = svc.SetApproval(ctx, "missing", false)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}
