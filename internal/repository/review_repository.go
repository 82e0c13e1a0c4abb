package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"studiosite/internal/models"
)

const reviewSelect = `
	SELECT r.review_id, r.author_id, r.rating, r.content, r.is_approved, r.created_at, r.updated_at,
		u.user_id AS "author.user_id", u.username AS "author.username",
		u.first_name AS "author.first_name", u.last_name AS "author.last_name", u.avatar AS "author.avatar"
	FROM reviews r
	JOIN users u ON u.user_id = r.author_id
`

type reviewRepository struct {
	db *sqlx.DB
}

// ReviewFilter selects reviews by approval state; nil Approved means all.
type ReviewFilter struct {
	Approved *bool
	Limit    int
	Offset   int
}

type UpdateReviewRequest struct {
	ReviewID string  `json:"reviewId"`
	Rating   *int    `json:"rating"`
	Content  *string `json:"content"`
}

func NewReviewRepository(db *sqlx.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	now := time.Now()
	review.ReviewID = uuid.New().String()
	review.CreatedAt = now
	review.UpdatedAt = now

	query := `
		INSERT INTO reviews (review_id, author_id, rating, content, is_approved, created_at, updated_at)
		VALUES (:review_id, :author_id, :rating, :content, :is_approved, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, review)
	return wrapError("failed to create review", err)
}

func (r *reviewRepository) GetByID(ctx context.Context, reviewID string) (*models.Review, error) {
	var review models.Review

	if err := r.db.GetContext(ctx, &review, reviewSelect+` WHERE r.review_id = $1`, reviewID); err != nil {
		return nil, wrapError(fmt.Sprintf("failed to get review %s", reviewID), err)
	}

	return &review, nil
}

func (r *reviewRepository) GetByAuthorID(ctx context.Context, authorID string) (*models.Review, error) {
	var review models.Review

	if err := r.db.GetContext(ctx, &review, reviewSelect+` WHERE r.author_id = $1`, authorID); err != nil {
		return nil, wrapError("failed to get review by author", err)
	}

	return &review, nil
}

func (r *reviewRepository) List(ctx context.Context, filter ReviewFilter) ([]models.Review, int, error) {
	where := ""
	var args []interface{}
	if filter.Approved != nil {
		where = " WHERE r.is_approved = $1"
		args = append(args, *filter.Approved)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM reviews r`+where, args...); err != nil {
		return nil, 0, wrapError("failed to count reviews", err)
	}

	query := reviewSelect + where +
		fmt.Sprintf(" ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	reviews := []models.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, 0, wrapError("failed to list reviews", err)
	}

	return reviews, total, nil
}

// Update rewrites rating and content only while the review is still unapproved.
func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	review.UpdatedAt = time.Now()

	query := `
		UPDATE reviews SET rating = :rating, content = :content, updated_at = :updated_at
		WHERE review_id = :review_id AND is_approved = FALSE
	`

	result, err := r.db.NamedExecContext(ctx, query, review)
	if err != nil {
		return wrapError("failed to update review", err)
	}

	return checkAffected("failed to update review", result)
}

func (r *reviewRepository) SetApproval(ctx context.Context, reviewID string, approved bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET is_approved = $1, updated_at = $2 WHERE review_id = $3`,
		approved, time.Now(), reviewID)
	if err != nil {
		return wrapError("failed to set review approval", err)
	}

	return checkAffected("failed to set review approval", result)
}

func (r *reviewRepository) Delete(ctx context.Context, reviewID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE review_id = $1`, reviewID)
	if err != nil {
		return wrapError("failed to delete review", err)
	}

	return checkAffected("failed to delete review", result)
}
