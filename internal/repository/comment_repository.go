package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"studiosite/internal/models"
)

const commentSelect = `
	SELECT c.comment_id, c.post_id, c.author_id, c.content, c.created_at, c.updated_at,
		u.user_id AS "author.user_id", u.username AS "author.username",
		u.first_name AS "author.first_name", u.last_name AS "author.last_name", u.avatar AS "author.avatar"
	FROM comments c
	JOIN users u ON u.user_id = c.author_id
`

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	now := time.Now()
	comment.CommentID = uuid.New().String()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	query := `
		INSERT INTO comments (comment_id, post_id, author_id, content, created_at, updated_at)
		VALUES (:comment_id, :post_id, :author_id, :content, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, comment)
	return wrapError("failed to create comment", err)
}

func (r *commentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	var comment models.Comment

	if err := r.db.GetContext(ctx, &comment, commentSelect+` WHERE c.comment_id = $1`, commentID); err != nil {
		return nil, wrapError(fmt.Sprintf("failed to get comment %s", commentID), err)
	}

	return &comment, nil
}

func (r *commentRepository) ListByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	comments := []models.Comment{}

	query := commentSelect + ` WHERE c.post_id = $1 ORDER BY c.created_at DESC`

	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, wrapError("failed to list comments", err)
	}

	return comments, nil
}

func (r *commentRepository) Delete(ctx context.Context, commentID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE comment_id = $1`, commentID)
	if err != nil {
		return wrapError("failed to delete comment", err)
	}

	return checkAffected("failed to delete comment", result)
}
