package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"studiosite/internal/models"
)

const postSelect = `
	SELECT p.post_id, p.author_id, p.title, p.content, p.published, p.created_at, p.updated_at,
		u.user_id AS "author.user_id", u.username AS "author.username",
		u.first_name AS "author.first_name", u.last_name AS "author.last_name", u.avatar AS "author.avatar",
		(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.post_id) AS "count.comments",
		(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.post_id) AS "count.likes"
	FROM posts p
	JOIN users u ON u.user_id = p.author_id
`

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

type CreatePostRequest struct {
	AuthorID  string   `json:"authorId"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Published bool     `json:"published"`
	TagIDs    []string `json:"tagIds"`
}

// UpdatePostRequest carries a partial update; nil fields keep their stored value
// and a nil TagIDs keeps the current tag set.
type UpdatePostRequest struct {
	PostID    string    `json:"postId"`
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	Published *bool     `json:"published"`
	TagIDs    *[]string `json:"tagIds"`
}

type PostFilter struct {
	AuthorID      string
	PublishedOnly bool
	Search        string
	TagID         string
	Limit         int
	Offset        int
}

func (f PostFilter) where() (string, []interface{}) {
	var conditions []string
	var args []interface{}

	add := func(format string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(format, len(args)))
	}

	if f.PublishedOnly {
		conditions = append(conditions, "p.published = TRUE")
	}
	if f.AuthorID != "" {
		add("p.author_id = $%d", f.AuthorID)
	}
	if f.Search != "" {
		add("(p.title ILIKE $%[1]d OR p.content ILIKE $%[1]d)", "%"+escapeLike(f.Search)+"%")
	}
	if f.TagID != "" {
		add("EXISTS (SELECT 1 FROM post_tags pt WHERE pt.post_id = p.post_id AND pt.tag_id = $%d)", f.TagID)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post, tagIDs []string) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO posts (post_id, author_id, title, content, published, created_at, updated_at)
		VALUES (:post_id, :author_id, :title, :content, :published, :created_at, :updated_at)
	`

	if _, err := tx.NamedExecContext(ctx, query, post); err != nil {
		return wrapError("failed to create post", err)
	}

	if err := insertPostTags(ctx, tx, post.PostID, tagIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit post: %w", err)
	}

	return nil
}

func insertPostTags(ctx context.Context, tx *sqlx.Tx, postID string, tagIDs []string) error {
	for _, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			postID, tagID)
		if err != nil {
			return wrapError("failed to attach tag", err)
		}
	}
	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post

	if err := r.DB.GetContext(ctx, &post, postSelect+` WHERE p.post_id = $1`, postID); err != nil {
		return nil, wrapError(fmt.Sprintf("failed to get post %s", postID), err)
	}

	posts := []models.Post{post}
	if err := r.attachTags(ctx, posts); err != nil {
		return nil, err
	}

	return &posts[0], nil
}

func (r *PostRepositoryImpl) List(ctx context.Context, filter PostFilter) ([]models.Post, int, error) {
	where, args := filter.where()

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts p`+where, args...); err != nil {
		return nil, 0, wrapError("failed to count posts", err)
	}

	query := postSelect + where +
		fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	posts := []models.Post{}
	if err := r.DB.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, 0, wrapError("failed to list posts", err)
	}

	if err := r.attachTags(ctx, posts); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

type postTagRow struct {
	PostID string `db:"post_id"`
	models.Tag
}

func (r *PostRepositoryImpl) attachTags(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, len(posts))
	index := make(map[string]int, len(posts))
	for i := range posts {
		ids[i] = posts[i].PostID
		index[posts[i].PostID] = i
		posts[i].Tags = []models.Tag{}
	}

	query := `
		SELECT pt.post_id, t.tag_id, t.name, t.color
		FROM post_tags pt
		JOIN tags t ON t.tag_id = pt.tag_id
		WHERE pt.post_id = ANY($1)
		ORDER BY t.name
	`

	var rows []postTagRow
	if err := r.DB.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return wrapError("failed to load post tags", err)
	}

	for _, row := range rows {
		if i, ok := index[row.PostID]; ok {
			posts[i].Tags = append(posts[i].Tags, row.Tag)
		}
	}

	return nil
}

// Update writes title, content and published; tagIDs replaces the tag set unless nil.
func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post, tagIDs []string) error {
	post.UpdatedAt = time.Now()

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE posts SET
			title = :title,
			content = :content,
			published = :published,
			updated_at = :updated_at
		WHERE post_id = :post_id
	`

	result, err := tx.NamedExecContext(ctx, query, post)
	if err != nil {
		return wrapError("failed to update post", err)
	}
	if err := checkAffected("failed to update post", result); err != nil {
		return err
	}

	if tagIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, post.PostID); err != nil {
			return wrapError("failed to reset post tags", err)
		}
		if err := insertPostTags(ctx, tx, post.PostID, tagIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit post update: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE post_id = $1`, postID)
	if err != nil {
		return wrapError("failed to delete post", err)
	}

	return checkAffected("failed to delete post", result)
}

// ToggleLike removes the caller's like if present, otherwise adds it, and reports
// whether the post is liked afterwards. A concurrent duplicate insert yields ErrConflict.
func (r *PostRepositoryImpl) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return false, wrapError("failed to remove like", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	liked := removed == 0
	if liked {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO likes (user_id, post_id, created_at) VALUES ($1, $2, $3)`,
			userID, postID, time.Now())
		if err != nil {
			return false, wrapError("failed to add like", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit like: %w", err)
	}

	return liked, nil
}
