package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"studiosite/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID, password string) error
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	VerifyPasswordByID(ctx context.Context, userID, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post, tagIDs []string) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	List(ctx context.Context, filter PostFilter) ([]models.Post, int, error)
	Update(ctx context.Context, post *models.Post, tagIDs []string) error
	Delete(ctx context.Context, postID string) error
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	ListByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	Delete(ctx context.Context, commentID string) error
}

type TagRepository interface {
	List(ctx context.Context) ([]models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, reviewID string) (*models.Review, error)
	GetByAuthorID(ctx context.Context, authorID string) (*models.Review, error)
	List(ctx context.Context, filter ReviewFilter) ([]models.Review, int, error)
	Update(ctx context.Context, review *models.Review) error
	SetApproval(ctx context.Context, reviewID string, approved bool) error
	Delete(ctx context.Context, reviewID string) error
}

type TablesRepository interface {
	Ping(ctx context.Context) error
	CountTablesDB(ctx context.Context) (int, error)
}

type Repository struct {
	User    UserRepository
	Post    PostRepository
	Comment CommentRepository
	Tag     TagRepository
	Review  ReviewRepository
	Tables  TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Tag:     NewTagRepository(db),
		Review:  NewReviewRepository(db),
		Tables:  NewTablesRepository(db),
	}
}
