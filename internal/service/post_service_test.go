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
	"studiosite/internal/session"
)

var (
	owner    = session.Identity{UserID: "owner", Role: models.RoleUser}
	stranger = session.Identity{UserID: "stranger", Role: models.RoleUser}
	admin    = session.Identity{UserID: "admin", Role: models.RoleAdmin}
)

func newPostService() (PostService, *MockPostRepository, *MockCommentRepository) {
	posts := new(MockPostRepository)
	comments := new(MockCommentRepository)
	return NewPostService(posts, comments), posts, comments
}

func TestPostService_GetPost(t *testing.T) {
	ctx := context.Background()

	t.Run("published post with comments", func(t *testing.T) {
		svc, posts, comments := newPostService()
		posts.On("GetByID", ctx, "post-1").Return(&models.Post{PostID: "post-1", AuthorID: "owner", Published: true}, nil)
		comments.On("ListByPostID", ctx, "post-1").Return([]models.Comment{{CommentID: "c1"}}, nil)

		post, err := svc.GetPost(ctx, "post-1", "")

		require.NoError(t, err)
		assert.Len(t, post.Comments, 1)
	})

	t.Run("draft hidden from others", func(t *testing.T) {
		svc, posts, _ := newPostService()
		posts.On("GetByID", ctx, "post-1").Return(&models.Post{PostID: "post-1", AuthorID: "owner"}, nil)

		_, err := svc.GetPost(ctx, "post-1", "stranger")
		assert.ErrorIs(t, err, ErrPostNotFound)

		_, err = svc.GetPost(ctx, "post-1", "")
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("draft visible to author", func(t *testing.T) {
		svc, posts, comments := newPostService()
		posts.On("GetByID", ctx, "post-1").Return(&models.Post{PostID: "post-1", AuthorID: "owner"}, nil)
		comments.On("ListByPostID", ctx, "post-1").Return([]models.Comment{}, nil)

		_, err := svc.GetPost(ctx, "post-1", "owner")
		assert.NoError(t, err)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc, posts, _ := newPostService()
		posts.On("GetByID", ctx, "nope").Return(nil, fmt.Errorf("get: %w", repository.ErrInvalidInput))

		_, err := svc.GetPost(ctx, "nope", "")
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestPostService_CreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("success reloads post", func(t *testing.T) {
		svc, posts, _ := newPostService()
		posts.On("Create", ctx, mock.AnythingOfType("*models.Post"), []string{"tag-1"}).
			Run(func(args mock.Arguments) { args.Get(1).(*models.Post).PostID = "post-1" }).
			Return(nil)
		posts.On("GetByID", ctx, "post-1").
			Return(&models.Post{PostID: "post-1", Tags: []models.Tag{{TagID: "tag-1"}}}, nil)

		post, err := svc.CreatePost(ctx, repository.CreatePostRequest{AuthorID: "owner", Title: "T", Content: "C", TagIDs: []string{"tag-1"}})

		require.NoError(t, err)
		assert.Len(t, post.Tags, 1)
	})

	t.Run("unknown tag", func(t *testing.T) {
		svc, posts, _ := newPostService()
		posts.On("Create", ctx, mock.Anything, []string{"missing"}).
			Return(fmt.Errorf("insert: %w", repository.ErrInvalidReference))

		_, err := svc.CreatePost(ctx, repository.CreatePostRequest{TagIDs: []string{"missing"}})

		assert.ErrorIs(t, err, ErrInvalidTag)
	})
}

func TestPostService_UpdatePost(t *testing.T) {
	ctx := context.Background()
	title := "New title"

	t.Run("stranger is forbidden", func(t *testing.T) {
		svc, posts, _ := newPostService()
		posts.On("GetByID", ctx, "post-1").Return(&models.Post{PostID: "post-1", AuthorID: "owner", Title: "Old"}, nil)

		_, err := svc.UpdatePost(ctx, stranger, repository.UpdatePostRequest{PostID: "post-1", Title: &title})

		assert.ErrorIs(t, err, ErrForbidden)
		posts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("admin may edit and clear tags", func(t *testing.T) {
		svc, posts, _ := newPostService()
		empty := []string{}
		posts.On("GetByID", ctx, "post-1").Return(&models.Post{PostID: "post-1", AuthorID: "owner", Title: "Old", Content: "Body"}, nil)
		posts.On("Update", ctx, mock.MatchedBy(func(p *models.Post) bool {
			return p.Title == "New title" && p.Content == "Body"
		}), []string{}).Return(nil)

		_, err := svc.UpdatePost(ctx, admin, repository.UpdatePostRequest{PostID: "post-1", Title: &title, TagIDs: &empty})

		require.NoError(t, err)
		posts.AssertExpectations(t)
	})

	t.Run("owner keeps tags when omitted", func(t *testing.T) {
		svc, posts, _ := newPostService()
		published := true
		posts.On("GetByID", ctx, "post-1").Return(&models.Post{PostID: "post-1", AuthorID: "owner"}, nil)
		posts.On("Update", ctx, mock.MatchedBy(func(p *models.Post) bool { return p.Published }), []string(nil)).Return(nil)

		_, err := svc.UpdatePost(ctx, owner, repository.UpdatePostRequest{PostID: "post-1", Published: &published})

		require.NoError(t, err)
		posts.AssertExpectations(t)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	ctx := context.Background()

	svc, posts, _ := newPostService()
	posts.On("GetByID", ctx, "post-1").Return(&models.Post{PostID: "post-1", AuthorID: "owner"}, nil)
	posts.On("Delete", ctx, "post-1").Return(nil).Once()

	assert.ErrorIs(t, svc.DeletePost(ctx, stranger, "post-1"), ErrForbidden)
	assert.NoError(t, svc.DeletePost(ctx, owner, "post-1"))
	posts.AssertExpectations(t)

	posts.On("GetByID", ctx, "gone").Return(nil, repository.ErrNotFound)
	assert.ErrorIs(t, svc.DeletePost(ctx, admin, "gone"), ErrPostNotFound)
}

func TestPostService_ToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("toggles", func(t *testing.T) {
		svc, posts, _ := newPostService()
		posts.On("GetByID", ctx, "post-1").Return(&models.Post{PostID: "post-1", Published: true}, nil)
		posts.On("ToggleLike", ctx, "post-1", "u1").Return(true, nil).Once()
		posts.On("ToggleLike", ctx, "post-1", "u1").Return(false, nil).Once()

		liked, err := svc.ToggleLike(ctx, "post-1", "u1")
		require.NoError(t, err)
		assert.True(t, liked)

		liked, err = svc.ToggleLike(ctx, "post-1", "u1")
		require.NoError(t, err)
		assert.False(t, liked)
	})

	t.Run("missing post", func(t *testing.T) {
		svc, posts, _ := newPostService()
		posts.On("GetByID", ctx, "gone").Return(nil, repository.ErrNotFound)

		_, err := svc.ToggleLike(ctx, "gone", "u1")
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("concurrent duplicate", func(t *testing.T) {
		svc, posts, _ := newPostService()
		posts.On("GetByID", ctx, "post-1").Return(&models.Post{PostID: "post-1", Published: true}, nil)
		posts.On("ToggleLike", ctx, "post-1", "u1").Return(false, fmt.Errorf("like: %w", repository.ErrConflict))

		_, err := svc.ToggleLike(ctx, "post-1", "u1")
		assert.ErrorIs(t, err, ErrLikeConflict)
	})
}

func TestPostService_Comments(t *testing.T) {
	ctx := context.Background()

	t.Run("add", func(t *testing.T) {
		svc, posts, comments := newPostService()
		posts.On("GetByID", ctx, "post-1").Return(&models.Post{PostID: "post-1", Published: true}, nil)
		comments.On("Create", ctx, mock.MatchedBy(func(c *models.Comment) bool {
			return c.PostID == "post-1" && c.AuthorID == "u1" && c.Content == "hi"
		})).Run(func(args mock.Arguments) { args.Get(1).(*models.Comment).CommentID = "c1" }).Return(nil)
		comments.On("GetByID", ctx, "c1").Return(&models.Comment{CommentID: "c1", Author: models.UserSummary{Username: "abc"}}, nil)

		comment, err := svc.AddComment(ctx, "post-1", "u1", "hi")

		require.NoError(t, err)
		assert.Equal(t, "abc", comment.Author.Username)
	})

	t.Run("delete checks ownership and post", func(t *testing.T) {
		svc, _, comments := newPostService()
		comments.On("GetByID", ctx, "c1").Return(&models.Comment{CommentID: "c1", PostID: "post-1", AuthorID: "owner"}, nil)
		comments.On("Delete", ctx, "c1").Return(nil).Once()

		assert.ErrorIs(t, svc.DeleteComment(ctx, owner, "post-2", "c1"), ErrCommentNotFound)
		assert.ErrorIs(t, svc.DeleteComment(ctx, stranger, "post-1", "c1"), ErrForbidden)
		assert.NoError(t, svc.DeleteComment(ctx, admin, "post-1", "c1"))
		comments.AssertExpectations(t)
	})
}
