package service

import (
	"context"
	"errors"

	"studiosite/internal/models"
	"studiosite/internal/repository"
	"studiosite/internal/session"
)

type PostService interface {
	ListPosts(ctx context.Context, filter repository.PostFilter) ([]models.Post, int, error)
	GetPost(ctx context.Context, postID, viewerID string) (*models.Post, error)
	CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, caller session.Identity, req repository.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, caller session.Identity, postID string) error
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)
	AddComment(ctx context.Context, postID, userID, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, caller session.Identity, postID, commentID string) error
}

type postService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) PostService {
	return &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

func (p *postService) ListPosts(ctx context.Context, filter repository.PostFilter) ([]models.Post, int, error) {
	return p.postRepo.List(ctx, filter)
}

// GetPost returns the post with its comments. Drafts are visible to their author only.
func (p *postService) GetPost(ctx context.Context, postID, viewerID string) (*models.Post, error) {
	post, err := p.visiblePost(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}

	comments, err := p.commentRepo.ListByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Comments = comments

	return post, nil
}

func (p *postService) visiblePost(ctx context.Context, postID, viewerID string) (*models.Post, error) {
	post, err := p.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !post.Published && post.AuthorID != viewerID {
		return nil, ErrPostNotFound
	}

	return post, nil
}

func (p *postService) getPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		// malformed ids cannot match any post
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidInput) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return post, nil
}

func (p *postService) CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		AuthorID:  req.AuthorID,
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	}

	if err := p.postRepo.Create(ctx, post, req.TagIDs); err != nil {
		return nil, tagError(err)
	}

	return p.getPost(ctx, post.PostID)
}

func (p *postService) UpdatePost(ctx context.Context, caller session.Identity, req repository.UpdatePostRequest) (*models.Post, error) {
	post, err := p.getPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if !caller.CanModify(post.AuthorID) {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Published != nil {
		post.Published = *req.Published
	}

	var tagIDs []string
	if req.TagIDs != nil {
		tagIDs = *req.TagIDs
		if tagIDs == nil {
			tagIDs = []string{}
		}
	}

	if err := p.postRepo.Update(ctx, post, tagIDs); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, tagError(err)
	}

	return p.getPost(ctx, post.PostID)
}

func (p *postService) DeletePost(ctx context.Context, caller session.Identity, postID string) error {
	post, err := p.getPost(ctx, postID)
	if err != nil {
		return err
	}

	if !caller.CanModify(post.AuthorID) {
		return ErrForbidden
	}

	if err := p.postRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	return nil
}

// ToggleLike reports whether the post is liked by the user after the call.
func (p *postService) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	if _, err := p.visiblePost(ctx, postID, userID); err != nil {
		return false, err
	}

	liked, err := p.postRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidReference):
			return false, ErrPostNotFound
		case errors.Is(err, repository.ErrConflict):
			return false, ErrLikeConflict
		}
		return false, err
	}

	return liked, nil
}

func (p *postService) AddComment(ctx context.Context, postID, userID, content string) (*models.Comment, error) {
	if _, err := p.visiblePost(ctx, postID, userID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: userID,
		Content:  content,
	}

	if err := p.commentRepo.Create(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return p.commentRepo.GetByID(ctx, comment.CommentID)
}

func (p *postService) DeleteComment(ctx context.Context, caller session.Identity, postID, commentID string) error {
	comment, err := p.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidInput) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.PostID != postID {
		return ErrCommentNotFound
	}

	if !caller.CanModify(comment.AuthorID) {
		return ErrForbidden
	}

	if err := p.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	return nil
}

func tagError(err error) error {
	if errors.Is(err, repository.ErrInvalidReference) || errors.Is(err, repository.ErrInvalidInput) {
		return ErrInvalidTag
	}
	return err
}
