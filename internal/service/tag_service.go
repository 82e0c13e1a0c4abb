package service

import (
	"context"
	"errors"

	"studiosite/internal/models"
	"studiosite/internal/repository"
)

type TagService interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	CreateTag(ctx context.Context, name string, color *string) (*models.Tag, error)
}

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.List(ctx)
}

func (s *tagService) CreateTag(ctx context.Context, name string, color *string) (*models.Tag, error) {
	tag := &models.Tag{Name: name, Color: color}

	if err := s.tagRepo.Create(ctx, tag); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrTagExists
		}
		return nil, err
	}

	return tag, nil
}
