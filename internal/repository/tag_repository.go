package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"studiosite/internal/models"
)

type tagRepository struct {
	db *sqlx.DB
}

func NewTagRepository(db *sqlx.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}

	if err := r.db.SelectContext(ctx, &tags, `SELECT tag_id, name, color FROM tags ORDER BY name`); err != nil {
		return nil, wrapError("failed to list tags", err)
	}

	return tags, nil
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	tag.TagID = uuid.New().String()

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO tags (tag_id, name, color) VALUES (:tag_id, :name, :color)`, tag)
	return wrapError("failed to create tag", err)
}
