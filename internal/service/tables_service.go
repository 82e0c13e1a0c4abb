package service

import (
	"context"

	"studiosite/internal/repository"
)

type TablesService interface {
	Ping(ctx context.Context) error
	GetCountTablesBD(ctx context.Context) (int, error)
}

type tablesService struct {
	tablesRepo repository.TablesRepository
}

func NewTablesService(tablesRepo repository.TablesRepository) TablesService {
	return &tablesService{tablesRepo: tablesRepo}
}

func (t *tablesService) Ping(ctx context.Context) error {
	return t.tablesRepo.Ping(ctx)
}

func (t *tablesService) GetCountTablesBD(ctx context.Context) (int, error) {
	countTables, err := t.tablesRepo.CountTablesDB(ctx)
	if err != nil {
		return 0, err
	}

	return countTables, nil
}
