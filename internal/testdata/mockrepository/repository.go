package mockrepository

import (
	"context"

	"global-terrorism-dashboard/internal/model"
	"global-terrorism-dashboard/internal/repository"

	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

// Interface compliance check
var _ repository.ActionRepository = &Repository{}

func (m *Repository) CreateBatch(ctx context.Context, entries []model.JournalEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *Repository) CountByAction(ctx context.Context) (map[string]uint64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[string]uint64)
	return counts, args.Error(1)
}
