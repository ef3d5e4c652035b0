package files

import (
	"context"

	"github.com/dmitrijs2005/shareling/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, file *models.File) error
	ListByOwner(ctx context.Context, ownerID string) ([]*models.File, error)
	GetByID(ctx context.Context, id string) (*models.File, error)
	MarkReadyByStorageKey(ctx context.Context, storageKey string, sizeBytes int64) error
	SoftDelete(ctx context.Context, ownerID string, id string) error
	RecordDownload(ctx context.Context, id string) error
}
