package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shareling/internal/common"
	"github.com/dmitrijs2005/shareling/internal/dbx"
	"github.com/dmitrijs2005/shareling/internal/server/models"
)

// PostgresRepository implements file storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new file record in "uploading" state.
func (r *PostgresRepository) Create(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO files (id, owner_id, original_file_name, content_type, size_bytes, storage_key, status, password_hash, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		file.ID, file.OwnerID, file.OriginalFileName, file.ContentType, file.SizeBytes,
		file.StorageKey, file.Status, file.PasswordHash, file.ExpiresAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByOwner returns all files registered by ownerID, newest first.
// Soft-deleted rows are included; filtering them is the caller's concern.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.File, error) {
	query := `
		SELECT id, owner_id, original_file_name, content_type, size_bytes, storage_key, status,
			password_hash, download_count, downloaded_at, created_at, expires_at
		FROM files
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.File
	for rows.Next() {
		var item models.File
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.OriginalFileName, &item.ContentType,
			&item.SizeBytes, &item.StorageKey, &item.Status, &item.PasswordHash,
			&item.DownloadCount, &item.DownloadedAt, &item.CreatedAt, &item.ExpiresAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns a single file record or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	query := `
		SELECT id, owner_id, original_file_name, content_type, size_bytes, storage_key, status,
			password_hash, download_count, downloaded_at, created_at, expires_at
		FROM files
		WHERE id = $1
	`
	item := &models.File{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.OwnerID,
		&item.OriginalFileName, &item.ContentType, &item.SizeBytes, &item.StorageKey,
		&item.Status, &item.PasswordHash, &item.DownloadCount, &item.DownloadedAt,
		&item.CreatedAt, &item.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// MarkReadyByStorageKey transitions a file from "uploading" to "ready" once
// the object write is confirmed, recording the observed object size.
// Exactly one row must be affected.
func (r *PostgresRepository) MarkReadyByStorageKey(ctx context.Context, storageKey string, sizeBytes int64) error {
	query := `UPDATE files SET status = $1, size_bytes = $2 WHERE storage_key = $3 AND status = $4`
	result, err := r.db.ExecContext(ctx, query, common.FileStatusReady, sizeBytes, storageKey, common.FileStatusUploading)
	if err != nil {
		return fmt.Errorf("failed to mark ready: %w", err)
	}
	ra, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return common.ErrorNotFound
	}
	return nil
}

// SoftDelete marks an owner's file as deleted. The payload is left in object
// storage for out-of-band cleanup. Returns ErrorNotFound when the file does
// not exist, belongs to someone else, or is already deleted.
func (r *PostgresRepository) SoftDelete(ctx context.Context, ownerID string, id string) error {
	query := `UPDATE files SET status = $1 WHERE id = $2 AND owner_id = $3 AND status <> $1`
	result, err := r.db.ExecContext(ctx, query, common.FileStatusDeleted, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	ra, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return common.ErrorNotFound
	}
	return nil
}

// RecordDownload bumps the download counter and stamps the download time.
func (r *PostgresRepository) RecordDownload(ctx context.Context, id string) error {
	query := `UPDATE files SET download_count = download_count + 1, downloaded_at = now() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to record download: %w", err)
	}
	return nil
}
