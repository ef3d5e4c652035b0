// Package models defines server-side data models persisted in the database.
package models

import "time"

// File describes server-side metadata for an uploaded file. The payload
// itself lives in object storage under StorageKey; the database holds only
// metadata and lifecycle state.
type File struct {
	// ID is the server-assigned file identifier (UUID).
	ID string
	// OwnerID is the account that registered the upload.
	OwnerID string

	// OriginalFileName is the name the file was uploaded under.
	OriginalFileName string
	// ContentType is the MIME type declared at registration.
	ContentType string
	// SizeBytes is the declared payload size. Zero is a valid size.
	SizeBytes int64

	// StorageKey is the object-storage key of the payload.
	StorageKey string

	// Status tracks the file lifecycle: "uploading" until the object write
	// is confirmed, then "ready", and "deleted" after a soft delete.
	Status string

	// PasswordHash is non-empty when the share link is password protected.
	PasswordHash string

	// DownloadCount is the number of completed downloads.
	DownloadCount int64
	// DownloadedAt is the time of the most recent download, if any.
	DownloadedAt *time.Time

	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the file's share link has passed its expiry.
func (f *File) Expired(now time.Time) bool {
	return !f.ExpiresAt.IsZero() && now.After(f.ExpiresAt)
}
