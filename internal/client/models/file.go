// Package models defines client-side views of broker-owned entities.
package models

import "time"

// FileRecord is the broker-owned description of one uploaded object. The
// client only ever receives and renders records; it never constructs one and
// never changes a status itself.
type FileRecord struct {
	FileID           string     `json:"fileId"`
	OriginalFileName string     `json:"originalFileName,omitempty"`
	ContentType      string     `json:"contentType,omitempty"`
	// SizeBytes is nil when the broker does not know the size yet.
	SizeBytes        *int64     `json:"sizeBytes,omitempty"`
	Status           string     `json:"status,omitempty"`
	CreatedAt        *time.Time `json:"createdAt,omitempty"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
	PasswordRequired bool       `json:"passwordRequired,omitempty"`
	DownloadCount    int64      `json:"downloadCount,omitempty"`
	DownloadedAt     *time.Time `json:"downloadedAt,omitempty"`
}

// Expired reports whether the record's expiry moment is already past. An
// expired record is functionally unavailable regardless of its status.
func (f *FileRecord) Expired(now time.Time) bool {
	return f.ExpiresAt != nil && f.ExpiresAt.Before(now)
}
