package httpapi

import (
	"time"

	"github.com/dmitrijs2005/shareling/internal/netx"
	"github.com/dmitrijs2005/shareling/internal/server/models"
)

type credentialsRequest struct {
	UserName string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerUploadRequest struct {
	OriginalFileName string `json:"originalFileName"`
	ContentType      string `json:"contentType"`
	SizeBytes        int64  `json:"sizeBytes"`
	ExpiresInDays    int    `json:"expiresInDays"`
	Password         string `json:"password"`
}

type registerUploadResponse struct {
	FileID string          `json:"fileId"`
	Upload netx.Credential `json:"upload"`
}

type confirmObjectRequest struct {
	StorageKey string `json:"storageKey" binding:"required"`
	SizeBytes  int64  `json:"sizeBytes"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type errorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// fileRecord is the wire projection of a file, shared by the owner list and
// the public metadata endpoint.
type fileRecord struct {
	FileID           string     `json:"fileId"`
	OriginalFileName string     `json:"originalFileName"`
	ContentType      string     `json:"contentType"`
	SizeBytes        int64      `json:"sizeBytes"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	ExpiresAt        time.Time  `json:"expiresAt"`
	PasswordRequired bool       `json:"passwordRequired"`
	DownloadCount    int64      `json:"downloadCount"`
	DownloadedAt     *time.Time `json:"downloadedAt,omitempty"`
}

func toFileRecord(f *models.File) fileRecord {
	return fileRecord{
		FileID:           f.ID,
		OriginalFileName: f.OriginalFileName,
		ContentType:      f.ContentType,
		SizeBytes:        f.SizeBytes,
		Status:           f.Status,
		CreatedAt:        f.CreatedAt,
		ExpiresAt:        f.ExpiresAt,
		PasswordRequired: f.PasswordHash != "",
		DownloadCount:    f.DownloadCount,
		DownloadedAt:     f.DownloadedAt,
	}
}
