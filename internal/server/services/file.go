package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/shareling/internal/common"
	"github.com/dmitrijs2005/shareling/internal/cryptox"
	"github.com/dmitrijs2005/shareling/internal/dbx"
	"github.com/dmitrijs2005/shareling/internal/netx"
	sc "github.com/dmitrijs2005/shareling/internal/server/config"
	"github.com/dmitrijs2005/shareling/internal/server/models"
	"github.com/dmitrijs2005/shareling/internal/server/repositories/repomanager"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// RegisterUploadInput describes a registration request from an owner.
type RegisterUploadInput struct {
	OriginalFileName string
	ContentType      string
	SizeBytes        int64
	ExpiresInDays    int
	Password         string
}

// FileService implements the share-file lifecycle: registration with a
// presigned upload credential, owner listing and deletion, public metadata
// resolution, and presigned downloads.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewFileService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *FileService {
	return &FileService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("objects/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *FileService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// GetPresignedPutUrl presigns a single-use PUT for a fresh storage key and
// returns the key together with the upload credential.
func (s *FileService) GetPresignedPutUrl(ctx context.Context, contentType string) (string, *netx.Credential, error) {

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", nil, err
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey()

	// Presigned PUT
	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(15*time.Minute))

	if err != nil {
		return "", nil, err
	}

	cred := &netx.Credential{
		Method:  "PUT",
		URL:     req.URL,
		Headers: map[string]string{"Content-Type": contentType},
	}
	return key, cred, nil
}

// GetPresignedGetUrl presigns a time-limited GET for an existing object.
func (s *FileService) GetPresignedGetUrl(ctx context.Context, key string) (string, error) {

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	// Presigned GET
	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// Register validates the input, creates a record in "uploading" state and
// returns it together with a presigned upload credential.
func (s *FileService) Register(ctx context.Context, ownerID string, in RegisterUploadInput) (*models.File, *netx.Credential, error) {

	if in.OriginalFileName == "" {
		return nil, nil, fmt.Errorf("%w: file name is empty", common.ErrorValidation)
	}
	if in.SizeBytes < 0 {
		return nil, nil, fmt.Errorf("%w: negative size", common.ErrorValidation)
	}
	if in.ExpiresInDays == 0 {
		in.ExpiresInDays = common.DefaultExpiresInDays
	}
	if in.ExpiresInDays < common.MinExpiresInDays || in.ExpiresInDays > common.MaxExpiresInDays {
		return nil, nil, fmt.Errorf("%w: expiresInDays out of range", common.ErrorValidation)
	}
	if in.ContentType == "" {
		in.ContentType = common.DefaultContentType
	}

	var passwordHash string
	if in.Password != "" {
		hash, err := cryptox.HashPassword([]byte(in.Password))
		if err != nil {
			return nil, nil, common.ErrorInternal
		}
		passwordHash = hash
	}

	storageKey, cred, err := s.GetPresignedPutUrl(ctx, in.ContentType)
	if err != nil {
		return nil, nil, fmt.Errorf("error presigning upload: %v", err)
	}

	now := time.Now()
	file := &models.File{
		ID:               uuid.New().String(),
		OwnerID:          ownerID,
		OriginalFileName: in.OriginalFileName,
		ContentType:      in.ContentType,
		SizeBytes:        in.SizeBytes,
		StorageKey:       storageKey,
		Status:           common.FileStatusUploading,
		PasswordHash:     passwordHash,
		CreatedAt:        now,
		ExpiresAt:        now.AddDate(0, 0, in.ExpiresInDays),
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Files(tx).Create(ctx, file)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error creating file: %v", err)
	}

	return file, cred, nil
}

// List returns all of the owner's file records, newest first.
func (s *FileService) List(ctx context.Context, ownerID string) ([]*models.File, error) {
	repo := s.repomanager.Files(s.db)
	items, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %v", err)
	}
	return items, nil
}

// Delete soft-deletes an owner's file. The stored object is left for
// out-of-band cleanup.
func (s *FileService) Delete(ctx context.Context, ownerID string, id string) error {
	repo := s.repomanager.Files(s.db)
	if err := repo.SoftDelete(ctx, ownerID, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting file: %v", err)
	}
	return nil
}

// PublicInfo returns the record behind a share link, mapping lifecycle state
// to sentinel errors: absent ids yield ErrorNotFound, soft-deleted files
// ErrorFileDeleted and past-expiry files ErrorFileExpired.
func (s *FileService) PublicInfo(ctx context.Context, id string) (*models.File, error) {
	repo := s.repomanager.Files(s.db)
	file, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error getting file: %v", err)
	}
	if file.Status == common.FileStatusDeleted {
		return nil, common.ErrorFileDeleted
	}
	if file.Expired(time.Now()) {
		return nil, common.ErrorFileExpired
	}
	return file, nil
}

// DownloadURL resolves a share link to a presigned GET URL. Files that are
// still uploading yield ErrorFileNotReady; password-protected files require
// the matching password and yield ErrorUnauthorized otherwise. A successful
// resolution bumps the download counter.
func (s *FileService) DownloadURL(ctx context.Context, id string, password string) (string, error) {
	file, err := s.PublicInfo(ctx, id)
	if err != nil {
		return "", err
	}
	if file.Status != common.FileStatusReady {
		return "", common.ErrorFileNotReady
	}
	if file.PasswordHash != "" {
		ok, err := cryptox.VerifyPassword(file.PasswordHash, []byte(password))
		if err != nil || !ok {
			return "", common.ErrorUnauthorized
		}
	}

	url, err := s.GetPresignedGetUrl(ctx, file.StorageKey)
	if err != nil {
		return "", fmt.Errorf("error presigning download: %v", err)
	}

	repo := s.repomanager.Files(s.db)
	if err := repo.RecordDownload(ctx, file.ID); err != nil {
		return "", fmt.Errorf("error recording download: %v", err)
	}

	return url, nil
}

// ConfirmObjectCreated handles the storage notification for a completed
// object write, flipping the record to "ready" and recording the size.
func (s *FileService) ConfirmObjectCreated(ctx context.Context, storageKey string, sizeBytes int64) error {
	repo := s.repomanager.Files(s.db)
	if err := repo.MarkReadyByStorageKey(ctx, storageKey, sizeBytes); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error updating file: %v", err)
	}
	return nil
}
