// Package httpapi exposes the broker's JSON API over gin. Handlers translate
// between wire DTOs and the service layer; lifecycle sentinels from
// internal/common map onto the {message, code} error envelope.
package httpapi

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/shareling/internal/logging"
	"github.com/dmitrijs2005/shareling/internal/netx"
	"github.com/dmitrijs2005/shareling/internal/server/models"
	"github.com/dmitrijs2005/shareling/internal/server/services"
)

// UserService is the slice of the user service the API depends on.
type UserService interface {
	Register(ctx context.Context, username string, password string) (*models.User, error)
	Login(ctx context.Context, username string, password string) (string, error)
}

// FileService is the slice of the file service the API depends on.
type FileService interface {
	Register(ctx context.Context, ownerID string, in services.RegisterUploadInput) (*models.File, *netx.Credential, error)
	List(ctx context.Context, ownerID string) ([]*models.File, error)
	Delete(ctx context.Context, ownerID string, id string) error
	PublicInfo(ctx context.Context, id string) (*models.File, error)
	DownloadURL(ctx context.Context, id string, password string) (string, error)
	ConfirmObjectCreated(ctx context.Context, storageKey string, sizeBytes int64) error
}

// Handler wires the services into gin routes.
type Handler struct {
	users     UserService
	files     FileService
	jwtSecret []byte
	logger    logging.Logger
}

// NewHandler constructs a Handler.
func NewHandler(users UserService, files FileService, jwtSecret []byte, logger logging.Logger) *Handler {
	return &Handler{users: users, files: files, jwtSecret: jwtSecret, logger: logger}
}

// NewRouter builds the gin engine with all API routes registered.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.registerAccount)
		authGroup.POST("/login", h.login)
	}

	owned := api.Group("/files", h.authMiddleware())
	{
		owned.POST("", h.registerUpload)
		owned.GET("", h.listFiles)
		owned.DELETE("/:fileId", h.deleteFile)
	}

	// Anonymous routes behind share links.
	api.GET("/public/:fileId", h.publicMetadata)
	api.GET("/files/:fileId/download", h.download)

	// Internal hook for the object-created storage notification.
	api.POST("/internal/objects/confirm", h.confirmObject)

	return router
}
