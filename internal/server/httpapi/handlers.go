package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/shareling/internal/common"
	"github.com/dmitrijs2005/shareling/internal/server/services"
)

// writeLifecycleError maps file lifecycle sentinels onto the stable
// {message, code} envelope used by public endpoints.
func (h *Handler) writeLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Message: "File not found", Code: "not_found"})
	case errors.Is(err, common.ErrorFileDeleted):
		c.JSON(http.StatusGone, errorResponse{Message: "File deleted", Code: "deleted"})
	case errors.Is(err, common.ErrorFileExpired):
		c.JSON(http.StatusGone, errorResponse{Message: "File expired", Code: "expired"})
	case errors.Is(err, common.ErrorFileNotReady):
		c.JSON(http.StatusConflict, errorResponse{Message: "File not ready", Code: "not_ready"})
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, errorResponse{Message: "Password required", Code: "password_required"})
	default:
		h.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Message: "Internal error"})
	}
}

func (h *Handler) registerAccount(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
			return
		}
		h.logger.Error(c.Request.Context(), "register failed", "error", err)
		c.JSON(http.StatusConflict, errorResponse{Message: "Unable to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "username": user.UserName})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return
	}

	token, err := h.users.Login(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, errorResponse{Message: "Invalid credentials", Code: "unauthorized"})
			return
		}
		h.logger.Error(c.Request.Context(), "login failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Message: "Internal error"})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token})
}

func (h *Handler) registerUpload(c *gin.Context) {
	var req registerUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return
	}

	file, cred, err := h.files.Register(c.Request.Context(), currentUserID(c), services.RegisterUploadInput{
		OriginalFileName: req.OriginalFileName,
		ContentType:      req.ContentType,
		SizeBytes:        req.SizeBytes,
		ExpiresInDays:    req.ExpiresInDays,
		Password:         req.Password,
	})
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
			return
		}
		h.logger.Error(c.Request.Context(), "register upload failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Message: "Internal error"})
		return
	}

	c.JSON(http.StatusOK, registerUploadResponse{FileID: file.ID, Upload: *cred})
}

func (h *Handler) listFiles(c *gin.Context) {
	items, err := h.files.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.logger.Error(c.Request.Context(), "list files failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Message: "Internal error"})
		return
	}

	records := make([]fileRecord, 0, len(items))
	for _, f := range items {
		records = append(records, toFileRecord(f))
	}
	c.JSON(http.StatusOK, gin.H{"items": records})
}

func (h *Handler) deleteFile(c *gin.Context) {
	err := h.files.Delete(c.Request.Context(), currentUserID(c), c.Param("fileId"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Message: "File not found", Code: "not_found"})
			return
		}
		h.logger.Error(c.Request.Context(), "delete file failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Message: "Internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) publicMetadata(c *gin.Context) {
	file, err := h.files.PublicInfo(c.Request.Context(), c.Param("fileId"))
	if err != nil {
		h.writeLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFileRecord(file))
}

func (h *Handler) download(c *gin.Context) {
	url, err := h.files.DownloadURL(c.Request.Context(), c.Param("fileId"), c.Query("password"))
	if err != nil {
		h.writeLifecycleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

func (h *Handler) confirmObject(c *gin.Context) {
	var req confirmObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return
	}

	if err := h.files.ConfirmObjectCreated(c.Request.Context(), req.StorageKey, req.SizeBytes); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Message: "File not found", Code: "not_found"})
			return
		}
		h.logger.Error(c.Request.Context(), "confirm object failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Message: "Internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}
