package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/Mattyonemillion/henlo/internal/domain/service"
	"github.com/Mattyonemillion/henlo/pkg/errors"
	"github.com/Mattyonemillion/henlo/pkg/logger"
	"github.com/Mattyonemillion/henlo/pkg/response"
)

type FileHandler struct {
	fileService service.FileUploadService
	maxFileSize int64
}

var fileHandler *FileHandler

func NewFileHandler(fileService service.FileUploadService, maxFileSize int64) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		maxFileSize: maxFileSize,
	}
}

func SetupFileHandler(fileService service.FileUploadService, maxFileSize int64) {
	fileHandler = NewFileHandler(fileService, maxFileSize)
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// UploadImage stores one listing or avatar photo and returns its URL plus
// the storage path needed to delete it later.
func (h *FileHandler) UploadImage(c echo.Context) error {
	uid := c.Get("uid").(string)

	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	if file.Size > h.maxFileSize {
		return response.Error(c, errors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", h.maxFileSize/(1024*1024)), nil))
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return response.Error(c, errors.BadRequest("Only JPEG, PNG and WebP images are supported", nil))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to open uploaded file", err))
	}
	defer src.Close()

	uploaded, err := h.fileService.UploadImage(c.Request().Context(), src, contentType, uid)
	if err != nil {
		logger.Error("Upload failed for user %s: %v", uid, err)
		return response.Error(c, errors.Internal("Failed to store file", err))
	}

	return response.Created(c, map[string]string{
		"url":  uploaded.URL,
		"path": uploaded.Path,
	})
}
