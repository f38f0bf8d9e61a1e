package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mattyonemillion/henlo/internal/domain/service"
)

type stubFileService struct {
	uploaded *service.UploadedFile
}

func (s *stubFileService) UploadImage(ctx context.Context, file io.Reader, contentType, ownerID string) (*service.UploadedFile, error) {
	s.uploaded = &service.UploadedFile{
		URL:  "https://storage.googleapis.com/henlo/" + ownerID + "/photo.jpg",
		Path: ownerID + "/photo.jpg",
	}
	return s.uploaded, nil
}

func (s *stubFileService) DeleteFile(ctx context.Context, path string) error { return nil }
func (s *stubFileService) Close() error                                      { return nil }

func multipartBody(t *testing.T, contentType string, size int) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="photo.jpg"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), size))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func uploadRequest(t *testing.T, h *FileHandler, contentType string, size int) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	body, formContentType := multipartBody(t, contentType, size)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set(echo.HeaderContentType, formContentType)
	rec := httptest.NewRecorder()

	c := echo.New().NewContext(req, rec)
	c.Set("uid", "user-1")
	require.NoError(t, h.UploadImage(c))

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestUploadImageSuccess(t *testing.T) {
	h := NewFileHandler(&stubFileService{}, 5*1024*1024)

	rec, envelope := uploadRequest(t, h, "image/jpeg", 1024)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "https://storage.googleapis.com/henlo/user-1/photo.jpg", data["url"])
	assert.Equal(t, "user-1/photo.jpg", data["path"])
}

func TestUploadImageRejectsOversizedFile(t *testing.T) {
	fileService := &stubFileService{}
	h := NewFileHandler(fileService, 2*1024)

	rec, envelope := uploadRequest(t, h, "image/jpeg", 4*1024)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errInfo := envelope["error"].(map[string]interface{})
	assert.Equal(t, "BAD_REQUEST", errInfo["code"])
	assert.Nil(t, fileService.uploaded, "rejected files must never reach storage")
}

func TestUploadImageRejectsUnsupportedType(t *testing.T) {
	h := NewFileHandler(&stubFileService{}, 5*1024*1024)

	rec, envelope := uploadRequest(t, h, "application/pdf", 1024)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errInfo := envelope["error"].(map[string]interface{})
	assert.Equal(t, "BAD_REQUEST", errInfo["code"])
	assert.Contains(t, errInfo["message"], "JPEG")
}

func TestUploadImageRequiresFileField(t *testing.T) {
	h := NewFileHandler(&stubFileService{}, 5*1024*1024)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("uid", "user-1")

	require.NoError(t, h.UploadImage(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
