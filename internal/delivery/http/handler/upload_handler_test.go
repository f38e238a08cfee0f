package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-shipping-backend/internal/config"
	"vehicle-shipping-backend/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = logger.Init("development", "")
}

var (
	pngHeader  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	pdfHeader  = []byte("%PDF-1.7 not an image at all")
)

func uploadRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	dir := t.TempDir()

	h := NewUploadHandler(&config.UploadConfig{
		Directory:  dir,
		PublicBase: "/static/uploads",
		MaxSizeMB:  5,
	})

	router := gin.New()
	group := router.Group("")
	h.RegisterAdminRoutes(group)
	return router, dir
}

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func storedFiles(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return entries
}

func TestUploadAcceptsPNG(t *testing.T) {
	router, dir := uploadRouter(t)

	body, contentType := multipartBody(t, "photo.png", pngHeader)
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	files := storedFiles(t, dir)
	require.Len(t, files, 1)
	assert.Regexp(t, `^[0-9a-f]{32}\.png$`, files[0].Name())
	assert.Contains(t, w.Body.String(), "/static/uploads/")
}

func TestUploadAcceptsJPEGRegardlessOfFilename(t *testing.T) {
	router, dir := uploadRouter(t)

	// The extension lies; the sniffed bytes decide.
	body, contentType := multipartBody(t, "document.pdf", jpegHeader)
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	files := storedFiles(t, dir)
	require.Len(t, files, 1)
	assert.Regexp(t, `\.jpg$`, files[0].Name())
}

func TestUploadRejectsPDFWithoutWriting(t *testing.T) {
	router, dir := uploadRouter(t)

	body, contentType := multipartBody(t, "innocent.png", pdfHeader)
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, storedFiles(t, dir), "rejected upload must not touch disk")
	assert.Contains(t, w.Body.String(), "Only JPEG, PNG and WebP")
}

func TestUploadRejectsMissingFile(t *testing.T) {
	router, dir := uploadRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/uploads", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, storedFiles(t, dir))
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	h := NewUploadHandler(&config.UploadConfig{
		Directory:  dir,
		PublicBase: "/static/uploads",
		MaxSizeMB:  1,
	})
	router := gin.New()
	group := router.Group("")
	h.RegisterAdminRoutes(group)

	big := append(append([]byte{}, pngHeader...), make([]byte, 2<<20)...)
	body, contentType := multipartBody(t, "huge.png", big)
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, storedFiles(t, dir))
}
