package handler

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vehicle-shipping-backend/internal/config"
	"vehicle-shipping-backend/internal/logger"
	"vehicle-shipping-backend/pkg/utils"
)

// allowedImageTypes maps sniffed content types to stored file extensions.
// The client-supplied filename and Content-Type header are never trusted.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type UploadHandler struct {
	cfg *config.UploadConfig
}

func NewUploadHandler(cfg *config.UploadConfig) *UploadHandler {
	return &UploadHandler{cfg: cfg}
}

func (h *UploadHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.POST("/uploads", h.Upload)
}

func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Missing file field")
		return
	}

	maxSize := h.cfg.MaxSizeMB << 20
	if fileHeader.Size > maxSize {
		utils.ErrorResponse(c, http.StatusBadRequest, "File exceeds maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Unable to read uploaded file")
		return
	}
	defer file.Close()

	// Sniff the real content type from the first bytes; anything that is
	// not an allowed image is rejected before a single byte hits disk.
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		utils.ErrorResponse(c, http.StatusBadRequest, "Unable to read uploaded file")
		return
	}

	contentType := http.DetectContentType(head[:n])
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "Only JPEG, PNG and WebP images are allowed")
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Unable to process uploaded file")
		return
	}

	filename, err := randomFilename(ext)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Unable to store uploaded file")
		return
	}

	if err := os.MkdirAll(h.cfg.Directory, 0o755); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Unable to store uploaded file")
		return
	}

	destPath := filepath.Join(h.cfg.Directory, filename)
	dest, err := os.Create(destPath)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Unable to store uploaded file")
		return
	}
	defer dest.Close()

	if _, err := io.Copy(dest, io.LimitReader(file, maxSize)); err != nil {
		os.Remove(destPath)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Unable to store uploaded file")
		return
	}

	logger.Info("File uploaded",
		zap.String("filename", filename),
		zap.String("content_type", contentType),
		zap.Int64("size", fileHeader.Size),
		zap.String("event", "file_uploaded"),
	)

	utils.SuccessResponse(c, http.StatusCreated, "File uploaded successfully", gin.H{
		"filename": filename,
		"url":      h.cfg.PublicBase + "/" + filename,
	})
}

// randomFilename returns an unguessable name so uploads never collide and
// never reuse attacker-chosen names.
func randomFilename(ext string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf) + ext, nil
}
