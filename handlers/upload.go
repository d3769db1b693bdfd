package handlers

import (
	"net/http"

	"casepilot/services"

	"github.com/labstack/echo/v4"
)

const maxUploadBytes = 20 << 20 // 20 MB

var allowedUploadTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/plain": true,
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// UploadResponse describes a stored file
type UploadResponse struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

// UploadFileHandler stores a multipart file and returns its serving URL.
// The document record pointing at the file is created separately.
func UploadFileHandler(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return respondError(c, http.StatusBadRequest, "No file provided")
	}

	if file.Size > maxUploadBytes {
		return respondError(c, http.StatusBadRequest, "File exceeds the 20MB limit")
	}
	contentType := file.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		return respondError(c, http.StatusBadRequest, "Unsupported file type")
	}

	key := services.GenerateFileKey(file.Filename)
	result, err := services.Storage.Upload(c.Request().Context(), file, key)
	if err != nil {
		return err
	}

	return respondData(c, http.StatusCreated, UploadResponse{
		Key:      result.Key,
		URL:      result.URL,
		Size:     file.Size,
		MimeType: contentType,
	})
}

// DownloadFileHandler streams a stored file. Clients do not need to know
// whether R2 or the local disk backs the key.
func DownloadFileHandler(c echo.Context) error {
	key := c.Param("key")
	if key == "" {
		return respondError(c, http.StatusBadRequest, "No file key provided")
	}

	body, contentType, err := services.Storage.Get(c.Request().Context(), key)
	if err != nil {
		return respondError(c, http.StatusNotFound, "File not found")
	}
	defer body.Close()

	return c.Stream(http.StatusOK, contentType, body)
}
