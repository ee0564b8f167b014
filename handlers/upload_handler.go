package handlers

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	_ "golang.org/x/image/webp"
)

const (
	maxUploadBytes = 5 << 20
	maxImageSide   = 4096
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// BlobUploader is the media-host side of the upload passthrough.
type BlobUploader interface {
	Upload(ctx context.Context, data []byte, filename, contentType string) (url string, key string, err error)
}

type UploadHandler struct {
	Blobs BlobUploader
}

// Upload accepts a multipart "file" field, checks it is a reasonably
// sized image, and hands the bytes to the media host.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, ApiResponse{
			Success: false,
			Message: "Invalid request method",
		})
		return
	}
	if h.Blobs == nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Media storage is not configured",
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+4096)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "No file uploaded",
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "No file uploaded",
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Could not read uploaded file",
		})
		return
	}
	if len(data) > maxUploadBytes {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "File too large",
		})
		return
	}

	contentType := http.DetectContentType(data)
	if !allowedImageTypes[contentType] {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Only image uploads are allowed",
		})
		return
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Unrecognized image data",
		})
		return
	}
	if cfg.Width > maxImageSide || cfg.Height > maxImageSide {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Image dimensions too large",
		})
		return
	}

	fileURL, key, err := h.Blobs.Upload(r.Context(), data, header.Filename, contentType)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to store file: " + err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "File uploaded successfully",
		Data:    map[string]string{"url": fileURL, "key": key},
	})
}
