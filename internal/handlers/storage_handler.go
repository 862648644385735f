package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"oleo-backend/internal/storage"
)

const maxUploadSize = 10 << 20 // 10 MiB

type StorageHandler struct {
	Client *storage.Client
}

func NewStorageHandler(c *storage.Client) *StorageHandler {
	return &StorageHandler{Client: c}
}

// Upload stores a multipart image and returns its public URL.
func (h *StorageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.Client == nil {
		http.Error(w, "Object storage not configured", http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		http.Error(w, "Cannot read file", http.StatusBadRequest)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	url, err := h.Client.Upload(r.Context(), "uploads", header.Filename, contentType, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"url": url})
}
