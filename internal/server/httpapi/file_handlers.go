package httpapi

import (
	"net/http"
	"net/url"
	"strings"
)

// maxUploadSize caps media uploads at 50 MB.
const maxUploadSize = 50 << 20

var allowedUploadTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/jpg":       {},
	"image/png":       {},
	"image/gif":       {},
	"video/mp4":       {},
	"video/avi":       {},
	"video/mov":       {},
	"video/quicktime": {},
	"application/pdf": {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

type uploadResponse struct {
	Success     bool   `json:"success"`
	URL         string `json:"url"`
	FileName    string `json:"fileName"`
	FileSize    int64  `json:"fileSize,omitempty"`
	ContentType string `json:"contentType"`
	Type        string `json:"type"`
	OriginalURL string `json:"originalUrl,omitempty"`
}

func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeMessage(w, http.StatusBadRequest, "File size exceeds 50MB limit.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "No file was provided.")
		return
	}
	defer file.Close()

	contentType := strings.ToLower(header.Header.Get("Content-Type"))
	if _, ok := allowedUploadTypes[contentType]; !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid file type. Only image, video, and document files are allowed.")
		return
	}

	fileURL, err := s.blobs.UploadFile(r.Context(), header.Filename, contentType, file)
	if err != nil {
		s.logger.Error(r.Context(), "file upload failed", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "Failed to upload file.")
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Success:     true,
		URL:         fileURL,
		FileName:    header.Filename,
		FileSize:    header.Size,
		ContentType: contentType,
		Type:        "file",
	})
}

type uploadURLRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

func (s *Server) handleUploadURL(w http.ResponseWriter, r *http.Request) {
	var req uploadURLRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.URL == "" {
		writeMessage(w, http.StatusBadRequest, "URL is required.")
		return
	}
	if u, err := url.Parse(req.URL); err != nil || !u.IsAbs() {
		writeMessage(w, http.StatusBadRequest, "Invalid URL format.")
		return
	}

	blobURL, fileName, err := s.blobs.UploadURLDocument(r.Context(), req.URL, req.Title)
	if err != nil {
		s.logger.Error(r.Context(), "url upload failed", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "Failed to store URL.")
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Success:     true,
		URL:         blobURL,
		FileName:    fileName,
		ContentType: "application/json",
		Type:        "url",
		OriginalURL: req.URL,
	})
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	fileURL := r.URL.Query().Get("fileUrl")
	if fileURL == "" {
		writeMessage(w, http.StatusBadRequest, "File URL is required.")
		return
	}

	exists, err := s.blobs.Exists(r.Context(), fileURL)
	if err != nil {
		s.logger.Error(r.Context(), "file check failed", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "Failed to delete file.")
		return
	}
	if !exists {
		writeMessage(w, http.StatusNotFound, "File not found.")
		return
	}

	if err := s.blobs.Delete(r.Context(), fileURL); err != nil {
		s.logger.Error(r.Context(), "file delete failed", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "Failed to delete file.")
		return
	}
	writeMessage(w, http.StatusOK, "File deleted successfully.")
}

func (s *Server) handleFileExists(w http.ResponseWriter, r *http.Request) {
	fileURL := r.URL.Query().Get("fileUrl")
	if fileURL == "" {
		writeMessage(w, http.StatusBadRequest, "File URL is required.")
		return
	}

	exists, err := s.blobs.Exists(r.Context(), fileURL)
	if err != nil {
		s.logger.Error(r.Context(), "file check failed", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "Failed to check file existence.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"exists": exists, "url": fileURL})
}

func (s *Server) handleOriginalURL(w http.ResponseWriter, r *http.Request) {
	blobURL := r.URL.Query().Get("blobUrl")
	if blobURL == "" {
		writeMessage(w, http.StatusBadRequest, "Blob URL is required.")
		return
	}

	doc, err := s.blobs.GetURLDocument(r.Context(), blobURL)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "URL reference not found.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"originalUrl": doc.OriginalURL,
		"title":       doc.Title,
		"uploadedAt":  doc.UploadedAt,
	})
}
