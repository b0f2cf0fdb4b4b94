package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/seerah-hajj/internal/infra/http/middleware"
	"github.com/xavierca1/seerah-hajj/internal/logger"
	"github.com/xavierca1/seerah-hajj/internal/usecase"
)

// multipartOverhead cobre cabeçalhos e boundaries além do arquivo.
const multipartOverhead = 1 << 20

type UploadHandler struct {
	Upload *usecase.UploadFileUseCase
	Log    logrus.FieldLogger
}

func NewUploadHandler(uc *usecase.UploadFileUseCase, log logrus.FieldLogger) *UploadHandler {
	return &UploadHandler{Upload: uc, Log: log}
}

type uploadResponse struct {
	Success  bool   `json:"success"`
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
	FileSize string `json:"fileSize"`
	FileType string `json:"fileType"`
}

// Handle atende POST /api/upload (multipart, campo "file").
func (h *UploadHandler) Handle(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.Log)
	r.Body = http.MaxBytesReader(w, r.Body, h.Upload.MaxSize+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeJSON(w, http.StatusRequestEntityTooLarge, Response{Success: false, Error: "File too large"})
			return
		}
		badRequest(w, "No file uploaded")
		return
	}
	defer file.Close()

	in := usecase.UploadInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}

	// Tipo e tamanho são checados antes de ler o corpo.
	if err := h.Upload.Validate(in); err != nil {
		writeError(w, log, err)
		return
	}

	in.Data, err = io.ReadAll(file)
	if err != nil {
		badRequest(w, "Failed to read file")
		return
	}

	asset, err := h.Upload.Execute(r.Context(), in)
	if err != nil {
		writeError(w, log, err)
		return
	}
	middleware.RecordUpload(string(asset.Kind))

	writeJSON(w, http.StatusOK, uploadResponse{
		Success:  true,
		FileURL:  asset.FileURL,
		FileName: asset.FileName,
		FileSize: asset.FileSize,
		FileType: asset.FileType,
	})
}
