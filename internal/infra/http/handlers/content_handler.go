package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/seerah-hajj/internal/logger"
)

// ContentService é o CRUD exposto pelos usecases de conteúdo.
type ContentService[T any, C any, U any] interface {
	List(ctx context.Context, activeOnly bool) ([]T, error)
	Create(ctx context.Context, in C) (T, error)
	Update(ctx context.Context, in U) (T, error)
	Delete(ctx context.Context, id string) error
}

// ContentHandler atende /api/daily-tips, /api/webinars e /api/pdf-guides.
type ContentHandler[T any, C any, U any] struct {
	Service ContentService[T, C, U]
	// Label aparece nas mensagens, ex.: "Daily tip deleted successfully".
	Label string
	Log   logrus.FieldLogger
}

// List só inclui inativos com ?active=false.
func (h *ContentHandler[T, C, U]) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") != "false"

	items, err := h.Service.List(r.Context(), activeOnly)
	if err != nil {
		// falha de leitura vira lista vazia para o site público
		status, body := errorResponse(logger.WithContext(r.Context(), h.Log), err)
		body.Data = []T{}
		writeJSON(w, status, body)
		return
	}
	writeData(w, http.StatusOK, items)
}

func (h *ContentHandler[T, C, U]) Create(w http.ResponseWriter, r *http.Request) {
	var in C
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "Invalid JSON body")
		return
	}

	item, err := h.Service.Create(r.Context(), in)
	if err != nil {
		writeError(w, logger.WithContext(r.Context(), h.Log), err)
		return
	}
	writeData(w, http.StatusOK, item)
}

// Update recebe o id no corpo.
func (h *ContentHandler[T, C, U]) Update(w http.ResponseWriter, r *http.Request) {
	var in U
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "Invalid JSON body")
		return
	}

	item, err := h.Service.Update(r.Context(), in)
	if err != nil {
		writeError(w, logger.WithContext(r.Context(), h.Log), err)
		return
	}
	writeData(w, http.StatusOK, item)
}

// Delete recebe o id na query (?id=) e só desativa o registro.
func (h *ContentHandler[T, C, U]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), r.URL.Query().Get("id")); err != nil {
		writeError(w, logger.WithContext(r.Context(), h.Log), err)
		return
	}
	writeMessage(w, http.StatusOK, h.Label+" deleted successfully")
}
