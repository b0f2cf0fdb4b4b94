package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/seerah-hajj/internal/logger"
	"github.com/xavierca1/seerah-hajj/internal/usecase"
)

type AdminHandler struct {
	Auth  *usecase.AdminAuth
	Setup *usecase.SetupUseCase
	Log   logrus.FieldLogger
}

func NewAdminHandler(auth *usecase.AdminAuth, setup *usecase.SetupUseCase, log logrus.FieldLogger) *AdminHandler {
	return &AdminHandler{Auth: auth, Setup: setup, Log: log}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login atende POST /api/admin/login.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "Invalid JSON body")
		return
	}

	out, err := h.Auth.Login(in.Password)
	if err != nil {
		logger.WithContext(r.Context(), h.Log).WithField("remote_ip", clientIP(r)).Warn("admin login rejected")
		writeError(w, h.Log, err)
		return
	}
	writeData(w, http.StatusOK, out)
}

// SetupDB atende GET /api/setup-db: existência e contagem de cada tabela.
func (h *AdminHandler) SetupDB(w http.ResponseWriter, r *http.Request) {
	tables, err := h.Setup.Database(r.Context())
	if err != nil {
		writeError(w, logger.WithContext(r.Context(), h.Log), err)
		return
	}

	ready := true
	for _, t := range tables {
		ready = ready && t.Exists
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": ready,
		"message": setupMessage(ready),
		"tables":  tables,
	})
}

// SetupStorage atende POST /api/setup-storage.
func (h *AdminHandler) SetupStorage(w http.ResponseWriter, r *http.Request) {
	buckets := h.Setup.Storage(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Storage setup completed",
		"buckets": buckets,
	})
}

func setupMessage(ready bool) string {
	if ready {
		return "All tables are ready"
	}
	return "Some tables are missing; run the migrations"
}
