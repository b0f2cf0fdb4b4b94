package handlers

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/seerah-hajj/internal/infra/http/middleware"
	"github.com/xavierca1/seerah-hajj/internal/logger"
	"github.com/xavierca1/seerah-hajj/internal/usecase"
)

// PublicHandler reúne as rotas do site público fora do formulário.
type PublicHandler struct {
	Subscribe *usecase.SubscribeUseCase
	Resources *usecase.ResourcesUseCase
	Stats     *usecase.StatsUseCase
	Log       logrus.FieldLogger
}

func NewPublicHandler(sub *usecase.SubscribeUseCase, res *usecase.ResourcesUseCase, stats *usecase.StatsUseCase, log logrus.FieldLogger) *PublicHandler {
	return &PublicHandler{Subscribe: sub, Resources: res, Stats: stats, Log: log}
}

type subscribeResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	WhatsAppLink string `json:"whatsappLink"`
	SubscriberID string `json:"subscriberId"`
}

func (h *PublicHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	var in usecase.SubscribeInput
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "Invalid JSON body")
		return
	}

	out, err := h.Subscribe.Execute(r.Context(), in)
	if err != nil {
		writeError(w, logger.WithContext(r.Context(), h.Log), err)
		return
	}
	middleware.RecordSubscription()

	writeJSON(w, http.StatusOK, subscribeResponse{
		Success:      true,
		Message:      out.Message,
		WhatsAppLink: out.WhatsAppLink,
		SubscriberID: out.SubscriberID,
	})
}

type resourcesResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	*usecase.ResourcesOutput
}

// HandleResources atende GET /api/resources?q=&tags=a,b. Falha parcial
// devolve 200 com success=false e as seções que carregaram.
func (h *PublicHandler) HandleResources(w http.ResponseWriter, r *http.Request) {
	in := usecase.ResourcesInput{
		Query: r.URL.Query().Get("q"),
		Tags:  splitCSV(r.URL.Query().Get("tags")),
	}

	out, err := h.Resources.Browse(r.Context(), in)
	resp := resourcesResponse{Success: err == nil, ResourcesOutput: out}
	if err != nil {
		resp.Error = "Failed to load some resources"
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleStats responde sem envelope, no formato que o contador do site lê.
func (h *PublicHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	out, err := h.Stats.Execute(r.Context())
	if err != nil {
		logger.WithContext(r.Context(), h.Log).WithError(err).Error("stats failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch stats"})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
