package handlers

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/seerah-hajj/internal/infra/http/middleware"
	"github.com/xavierca1/seerah-hajj/internal/logger"
	"github.com/xavierca1/seerah-hajj/internal/usecase"
)

type LeadHandler struct {
	Leads  *usecase.LeadUseCase
	Intake *usecase.SubmitIntakeUseCase
	Log    logrus.FieldLogger
}

func NewLeadHandler(leads *usecase.LeadUseCase, intake *usecase.SubmitIntakeUseCase, log logrus.FieldLogger) *LeadHandler {
	return &LeadHandler{Leads: leads, Intake: intake, Log: log}
}

type leadListResponse struct {
	Success bool `json:"success"`
	usecase.LeadListOutput
}

// List atende GET /api/leads?status=&limit=&offset=&q=.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := usecase.LeadListInput{
		Status: q.Get("status"),
		Limit:  atoiOr(q.Get("limit"), 0),
		Offset: atoiOr(q.Get("offset"), 0),
		Query:  q.Get("q"),
	}

	out, err := h.Leads.List(r.Context(), in)
	if err != nil {
		writeError(w, logger.WithContext(r.Context(), h.Log), err)
		return
	}
	writeJSON(w, http.StatusOK, leadListResponse{Success: true, LeadListOutput: *out})
}

// UpdateStatus atende PUT /api/leads {id, status, notes}.
func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var in usecase.SetLeadStatusInput
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "Invalid JSON body")
		return
	}

	lead, err := h.Leads.SetStatus(r.Context(), in)
	if err != nil {
		writeError(w, logger.WithContext(r.Context(), h.Log), err)
		return
	}
	middleware.RecordLeadStatusChange(string(lead.Status))
	writeData(w, http.StatusOK, lead)
}

type intakeResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId"`
	Data         struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"data"`
}

// SubmitIntake atende POST /api/hajj-intake.
func (h *LeadHandler) SubmitIntake(w http.ResponseWriter, r *http.Request) {
	var in usecase.IntakeInput
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "Invalid JSON body")
		return
	}

	out, err := h.Intake.Execute(r.Context(), in)
	if err != nil {
		writeError(w, logger.WithContext(r.Context(), h.Log), err)
		return
	}
	middleware.RecordLeadSubmitted()

	resp := intakeResponse{Success: true, Message: "Form submitted successfully", SubmissionID: out.SubmissionID}
	resp.Data.Name = out.Name
	resp.Data.Email = out.Email
	writeJSON(w, http.StatusOK, resp)
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
