package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/seerah-hajj/internal/entity"
)

const (
	DefaultLeadLimit = 50
	MaxLeadLimit     = 200
)

type LeadUseCase struct {
	Repo entity.LeadRepositoryInterface
	Now  func() time.Time
	Log  logrus.FieldLogger
}

func NewLeadUseCase(repo entity.LeadRepositoryInterface, log logrus.FieldLogger) *LeadUseCase {
	return &LeadUseCase{Repo: repo, Now: time.Now, Log: log}
}

// List pagina no banco. Com busca textual, filtra o conjunto do status em
// memória e pagina o resultado; total conta só os que casaram.
func (uc *LeadUseCase) List(ctx context.Context, in LeadListInput) (*LeadListOutput, error) {
	var status *entity.LeadStatus
	if s := strings.TrimSpace(in.Status); s != "" && s != "all" {
		st, ok := entity.ParseLeadStatus(s)
		if !ok {
			return nil, domainErr(CodeValidation, "Invalid status: %s", s)
		}
		status = &st
	}

	limit := in.Limit
	if limit <= 0 {
		limit = DefaultLeadLimit
	}
	if limit > MaxLeadLimit {
		limit = MaxLeadLimit
	}
	offset := max(in.Offset, 0)

	if strings.TrimSpace(in.Query) != "" {
		return uc.search(ctx, status, in.Query, limit, offset)
	}

	leads, err := uc.Repo.List(ctx, entity.LeadFilter{Status: status, Limit: limit, Offset: offset})
	if err != nil {
		uc.Log.WithError(err).Error("lead list failed")
		return nil, storageErr("failed to fetch leads", err)
	}
	total, err := uc.Repo.Count(ctx, status)
	if err != nil {
		uc.Log.WithError(err).Error("lead count failed")
		return nil, storageErr("failed to count leads", err)
	}

	return &LeadListOutput{Leads: leads, Total: total}, nil
}

func (uc *LeadUseCase) search(ctx context.Context, status *entity.LeadStatus, q string, limit, offset int) (*LeadListOutput, error) {
	all, err := uc.Repo.List(ctx, entity.LeadFilter{Status: status})
	if err != nil {
		uc.Log.WithError(err).Error("lead search failed")
		return nil, storageErr("failed to fetch leads", err)
	}

	matched := make([]*entity.Lead, 0, len(all))
	for _, l := range all {
		if Matches(l, q) {
			matched = append(matched, l)
		}
	}

	page := []*entity.Lead{}
	if offset < len(matched) {
		page = matched[offset:min(offset+limit, len(matched))]
	}
	return &LeadListOutput{Leads: page, Total: len(matched)}, nil
}

// SetStatus aceita qualquer transição. Status vazio vira "new"; notes nil
// preserva as notas atuais e notes em branco as apaga.
func (uc *LeadUseCase) SetStatus(ctx context.Context, in SetLeadStatusInput) (*entity.Lead, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, domainErr(CodeMissingField, "Missing lead ID")
	}

	raw := strings.TrimSpace(in.Status)
	if raw == "" {
		raw = string(entity.LeadNew)
	}
	status, ok := entity.ParseLeadStatus(raw)
	if !ok {
		return nil, domainErr(CodeValidation, "Invalid status: %s", raw)
	}

	previous, err := uc.Repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, uc.leadErr(in.ID, err)
	}

	updated, err := uc.Repo.UpdateStatus(ctx, in.ID, status, in.Notes, uc.Now())
	if err != nil {
		return nil, uc.leadErr(in.ID, err)
	}

	uc.Log.WithFields(logrus.Fields{
		"lead_id":       in.ID,
		"from":          previous.Status,
		"to":            updated.Status,
		"notes_changed": in.Notes != nil,
	}).Info("lead status changed")

	return updated, nil
}

func (uc *LeadUseCase) leadErr(id string, err error) error {
	if errors.Is(err, entity.ErrNotFound) {
		return domainErr(CodeNotFound, "Lead %s not found", id)
	}
	uc.Log.WithError(err).WithField("lead_id", id).Error("lead update failed")
	return storageErr("failed to update lead", err)
}
