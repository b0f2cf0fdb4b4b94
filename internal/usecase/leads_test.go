package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/seerah-hajj/internal/entity"
)

func newLeadUC(repo *MockLeadRepository) *LeadUseCase {
	uc := NewLeadUseCase(repo, quietLog())
	uc.Now = clock
	return uc
}

func sampleLeads() []*entity.Lead {
	return []*entity.Lead{
		{ID: "1", FullName: "Amina Yusuf", Email: "amina@example.com", Phone: "+44 7700 900123", CityCountry: "Manchester, UK"},
		{ID: "2", FullName: "Bilal Khan", Email: "bilal@example.com", Phone: "07911 123456", CityCountry: "London, UK"},
		{ID: "3", FullName: "Sara Ali", Email: "sara@mail.co", Phone: "+1 212 555 0147", CityCountry: "New York, USA"},
	}
}

// ============ LIST ============

func TestListLeadsDefaults(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything, entity.LeadFilter{Limit: DefaultLeadLimit}).Return(sampleLeads(), nil)
	repo.On("Count", mock.Anything, (*entity.LeadStatus)(nil)).Return(3, nil)

	out, err := newLeadUC(repo).List(context.Background(), LeadListInput{Status: "all", Offset: -5})

	require.NoError(t, err)
	assert.Len(t, out.Leads, 3)
	assert.Equal(t, 3, out.Total)
	repo.AssertExpectations(t)
}

func TestListLeadsClampsLimitAndFiltersStatus(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything, mock.MatchedBy(func(f entity.LeadFilter) bool {
		return f.Limit == MaxLeadLimit && f.Offset == 10 && f.Status != nil && *f.Status == entity.LeadContacted
	})).Return([]*entity.Lead{}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(0, nil)

	out, err := newLeadUC(repo).List(context.Background(), LeadListInput{Status: "contacted", Limit: 1000, Offset: 10})

	require.NoError(t, err)
	assert.Empty(t, out.Leads)
	repo.AssertExpectations(t)
}

func TestListLeadsInvalidStatus(t *testing.T) {
	repo := new(MockLeadRepository)

	_, err := newLeadUC(repo).List(context.Background(), LeadListInput{Status: "archived"})

	assert.Equal(t, CodeValidation, ErrorCode(err))
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestListLeadsSearch(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything, entity.LeadFilter{}).Return(sampleLeads(), nil)
	uc := newLeadUC(repo)

	out, err := uc.List(context.Background(), LeadListInput{Query: "uk"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)

	out, err = uc.List(context.Background(), LeadListInput{Query: "uk", Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	require.Len(t, out.Leads, 1)
	assert.Equal(t, "2", out.Leads[0].ID)

	out, err = uc.List(context.Background(), LeadListInput{Query: "555 0147"})
	require.NoError(t, err)
	require.Len(t, out.Leads, 1)
	assert.Equal(t, "3", out.Leads[0].ID)

	out, err = uc.List(context.Background(), LeadListInput{Query: "uk", Offset: 50})
	require.NoError(t, err)
	assert.NotNil(t, out.Leads)
	assert.Empty(t, out.Leads)

	repo.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
}

func TestListLeadsStorageFailure(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	_, err := newLeadUC(repo).List(context.Background(), LeadListInput{})

	assert.True(t, IsTechnicalError(err))
}

// ============ STATUS ============

func TestSetStatusOverwritesNotes(t *testing.T) {
	repo := new(MockLeadRepository)
	notes := "Called, wants Committed package info"
	prev := &entity.Lead{ID: "L1", Status: entity.LeadNew, Notes: strPtr("old")}
	next := &entity.Lead{ID: "L1", Status: entity.LeadContacted, Notes: &notes}

	repo.On("FindByID", mock.Anything, "L1").Return(prev, nil)
	repo.On("UpdateStatus", mock.Anything, "L1", entity.LeadContacted, &notes, fixedNow).Return(next, nil)

	got, err := newLeadUC(repo).SetStatus(context.Background(), SetLeadStatusInput{ID: "L1", Status: "contacted", Notes: &notes})

	require.NoError(t, err)
	assert.Equal(t, entity.LeadContacted, got.Status)
	assert.Equal(t, notes, *got.Notes)
	repo.AssertExpectations(t)
}

func TestSetStatusEmptyMeansNew(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, "L1").Return(&entity.Lead{ID: "L1", Status: entity.LeadClosed}, nil)
	repo.On("UpdateStatus", mock.Anything, "L1", entity.LeadNew, (*string)(nil), fixedNow).
		Return(&entity.Lead{ID: "L1", Status: entity.LeadNew}, nil)

	got, err := newLeadUC(repo).SetStatus(context.Background(), SetLeadStatusInput{ID: "L1"})

	require.NoError(t, err)
	assert.Equal(t, entity.LeadNew, got.Status)
}

func TestSetStatusErrors(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, "ghost").Return(nil, entity.ErrNotFound)
	uc := newLeadUC(repo)

	_, err := uc.SetStatus(context.Background(), SetLeadStatusInput{Status: "new"})
	assert.Equal(t, CodeMissingField, ErrorCode(err))
	assert.Equal(t, "Missing lead ID", err.Error())

	_, err = uc.SetStatus(context.Background(), SetLeadStatusInput{ID: "L1", Status: "won"})
	assert.Equal(t, CodeValidation, ErrorCode(err))

	_, err = uc.SetStatus(context.Background(), SetLeadStatusInput{ID: "ghost", Status: "qualified"})
	assert.Equal(t, CodeNotFound, ErrorCode(err))
	assert.Equal(t, "Lead ghost not found", err.Error())

	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
