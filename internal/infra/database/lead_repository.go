package database

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/seerah-hajj/internal/entity"
)

const leadColumns = `id, full_name, email, phone, city_country, previous_experience, hajj_status,
		travelling_with, traveller_count, departure_city, rooming_preference, mobility_considerations,
		call_goals, hear_about_us, hear_about_us_other, consent, status, notes, created_at, updated_at`

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}

	query := `
		INSERT INTO form_submissions (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.FullName,
		lead.Email,
		lead.Phone,
		lead.CityCountry,
		lead.PreviousExperience,
		lead.HajjStatus,
		lead.TravellingWith,
		lead.TravellerCount,
		lead.DepartureCity,
		lead.RoomingPreference,
		lead.MobilityConsiderations,
		lead.CallGoals,
		lead.HearAboutUs,
		lead.HearAboutUsOther,
		lead.Consent,
		string(lead.Status),
		lead.Notes,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	return translate(err, "insert", "form_submissions")
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM form_submissions WHERE id = $1`, id)
	lead, err := scanLead(row)
	if err != nil {
		return nil, translate(err, "find", "form_submissions")
	}
	return lead, nil
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM form_submissions`
	args := []any{}
	if filter.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*filter.Status))
	}
	query += ` ORDER BY created_at DESC`
	// Limit 0 = sem limite (busca textual pagina em memória).
	if filter.Limit > 0 {
		query += ` LIMIT $` + strconv.Itoa(len(args)+1)
		args = append(args, filter.Limit)
	}
	query += ` OFFSET $` + strconv.Itoa(len(args)+1)
	args = append(args, filter.Offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "list", "form_submissions")
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, translate(err, "scan", "form_submissions")
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list", "form_submissions")
	}
	return leads, nil
}

func (r *LeadRepository) Count(ctx context.Context, status *entity.LeadStatus) (int, error) {
	query := `SELECT COUNT(*) FROM form_submissions`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*status))
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, translate(err, "count", "form_submissions")
	}
	return total, nil
}

// UpdateStatus troca o status e, se notes vier, sobrescreve as notas; notas
// em branco gravam NULL. Nenhuma linha afetada vira entity.ErrNotFound.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus, notes *string, updatedAt time.Time) (*entity.Lead, error) {
	query := `UPDATE form_submissions SET status = $1, updated_at = $2 WHERE id = $3 RETURNING ` + leadColumns
	args := []any{string(status), updatedAt, id}
	if notes != nil {
		query = `UPDATE form_submissions SET status = $1, updated_at = $2, notes = $4 WHERE id = $3 RETURNING ` + leadColumns
		args = append(args, nullIfBlank(*notes))
	}

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, translate(err, "update", "form_submissions")
	}
	return lead, nil
}

func (r *LeadRepository) CountCities(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT LOWER(TRIM(city_country))) FROM form_submissions`).Scan(&n)
	if err != nil {
		return 0, translate(err, "count cities", "form_submissions")
	}
	return n, nil
}

func nullIfBlank(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var l entity.Lead
	var status string
	err := row.Scan(
		&l.ID,
		&l.FullName,
		&l.Email,
		&l.Phone,
		&l.CityCountry,
		&l.PreviousExperience,
		&l.HajjStatus,
		&l.TravellingWith,
		&l.TravellerCount,
		&l.DepartureCity,
		&l.RoomingPreference,
		&l.MobilityConsiderations,
		&l.CallGoals,
		&l.HearAboutUs,
		&l.HearAboutUsOther,
		&l.Consent,
		&status,
		&l.Notes,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Status = entity.LeadStatus(status)
	return &l, nil
}
