package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/xavierca1/seerah-hajj/internal/entity"
)

type rowScanner interface {
	Scan(dest ...any) error
}

type assignment struct {
	column string
	value  any
}

// contentTable descreve como um tipo de conteúdo mapeia para a sua tabela.
// columns são só as colunas específicas do tipo; id, tags, is_active e os
// timestamps são comuns a todas.
type contentTable[T entity.Content, P any] struct {
	name    string
	columns []string
	newItem func() T
	values  func(T) []any
	targets func(T) []any
	assign  func(P) []assignment
}

func (t contentTable[T, P]) selectList() string {
	cols := append([]string{"id"}, t.columns...)
	cols = append(cols, "tags", "is_active", "created_at", "updated_at")
	return strings.Join(cols, ", ")
}

func (t contentTable[T, P]) scan(row rowScanner) (T, error) {
	item := t.newItem()
	m := item.Meta()

	dest := []any{&m.ID}
	dest = append(dest, t.targets(item)...)
	dest = append(dest, pq.Array(&m.Tags), &m.IsActive, &m.CreatedAt, &m.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		var zero T
		return zero, err
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}
	return item, nil
}

// ContentRepository implementa entity.ContentRepository para qualquer tabela
// de conteúdo. Não há controle de concorrência: o último write vence.
type ContentRepository[T entity.Content, P any] struct {
	DB    *sql.DB
	table contentTable[T, P]
}

func (r *ContentRepository[T, P]) List(ctx context.Context, activeOnly bool) ([]T, error) {
	query := "SELECT " + r.table.selectList() + " FROM " + r.table.name
	if activeOnly {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, translate(err, "list", r.table.name)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := r.table.scan(rows)
		if err != nil {
			return nil, translate(err, "scan", r.table.name)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list", r.table.name)
	}
	return items, nil
}

func (r *ContentRepository[T, P]) Create(ctx context.Context, item T) (T, error) {
	m := item.Meta()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}

	cols := append([]string{"id"}, r.table.columns...)
	cols = append(cols, "tags", "is_active", "created_at", "updated_at")

	args := []any{m.ID}
	args = append(args, r.table.values(item)...)
	args = append(args, pq.Array(tags), m.IsActive, m.CreatedAt, m.UpdatedAt)

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.table.name, strings.Join(cols, ", "), placeholders(1, len(args)), r.table.selectList())

	created, err := r.table.scan(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		var zero T
		return zero, translate(err, "insert", r.table.name)
	}
	return created, nil
}

func (r *ContentRepository[T, P]) Update(ctx context.Context, id string, patch P, updatedAt time.Time) (T, error) {
	sets := r.table.assign(patch)
	sets = append(sets, assignment{"updated_at", updatedAt})

	clauses := make([]string, 0, len(sets))
	args := make([]any, 0, len(sets)+1)
	for i, s := range sets {
		clauses = append(clauses, fmt.Sprintf("%s = $%d", s.column, i+1))
		args = append(args, s.value)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		r.table.name, strings.Join(clauses, ", "), len(args), r.table.selectList())

	updated, err := r.table.scan(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		var zero T
		return zero, translate(err, "update", r.table.name)
	}
	return updated, nil
}

// SoftDelete só desliga is_active. Repetir a chamada não é erro.
func (r *ContentRepository[T, P]) SoftDelete(ctx context.Context, id string, updatedAt time.Time) error {
	query := fmt.Sprintf("UPDATE %s SET is_active = false, updated_at = $1 WHERE id = $2", r.table.name)

	res, err := r.DB.ExecContext(ctx, query, updatedAt, id)
	if err != nil {
		return translate(err, "soft delete", r.table.name)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return translate(err, "soft delete", r.table.name)
	}
	if n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func placeholders(from, n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(ph, ", ")
}
