package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/seerah-hajj/internal/entity"
)

// ManagedTables são as tabelas criadas pelas migrações.
var ManagedTables = []string{"daily_tips", "webinars", "pdf_guides", "form_submissions", "email_subscribers"}

type TableInspector struct {
	DB *sql.DB
}

func NewTableInspector(db *sql.DB) *TableInspector {
	return &TableInspector{DB: db}
}

// Inspect conta as linhas de cada tabela. Tabela ausente não é erro:
// aparece com Exists=false.
func (i *TableInspector) Inspect(ctx context.Context) ([]entity.TableStatus, error) {
	out := make([]entity.TableStatus, 0, len(ManagedTables))
	for _, name := range ManagedTables {
		var n int
		err := i.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+name).Scan(&n)
		switch {
		case err == nil:
			out = append(out, entity.TableStatus{Name: name, Exists: true, Rows: n})
		case isUndefinedTable(err):
			out = append(out, entity.TableStatus{Name: name, Exists: false})
		default:
			return nil, translate(err, "inspect", name)
		}
	}
	return out, nil
}

func (i *TableInspector) Ping(ctx context.Context) error {
	return i.DB.PingContext(ctx)
}
