package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"docverify/internal/domain"
	"docverify/internal/port"
)

type templateRepo struct {
	db *sqlx.DB
}

// NewTemplateRepo creates a new PostgreSQL-backed TemplateRepository.
func NewTemplateRepo(db *sqlx.DB) port.TemplateRepository {
	return &templateRepo{db: db}
}

func (r *templateRepo) Load(ctx context.Context, id string) (*port.TemplateDefinition, error) {
	var def port.TemplateDefinition
	err := r.db.GetContext(ctx, &def,
		`SELECT template_id, format, definition, created_at, updated_at
		 FROM document_templates WHERE template_id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", domain.ErrTemplateNotFound, id)
		}
		return nil, fmt.Errorf("templateRepo.Load: %w", err)
	}
	return &def, nil
}

func (r *templateRepo) List(ctx context.Context) ([]string, error) {
	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids,
		"SELECT template_id FROM document_templates ORDER BY template_id"); err != nil {
		return nil, fmt.Errorf("templateRepo.List: %w", err)
	}
	return ids, nil
}

// Save inserts the definition or replaces the stored one, keeping created_at.
func (r *templateRepo) Save(ctx context.Context, def *port.TemplateDefinition) error {
	now := time.Now().UTC()
	if def.CreatedAt.IsZero() {
		def.CreatedAt = now
	}
	def.UpdatedAt = now

	query := `INSERT INTO document_templates (template_id, format, definition, created_at, updated_at)
		VALUES (:template_id, :format, :definition, :created_at, :updated_at)
		ON CONFLICT (template_id) DO UPDATE
		SET format = EXCLUDED.format, definition = EXCLUDED.definition, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, def); err != nil {
		return fmt.Errorf("templateRepo.Save: %w", err)
	}
	return nil
}

func (r *templateRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM document_templates WHERE template_id = $1", id)
	if err != nil {
		return fmt.Errorf("templateRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %q", domain.ErrTemplateNotFound, id)
	}
	return nil
}

func (r *templateRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
