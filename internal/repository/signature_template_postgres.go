package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/relaydesk/relaydesk/internal/domain"
	"github.com/relaydesk/relaydesk/pkg/signature"
)

var signatureTemplateColumns = []string{
	"id",
	"name",
	"html_content",
	"tree",
	"created_at",
	"updated_at",
}

type signatureTemplateRepository struct {
	db   *sql.DB
	psql sq.StatementBuilderType
	now  func() time.Time
}

// NewSignatureTemplateRepository creates a new PostgreSQL signature template repository
func NewSignatureTemplateRepository(db *sql.DB) domain.SignatureTemplateRepository {
	return &signatureTemplateRepository{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *signatureTemplateRepository) CreateTemplate(ctx context.Context, template *domain.SignatureTemplate) error {
	treeJSON, err := json.Marshal(template.Tree)
	if err != nil {
		return fmt.Errorf("failed to marshal tree: %w", err)
	}

	now := r.now()
	template.CreatedAt = now
	template.UpdatedAt = now

	query, args, err := r.psql.Insert("signature_templates").
		Columns(signatureTemplateColumns...).
		Values(template.ID, template.Name, template.HTMLContent, treeJSON, template.CreatedAt, template.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create signature template: %w", err)
	}
	return nil
}

func (r *signatureTemplateRepository) GetTemplateByID(ctx context.Context, id string) (*domain.SignatureTemplate, error) {
	query, args, err := r.psql.Select(signatureTemplateColumns...).
		From("signature_templates").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	template, err := scanSignatureTemplate(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrTemplateNotFound{Message: "signature template not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get signature template: %w", err)
	}
	return template, nil
}

func (r *signatureTemplateRepository) ListTemplates(ctx context.Context, limit, offset int) ([]*domain.SignatureTemplate, error) {
	query, args, err := r.psql.Select(signatureTemplateColumns...).
		From("signature_templates").
		OrderBy("updated_at DESC", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list signature templates: %w", err)
	}
	defer rows.Close()

	templates := []*domain.SignatureTemplate{}
	for rows.Next() {
		template, err := scanSignatureTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan signature template: %w", err)
		}
		templates = append(templates, template)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating signature template rows: %w", err)
	}
	return templates, nil
}

func (r *signatureTemplateRepository) UpdateTemplate(ctx context.Context, id string, update domain.SignatureTemplateUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	builder := r.psql.Update("signature_templates")
	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.HTMLContent != nil {
		builder = builder.Set("html_content", *update.HTMLContent)
	}
	if update.Tree != nil {
		treeJSON, err := json.Marshal(update.Tree)
		if err != nil {
			return fmt.Errorf("failed to marshal tree: %w", err)
		}
		builder = builder.Set("tree", treeJSON)
	}

	query, args, err := builder.
		Set("updated_at", r.now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update signature template: %w", err)
	}
	return checkAffected(result)
}

func (r *signatureTemplateRepository) DeleteTemplate(ctx context.Context, id string) error {
	query, args, err := r.psql.Delete("signature_templates").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete signature template: %w", err)
	}
	return checkAffected(result)
}

func checkAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrTemplateNotFound{Message: "signature template not found"}
	}
	return nil
}

// scanSignatureTemplate scans a signature template from a database row
func scanSignatureTemplate(scanner interface {
	Scan(dest ...interface{}) error
}) (*domain.SignatureTemplate, error) {
	var (
		template domain.SignatureTemplate
		treeJSON []byte
	)

	err := scanner.Scan(
		&template.ID,
		&template.Name,
		&template.HTMLContent,
		&treeJSON,
		&template.CreatedAt,
		&template.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(treeJSON) > 0 {
		tree, err := signature.UnmarshalTree(treeJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to decode tree of template %s: %w", template.ID, err)
		}
		template.Tree = tree
	}
	return &template, nil
}
