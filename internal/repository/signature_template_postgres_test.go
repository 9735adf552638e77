package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaydesk/relaydesk/internal/domain"
	"github.com/relaydesk/relaydesk/pkg/signature"
)

var fixedNow = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func setupSignatureTemplateRepo(t *testing.T) (*signatureTemplateRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewSignatureTemplateRepository(db).(*signatureTemplateRepository)
	repo.now = func() time.Time { return fixedNow }
	return repo, mock
}

func sampleSignatureTemplate(t *testing.T) *domain.SignatureTemplate {
	t.Helper()
	heading, err := signature.DefaultsFor(signature.KindHeading)
	require.NoError(t, err)
	tree := signature.Tree{heading}
	return &domain.SignatureTemplate{
		ID:          uuid.NewString(),
		Name:        "Sales",
		HTMLContent: signature.Render(tree),
		Tree:        tree,
	}
}

func signatureTemplateRows(templates ...*domain.SignatureTemplate) *sqlmock.Rows {
	rows := sqlmock.NewRows(signatureTemplateColumns)
	for _, tmpl := range templates {
		treeJSON, _ := json.Marshal(tmpl.Tree)
		rows.AddRow(tmpl.ID, tmpl.Name, tmpl.HTMLContent, treeJSON, tmpl.CreatedAt, tmpl.UpdatedAt)
	}
	return rows
}

func TestSignatureTemplateRepository_CreateTemplate(t *testing.T) {
	repo, mock := setupSignatureTemplateRepo(t)
	tmpl := sampleSignatureTemplate(t)
	treeJSON, err := json.Marshal(tmpl.Tree)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO signature_templates`)).
		WithArgs(tmpl.ID, tmpl.Name, tmpl.HTMLContent, treeJSON, fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.CreateTemplate(context.Background(), tmpl))
	assert.Equal(t, fixedNow, tmpl.CreatedAt)
	assert.Equal(t, fixedNow, tmpl.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignatureTemplateRepository_CreateTemplate_DBError(t *testing.T) {
	repo, mock := setupSignatureTemplateRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO signature_templates`)).
		WillReturnError(errors.New("unique violation"))

	err := repo.CreateTemplate(context.Background(), sampleSignatureTemplate(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create signature template")
}

func TestSignatureTemplateRepository_GetTemplateByID(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT id, name, html_content, tree, created_at, updated_at FROM signature_templates WHERE id = $1`)

	t.Run("found", func(t *testing.T) {
		repo, mock := setupSignatureTemplateRepo(t)
		tmpl := sampleSignatureTemplate(t)
		tmpl.CreatedAt = fixedNow
		tmpl.UpdatedAt = fixedNow

		mock.ExpectQuery(query).WithArgs(tmpl.ID).WillReturnRows(signatureTemplateRows(tmpl))

		got, err := repo.GetTemplateByID(context.Background(), tmpl.ID)
		require.NoError(t, err)
		assert.Equal(t, tmpl.Name, got.Name)
		assert.Equal(t, tmpl.HTMLContent, got.HTMLContent)
		require.Len(t, got.Tree, 1)
		assert.Equal(t, tmpl.Tree[0].GetID(), got.Tree[0].GetID())
		assert.Equal(t, tmpl.HTMLContent, signature.Render(got.Tree), "stored tree renders to stored html")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := setupSignatureTemplateRepo(t)
		mock.ExpectQuery(query).WillReturnError(sql.ErrNoRows)

		_, err := repo.GetTemplateByID(context.Background(), uuid.NewString())
		var notFound *domain.ErrTemplateNotFound
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("corrupt tree", func(t *testing.T) {
		repo, mock := setupSignatureTemplateRepo(t)
		id := uuid.NewString()
		rows := sqlmock.NewRows(signatureTemplateColumns).
			AddRow(id, "Broken", "<table></table>", []byte(`[{"id":"x","kind":"marquee"}]`), fixedNow, fixedNow)
		mock.ExpectQuery(query).WillReturnRows(rows)

		_, err := repo.GetTemplateByID(context.Background(), id)
		require.Error(t, err)
		assert.ErrorIs(t, err, signature.ErrUnknownKind)
	})
}

func TestSignatureTemplateRepository_ListTemplates(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT id, name, html_content, tree, created_at, updated_at FROM signature_templates ORDER BY updated_at DESC, id LIMIT 10 OFFSET 5`)

	t.Run("returns rows in order", func(t *testing.T) {
		repo, mock := setupSignatureTemplateRepo(t)
		first := sampleSignatureTemplate(t)
		second := sampleSignatureTemplate(t)
		second.Name = "Support"

		mock.ExpectQuery(query).WillReturnRows(signatureTemplateRows(first, second))

		got, err := repo.ListTemplates(context.Background(), 10, 5)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Sales", got[0].Name)
		assert.Equal(t, "Support", got[1].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result is not nil", func(t *testing.T) {
		repo, mock := setupSignatureTemplateRepo(t)
		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows(signatureTemplateColumns))

		got, err := repo.ListTemplates(context.Background(), 10, 5)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := setupSignatureTemplateRepo(t)
		mock.ExpectQuery(query).WillReturnError(errors.New("db down"))

		_, err := repo.ListTemplates(context.Background(), 10, 5)
		assert.Error(t, err)
	})
}

func TestSignatureTemplateRepository_UpdateTemplate(t *testing.T) {
	id := uuid.NewString()
	name := "Renamed"

	t.Run("name only", func(t *testing.T) {
		repo, mock := setupSignatureTemplateRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE signature_templates SET name = $1, updated_at = $2 WHERE id = $3`)).
			WithArgs(name, fixedNow, id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateTemplate(context.Background(), id, domain.SignatureTemplateUpdate{Name: &name})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tree and html", func(t *testing.T) {
		repo, mock := setupSignatureTemplateRepo(t)
		tmpl := sampleSignatureTemplate(t)
		treeJSON, err := json.Marshal(tmpl.Tree)
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE signature_templates SET html_content = $1, tree = $2, updated_at = $3 WHERE id = $4`)).
			WithArgs(tmpl.HTMLContent, treeJSON, fixedNow, id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.UpdateTemplate(context.Background(), id, domain.SignatureTemplateUpdate{
			HTMLContent: &tmpl.HTMLContent,
			Tree:        tmpl.Tree,
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := setupSignatureTemplateRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE signature_templates`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateTemplate(context.Background(), id, domain.SignatureTemplateUpdate{Name: &name})
		var notFound *domain.ErrTemplateNotFound
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		repo, mock := setupSignatureTemplateRepo(t)
		assert.NoError(t, repo.UpdateTemplate(context.Background(), id, domain.SignatureTemplateUpdate{}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSignatureTemplateRepository_DeleteTemplate(t *testing.T) {
	query := regexp.QuoteMeta(`DELETE FROM signature_templates WHERE id = $1`)
	id := uuid.NewString()

	t.Run("deleted", func(t *testing.T) {
		repo, mock := setupSignatureTemplateRepo(t)
		mock.ExpectExec(query).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteTemplate(context.Background(), id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := setupSignatureTemplateRepo(t)
		mock.ExpectExec(query).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteTemplate(context.Background(), id)
		var notFound *domain.ErrTemplateNotFound
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := setupSignatureTemplateRepo(t)
		mock.ExpectExec(query).WillReturnError(errors.New("db down"))

		err := repo.DeleteTemplate(context.Background(), id)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete signature template")
	})
}
