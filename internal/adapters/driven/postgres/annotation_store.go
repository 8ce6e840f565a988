package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/bhaktikarche/eureka/internal/core/domain"
	"github.com/bhaktikarche/eureka/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AnnotationStore = (*AnnotationStore)(nil)

// AnnotationStore implements driven.AnnotationStore using PostgreSQL.
// Pages are frozen rows, annotations are append-only rows beneath them.
type AnnotationStore struct {
	db *DB
}

// NewAnnotationStore creates a new AnnotationStore
func NewAnnotationStore(db *DB) *AnnotationStore {
	return &AnnotationStore{db: db}
}

// EnsurePage inserts the page if absent and returns the stored row.
// ON CONFLICT DO NOTHING keeps the first writer's content; the follow-up
// select returns whatever actually sits in the table.
func (s *AnnotationStore) EnsurePage(ctx context.Context, page *domain.Page) (*domain.Page, error) {
	insert := `
		INSERT INTO pages (document_id, page_number, content, estimated, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (document_id, page_number) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, insert,
		page.DocumentID,
		page.PageNumber,
		page.Content,
		page.Estimated,
		page.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return s.GetPage(ctx, page.DocumentID, page.PageNumber)
}

// GetPage retrieves a frozen page
func (s *AnnotationStore) GetPage(ctx context.Context, documentID string, pageNumber int) (*domain.Page, error) {
	query := `
		SELECT document_id, page_number, content, estimated, created_at
		FROM pages
		WHERE document_id = $1 AND page_number = $2
	`

	var page domain.Page
	err := s.db.QueryRowContext(ctx, query, documentID, pageNumber).Scan(
		&page.DocumentID,
		&page.PageNumber,
		&page.Content,
		&page.Estimated,
		&page.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Append inserts a single annotation row
func (s *AnnotationStore) Append(ctx context.Context, ann *domain.Annotation) error {
	tagsJSON, err := json.Marshal(ann.Tags)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO annotations (id, document_id, page_number, text, note, start_index, end_index, color, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = s.db.ExecContext(ctx, query,
		ann.ID,
		ann.DocumentID,
		ann.PageNumber,
		ann.Text,
		NullString(nullable(ann.Note)),
		ann.Position.StartIndex,
		ann.Position.EndIndex,
		ann.Color,
		tagsJSON,
		ann.CreatedAt,
		ann.UpdatedAt,
	)
	return err
}

const annotationColumns = `id, document_id, page_number, text, note, start_index, end_index, color, tags, created_at, updated_at`

// ListByPage retrieves a page's annotations in insertion order
func (s *AnnotationStore) ListByPage(ctx context.Context, documentID string, pageNumber int) ([]*domain.Annotation, error) {
	query := `
		SELECT ` + annotationColumns + `
		FROM annotations
		WHERE document_id = $1 AND page_number = $2
		ORDER BY seq
	`

	rows, err := s.db.QueryContext(ctx, query, documentID, pageNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return s.scanAnnotations(rows)
}

// ListByDocument retrieves all annotations across pages, ordered by page
// number then insertion
func (s *AnnotationStore) ListByDocument(ctx context.Context, documentID string) ([]*domain.Annotation, error) {
	query := `
		SELECT ` + annotationColumns + `
		FROM annotations
		WHERE document_id = $1
		ORDER BY page_number, seq
	`

	rows, err := s.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return s.scanAnnotations(rows)
}

// Delete removes one annotation
func (s *AnnotationStore) Delete(ctx context.Context, documentID, annotationID string) error {
	query := `DELETE FROM annotations WHERE document_id = $1 AND id = $2`
	result, err := s.db.ExecContext(ctx, query, documentID, annotationID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByDocument removes all pages and annotations for a document
func (s *AnnotationStore) DeleteByDocument(ctx context.Context, documentID string) error {
	// Annotations cascade from pages
	query := `DELETE FROM pages WHERE document_id = $1`
	_, err := s.db.ExecContext(ctx, query, documentID)
	return err
}

func (s *AnnotationStore) scanAnnotations(rows *sql.Rows) ([]*domain.Annotation, error) {
	var anns []*domain.Annotation
	for rows.Next() {
		var ann domain.Annotation
		var note sql.NullString
		var tagsJSON []byte

		err := rows.Scan(
			&ann.ID,
			&ann.DocumentID,
			&ann.PageNumber,
			&ann.Text,
			&note,
			&ann.Position.StartIndex,
			&ann.Position.EndIndex,
			&ann.Color,
			&tagsJSON,
			&ann.CreatedAt,
			&ann.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		ann.Note = note.String
		ann.Position.Page = ann.PageNumber

		if len(tagsJSON) > 0 {
			if err := json.Unmarshal(tagsJSON, &ann.Tags); err != nil {
				return nil, err
			}
		}

		anns = append(anns, &ann)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return anns, nil
}

// nullable maps an empty string to a nil pointer for NullString
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
