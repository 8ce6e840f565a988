package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/bhaktikarche/eureka/internal/core/domain"
	"github.com/bhaktikarche/eureka/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements driven.DocumentStore using PostgreSQL
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

const documentColumns = `id, filename, original_name, path, size_bytes, mime_type, extracted_text, tags, uploaded_at`

// Save creates or updates a document
func (s *DocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	tagsJSON, err := json.Marshal(doc.Tags)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO documents (id, filename, original_name, path, size_bytes, mime_type, extracted_text, tags, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			filename = EXCLUDED.filename,
			original_name = EXCLUDED.original_name,
			path = EXCLUDED.path,
			size_bytes = EXCLUDED.size_bytes,
			mime_type = EXCLUDED.mime_type,
			extracted_text = EXCLUDED.extracted_text,
			tags = EXCLUDED.tags
	`

	_, err = s.db.ExecContext(ctx, query,
		doc.ID,
		doc.Filename,
		doc.OriginalName,
		doc.Path,
		doc.Size,
		doc.MimeType,
		doc.ExtractedText,
		tagsJSON,
		doc.UploadedAt,
	)
	return err
}

// Get retrieves a document by ID
func (s *DocumentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return s.scanDocument(s.db.QueryRowContext(ctx, query, id))
}

// List retrieves all documents, newest upload first
func (s *DocumentStore) List(ctx context.Context, limit, offset int) ([]*domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		ORDER BY uploaded_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return s.scanDocuments(rows)
}

// Delete deletes a document and everything hanging off it. Pages and
// annotations go with it via ON DELETE CASCADE.
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM documents WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id)
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

// Count returns total document count
func (s *DocumentStore) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM documents`
	var count int
	err := s.db.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}

// Search retrieves documents matching a substring filter over name,
// extracted text and tags
func (s *DocumentStore) Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Document, error) {
	var conditions []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Query != "" {
		p := arg("%" + filter.Query + "%")
		conditions = append(conditions, `(
			original_name ILIKE `+p+`
			OR extracted_text ILIKE `+p+`
			OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) t WHERE t ILIKE `+p+`)
		)`)
	}
	if filter.Year != "" {
		conditions = append(conditions, `tags ? `+arg("year-"+filter.Year))
	}
	if filter.ProgramArea != "" {
		conditions = append(conditions, `tags ? `+arg(strings.ToLower(filter.ProgramArea)))
	}
	if filter.Donor != "" {
		p := arg("%" + filter.Donor + "%")
		conditions = append(conditions, `(
			original_name ILIKE `+p+`
			OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) t WHERE t ILIKE `+p+`)
		)`)
	}

	query := `SELECT ` + documentColumns + ` FROM documents`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY uploaded_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return s.scanDocuments(rows)
}

// Timeline groups uploads into calendar-month buckets
func (s *DocumentStore) Timeline(ctx context.Context) ([]domain.TimelineBucket, error) {
	query := `
		SELECT EXTRACT(YEAR FROM uploaded_at)::int,
		       EXTRACT(MONTH FROM uploaded_at)::int,
		       COUNT(*),
		       COALESCE(SUM(size_bytes), 0)
		FROM documents
		GROUP BY 1, 2
		ORDER BY 1, 2
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []domain.TimelineBucket
	for rows.Next() {
		var b domain.TimelineBucket
		if err := rows.Scan(&b.Year, &b.Month, &b.Count, &b.TotalSize); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func (s *DocumentStore) scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var tagsJSON []byte
	var path, mimeType, extractedText sql.NullString

	err := row.Scan(
		&doc.ID,
		&doc.Filename,
		&doc.OriginalName,
		&path,
		&doc.Size,
		&mimeType,
		&extractedText,
		&tagsJSON,
		&doc.UploadedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	doc.Path = path.String
	doc.MimeType = mimeType.String
	doc.ExtractedText = extractedText.String

	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &doc.Tags); err != nil {
			return nil, err
		}
	}

	return &doc, nil
}

func (s *DocumentStore) scanDocuments(rows *sql.Rows) ([]*domain.Document, error) {
	var docs []*domain.Document
	for rows.Next() {
		var doc domain.Document
		var tagsJSON []byte
		var path, mimeType, extractedText sql.NullString

		err := rows.Scan(
			&doc.ID,
			&doc.Filename,
			&doc.OriginalName,
			&path,
			&doc.Size,
			&mimeType,
			&extractedText,
			&tagsJSON,
			&doc.UploadedAt,
		)
		if err != nil {
			return nil, err
		}

		doc.Path = path.String
		doc.MimeType = mimeType.String
		doc.ExtractedText = extractedText.String

		if len(tagsJSON) > 0 {
			if err := json.Unmarshal(tagsJSON, &doc.Tags); err != nil {
				return nil, err
			}
		}

		docs = append(docs, &doc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}
