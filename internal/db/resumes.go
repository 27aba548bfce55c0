package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-structurer/internal/types"
)

// -----------------------------------------------------------------------------
// Parsed Resume Methods
// -----------------------------------------------------------------------------

// SaveParsedResume stores a parse result and returns the stored row
func (db *DB) SaveParsedResume(ctx context.Context, input *ParsedResumeInput) (*ParsedResume, error) {
	docJSON, err := json.Marshal(input.Document)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	p := ParsedResume{
		ID:          uuid.New(),
		Source:      input.Source,
		ContentHash: input.ContentHash,
		RawText:     input.RawText,
		Document:    input.Document,
		Origin:      input.Origin,
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO parsed_resumes (id, source, content_hash, raw_text, document, origin)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		p.ID, p.Source, p.ContentHash, p.RawText, docJSON, p.Origin,
	).Scan(&p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save parsed resume: %w", err)
	}

	return &p, nil
}

// GetParsedResume retrieves a parsed resume by ID. It returns nil, nil when
// no row exists.
func (db *DB) GetParsedResume(ctx context.Context, id uuid.UUID) (*ParsedResume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, source, content_hash, raw_text, document, origin, created_at
		 FROM parsed_resumes WHERE id = $1`,
		id,
	)
	p, err := scanParsedResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get parsed resume: %w", err)
	}
	return p, nil
}

// GetParsedResumeByHash returns the most recent parse of identical content,
// or nil, nil when the content has not been seen.
func (db *DB) GetParsedResumeByHash(ctx context.Context, contentHash string) (*ParsedResume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, source, content_hash, raw_text, document, origin, created_at
		 FROM parsed_resumes WHERE content_hash = $1
		 ORDER BY created_at DESC LIMIT 1`,
		contentHash,
	)
	p, err := scanParsedResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get parsed resume by hash: %w", err)
	}
	return p, nil
}

// ListParsedResumes lists parsed resumes newest first, without raw text,
// and returns the total row count.
func (db *DB) ListParsedResumes(ctx context.Context, opts ListOptions) ([]ParsedResume, int, error) {
	opts = opts.normalize()

	var total int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM parsed_resumes`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count parsed resumes: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, source, content_hash, '' AS raw_text, document, origin, created_at
		 FROM parsed_resumes
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list parsed resumes: %w", err)
	}
	defer rows.Close()

	resumes := []ParsedResume{}
	for rows.Next() {
		p, err := scanParsedResume(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan parsed resume: %w", err)
		}
		resumes = append(resumes, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate parsed resumes: %w", err)
	}

	return resumes, total, nil
}

// DeleteParsedResume removes a parsed resume and any structured document
// stored for it. It reports whether the parsed resume existed.
func (db *DB) DeleteParsedResume(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM structured_resumes WHERE resume_id = $1`, id); err != nil {
		return false, fmt.Errorf("failed to delete structured resume: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM parsed_resumes WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete parsed resume: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit delete: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// -----------------------------------------------------------------------------
// Structured Resume Methods
// -----------------------------------------------------------------------------

// GetStructuredResume retrieves the structured document stored for a resume,
// or nil, nil when there is none.
func (db *DB) GetStructuredResume(ctx context.Context, resumeID uuid.UUID) (*StructuredResume, error) {
	var s StructuredResume
	var docJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT resume_id, document, updated_at FROM structured_resumes WHERE resume_id = $1`,
		resumeID,
	).Scan(&s.ResumeID, &docJSON, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get structured resume: %w", err)
	}

	if err := json.Unmarshal(docJSON, &s.Document); err != nil {
		return nil, fmt.Errorf("failed to decode structured resume: %w", err)
	}
	s.Document.EnsureNonNil()
	return &s, nil
}

// UpsertStructuredResume stores or replaces the structured document for a resume
func (db *DB) UpsertStructuredResume(ctx context.Context, resumeID uuid.UUID, doc types.ResumeDocument) error {
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO structured_resumes (resume_id, document)
		 VALUES ($1, $2)
		 ON CONFLICT (resume_id) DO UPDATE SET document = $2, updated_at = NOW()`,
		resumeID, docJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert structured resume: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func scanParsedResume(row pgx.Row) (*ParsedResume, error) {
	var p ParsedResume
	var docJSON []byte

	if err := row.Scan(&p.ID, &p.Source, &p.ContentHash, &p.RawText, &docJSON, &p.Origin, &p.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(docJSON, &p.Document); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	p.Document.EnsureNonNil()
	return &p, nil
}
