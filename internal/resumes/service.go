// Package resumes resolves, parses and stores resumes on top of the
// parsing engine and the database.
package resumes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/resume-structurer/internal/db"
	"github.com/jonathan/resume-structurer/internal/ingestion"
	"github.com/jonathan/resume-structurer/internal/logger"
	"github.com/jonathan/resume-structurer/internal/parsing"
	"github.com/jonathan/resume-structurer/internal/types"
)

var (
	// ErrNotFound is returned when a stored resume does not exist.
	ErrNotFound = errors.New("resume not found")
	// ErrNoStore is returned by storage operations when no database is configured.
	ErrNoStore = errors.New("resume storage is not configured")
)

// Store is the persistence the service needs. *db.DB implements it.
type Store interface {
	SaveParsedResume(ctx context.Context, input *db.ParsedResumeInput) (*db.ParsedResume, error)
	GetParsedResume(ctx context.Context, id uuid.UUID) (*db.ParsedResume, error)
	GetParsedResumeByHash(ctx context.Context, contentHash string) (*db.ParsedResume, error)
	ListParsedResumes(ctx context.Context, opts db.ListOptions) ([]db.ParsedResume, int, error)
	DeleteParsedResume(ctx context.Context, id uuid.UUID) (bool, error)
	GetStructuredResume(ctx context.Context, resumeID uuid.UUID) (*db.StructuredResume, error)
}

// ParseOptions controls optional steps around the engine.
type ParseOptions struct {
	Clean           bool // run ingestion.CleanText first
	NormalizeSkills bool // canonicalize and dedupe skill items afterwards
}

// DefaultConcurrency bounds ParseBatch when no limit is configured.
const DefaultConcurrency = 4

// Service combines parsing with optional storage. A Service without a store
// can still parse; storage operations return ErrNoStore.
type Service struct {
	store       Store
	concurrency int
}

// NewService creates a Service. store may be nil.
func NewService(store Store, concurrency int) *Service {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Service{store: store, concurrency: concurrency}
}

// HasStore reports whether storage operations are available.
func (s *Service) HasStore() bool {
	return s.store != nil
}

// Parse structures text with the given options.
func (s *Service) Parse(text string, opts ParseOptions) types.ResumeDocument {
	if opts.Clean && !parsing.IsStructured(text) {
		text = ingestion.CleanText(text)
	}
	doc := parsing.Parse(text)
	if opts.NormalizeSkills {
		parsing.NormalizeSkills(&doc)
	}
	return doc
}

// Resolve returns the document for a resume. A document written to
// structured storage supersedes the heuristic parse of rawText. A nil
// resumeID skips the lookup. Storage failures are logged and fall back to
// parsing.
func (s *Service) Resolve(ctx context.Context, resumeID uuid.UUID, rawText string, opts ParseOptions) (types.ResumeDocument, string) {
	return s.resolve(ctx, resumeID, func() (types.ResumeDocument, string) {
		return s.Parse(rawText, opts), types.OriginHeuristic
	})
}

// resolve is the single place structured storage supersedes another
// document. fallback supplies the document when nothing does.
func (s *Service) resolve(ctx context.Context, resumeID uuid.UUID, fallback func() (types.ResumeDocument, string)) (types.ResumeDocument, string) {
	if s.store != nil && resumeID != uuid.Nil {
		structured, err := s.store.GetStructuredResume(ctx, resumeID)
		switch {
		case err != nil:
			logger.Ctx(ctx).Warn().Err(err).Str("resume_id", resumeID.String()).
				Msg("structured lookup failed, using heuristic document")
		case structured != nil:
			return structured.Document, types.OriginStructured
		}
	}
	return fallback()
}

// Ingest parses text and stores the result. Identical content already
// stored under the same options is returned instead of being stored twice.
func (s *Service) Ingest(ctx context.Context, source, text string, opts ParseOptions) (*types.StoredResume, bool, error) {
	if s.store == nil {
		return nil, false, ErrNoStore
	}

	hash := contentKey(text, opts)
	existing, err := s.store.GetParsedResumeByHash(ctx, hash)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up resume: %w", err)
	}
	if existing != nil {
		logger.Ctx(ctx).Debug().Str("resume_id", existing.ID.String()).Msg("resume content already stored")
		return s.toStored(ctx, existing), false, nil
	}

	saved, err := s.store.SaveParsedResume(ctx, &db.ParsedResumeInput{
		Source:      source,
		ContentHash: hash,
		RawText:     text,
		Document:    s.Parse(text, opts),
		Origin:      types.OriginHeuristic,
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to store resume: %w", err)
	}

	logger.Ctx(ctx).Info().Str("resume_id", saved.ID.String()).Str("source", source).Msg("resume stored")
	return s.toStored(ctx, saved), true, nil
}

// Get returns a stored resume, resolved against structured storage.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*types.StoredResume, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}

	p, err := s.store.GetParsedResume(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return s.toStored(ctx, p), nil
}

// List returns stored resumes newest first with the total count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]types.StoredResume, int, error) {
	if s.store == nil {
		return nil, 0, ErrNoStore
	}

	rows, total, err := s.store.ListParsedResumes(ctx, db.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list resumes: %w", err)
	}

	result := make([]types.StoredResume, 0, len(rows))
	for i := range rows {
		result = append(result, storedFrom(&rows[i], rows[i].Document, rows[i].Origin))
	}
	return result, total, nil
}

// Delete removes a stored resume.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if s.store == nil {
		return ErrNoStore
	}

	deleted, err := s.store.DeleteParsedResume(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// toStored resolves p against structured storage. The stored heuristic
// document is used rather than re-parsing when nothing supersedes it.
func (s *Service) toStored(ctx context.Context, p *db.ParsedResume) *types.StoredResume {
	doc, origin := s.resolve(ctx, p.ID, func() (types.ResumeDocument, string) {
		return p.Document, p.Origin
	})
	stored := storedFrom(p, doc, origin)
	return &stored
}

// contentKey identifies text parsed under opts, so the same text ingested
// with different options gets its own document.
func contentKey(text string, opts ParseOptions) string {
	return ingestion.ComputeHash(fmt.Sprintf("clean=%t;normalize_skills=%t\n%s", opts.Clean, opts.NormalizeSkills, text))
}

func storedFrom(p *db.ParsedResume, doc types.ResumeDocument, origin string) types.StoredResume {
	return types.StoredResume{
		ID:        p.ID,
		Source:    p.Source,
		Hash:      p.ContentHash,
		Origin:    origin,
		Document:  doc,
		CreatedAt: p.CreatedAt,
	}
}
