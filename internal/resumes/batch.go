package resumes

import (
	"context"

	"github.com/jonathan/resume-structurer/internal/types"
	"golang.org/x/sync/errgroup"
)

// BatchInput is one text to parse in a batch.
type BatchInput struct {
	Source string
	Text   string
}

// BatchResult pairs a parsed document with the input it came from.
type BatchResult struct {
	Source   string               `json:"source"`
	Document types.ResumeDocument `json:"document"`
}

// ParseBatch parses inputs concurrently, at most s.concurrency at a time.
// Results are returned in input order. The only error is cancellation of ctx.
func (s *Service) ParseBatch(ctx context.Context, inputs []BatchInput, opts ParseOptions) ([]BatchResult, error) {
	results := make([]BatchResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, input := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = BatchResult{
				Source:   input.Source,
				Document: s.Parse(input.Text, opts),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
