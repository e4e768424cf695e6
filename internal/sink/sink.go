package sink

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
)

// Sink receives the postings admitted during one scrape session.
type Sink interface {
	Name() string
	Write(ctx context.Context, postings []domain.Posting) error
}

// WriteAll fans postings out to every sink concurrently. A failing sink
// does not stop the others; the first error is returned after all finish.
func WriteAll(ctx context.Context, sinks []Sink, postings []domain.Posting) error {
	if len(postings) == 0 {
		return nil
	}
	var g errgroup.Group
	for _, s := range sinks {
		s := s
		g.Go(func() error {
			if err := s.Write(ctx, postings); err != nil {
				log.Printf("[sink] %s: write failed: %v", s.Name(), err)
				return err
			}
			return nil
		})
	}
	return g.Wait()
}
