package deck

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// RenderAll renders every section of r concurrently and returns the
// pages in registry order. The first failure cancels ctx for the
// remaining renders.
func RenderAll(ctx context.Context, r *Registry) ([]Page, error) {
	pages := make([]Page, r.Len())
	g, ctx := errgroup.WithContext(ctx)
	for i, s := range r.sections {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := s.Render()
			if err != nil {
				return fmt.Errorf("rendering %s: %w", s.ID(), err)
			}
			pages[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}
