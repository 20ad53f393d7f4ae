package edstate

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ParseAll parses every input independently and concurrently (§5: "core
// is purely synchronous... implementations may parallelize independent
// calls safely"). It returns the first error encountered, if any,
// alongside whatever partial results other goroutines completed before
// the group was cancelled.
func ParseAll(ctx context.Context, inputs []string) ([]*EditorState, error) {
	out := make([]*EditorState, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			doc, err := Parse(input)
			if err != nil {
				return err
			}
			out[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}

// SerializeAll serializes every document independently and concurrently.
func SerializeAll(ctx context.Context, docs []*EditorState, opts SerializeOptions) ([]string, error) {
	out := make([]string, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			out[i] = Serialize(doc, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}
