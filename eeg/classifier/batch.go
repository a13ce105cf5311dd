package classifier

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Outcome pairs a batch request's result with its error. Exactly one of
// Result and Err is meaningful.
type Outcome struct {
	Index  int
	Result Result
	Err    error
}

// ClassifyBatch classifies reqs on at most Workers() goroutines. Outcomes are
// returned in request order. Per-request failures are reported in the
// outcome. The returned error is non-nil only when ctx ends before every
// request has run, in which case the skipped outcomes carry the context
// error.
func (c *Classifier) ClassifyBatch(ctx context.Context, reqs []Request) ([]Outcome, error) {
	out := make([]Outcome, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	var stopped error

	for i, req := range reqs {
		out[i].Index = i

		if err := gctx.Err(); err != nil {
			stopped = err
			for j := i; j < len(reqs); j++ {
				out[j] = Outcome{Index: j, Err: err}
			}

			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				out[i].Err = err
				return err
			}

			res, err := c.Classify(req)
			out[i] = Outcome{Index: i, Result: res, Err: err}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return out, err
	}

	return out, stopped
}
