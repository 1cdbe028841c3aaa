package genexpr

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/GaryCAICHI/ysyx-workbench/go/expr"
)

// Mismatch is a Case the engine got wrong.
type Mismatch struct {
	Case Case
	Got  expr.Word
	Err  error
}

func (m *Mismatch) Error() string {
	if m.Err != nil {
		return fmt.Sprintf("%q: want %d, got error: %s", m.Case.Expr, m.Case.Want, m.Err)
	}
	return fmt.Sprintf("%q: want %d, got %d", m.Case.Expr, m.Case.Want, m.Got)
}

// Check evaluates every case with e using the given number of workers and
// returns a *multierror.Error holding a *Mismatch for every case that failed
// to evaluate or evaluated to the wrong value.
func Check(ctx context.Context, e *expr.Engine, cases []Case, workers int) error {
	if workers < 1 {
		workers = 1
	}
	var (
		mtx  sync.Mutex
		merr *multierror.Error
	)
	g, ctx := errgroup.WithContext(ctx)
	idx := make(chan int)
	g.Go(func() error {
		defer close(idx)
		for i := range cases {
			select {
			case idx <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range idx {
				c := cases[i]
				got, err := e.Evaluate(c.Expr)
				if err == nil && got == c.Want {
					continue
				}
				mtx.Lock()
				merr = multierror.Append(merr, &Mismatch{Case: c, Got: got, Err: err})
				mtx.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return merr.ErrorOrNil()
}
