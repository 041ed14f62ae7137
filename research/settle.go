package research

import (
	"context"
	"sync"
)

// Result is the outcome of one item of a fan-out.
type Result[T any] struct {
	Index int
	Value T
	Err   error
}

// settleWorkers caps how many calls run at once. The gateway's limiter
// paces the request rate, this bounds what a large batch can pin.
const settleWorkers = 8

// SettleAll runs fn once per item, at most settleWorkers at a time, and
// returns one Result per item in input order. It completes when every call
// has settled; one item's failure never cancels or hides another's outcome.
func SettleAll[S, T any](ctx context.Context, items []S, fn func(context.Context, S) (T, error)) []Result[T] {
	results := make([]Result[T], len(items))
	sem := make(chan struct{}, settleWorkers)
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item S) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			value, err := fn(ctx, item)
			results[i] = Result[T]{Index: i, Value: value, Err: err}
		}(i, item)
	}
	wg.Wait()
	return results
}
