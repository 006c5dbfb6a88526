package calculator

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// task is a half-open range [start, end) of flattened grid indices.
type task struct {
	start int
	end   int
}

// 基于切片任务分配
type executorBaseOnSlice struct {
	workers int
}

func newExecutorBaseOnSlice(workers int) *executorBaseOnSlice {
	if workers < 1 {
		workers = 1
	}
	return &executorBaseOnSlice{workers: workers}
}

// split cuts [0, total) into tasks: every worker gets its share in two
// halves, the remainder goes out one index at a time.
func (e *executorBaseOnSlice) split(total int) []task {
	if total <= 0 {
		return nil
	}
	taskLen, remainder := total/e.workers, total%e.workers
	tasks := make([]task, 0, 2*e.workers+remainder)

	start := 0
	if taskLen == 1 {
		for start < total-remainder {
			tasks = append(tasks, task{start: start, end: start + 1})
			start++
		}
	} else if taskLen > 1 {
		half1, half2 := taskLen/2, taskLen/2
		if taskLen%2 == 1 {
			half2++
		}
		for start < total-remainder {
			tasks = append(tasks, task{start: start, end: start + half1})
			start += half1
			tasks = append(tasks, task{start: start, end: start + half2})
			start += half2
		}
	}

	for i := 0; i < remainder; i++ {
		tasks = append(tasks, task{start: start, end: start + 1})
		start++
	}
	return tasks
}

// run calls fn for every index in [0, total) on at most e.workers goroutines.
// It stops handing out tasks once ctx is done and returns ctx's error.
func (e *executorBaseOnSlice) run(ctx context.Context, total int, fn func(i int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, t := range e.split(total) {
		t := t
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			for i := t.start; i < t.end; i++ {
				if i%64 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				fn(i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
