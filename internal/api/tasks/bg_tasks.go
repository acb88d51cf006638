package tasks

import (
	"context"
	"log/slog"
	"sync"
)

type Task = func()

// BackgroundTasks is a fixed-size worker pool for fire-and-forget jobs,
// such as dropping stale cache entries after a mutation. A panicking
// task kills only its worker, never the server.
type BackgroundTasks struct {
	log        *slog.Logger
	tasks      chan Task
	maxWorkers int
	wg         *sync.WaitGroup
}

func New(log *slog.Logger, maxWorkers int, maxQueueSize int) *BackgroundTasks {
	wg := &sync.WaitGroup{}
	wg.Add(maxWorkers)
	return &BackgroundTasks{
		log:        log,
		maxWorkers: maxWorkers,
		wg:         wg,
		tasks:      make(chan Task, maxQueueSize),
	}
}

func (t *BackgroundTasks) Run() {
	for i := 0; i < t.maxWorkers; i++ {
		go func(worker int) {
			log := t.log.With("worker", worker)
			defer func() {
				if err := recover(); err != nil {
					log.Error("panic in background task", "err", err)
				}
				t.wg.Done()
			}()
			for task := range t.tasks {
				task()
			}
		}(i)
	}
}

func (t *BackgroundTasks) Add(task Task) {
	t.tasks <- task
}

// Shutdown stops accepting tasks and waits for the queue to drain,
// giving up when ctx expires.
func (t *BackgroundTasks) Shutdown(ctx context.Context) error {
	const op = "tasks.BackgroundTasks.Shutdown"
	log := t.log.With("op", op)
	log.Info("shutting down background tasks")
	close(t.tasks)
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()
	select {
	case <-ctx.Done():
		log.Warn("graceful shutdown timed out.. forcing exit", "timeout", ctx.Err())
		return ctx.Err()
	case <-done:
		log.Info("background tasks successfully stopped")
		return nil
	}
}
