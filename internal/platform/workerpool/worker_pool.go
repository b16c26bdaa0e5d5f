// internal/platform/workerpool/worker_pool.go
package workerpool

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"blackbird/internal/platform/logx"
)

// Task representa una tarea a ejecutar en el worker pool.
type Task interface {
	// Execute ejecuta la tarea
	Execute(ctx context.Context) error

	// Name retorna el nombre de la tarea
	Name() string
}

// TaskFunc adapta una función a Task.
type TaskFunc struct {
	TaskName string
	Fn       func(ctx context.Context) error
}

// Execute ejecuta la función.
func (t TaskFunc) Execute(ctx context.Context) error { return t.Fn(ctx) }

// Name retorna el nombre de la tarea.
func (t TaskFunc) Name() string { return t.TaskName }

// TaskResult representa el resultado de una tarea.
type TaskResult struct {
	Task     Task
	Error    error
	Duration time.Duration
}

// WorkerPoolConfig configura el worker pool.
type WorkerPoolConfig struct {
	Workers int
	Logger  logx.Logger
}

// WorkerPool ejecuta lotes de tareas con un límite de concurrencia.
// El error de una tarea no cancela las demás.
type WorkerPool struct {
	workers int
	logger  logx.Logger
}

// NewWorkerPool crea un nuevo worker pool.
func NewWorkerPool(cfg WorkerPoolConfig) *WorkerPool {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Logger == nil {
		cfg.Logger = logx.NewSilent()
	}

	return &WorkerPool{
		workers: cfg.Workers,
		logger:  cfg.Logger.With("component", "worker-pool"),
	}
}

// Submit ejecuta las tareas y bloquea hasta que todas terminan.
// Los resultados conservan el orden de entrada. Las tareas que aún no
// empezaron cuando se cancela ctx terminan con ctx.Err().
func (wp *WorkerPool) Submit(ctx context.Context, tasks []Task) []TaskResult {
	results := make([]TaskResult, len(tasks))
	if len(tasks) == 0 {
		return results
	}

	wp.logger.Debug("submitting tasks", "total", len(tasks), "workers", wp.workers)

	var g errgroup.Group
	g.SetLimit(wp.workers)

	for i, task := range tasks {
		g.Go(func() error {
			results[i] = wp.executeTask(ctx, task)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// executeTask ejecuta una tarea individual.
func (wp *WorkerPool) executeTask(ctx context.Context, task Task) TaskResult {
	if err := ctx.Err(); err != nil {
		return TaskResult{Task: task, Error: err}
	}

	start := time.Now()
	err := task.Execute(ctx)
	duration := time.Since(start)

	wp.logger.Debug("task completed",
		"task", task.Name(),
		"duration_ms", duration.Milliseconds(),
		"error", err != nil,
	)

	return TaskResult{Task: task, Error: err, Duration: duration}
}

// Workers retorna el límite de concurrencia.
func (wp *WorkerPool) Workers() int {
	return wp.workers
}
