package worker

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/location-registry/internal/pkg/metrics"
)

const defaultShutdownTimeout = 30 * time.Second

// Option - настройка WorkerManager
type Option func(*WorkerManager)

// WithShutdownTimeout - сколько Stop ждёт завершения воркеров
func WithShutdownTimeout(d time.Duration) Option {
	return func(m *WorkerManager) {
		if d > 0 {
			m.shutdownTimeout = d
		}
	}
}

// WorkerManager запускает воркеры в отдельных горутинах и останавливает их вместе
type WorkerManager struct {
	workers         []Worker
	states          map[string]State
	errs            []error
	logger          *zap.Logger
	shutdownTimeout time.Duration

	wg   sync.WaitGroup
	mu   sync.Mutex
	done chan struct{}
}

func NewWorkerManager(logger *zap.Logger, opts ...Option) *WorkerManager {
	m := &WorkerManager{
		workers:         make([]Worker, 0),
		states:          make(map[string]State),
		logger:          logger,
		shutdownTimeout: defaultShutdownTimeout,
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register регистрирует воркер
func (m *WorkerManager) Register(w Worker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.workers = append(m.workers, w)
	m.states[w.Name()] = StateRegistered
	m.logger.Info("Worker registered", zap.String("name", w.Name()))
}

// Start запускает все зарегистрированные воркеры и сразу возвращается.
// Done закрывается, когда завершились все воркеры.
func (m *WorkerManager) Start(ctx context.Context) error {
	workers := m.snapshot()
	if len(workers) == 0 {
		return fmt.Errorf("no workers registered")
	}

	m.logger.Info("Starting workers", zap.Int("count", len(workers)))

	for _, worker := range workers {
		m.wg.Add(1)
		m.setState(worker.Name(), StateRunning, nil)
		go m.run(ctx, worker)
	}

	go func() {
		m.wg.Wait()
		close(m.done)
	}()

	return nil
}

func (m *WorkerManager) run(ctx context.Context, w Worker) {
	defer m.wg.Done()

	gauge := metrics.WorkersRunning.WithLabelValues(w.Name())
	gauge.Set(1)
	defer gauge.Set(0)

	m.logger.Info("Starting worker", zap.String("name", w.Name()))
	err := w.Start(ctx)
	if err != nil && !stderrors.Is(err, context.Canceled) {
		m.logger.Error("Worker failed",
			zap.String("name", w.Name()),
			zap.Error(err))
		m.setState(w.Name(), StateFailed, fmt.Errorf("%s: %w", w.Name(), err))
		return
	}
	m.setState(w.Name(), StateStopped, nil)
}

// Done закрывается после завершения всех запущенных воркеров
func (m *WorkerManager) Done() <-chan struct{} {
	return m.done
}

// States - текущее состояние каждого воркера
func (m *WorkerManager) States() map[string]State {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]State, len(m.states))
	for name, s := range m.states {
		out[name] = s
	}
	return out
}

// Stop останавливает все воркеры и ждёт их не дольше shutdownTimeout.
// Возвращает ошибки упавших воркеров.
func (m *WorkerManager) Stop() error {
	workers := m.snapshot()

	m.logger.Info("Stopping workers", zap.Int("count", len(workers)))

	for _, worker := range workers {
		if err := worker.Stop(); err != nil {
			m.logger.Error("Failed to stop worker",
				zap.String("name", worker.Name()),
				zap.Error(err))
		}
	}

	waited := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		m.logger.Info("All workers stopped gracefully")
	case <-time.After(m.shutdownTimeout):
		m.logger.Warn("Workers shutdown timed out, some tasks may not have completed",
			zap.Duration("timeout", m.shutdownTimeout))
		return fmt.Errorf("workers shutdown timed out after %v", m.shutdownTimeout)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return stderrors.Join(m.errs...)
}

func (m *WorkerManager) snapshot() []Worker {
	m.mu.Lock()
	defer m.mu.Unlock()

	workers := make([]Worker, len(m.workers))
	copy(workers, m.workers)
	return workers
}

func (m *WorkerManager) setState(name string, s State, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[name] = s
	if err != nil {
		m.errs = append(m.errs, err)
	}
}
