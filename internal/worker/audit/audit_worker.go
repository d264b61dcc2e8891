package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/domain/repository"
	"github.com/location-registry/internal/pkg/metrics"
	"github.com/location-registry/internal/worker"
)

const (
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep      = time.Second
	retryDelay      = 200 * time.Millisecond

	defaultPendingIdle     = time.Minute
	defaultPendingInterval = 30 * time.Second
)

// Config - параметры воркера журнала
type Config struct {
	Stream        string
	ConsumerGroup string
	BatchSize     int
	MaxRetries    int
	// PendingIdle - сколько сообщение должно пролежать без ACK, чтобы его перечитать
	PendingIdle time.Duration
	// PendingInterval - период повторного чтения зависших сообщений
	PendingInterval time.Duration
}

// AuditWorker читает события изменения локаций и пишет их в журнал
type AuditWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	auditRepo    repository.AuditRepository
	cacheRepo    repository.CacheRepository
	stream       string
	consumerName string
	batchSize    int
	maxRetries   int

	pendingIdle     time.Duration
	pendingInterval time.Duration
}

// NewAuditWorker создает воркер журнала. cacheRepo может быть nil.
func NewAuditWorker(
	streamRepo repository.StreamRepository,
	auditRepo repository.AuditRepository,
	cacheRepo repository.CacheRepository,
	cfg Config,
	logger *zap.Logger,
) *AuditWorker {
	hostname, _ := os.Hostname()

	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}
	if cfg.PendingIdle <= 0 {
		cfg.PendingIdle = defaultPendingIdle
	}
	if cfg.PendingInterval <= 0 {
		cfg.PendingInterval = defaultPendingInterval
	}

	return &AuditWorker{
		BaseWorker:   worker.NewBaseWorker("location-audit", cfg.ConsumerGroup, logger),
		streamRepo:   streamRepo,
		auditRepo:    auditRepo,
		cacheRepo:    cacheRepo,
		stream:       cfg.Stream,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		batchSize:    cfg.BatchSize,
		maxRetries:   cfg.MaxRetries,

		pendingIdle:     cfg.PendingIdle,
		pendingInterval: cfg.PendingInterval,
	}
}

// Start запускает воркер
func (w *AuditWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting AuditWorker",
		zap.String("stream", w.stream),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.stream, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	// сообщения, не подтверждённые до перезапуска, забираем сразу
	w.recoverPending(ctx)
	ticker := time.NewTicker(w.pendingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		case <-ticker.C:
			w.recoverPending(ctx)
			continue
		default:
		}

		processed, err := w.ProcessBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			w.Pause(ctx, errorSleep)
			continue
		}
		if processed == 0 {
			w.Pause(ctx, emptyQueueSleep)
		}
	}
}

// ProcessBatch читает и обрабатывает один batch сообщений.
// Возвращает количество прочитанных сообщений.
func (w *AuditWorker) ProcessBatch(ctx context.Context) (int, error) {
	messages, err := w.streamRepo.ConsumeBatch(ctx, w.stream, w.ConsumerGroup(), w.consumerName, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	w.handle(ctx, messages)
	return len(messages), nil
}

// ProcessPending проходит по всем сообщениям группы без ACK старше pendingIdle:
// неудачные записи журнала и сообщения остановленных экземпляров воркера.
func (w *AuditWorker) ProcessPending(ctx context.Context) (int, error) {
	total := 0
	start := "0-0"
	for {
		messages, next, err := w.streamRepo.ClaimPending(ctx, w.stream, w.ConsumerGroup(), w.consumerName, w.pendingIdle, start, w.batchSize)
		if err != nil {
			return total, fmt.Errorf("failed to claim pending messages: %w", err)
		}
		if len(messages) > 0 {
			w.handle(ctx, messages)
			total += len(messages)
		}
		if next == "" || next == "0-0" {
			return total, nil
		}
		if err := ctx.Err(); err != nil {
			return total, err
		}
		start = next
	}
}

func (w *AuditWorker) recoverPending(ctx context.Context) {
	n, err := w.ProcessPending(ctx)
	if err != nil {
		w.Logger().Error("Failed to process pending messages", zap.Error(err))
		return
	}
	if n > 0 {
		w.Logger().Info("Pending messages reprocessed", zap.Int("messages", n))
	}
}

// handle записывает события и подтверждает обработанные сообщения
func (w *AuditWorker) handle(ctx context.Context, messages []domain.StreamMessage) {
	logger := w.Logger()
	acked := make([]string, 0, len(messages))
	recorded := 0

	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			// битое сообщение подтверждаем, чтобы не застревало
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			metrics.AuditEntriesTotal.WithLabelValues("invalid").Inc()
			acked = append(acked, msg.ID)
			continue
		}

		if err := w.record(ctx, event); err != nil {
			// без ACK сообщение останется в pending до ProcessPending
			logger.Error("Failed to record audit entry",
				zap.String("message_id", msg.ID),
				zap.String("event_id", event.EventID.String()),
				zap.Error(err))
			metrics.AuditEntriesTotal.WithLabelValues("failed").Inc()
			continue
		}

		metrics.AuditEntriesTotal.WithLabelValues("recorded").Inc()
		acked = append(acked, msg.ID)
		recorded++
	}

	if recorded > 0 && w.cacheRepo != nil {
		if err := w.cacheRepo.InvalidateRegistryStats(ctx); err != nil {
			logger.Warn("Failed to invalidate stats cache", zap.Error(err))
		}
	}

	if err := w.streamRepo.AckMessages(ctx, w.stream, w.ConsumerGroup(), acked); err != nil {
		// Не критично - запись идемпотентна по event_id
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	logger.Debug("Batch processed",
		zap.Int("messages", len(messages)),
		zap.Int("recorded", recorded))
}

func (w *AuditWorker) record(ctx context.Context, event *domain.LocationEvent) error {
	var err error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if err = w.auditRepo.Record(ctx, *event); err == nil {
			return nil
		}
		if attempt < w.maxRetries && !w.Pause(ctx, retryDelay*time.Duration(attempt)) {
			break
		}
	}
	return err
}

// parseMessage разбирает сообщение стрима в LocationEvent
func parseMessage(msg domain.StreamMessage) (*domain.LocationEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var event domain.LocationEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	level, ok := domain.ParseLevel(string(event.Level))
	if !ok || event.EntityID == 0 {
		return nil, fmt.Errorf("event %s has no target entity", event.EventID)
	}
	event.Level = level

	return &event, nil
}
