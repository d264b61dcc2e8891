package repository

import (
	"context"
	"time"

	"github.com/location-registry/internal/domain"
)

// EventPublisher публикует события жизненного цикла локаций
type EventPublisher interface {
	Publish(ctx context.Context, event domain.LocationEvent) error
}

// StreamRepository - интерфейс для работы с Redis Streams
type StreamRepository interface {
	EventPublisher

	// ConsumeBatch читает до maxCount сообщений без длительной блокировки
	ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error)

	// ClaimPending забирает на consumer сообщения группы, оставшиеся без ACK дольше minIdle,
	// начиная с id start. next - курсор следующего вызова, "0-0" после полного прохода.
	ClaimPending(ctx context.Context, stream, group, consumer string, minIdle time.Duration, start string, maxCount int) (messages []domain.StreamMessage, next string, err error)

	// AckMessages подтверждает обработку сообщений
	AckMessages(ctx context.Context, stream, group string, messageIDs []string) error

	// CreateConsumerGroup создаёт consumer group
	CreateConsumerGroup(ctx context.Context, stream, group string) error
}
