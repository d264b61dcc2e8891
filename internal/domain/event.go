package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType - тип события жизненного цикла локации
type EventType string

const (
	EventCreated     EventType = "created"
	EventUpdated     EventType = "updated"
	EventDeactivated EventType = "deactivated"
	EventReactivated EventType = "reactivated"
)

// LocationEvent - событие изменения локации, публикуется в Redis Stream
type LocationEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Type       EventType `json:"type"`
	Level      Level     `json:"level"`
	EntityID   int64     `json:"entity_id"`
	Code       string    `json:"code"`
	ParentCode string    `json:"parent_code,omitempty"`
	Actor      string    `json:"actor"`
	// Changes - имена изменённых полей (для updated)
	Changes    []string  `json:"changes,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewLocationEvent создаёт событие с новым идентификатором
func NewLocationEvent(t EventType, level Level, loc *Location, parentCode, actor string, changes []string) LocationEvent {
	return LocationEvent{
		EventID:    uuid.New(),
		Type:       t,
		Level:      level,
		EntityID:   loc.ID,
		Code:       loc.Code,
		ParentCode: parentCode,
		Actor:      actor,
		Changes:    changes,
		OccurredAt: time.Now().UTC(),
	}
}

// AuditEntry - запись журнала изменений
type AuditEntry struct {
	ID         int64           `db:"id" json:"id"`
	EventID    uuid.UUID       `db:"event_id" json:"eventId"`
	EventType  EventType       `db:"event_type" json:"eventType"`
	Level      Level           `db:"level" json:"level"`
	EntityID   int64           `db:"entity_id" json:"-"`
	Code       string          `db:"code" json:"code"`
	ParentCode *string         `db:"parent_code" json:"parentCode,omitempty"`
	Actor      string          `db:"actor" json:"actor"`
	Changes    json.RawMessage `db:"changes" json:"changes,omitempty"`
	OccurredAt time.Time       `db:"occurred_at" json:"occurredAt"`
	RecordedAt time.Time       `db:"recorded_at" json:"recordedAt"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
