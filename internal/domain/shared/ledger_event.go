package shared

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEvent defines a Kafka message describing a completed import
type LedgerEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	Kind          EventKind `json:"kind"`
	Format        string    `json:"format"`
	Source        string    `json:"source,omitempty"`
	Accounts      int       `json:"accounts"`
	Categories    int       `json:"categories"`
	Transactions  int       `json:"transactions"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
