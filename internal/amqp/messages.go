package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TotalsRebuildMessage asks the worker to recompute the contributor rollup
// from the stored filings. It carries no data, only what triggered it.
type TotalsRebuildMessage struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Rows      int       `json:"rows"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTotalsRebuildMessage creates a message with a fresh ID.
func NewTotalsRebuildMessage(source string, rows int) *TotalsRebuildMessage {
	return &TotalsRebuildMessage{
		ID:        uuid.NewString(),
		Source:    source,
		Rows:      rows,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TotalsRebuildMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TotalsRebuildMessageFromJSON creates a message from JSON bytes
func TotalsRebuildMessageFromJSON(data []byte) (*TotalsRebuildMessage, error) {
	var msg TotalsRebuildMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(msg.ID); err != nil {
		return nil, fmt.Errorf("invalid message id %q: %w", msg.ID, err)
	}
	return &msg, nil
}
