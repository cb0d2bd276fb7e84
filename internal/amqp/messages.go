package amqp

import (
	"encoding/json"
	"time"
)

// RecordSyncMessage asks the backup worker to mirror one habit record.
// It carries only the ID; the worker fetches the full record from storage.
type RecordSyncMessage struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordSyncMessage(id int64) *RecordSyncMessage {
	return &RecordSyncMessage{
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *RecordSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordSyncMessageFromJSON(data []byte) (*RecordSyncMessage, error) {
	var msg RecordSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ReminderMessage is one missed-goals notification, published to the
// reminders queue for a push bridge to deliver.
type ReminderMessage struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	DateKey   string    `json:"dateKey"`
	Timestamp time.Time `json:"timestamp"`
}

func NewReminderMessage(title, body, dateKey string) *ReminderMessage {
	return &ReminderMessage{
		Title:     title,
		Body:      body,
		DateKey:   dateKey,
		Timestamp: time.Now(),
	}
}

func (m *ReminderMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
