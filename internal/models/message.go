package models

import (
	"encoding/json"
	"time"
)

type CoachMessage struct {
	ID     string    `json:"id"`
	UserID string    `json:"userId"`
	Author string    `json:"coach"`
	Body   string    `json:"content"`
	Date   time.Time `json:"timestamp"`
	IsRead bool      `json:"isRead"`
}

func (message CoachMessage) RecordID() string {
	return message.ID
}

// UnmarshalJSON also accepts the older shape that kept the body under
// "message" and a day-only "date".
func (message *CoachMessage) UnmarshalJSON(data []byte) error {
	type plain CoachMessage
	decoded := struct {
		plain
		LegacyBody string `json:"message"`
		LegacyDate string `json:"date"`
	}{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*message = CoachMessage(decoded.plain)
	if message.Body == "" {
		message.Body = decoded.LegacyBody
	}
	if message.Date.IsZero() && decoded.LegacyDate != "" {
		if day, err := time.Parse("2006-01-02", decoded.LegacyDate); err == nil {
			message.Date = day
		} else if stamp, err := time.Parse(time.RFC3339, decoded.LegacyDate); err == nil {
			message.Date = stamp
		}
	}
	return nil
}
