package notification

import (
	"time"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityError:
		return true
	default:
		return false
	}
}

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      Severity  `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
	ActionURL *string   `json:"actionUrl,omitempty"`
}

// Draft is what an event reporter supplies; id, read flag and creation time are
// assigned by the store.
type Draft struct {
	Title     string   `json:"title"`
	Message   string   `json:"message"`
	Type      Severity `json:"type"`
	ActionURL *string  `json:"actionUrl,omitempty"`
}

func (d Draft) Build(id string, now time.Time) Notification {
	n := Notification{
		ID:        id,
		Title:     d.Title,
		Message:   d.Message,
		Type:      d.Type,
		CreatedAt: now,
	}

	if d.ActionURL != nil {
		url := *d.ActionURL
		n.ActionURL = &url
	}

	return n
}
