package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeToast          Type = "toast"
	TypeRender         Type = "render"
	TypeSessionCleared Type = "session_cleared"
)

type Event struct {
	ID        string `json:"id"`
	Type      Type   `json:"type"`
	Payload   any    `json:"payload,omitempty"`
	Timestamp string `json:"timestamp"`
}

type ToastPayload struct {
	Message string `json:"message"`
	Failed  bool   `json:"failed,omitempty"`
}

// RenderPayload replaces the content of page in any browser showing it.
type RenderPayload struct {
	Page string `json:"page"`
	HTML string `json:"html"`
}

func New(t Type, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func()) // Returns channel and unsubscribe function
}
