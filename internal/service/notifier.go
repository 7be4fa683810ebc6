package service

// Event type constants pushed to connected back-office UIs
const (
	EventTemplateSaved       = "template.saved"
	EventTemplateDeleted     = "template.deleted"
	EventMemoTemplateChanged = "memo_template.changed"
)

// Notifier pushes change events to connected clients. The websocket hub
// implements it; tests substitute a no-op.
type Notifier interface {
	BroadcastEvent(eventType string, payload interface{})
}

// NopNotifier drops every event. Service constructors fall back to it when
// handed a nil Notifier, so callers without a hub can pass nil.
type NopNotifier struct{}

func (NopNotifier) BroadcastEvent(string, interface{}) {}
