package types

type EventType string

const (
	Disemvowel   EventType = "disemvowel"
	Undisemvowel EventType = "undisemvowel"
	Shake        EventType = "shake"
	Unshake      EventType = "unshake"
	Gimp         EventType = "gimp"
	Ungimp       EventType = "ungimp"

	WebhookOK  EventType = "webhook.ok"
	WebhookErr EventType = "webhook.err"
)

// Audit entries are either scoped to an area or free-form ("misc").
type EventCategory string

const (
	AreaCategory EventCategory = "area"
	MiscCategory EventCategory = "misc"
)

// Payload stored as JSON in the event_data column of audit_events.
type AuditData struct {
	Category   EventCategory `json:"category"`
	Actor      string        `json:"actor,omitempty"`
	ActorIPID  int           `json:"actor_ipid,omitempty"`
	Area       string        `json:"area,omitempty"`
	Target     string        `json:"target,omitempty"`
	TargetIPID int           `json:"target_ipid,omitempty"`
	Data       string        `json:"data,omitempty"`
}
