package core

import "github.com/google/uuid"

// EventType identifies the type of UI event
type EventType string

const (
	// Navigation events
	EventNavigate EventType = "navigate"
	EventRefresh  EventType = "refresh"
	EventQuit     EventType = "quit"

	// Session events
	EventLoginSubmit EventType = "login_submit"
	EventLoginCancel EventType = "login_cancel"

	// Fleet commands
	EventLaunchProfile  EventType = "launch_profile"
	EventLaunchAll      EventType = "launch_all"
	EventStartRefresh   EventType = "start_refresh"
	EventStopRefresh    EventType = "stop_refresh"
	EventSafeRefresh    EventType = "safe_refresh"
	EventAddProxies     EventType = "add_proxies"
	EventChangePassword EventType = "change_password"
	EventCloseAll       EventType = "close_all"

	// Quarantine events
	EventLoadQuarantine  EventType = "load_quarantine"
	EventResetQuarantine EventType = "reset_quarantine"
)

// Event represents a user action in the UI
type Event struct {
	Type    EventType         `json:"type"`
	Target  string            `json:"target,omitempty"`  // View or element target
	Profile string            `json:"profile,omitempty"` // Profile name for per-profile commands
	Value   interface{}       `json:"value,omitempty"`   // Generic payload
	Data    map[string]string `json:"data,omitempty"`    // Additional data
}

// NewEvent creates a new event
func NewEvent(eventType EventType) *Event {
	return &Event{
		Type: eventType,
		Data: make(map[string]string),
	}
}

// WithTarget sets the target
func (e *Event) WithTarget(target string) *Event {
	e.Target = target
	return e
}

// WithProfile sets the profile name
func (e *Event) WithProfile(profile string) *Event {
	e.Profile = profile
	return e
}

// WithValue sets the value
func (e *Event) WithValue(value interface{}) *Event {
	e.Value = value
	return e
}

// WithData adds a data key-value pair
func (e *Event) WithData(key, value string) *Event {
	if e.Data == nil {
		e.Data = make(map[string]string)
	}
	e.Data[key] = value
	return e
}

// ============================================
// Credential capture (from view to presenter)
// ============================================

// CredentialResult carries the outcome of a credential prompt. A cancelled
// prompt is a first-class outcome, not an empty string.
type CredentialResult struct {
	Submitted bool
	Value     string
}

// SubmittedCredential wraps an entered password
func SubmittedCredential(value string) CredentialResult {
	return CredentialResult{Submitted: true, Value: value}
}

// CancelledCredential marks a dismissed prompt
func CancelledCredential() CredentialResult {
	return CredentialResult{}
}

// ============================================
// Notification events (from presenter to view)
// ============================================

// NotificationType identifies the type of notification
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

// Notification represents a transient message to display to the user
type Notification struct {
	ID          string           `json:"id"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Duration    int              `json:"duration"` // seconds, 0 = persistent
	Dismissable bool             `json:"dismissable"`
}

// NewNotification creates a new notification
func NewNotification(ntype NotificationType, title, message string) *Notification {
	return &Notification{
		ID:          uuid.New().String(),
		Type:        ntype,
		Title:       title,
		Message:     message,
		Duration:    5,
		Dismissable: true,
	}
}

// ============================================
// State update events (from presenter to view)
// ============================================

// StateUpdate represents a state change notification
type StateUpdate struct {
	ViewType  ViewModelType `json:"view_type"`
	ViewModel ViewModel     `json:"view_model"`
}
