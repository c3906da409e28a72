package domain

import (
	"encoding/json"
	"log"
	"time"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// OTP events
	OTPRequestEvent        AuditEventType = "OTP_REQUESTED"
	OTPDeliveryFailedEvent AuditEventType = "OTP_DELIVERY_FAILED"

	// Authentication events
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent AuditEventType = "USER_LOGIN_FAILED"
	UserCreatedEvent      AuditEventType = "USER_CREATED"
	UserLogoutEvent       AuditEventType = "USER_LOGOUT"
	TokenRefreshEvent     AuditEventType = "TOKEN_REFRESHED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType `json:"event_type"`
	UserID    uint           `json:"user_id,omitempty"`
	Email     string         `json:"email,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	ErrorMsg  string         `json:"error_msg,omitempty"`
	Success   bool           `json:"success"`
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, email string) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		Email:     email,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithUserID sets the user id field
func (e *AuditEvent) WithUserID(id uint) *AuditEvent {
	e.UserID = id
	return e
}

// Log writes the event to the process log as a single JSON line
func (e *AuditEvent) Log() {
	data, err := json.Marshal(e)
	if err != nil {
		log.Printf("audit: %s email=%s (marshal failed: %v)", e.EventType, e.Email, err)
		return
	}
	log.Printf("audit: %s", data)
}
