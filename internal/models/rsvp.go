package models

import "time"

const (
	RSVPStatusPending   = "pending"
	RSVPStatusConfirmed = "confirmed"
	RSVPStatusDeclined  = "declined"
)

// ValidRSVPStatus reports whether s belongs to the closed status set.
func ValidRSVPStatus(s string) bool {
	switch s {
	case RSVPStatusPending, RSVPStatusConfirmed, RSVPStatusDeclined:
		return true
	}
	return false
}

type RSVP struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_rsvp_user_event"`
	EventID   uint      `json:"event_id" gorm:"index;uniqueIndex:idx_rsvp_user_event"`
	Status    string    `json:"status" gorm:"size:16"`
	CreatedAt time.Time `json:"created_at"`

	User  User  `json:"-"`
	Event Event `json:"-"`
}
