package models

import "time"

type Event struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:140"`
	Description string    `json:"description"`
	Location    string    `json:"location" gorm:"size:140"`
	StartsAt    time.Time `json:"starts_at" gorm:"index"`
	UserID      uint      `json:"user_id" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`

	User  User   `json:"-"`
	RSVPs []RSVP `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
