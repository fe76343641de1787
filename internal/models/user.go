package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:64"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:120"`
	PasswordHash string    `json:"-"`
	AboutMe      string    `json:"about_me" gorm:"size:140"`
	LastSeen     time.Time `json:"last_seen"`
	CreatedAt    time.Time `json:"created_at"`

	Events []Event `json:"-" gorm:"foreignKey:UserID"`
	Posts  []Post  `json:"-" gorm:"foreignKey:UserID"`
}

// SetPassword stores a bcrypt hash of the plaintext password.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
