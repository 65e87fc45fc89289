package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message represents a text message between two users.
// ReadAt is nil until the recipient marks the message read.
type Message struct {
	ID           uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	FromUsername string     `json:"from_username" gorm:"size:50;not null;index"`
	ToUsername   string     `json:"to_username" gorm:"size:50;not null;index"`
	Body         string     `json:"body" gorm:"type:text;not null"`
	SentAt       time.Time  `json:"sent_at" gorm:"not null"`
	ReadAt       *time.Time `json:"read_at"`

	// Relations
	FromUser User `json:"-" gorm:"foreignKey:FromUsername;references:Username"`
	ToUser   User `json:"-" gorm:"foreignKey:ToUsername;references:Username"`
}

// BeforeCreate sets UUID before creating the record.
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IsRead reports whether the recipient has marked the message read.
func (m *Message) IsRead() bool {
	return m.ReadAt != nil
}
