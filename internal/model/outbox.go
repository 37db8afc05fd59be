package model

import "time"

// ModerationOutbox records moderation events written in the same
// transaction as the mutation they describe. A relayer drains pending
// rows and hands them to the configured sender.
type ModerationOutbox struct {
	ID        uint64    `gorm:"primaryKey"`
	EventType string    `gorm:"size:32;not null"` // ban / unban / force_delete_entry / ...
	ActorID   uint64    `gorm:"not null"`
	TargetID  uint64    `gorm:"not null"`
	Payload   string    `gorm:"type:json;not null"`
	Status    int8      `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ModerationOutbox) TableName() string { return "moderation_outbox" }
