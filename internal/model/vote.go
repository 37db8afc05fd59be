package model

import "time"

type Vote struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	EntryID   uint64    `gorm:"not null;index;uniqueIndex:uk_entry_user" json:"entryId"`
	UserID    uint64    `gorm:"not null;index;uniqueIndex:uk_entry_user" json:"userId"`
	Value     int       `gorm:"not null" json:"value"` // +1 or -1
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
