package model

import "time"

type Entry struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	TopicID   uint64    `gorm:"not null;index" json:"topicId"`
	UserID    uint64    `gorm:"not null;index" json:"userId"`
	IsDeleted bool      `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
