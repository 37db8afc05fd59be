package model

import "time"

// ModeratorPermission holds per-user capability flags. A missing record
// reads as all-false. The flags are stored and exposed through the admin
// API; the moderation routes themselves gate on role only.
type ModeratorPermission struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	UserID         uint64    `gorm:"uniqueIndex;not null" json:"userId"`
	CanDeleteEntry bool      `gorm:"not null;default:false" json:"canDeleteEntry"`
	CanDeleteTopic bool      `gorm:"not null;default:false" json:"canDeleteTopic"`
	CanBanUser     bool      `gorm:"not null;default:false" json:"canBanUser"`
	CanEditEntry   bool      `gorm:"not null;default:false" json:"canEditEntry"`
	CanMoveEntry   bool      `gorm:"not null;default:false" json:"canMoveEntry"`
	CanMergeTopic  bool      `gorm:"not null;default:false" json:"canMergeTopic"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
