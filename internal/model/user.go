package model

import "time"

const (
	RoleUser      = "USER"
	RoleModerator = "MODERATOR"
	RoleAdmin     = "ADMIN"
)

type User struct {
	ID          uint64     `gorm:"primaryKey" json:"id"`
	Username    string     `gorm:"uniqueIndex;size:32;not null" json:"username"`
	Email       string     `gorm:"uniqueIndex;size:64;not null" json:"email"`
	Password    string     `gorm:"size:255;not null" json:"-"`
	Role        string     `gorm:"size:16;not null;default:USER" json:"role"`
	IsBanned    bool       `gorm:"not null;default:false" json:"isBanned"`
	BannedUntil *time.Time `json:"bannedUntil"`
	BanReason   *string    `gorm:"size:255" json:"banReason"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ValidRole reports whether s is one of the three role values.
func ValidRole(s string) bool {
	return s == RoleUser || s == RoleModerator || s == RoleAdmin
}

// CanModerate reports whether the role grants moderator-level actions.
func (u *User) CanModerate() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}
