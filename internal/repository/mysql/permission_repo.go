package mysql

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sozluk/internal/model"
)

type PermissionRepository struct {
	DB *gorm.DB
}

// Find returns the user's permission record, or a zero-value record
// (all flags false) when none exists.
func (r *PermissionRepository) Find(userID uint64) (*model.ModeratorPermission, error) {
	var perm model.ModeratorPermission
	err := r.DB.Where("user_id = ?", userID).First(&perm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.ModeratorPermission{UserID: userID}, nil
	}
	return &perm, err
}

// Upsert creates or replaces the flags for the user.
func (r *PermissionRepository) Upsert(perm *model.ModeratorPermission) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"can_delete_entry", "can_delete_topic", "can_ban_user",
			"can_edit_entry", "can_move_entry", "can_merge_topic",
		}),
	}).Create(perm).Error
}
