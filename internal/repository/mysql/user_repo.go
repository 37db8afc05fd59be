package mysql

import (
	"time"

	"gorm.io/gorm"

	"sozluk/internal/model"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	return &user, err
}

// FindByLogin matches the credential against username or email.
func (r *UserRepository) FindByLogin(login string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ? OR email = ?", login, login).First(&user).Error
	return &user, err
}

// ListByIDs loads users keyed by id for response enrichment.
func (r *UserRepository) ListByIDs(ids []uint64) (map[uint64]model.User, error) {
	users := make(map[uint64]model.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	var rows []model.User
	if err := r.DB.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, u := range rows {
		users[u.ID] = u
	}
	return users, nil
}

func (r *UserRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) EmailTakenByOther(email string, userID uint64) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).
		Where("email = ? AND id <> ?", email, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Updates(userID uint64, fields map[string]any) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).Updates(fields).Error
}

// UpdateRole sets the role and records the change as a moderation
// event.
func (r *UserRepository) UpdateRole(actorID, userID uint64, role string) (*model.User, error) {
	var user model.User
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		user.Role = role
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "role_change", actorID, userID, map[string]any{
			"role": role,
		})
	})
	return &user, err
}

// List pages users ordered by creation date, optionally filtered by a
// username/email substring.
func (r *UserRepository) List(search string, offset, limit int) ([]model.User, int64, error) {
	q := r.DB.Model(&model.User{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("username LIKE ? OR email LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

func (r *UserRepository) ListBanned() ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("is_banned = ?", true).
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

// SetBan flags the user as banned and records an outbox event in the
// same transaction.
func (r *UserRepository) SetBan(actorID, userID uint64, reason string, until *time.Time) (*model.User, error) {
	var user model.User
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		user.IsBanned = true
		user.BannedUntil = until
		user.BanReason = &reason
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "ban", actorID, userID, map[string]any{
			"reason": reason,
			"until":  until,
		})
	})
	return &user, err
}

// ClearBan resets the ban fields. It is a conditional update with no
// existence check; unknown ids are a no-op.
func (r *UserRepository) ClearBan(actorID, userID uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]any{
			"is_banned":    false,
			"banned_until": nil,
			"ban_reason":   nil,
		}).Error
		if err != nil {
			return err
		}
		return insertOutbox(tx, "unban", actorID, userID, nil)
	})
}

// ClearExpiredBan is the lazy-expiry cleanup run by the ban policy
// check; it does not emit a moderation event.
func (r *UserRepository) ClearExpiredBan(userID uint64) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]any{
		"is_banned":    false,
		"banned_until": nil,
		"ban_reason":   nil,
	}).Error
}

// DeleteCascade removes the user and everything they own: votes are
// deleted, entries soft-deleted, owned topics hard-deleted with their
// entries and votes, then the user row itself.
func (r *UserRepository) DeleteCascade(actorID, userID uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model.User{}, userID).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&model.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Entry{}).Where("user_id = ?", userID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}

		var topicIDs []uint64
		if err := tx.Model(&model.Topic{}).Where("created_by = ?", userID).
			Pluck("id", &topicIDs).Error; err != nil {
			return err
		}
		for _, topicID := range topicIDs {
			if err := deleteTopicCascade(tx, topicID); err != nil {
				return err
			}
		}

		if err := tx.Delete(&model.User{}, userID).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "delete_user", actorID, userID, nil)
	})
}

// ContentCounts returns the user's topic/entry/vote counts for profile
// and admin detail payloads.
func (r *UserRepository) ContentCounts(userID uint64) (topics, entries, votes int64, err error) {
	if err = r.DB.Model(&model.Topic{}).Where("created_by = ?", userID).Count(&topics).Error; err != nil {
		return
	}
	if err = r.DB.Model(&model.Entry{}).Where("user_id = ? AND is_deleted = ?", userID, false).Count(&entries).Error; err != nil {
		return
	}
	err = r.DB.Model(&model.Vote{}).Where("user_id = ?", userID).Count(&votes).Error
	return
}
