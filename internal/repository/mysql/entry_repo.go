package mysql

import (
	"gorm.io/gorm"

	"sozluk/internal/model"
)

type EntryRepository struct {
	DB *gorm.DB
}

func (r *EntryRepository) Create(entry *model.Entry) error {
	return r.DB.Create(entry).Error
}

// FindByID loads the row regardless of the soft-delete flag; callers
// decide whether a deleted entry counts as found.
func (r *EntryRepository) FindByID(id uint64) (*model.Entry, error) {
	var entry model.Entry
	err := r.DB.First(&entry, id).Error
	return &entry, err
}

// List pages visible entries, newest first, optionally scoped to one
// topic (topicID == 0 means all topics).
func (r *EntryRepository) List(topicID uint64, offset, limit int) ([]model.Entry, int64, error) {
	q := r.DB.Model(&model.Entry{}).Where("is_deleted = ?", false)
	if topicID != 0 {
		q = q.Where("topic_id = ?", topicID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.Entry
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, total, err
}

func (r *EntryRepository) ListByUser(userID uint64, offset, limit int) ([]model.Entry, int64, error) {
	q := r.DB.Model(&model.Entry{}).
		Where("user_id = ? AND is_deleted = ?", userID, false)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.Entry
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, total, err
}

// ListAllByUser returns every visible entry of the user, for the
// top-voted ranking done in the service.
func (r *EntryRepository) ListAllByUser(userID uint64) ([]model.Entry, error) {
	var list []model.Entry
	err := r.DB.Where("user_id = ? AND is_deleted = ?", userID, false).
		Find(&list).Error
	return list, err
}

func (r *EntryRepository) UpdateContent(id uint64, content string) error {
	return r.DB.Model(&model.Entry{}).Where("id = ?", id).
		Update("content", content).Error
}

func (r *EntryRepository) SoftDelete(id uint64) error {
	return r.DB.Model(&model.Entry{}).Where("id = ?", id).
		Update("is_deleted", true).Error
}

// MoveToTopic reassigns the entry to another topic.
func (r *EntryRepository) MoveToTopic(actorID, entryID, topicID uint64) (*model.Entry, error) {
	var entry model.Entry
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, entryID).Error; err != nil {
			return err
		}
		entry.TopicID = topicID
		if err := tx.Save(&entry).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "move_entry", actorID, entryID, map[string]any{
			"topicId": topicID,
		})
	})
	return &entry, err
}

// ForceDelete hard-deletes the entry and its votes, bypassing the
// soft-delete flag.
func (r *EntryRepository) ForceDelete(actorID, entryID uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entry_id = ?", entryID).Delete(&model.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Entry{}, entryID).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "force_delete_entry", actorID, entryID, nil)
	})
}
