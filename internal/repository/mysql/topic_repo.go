package mysql

import (
	"gorm.io/gorm"

	"sozluk/internal/model"
)

type TopicRepository struct {
	DB *gorm.DB
}

func (r *TopicRepository) Create(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

func (r *TopicRepository) FindByID(id uint64) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.First(&topic, id).Error
	return &topic, err
}

func (r *TopicRepository) FindBySlug(slug string) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.Where("slug = ?", slug).First(&topic).Error
	return &topic, err
}

// ListByIDs loads topics keyed by id for response enrichment.
func (r *TopicRepository) ListByIDs(ids []uint64) (map[uint64]model.Topic, error) {
	topics := make(map[uint64]model.Topic, len(ids))
	if len(ids) == 0 {
		return topics, nil
	}
	var rows []model.Topic
	if err := r.DB.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, t := range rows {
		topics[t.ID] = t
	}
	return topics, nil
}

func (r *TopicRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Topic{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *TopicRepository) List(offset, limit int) ([]model.Topic, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Topic{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.Topic
	err := r.DB.Order("created_at DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, total, err
}

// SearchByTitle matches a title substring, newest first, capped at limit.
func (r *TopicRepository) SearchByTitle(query string, limit int) ([]model.Topic, error) {
	var list []model.Topic
	err := r.DB.Where("title LIKE ?", "%"+query+"%").
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *TopicRepository) EntryCount(topicID uint64) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Entry{}).
		Where("topic_id = ? AND is_deleted = ?", topicID, false).
		Count(&count).Error
	return count, err
}

// Rename updates title and slug. The slug is not re-checked here; the
// unique index surfaces collisions.
func (r *TopicRepository) Rename(actorID, topicID uint64, title, slug string) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&topic, topicID).Error; err != nil {
			return err
		}
		topic.Title = title
		topic.Slug = slug
		if err := tx.Save(&topic).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "move_topic", actorID, topicID, map[string]any{
			"title": title,
			"slug":  slug,
		})
	})
	return &topic, err
}

// MergeInto reassigns every entry of the source topic to the target and
// deletes the source.
func (r *TopicRepository) MergeInto(actorID, sourceID, targetID uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Entry{}).Where("topic_id = ?", sourceID).
			Update("topic_id", targetID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Topic{}, sourceID).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "merge_topic", actorID, sourceID, map[string]any{
			"targetId": targetID,
		})
	})
}

// DeleteCascade removes the topic, its entries and their votes.
func (r *TopicRepository) DeleteCascade(actorID, topicID uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteTopicCascade(tx, topicID); err != nil {
			return err
		}
		return insertOutbox(tx, "delete_topic", actorID, topicID, nil)
	})
}

func deleteTopicCascade(tx *gorm.DB, topicID uint64) error {
	var entryIDs []uint64
	if err := tx.Model(&model.Entry{}).Where("topic_id = ?", topicID).
		Pluck("id", &entryIDs).Error; err != nil {
		return err
	}
	if len(entryIDs) > 0 {
		if err := tx.Where("entry_id IN ?", entryIDs).Delete(&model.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("topic_id = ?", topicID).Delete(&model.Entry{}).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&model.Topic{}, topicID).Error
}
