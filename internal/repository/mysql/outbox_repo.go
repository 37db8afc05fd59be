package mysql

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"sozluk/internal/model"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// insertOutbox records a moderation event inside the caller's
// transaction so the event and the mutation commit together.
func insertOutbox(tx *gorm.DB, eventType string, actorID, targetID uint64, payload any) error {
	body := []byte("{}")
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			return err
		}
	}
	return tx.Create(&model.ModerationOutbox{
		EventType: eventType,
		ActorID:   actorID,
		TargetID:  targetID,
		Payload:   string(body),
		Status:    0,
	}).Error
}

// ListPending returns the oldest unsent events, capped at limit.
func (r *OutboxRepository) ListPending(ctx context.Context, limit int) ([]model.ModerationOutbox, error) {
	var rows []model.ModerationOutbox
	err := r.DB.WithContext(ctx).
		Where("status = ?", 0).
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ModerationOutbox{}).
		Where("id = ?", id).
		Update("status", 1).Error
}

func (r *OutboxRepository) MarkRetry(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ModerationOutbox{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"retry": gorm.Expr("retry + 1"),
		}).Error
}
