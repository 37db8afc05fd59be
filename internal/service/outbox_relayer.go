package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sozluk/internal/model"
	"sozluk/internal/pkg"
	"sozluk/internal/repository/mysql"
)

// Sender delivers one moderation event to the outside world.
type Sender func(ctx context.Context, ev *model.ModerationOutbox) error

// OutboxRelayer drains pending moderation events on a ticker and hands
// them to the configured sender. Delivery failures bump the retry
// counter and the row stays pending.
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
	logger    *zap.Logger
}

func NewOutboxRelayer(db *gorm.DB, sender Sender, logger *zap.Logger) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
		logger:    logger,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("outbox query failed", zap.Error(err))
		return
	}
	for i := range rows {
		ev := rows[i]
		if err := r.sender(ctx, &ev); err != nil {
			r.logger.Warn("outbox send failed",
				zap.Uint64("id", ev.ID), zap.String("event", ev.EventType), zap.Error(err))
			_ = r.repo.MarkRetry(ctx, ev.ID)
			continue
		}
		_ = r.repo.MarkSent(ctx, ev.ID)
	}
}

// KafkaSender publishes events keyed by target id so per-target order
// is preserved across partitions.
func KafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ev *model.ModerationOutbox) error {
		body, err := json.Marshal(map[string]any{
			"event":   ev.EventType,
			"actor":   ev.ActorID,
			"target":  ev.TargetID,
			"payload": json.RawMessage(ev.Payload),
			"at":      ev.CreatedAt,
		})
		if err != nil {
			return err
		}
		return producer.Send(ctx, pkg.MakeKeyFromID(ev.TargetID), body)
	}
}

// LogSender is the fallback when no broker is configured.
func LogSender(logger *zap.Logger) Sender {
	return func(ctx context.Context, ev *model.ModerationOutbox) error {
		logger.Info("moderation event",
			zap.String("event", ev.EventType),
			zap.Uint64("actor", ev.ActorID),
			zap.Uint64("target", ev.TargetID),
			zap.String("payload", ev.Payload))
		return nil
	}
}
