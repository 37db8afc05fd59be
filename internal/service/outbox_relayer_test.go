package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sozluk/internal/model"
	"sozluk/internal/repository/mysql"
)

func TestModerationWritesOutboxRows(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)

	admin := seedUser(t, db, "admin", model.RoleAdmin)
	user := seedUser(t, db, "target", model.RoleUser)

	until := time.Now().Add(time.Hour)
	_, err := svc.BanUser(admin.ID, user.ID, "spam", &until)
	require.NoError(t, err)
	require.NoError(t, svc.UnbanUser(admin.ID, user.ID))

	repo := &mysql.OutboxRepository{DB: db}
	rows, err := repo.ListPending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ban", rows[0].EventType)
	assert.Equal(t, "unban", rows[1].EventType)
	assert.Equal(t, admin.ID, rows[0].ActorID)
	assert.Equal(t, user.ID, rows[0].TargetID)
	assert.Contains(t, rows[0].Payload, "spam")
}

func TestRelayerDrainsPending(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)

	admin := seedUser(t, db, "admin", model.RoleAdmin)
	user := seedUser(t, db, "target", model.RoleUser)
	_, err := svc.BanUser(admin.ID, user.ID, "spam", nil)
	require.NoError(t, err)

	relayer := NewOutboxRelayer(db, LogSender(zap.NewNop()), zap.NewNop())
	relayer.drainOnce(context.Background())

	repo := &mysql.OutboxRepository{DB: db}
	rows, err := repo.ListPending(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, rows)

	var sent model.ModerationOutbox
	require.NoError(t, db.Where("event_type = ?", "ban").First(&sent).Error)
	assert.Equal(t, int8(1), sent.Status)
}

func TestRelayerRetriesOnSendFailure(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)

	admin := seedUser(t, db, "admin", model.RoleAdmin)
	user := seedUser(t, db, "target", model.RoleUser)
	_, err := svc.BanUser(admin.ID, user.ID, "spam", nil)
	require.NoError(t, err)

	failing := func(ctx context.Context, ev *model.ModerationOutbox) error {
		return errors.New("broker down")
	}
	relayer := NewOutboxRelayer(db, failing, zap.NewNop())
	relayer.drainOnce(context.Background())

	// The row stays pending with a bumped retry counter.
	repo := &mysql.OutboxRepository{DB: db}
	rows, err := repo.ListPending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Retry)
}
