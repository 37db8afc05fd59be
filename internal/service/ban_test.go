package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sozluk/internal/model"
)

func banUser(t *testing.T, db *gorm.DB, userID uint64, reason string, until *time.Time) {
	t.Helper()

	require.NoError(t, db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]any{
		"is_banned":    true,
		"banned_until": until,
		"ban_reason":   reason,
	}).Error)
}

func TestActiveBanBlocksWrites(t *testing.T) {
	db := newTestDB(t)
	topics := NewTopicService(db)

	user := seedUser(t, db, "banned", model.RoleUser)
	until := time.Now().Add(24 * time.Hour)
	banUser(t, db, user.ID, "spam", &until)

	_, err := topics.Create(user.ID, "new topic")
	assert.Equal(t, http.StatusForbidden, appStatus(t, err))
	assert.Contains(t, err.Error(), "banned until")
	assert.Contains(t, err.Error(), "spam")
}

func TestPermanentBanBlocksWrites(t *testing.T) {
	db := newTestDB(t)
	policy := NewBanPolicy(db)

	user := seedUser(t, db, "banned", model.RoleUser)
	banUser(t, db, user.ID, "abuse", nil)

	err := policy.EnsureCanWrite(user.ID)
	assert.Equal(t, http.StatusForbidden, appStatus(t, err))
	assert.Contains(t, err.Error(), "permanently banned")
}

func TestExpiredBanClearsOnWrite(t *testing.T) {
	db := newTestDB(t)
	topics := NewTopicService(db)

	user := seedUser(t, db, "reformed", model.RoleUser)
	until := time.Now().Add(-time.Hour)
	banUser(t, db, user.ID, "old offence", &until)

	// The write attempt itself clears the stale ban.
	_, err := topics.Create(user.ID, "fresh start")
	require.NoError(t, err)

	var reloaded model.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.False(t, reloaded.IsBanned)
	assert.Nil(t, reloaded.BannedUntil)
	assert.Nil(t, reloaded.BanReason)
}

func TestUnbannedUserWrites(t *testing.T) {
	db := newTestDB(t)
	policy := NewBanPolicy(db)

	user := seedUser(t, db, "clean", model.RoleUser)
	assert.NoError(t, policy.EnsureCanWrite(user.ID))
}
