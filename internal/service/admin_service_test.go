package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sozluk/internal/model"
	"sozluk/internal/pkg"
)

func newAdminService(db *gorm.DB) *AdminService {
	return NewAdminService(db, pkg.SMTPConfig{}, zap.NewNop())
}

func TestUpdateUserRole(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)

	admin := seedUser(t, db, "admin", model.RoleAdmin)
	user := seedUser(t, db, "user", model.RoleUser)

	_, err := svc.UpdateUserRole(admin.ID, user.ID, "SUPERUSER")
	assert.Equal(t, http.StatusBadRequest, appStatus(t, err))

	updated, err := svc.UpdateUserRole(admin.ID, user.ID, model.RoleModerator)
	require.NoError(t, err)
	assert.Equal(t, model.RoleModerator, updated.Role)

	_, err = svc.UpdateUserRole(admin.ID, 9999, model.RoleUser)
	assert.Equal(t, http.StatusNotFound, appStatus(t, err))
}

func TestMergeTopics(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)

	admin := seedUser(t, db, "admin", model.RoleAdmin)
	user := seedUser(t, db, "user", model.RoleUser)
	source := seedTopic(t, db, user.ID, "source")
	target := seedTopic(t, db, user.ID, "target")
	seedEntry(t, db, user.ID, source.ID, "one")
	seedEntry(t, db, user.ID, source.ID, "two")
	seedEntry(t, db, user.ID, target.ID, "existing")

	result, err := svc.MergeTopics(admin.ID, source.ID, target.ID)
	require.NoError(t, err)
	assert.Equal(t, "source", result.SourceTitle)
	assert.Equal(t, "target", result.TargetTitle)

	var moved int64
	require.NoError(t, db.Model(&model.Entry{}).Where("topic_id = ?", target.ID).Count(&moved).Error)
	assert.Equal(t, int64(3), moved)

	var sources int64
	require.NoError(t, db.Model(&model.Topic{}).Where("id = ?", source.ID).Count(&sources).Error)
	assert.Zero(t, sources)
}

func TestMergeTopicWithItself(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)

	admin := seedUser(t, db, "admin", model.RoleAdmin)
	topic := seedTopic(t, db, admin.ID, "solo")

	_, err := svc.MergeTopics(admin.ID, topic.ID, topic.ID)
	assert.Equal(t, http.StatusForbidden, appStatus(t, err))
}

func TestMoveTopic(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)

	admin := seedUser(t, db, "admin", model.RoleAdmin)
	topic := seedTopic(t, db, admin.ID, "old title")

	renamed, err := svc.MoveTopic(admin.ID, topic.ID, "New Title Here")
	require.NoError(t, err)
	assert.Equal(t, "New Title Here", renamed.Title)
	assert.Equal(t, "new-title-here", renamed.Slug)
}

func TestMoveEntry(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)

	admin := seedUser(t, db, "admin", model.RoleAdmin)
	user := seedUser(t, db, "user", model.RoleUser)
	from := seedTopic(t, db, user.ID, "from")
	to := seedTopic(t, db, user.ID, "to")
	entry := seedEntry(t, db, user.ID, from.ID, "wandering")

	moved, err := svc.MoveEntry(admin.ID, entry.ID, to.ID)
	require.NoError(t, err)
	assert.Equal(t, to.ID, moved.TopicID)

	_, err = svc.MoveEntry(admin.ID, entry.ID, 9999)
	assert.Equal(t, http.StatusNotFound, appStatus(t, err))
}

func TestDeleteUserCascades(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	votes := NewVoteService(db)

	admin := seedUser(t, db, "admin", model.RoleAdmin)
	user := seedUser(t, db, "leaving", model.RoleUser)
	other := seedUser(t, db, "other", model.RoleUser)

	owned := seedTopic(t, db, user.ID, "owned topic")
	foreign := seedTopic(t, db, other.ID, "foreign topic")
	seedEntry(t, db, user.ID, owned.ID, "in own topic")
	inForeign := seedEntry(t, db, user.ID, foreign.ID, "in foreign topic")
	otherEntry := seedEntry(t, db, other.ID, foreign.ID, "someone else")

	_, err := votes.Toggle(context.Background(), otherEntry.ID, user.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(admin.ID, user.ID))

	_, err = svc.GetUser(user.ID)
	assert.Equal(t, http.StatusNotFound, appStatus(t, err))

	// Owned topics are gone, entries elsewhere only hidden.
	var topicCount int64
	require.NoError(t, db.Model(&model.Topic{}).Where("id = ?", owned.ID).Count(&topicCount).Error)
	assert.Zero(t, topicCount)

	var hidden model.Entry
	require.NoError(t, db.First(&hidden, inForeign.ID).Error)
	assert.True(t, hidden.IsDeleted)

	var voteCount int64
	require.NoError(t, db.Model(&model.Vote{}).Where("user_id = ?", user.ID).Count(&voteCount).Error)
	assert.Zero(t, voteCount)
}

func TestModeratorPermissionsPatch(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)

	mod := seedUser(t, db, "mod", model.RoleModerator)

	// Absent record reads as all-false.
	perm, err := svc.GetPermissions(mod.ID)
	require.NoError(t, err)
	assert.False(t, perm.CanBanUser)
	assert.False(t, perm.CanDeleteEntry)

	on := true
	perm, err = svc.UpdatePermissions(mod.ID, PermissionPatch{CanBanUser: &on})
	require.NoError(t, err)
	assert.True(t, perm.CanBanUser)
	assert.False(t, perm.CanDeleteEntry)

	// A later patch leaves earlier flags alone.
	perm, err = svc.UpdatePermissions(mod.ID, PermissionPatch{CanDeleteEntry: &on})
	require.NoError(t, err)
	assert.True(t, perm.CanBanUser)
	assert.True(t, perm.CanDeleteEntry)
}

func TestBanAndUnban(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)

	admin := seedUser(t, db, "admin", model.RoleAdmin)
	user := seedUser(t, db, "target", model.RoleUser)

	until := time.Now().Add(48 * time.Hour)
	banned, err := svc.BanUser(admin.ID, user.ID, "spam", &until)
	require.NoError(t, err)
	assert.True(t, banned.IsBanned)
	require.NotNil(t, banned.BanReason)
	assert.Equal(t, "spam", *banned.BanReason)

	list, err := svc.BannedUsers()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, user.ID, list[0].ID)

	require.NoError(t, svc.UnbanUser(admin.ID, user.ID))

	var reloaded model.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.False(t, reloaded.IsBanned)
	assert.Nil(t, reloaded.BanReason)

	// Unbanning an unknown id is a silent no-op.
	assert.NoError(t, svc.UnbanUser(admin.ID, 9999))
}

func TestBanMissingUser(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	admin := seedUser(t, db, "admin", model.RoleAdmin)

	_, err := svc.BanUser(admin.ID, 9999, "spam", nil)
	assert.Equal(t, http.StatusNotFound, appStatus(t, err))
}

func TestStatistics(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	votes := NewVoteService(db)

	user := seedUser(t, db, "user", model.RoleUser)
	voter := seedUser(t, db, "voter", model.RoleUser)
	topic := seedTopic(t, db, user.ID, "konu")
	entry := seedEntry(t, db, user.ID, topic.ID, "content")
	_, err := votes.Toggle(context.Background(), entry.ID, voter.ID, 1)
	require.NoError(t, err)

	stats, err := svc.Statistics()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total.Users)
	assert.Equal(t, int64(1), stats.Total.Topics)
	assert.Equal(t, int64(1), stats.Total.Entries)
	assert.Equal(t, int64(1), stats.Total.Votes)
	assert.Equal(t, int64(2), stats.Recent.Users)
}

func TestActivityFeedTruncates(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)

	user := seedUser(t, db, "user", model.RoleUser)
	topic := seedTopic(t, db, user.ID, "konu")

	long := make([]byte, 150)
	for i := range long {
		long[i] = 'a'
	}
	seedEntry(t, db, user.ID, topic.ID, string(long))

	activities, _, err := svc.ActivityFeed(1, 10)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "entry_created", activities[0].Type)
	assert.Len(t, activities[0].Content, 103)
}

func TestListUsersSearch(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)

	seedUser(t, db, "alice", model.RoleUser)
	seedUser(t, db, "bob", model.RoleUser)

	profiles, pagination, err := svc.ListUsers(1, 20, "ali")
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "alice", profiles[0].Username)
	assert.Equal(t, int64(1), pagination.Total)
}
