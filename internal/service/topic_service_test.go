package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sozluk/internal/model"
)

func TestCreateTopic(t *testing.T) {
	db := newTestDB(t)
	svc := NewTopicService(db)

	user := seedUser(t, db, "yazar", model.RoleUser)

	view, err := svc.Create(user.ID, "Türkiye'de Yazılım Sektörü")
	require.NoError(t, err)
	assert.Equal(t, "turkiye-de-yazilim-sektoru", view.Slug)
	assert.Equal(t, user.ID, view.Creator.ID)
	assert.Equal(t, "yazar", view.Creator.Username)
	assert.Equal(t, int64(0), view.EntryCount)
}

func TestCreateTopicDuplicateSlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewTopicService(db)

	user := seedUser(t, db, "yazar", model.RoleUser)
	_, err := svc.Create(user.ID, "Some Topic")
	require.NoError(t, err)

	// A different title producing the same slug still collides.
	_, err = svc.Create(user.ID, "some   topic!")
	assert.Equal(t, http.StatusConflict, appStatus(t, err))
}

func TestGetTopicBySlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewTopicService(db)

	user := seedUser(t, db, "yazar", model.RoleUser)
	topic := seedTopic(t, db, user.ID, "kahve")
	seedEntry(t, db, user.ID, topic.ID, "first")
	seedEntry(t, db, user.ID, topic.ID, "second")

	view, err := svc.GetBySlug("kahve")
	require.NoError(t, err)
	assert.Equal(t, topic.ID, view.ID)
	assert.Equal(t, int64(2), view.EntryCount)

	_, err = svc.GetBySlug("no-such-slug")
	assert.Equal(t, http.StatusNotFound, appStatus(t, err))
}

func TestSearchTopics(t *testing.T) {
	db := newTestDB(t)
	svc := NewTopicService(db)

	user := seedUser(t, db, "yazar", model.RoleUser)
	seedTopic(t, db, user.ID, "go programlama")
	seedTopic(t, db, user.ID, "rust programlama")
	seedTopic(t, db, user.ID, "kahve")

	views, err := svc.Search("programlama")
	require.NoError(t, err)
	assert.Len(t, views, 2)

	views, err = svc.Search("   ")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestTopicList(t *testing.T) {
	db := newTestDB(t)
	svc := NewTopicService(db)

	user := seedUser(t, db, "yazar", model.RoleUser)
	for _, title := range []string{"bir", "iki", "uc"} {
		seedTopic(t, db, user.ID, title)
	}

	views, pagination, err := svc.List(1, 2)
	require.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, int64(3), pagination.Total)
	assert.Equal(t, int64(2), pagination.TotalPages)
}

func TestDeleteTopicCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewTopicService(db)
	votes := NewVoteService(db)

	author := seedUser(t, db, "author", model.RoleUser)
	voter := seedUser(t, db, "voter", model.RoleUser)
	mod := seedUser(t, db, "mod", model.RoleModerator)
	topic := seedTopic(t, db, author.ID, "doomed")
	entry := seedEntry(t, db, author.ID, topic.ID, "content")

	_, err := votes.Toggle(context.Background(), entry.ID, voter.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(mod.ID, topic.ID))

	_, err = svc.GetBySlug("doomed")
	assert.Equal(t, http.StatusNotFound, appStatus(t, err))

	var entryCount, voteCount int64
	require.NoError(t, db.Model(&model.Entry{}).Where("topic_id = ?", topic.ID).Count(&entryCount).Error)
	require.NoError(t, db.Model(&model.Vote{}).Where("entry_id = ?", entry.ID).Count(&voteCount).Error)
	assert.Zero(t, entryCount)
	assert.Zero(t, voteCount)
}

func TestDeleteTopicMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewTopicService(db)
	mod := seedUser(t, db, "mod", model.RoleModerator)

	err := svc.Delete(mod.ID, 9999)
	assert.Equal(t, http.StatusNotFound, appStatus(t, err))
}
