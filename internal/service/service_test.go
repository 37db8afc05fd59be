package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sozluk/internal/model"
	"sozluk/internal/pkg"
	"sozluk/internal/repository/mysql"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, mysql.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *model.User {
	t.Helper()

	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "irrelevant",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedTopic(t *testing.T, db *gorm.DB, createdBy uint64, title string) *model.Topic {
	t.Helper()

	topic := &model.Topic{
		Title:     title,
		Slug:      pkg.GenerateSlug(title),
		CreatedBy: createdBy,
	}
	require.NoError(t, db.Create(topic).Error)
	return topic
}

func seedEntry(t *testing.T, db *gorm.DB, userID, topicID uint64, content string) *model.Entry {
	t.Helper()

	entry := &model.Entry{
		Content: content,
		TopicID: topicID,
		UserID:  userID,
	}
	require.NoError(t, db.Create(entry).Error)
	return entry
}

func appStatus(t *testing.T, err error) int {
	t.Helper()

	require.Error(t, err)
	return pkg.HTTPStatus(err)
}
