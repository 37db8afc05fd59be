package router

import (
	"github.com/gin-gonic/gin"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sozluk/internal/handler"
	"sozluk/internal/middleware"
	"sozluk/internal/pkg"
	"sozluk/internal/repository/redis"
)

func InitRouter(db *gorm.DB, rdb *redislib.Client, smtp pkg.SMTPConfig, logger *zap.Logger) *gin.Engine {
	r := gin.Default()

	tokens := &redis.TokenRepository{Client: rdb}

	auth := handler.NewAuthHandler(db, rdb)
	topic := handler.NewTopicHandler(db)
	entry := handler.NewEntryHandler(db)
	vote := handler.NewVoteHandler(db)
	user := handler.NewUserHandler(db)
	admin := handler.NewAdminHandler(db, smtp, logger)

	login := middleware.Auth(tokens)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register)
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/refresh", auth.Refresh)
		authGroup.POST("/logout", login, auth.Logout)
	}

	topicGroup := r.Group("/topics")
	{
		topicGroup.GET("", topic.List)
		topicGroup.GET("/search/query", topic.Search)
		topicGroup.GET("/:slug", topic.GetBySlug)
		topicGroup.POST("", login, topic.Create)
		topicGroup.DELETE("/:id", login, middleware.RequireModerator(db), topic.Delete)
	}

	entryGroup := r.Group("/entries")
	{
		entryGroup.GET("", entry.List)
		entryGroup.GET("/:id", entry.Get)
		entryGroup.POST("", login, entry.Create)
		entryGroup.PATCH("/:id", login, entry.Update)
		entryGroup.DELETE("/:id", login, entry.Delete)
		entryGroup.DELETE("/:id/force", login, middleware.RequireModerator(db), entry.ForceDelete)
	}

	voteGroup := r.Group("/votes")
	{
		voteGroup.POST("", login, vote.Create)
		voteGroup.GET("/entry/:entryId", middleware.OptionalAuth(tokens), vote.GetEntryVotes)
	}

	userGroup := r.Group("/users")
	{
		userGroup.GET("/:id", user.GetByID)
		userGroup.GET("/username/:username", user.GetByUsername)
		userGroup.GET("/username/:username/entries", user.Entries)
		userGroup.GET("/username/:username/top-entries", user.TopEntries)
		userGroup.PATCH("/profile", login, user.UpdateProfile)
	}

	adminGroup := r.Group("/admin")
	adminGroup.Use(login, middleware.RequireAdmin(db))
	{
		adminGroup.GET("/users", admin.ListUsers)
		adminGroup.GET("/users/:id", admin.GetUser)
		adminGroup.PATCH("/users/:id/role", admin.UpdateUserRole)
		adminGroup.DELETE("/users/:id", admin.DeleteUser)

		adminGroup.PATCH("/topics/:id/move", admin.MoveTopic)
		adminGroup.POST("/topics/:sourceId/merge/:targetId", admin.MergeTopics)
		adminGroup.DELETE("/topics/:id", admin.DeleteTopic)

		adminGroup.PATCH("/entries/:id/move", admin.MoveEntry)
		adminGroup.DELETE("/entries/:id/force", admin.ForceDeleteEntry)

		adminGroup.GET("/statistics", admin.Statistics)
		adminGroup.GET("/activity", admin.ActivityFeed)

		adminGroup.GET("/moderators/:id/permissions", admin.GetPermissions)
		adminGroup.PATCH("/moderators/:id/permissions", admin.UpdatePermissions)

		adminGroup.POST("/users/:id/ban", admin.BanUser)
		adminGroup.POST("/users/:id/unban", admin.UnbanUser)
		adminGroup.GET("/banned-users", admin.BannedUsers)
	}

	return r
}
