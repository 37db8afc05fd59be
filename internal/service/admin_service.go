package service

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sozluk/internal/model"
	"sozluk/internal/pkg"
	"sozluk/internal/repository/mysql"
)

const recentWindow = 7 * 24 * time.Hour

type AdminService struct {
	users   *mysql.UserRepository
	topics  *mysql.TopicRepository
	entries *mysql.EntryRepository
	votes   *mysql.VoteRepository
	perms   *mysql.PermissionRepository
	stats   *mysql.StatsRepository

	smtp   pkg.SMTPConfig
	logger *zap.Logger
}

func NewAdminService(db *gorm.DB, smtp pkg.SMTPConfig, logger *zap.Logger) *AdminService {
	return &AdminService{
		users:   &mysql.UserRepository{DB: db},
		topics:  &mysql.TopicRepository{DB: db},
		entries: &mysql.EntryRepository{DB: db},
		votes:   &mysql.VoteRepository{DB: db},
		perms:   &mysql.PermissionRepository{DB: db},
		stats:   &mysql.StatsRepository{DB: db},
		smtp:    smtp,
		logger:  logger,
	}
}

// --- user management ---

func (s *AdminService) ListUsers(page, limit int, search string) ([]UserProfile, Pagination, error) {
	page, limit, offset := normalizePage(page, limit, 20)

	users, total, err := s.users.List(search, offset, limit)
	if err != nil {
		return nil, Pagination{}, err
	}

	profiles := make([]UserProfile, 0, len(users))
	for i := range users {
		p, err := s.userProfile(&users[i])
		if err != nil {
			return nil, Pagination{}, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, paginate(page, limit, total), nil
}

func (s *AdminService) GetUser(id uint64) (*UserProfile, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("User not found")
		}
		return nil, err
	}
	return s.userProfile(user)
}

func (s *AdminService) UpdateUserRole(actorID, userID uint64, role string) (*model.User, error) {
	if !model.ValidRole(role) {
		return nil, pkg.BadRequest("Invalid role")
	}
	user, err := s.users.UpdateRole(actorID, userID, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *AdminService) DeleteUser(actorID, userID uint64) error {
	err := s.users.DeleteCascade(actorID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkg.NotFound("User not found")
	}
	return err
}

// --- topic management ---

func (s *AdminService) MoveTopic(actorID, topicID uint64, newTitle string) (*model.Topic, error) {
	slug := pkg.GenerateSlug(newTitle)
	topic, err := s.topics.Rename(actorID, topicID, newTitle, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("Topic not found")
		}
		return nil, err
	}
	return topic, nil
}

func (s *AdminService) MergeTopics(actorID, sourceID, targetID uint64) (*MergeResult, error) {
	source, err := s.topics.FindByID(sourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("Source topic not found")
		}
		return nil, err
	}
	target, err := s.topics.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("Target topic not found")
		}
		return nil, err
	}
	if sourceID == targetID {
		return nil, pkg.Forbidden("Cannot merge a topic with itself")
	}

	if err := s.topics.MergeInto(actorID, sourceID, targetID); err != nil {
		return nil, err
	}
	return &MergeResult{
		SourceTitle: source.Title,
		TargetTitle: target.Title,
		TargetID:    targetID,
	}, nil
}

func (s *AdminService) DeleteTopic(actorID, topicID uint64) error {
	if _, err := s.topics.FindByID(topicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkg.NotFound("Topic not found")
		}
		return err
	}
	return s.topics.DeleteCascade(actorID, topicID)
}

// --- entry management ---

func (s *AdminService) MoveEntry(actorID, entryID, topicID uint64) (*model.Entry, error) {
	if _, err := s.entries.FindByID(entryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("Entry not found")
		}
		return nil, err
	}
	if _, err := s.topics.FindByID(topicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("Target topic not found")
		}
		return nil, err
	}
	return s.entries.MoveToTopic(actorID, entryID, topicID)
}

func (s *AdminService) ForceDeleteEntry(actorID, entryID uint64) error {
	if _, err := s.entries.FindByID(entryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkg.NotFound("Entry not found")
		}
		return err
	}
	return s.entries.ForceDelete(actorID, entryID)
}

// --- statistics / activity ---

type Statistics struct {
	Total  mysql.Totals `json:"total"`
	Recent mysql.Recent `json:"recent"`
}

type MergeResult struct {
	SourceTitle string `json:"sourceTitle"`
	TargetTitle string `json:"targetTitle"`
	TargetID    uint64 `json:"targetId"`
}

type Activity struct {
	ID        uint64    `json:"id"`
	Type      string    `json:"type"`
	User      UserRef   `json:"user"`
	Topic     TopicRef  `json:"topic"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *AdminService) Statistics() (*Statistics, error) {
	totals, err := s.stats.Totals()
	if err != nil {
		return nil, err
	}
	recent, err := s.stats.RecentSince(time.Now().Add(-recentWindow))
	if err != nil {
		return nil, err
	}
	return &Statistics{Total: *totals, Recent: *recent}, nil
}

// ActivityFeed lists recent entries as the moderation activity stream,
// with a truncated content preview.
func (s *AdminService) ActivityFeed(page, limit int) ([]Activity, Pagination, error) {
	page, limit, offset := normalizePage(page, limit, 50)

	entries, total, err := s.entries.List(0, offset, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	views, err := enrichEntries(s.users, s.topics, s.votes, entries)
	if err != nil {
		return nil, Pagination{}, err
	}

	activities := make([]Activity, 0, len(views))
	for _, v := range views {
		content := v.Content
		if len(content) > 100 {
			content = content[:100] + "..."
		}
		activities = append(activities, Activity{
			ID:        v.ID,
			Type:      "entry_created",
			User:      v.User,
			Topic:     v.Topic,
			Content:   content,
			CreatedAt: v.CreatedAt,
		})
	}
	return activities, paginate(page, limit, total), nil
}

// --- moderator permissions ---

func (s *AdminService) GetPermissions(userID uint64) (*model.ModeratorPermission, error) {
	return s.perms.Find(userID)
}

// PermissionPatch carries only the flags the caller wants to change.
type PermissionPatch struct {
	CanDeleteEntry *bool
	CanDeleteTopic *bool
	CanBanUser     *bool
	CanEditEntry   *bool
	CanMoveEntry   *bool
	CanMergeTopic  *bool
}

// UpdatePermissions upserts the record, leaving unmentioned flags
// untouched.
func (s *AdminService) UpdatePermissions(userID uint64, patch PermissionPatch) (*model.ModeratorPermission, error) {
	perm, err := s.perms.Find(userID)
	if err != nil {
		return nil, err
	}

	if patch.CanDeleteEntry != nil {
		perm.CanDeleteEntry = *patch.CanDeleteEntry
	}
	if patch.CanDeleteTopic != nil {
		perm.CanDeleteTopic = *patch.CanDeleteTopic
	}
	if patch.CanBanUser != nil {
		perm.CanBanUser = *patch.CanBanUser
	}
	if patch.CanEditEntry != nil {
		perm.CanEditEntry = *patch.CanEditEntry
	}
	if patch.CanMoveEntry != nil {
		perm.CanMoveEntry = *patch.CanMoveEntry
	}
	if patch.CanMergeTopic != nil {
		perm.CanMergeTopic = *patch.CanMergeTopic
	}

	if err := s.perms.Upsert(perm); err != nil {
		return nil, err
	}
	return s.perms.Find(userID)
}

// --- ban management ---

func (s *AdminService) BanUser(actorID, userID uint64, reason string, until *time.Time) (*model.User, error) {
	user, err := s.users.SetBan(actorID, userID, reason, until)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("User not found")
		}
		return nil, err
	}

	// Best effort only; the ban stands whether or not the mail lands.
	if s.smtp.Enabled() {
		body := pkg.BanNoticeHTML(reason, until)
		if err := pkg.SendEmail(s.smtp, user.Email, "Account banned", body); err != nil {
			s.logger.Warn("ban notice mail failed",
				zap.Uint64("user_id", userID), zap.Error(err))
		}
	}
	return user, nil
}

// UnbanUser clears the ban fields. Like the ban toggle it is a plain
// conditional update; unknown ids succeed without effect.
func (s *AdminService) UnbanUser(actorID, userID uint64) error {
	return s.users.ClearBan(actorID, userID)
}

func (s *AdminService) BannedUsers() ([]model.User, error) {
	return s.users.ListBanned()
}

func (s *AdminService) userProfile(user *model.User) (*UserProfile, error) {
	topics, entries, votes, err := s.users.ContentCounts(user.ID)
	if err != nil {
		return nil, err
	}
	return &UserProfile{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role,
		IsBanned:    user.IsBanned,
		BannedUntil: user.BannedUntil,
		BanReason:   user.BanReason,
		CreatedAt:   user.CreatedAt,
		TopicCount:  topics,
		EntryCount:  entries,
		VoteCount:   votes,
	}, nil
}
