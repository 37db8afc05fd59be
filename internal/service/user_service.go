package service

import (
	"errors"
	"sort"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sozluk/internal/model"
	"sozluk/internal/pkg"
	"sozluk/internal/repository/mysql"
)

type UserService struct {
	repo    *mysql.UserRepository
	entries *mysql.EntryRepository
	topics  *mysql.TopicRepository
	votes   *mysql.VoteRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		repo:    &mysql.UserRepository{DB: db},
		entries: &mysql.EntryRepository{DB: db},
		topics:  &mysql.TopicRepository{DB: db},
		votes:   &mysql.VoteRepository{DB: db},
	}
}

func (s *UserService) GetByID(id uint64) (*UserProfile, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("User not found")
		}
		return nil, err
	}
	return s.profile(user)
}

func (s *UserService) GetByUsername(username string) (*UserProfile, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("User not found")
		}
		return nil, err
	}
	return s.profile(user)
}

// Entries pages the user's visible entries, newest first.
func (s *UserService) Entries(username string, page, limit int) ([]EntryView, Pagination, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Pagination{}, pkg.NotFound("User not found")
		}
		return nil, Pagination{}, err
	}

	page, limit, offset := normalizePage(page, limit, 20)
	entries, total, err := s.entries.ListByUser(user.ID, offset, limit)
	if err != nil {
		return nil, Pagination{}, err
	}

	views, err := s.enrichEntries(entries)
	if err != nil {
		return nil, Pagination{}, err
	}
	return views, paginate(page, limit, total), nil
}

// TopEntries ranks the user's entries by vote total, highest first.
func (s *UserService) TopEntries(username string, limit int) ([]EntryView, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("User not found")
		}
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	entries, err := s.entries.ListAllByUser(user.ID)
	if err != nil {
		return nil, err
	}
	views, err := s.enrichEntries(entries)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].VoteTotal > views[j].VoteTotal
	})
	if len(views) > limit {
		views = views[:limit]
	}
	return views, nil
}

// UpdateProfile lets a logged-in user change their own email and/or
// password.
func (s *UserService) UpdateProfile(userID uint64, email, password string) (*model.User, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("User not found")
		}
		return nil, err
	}

	fields := map[string]any{}

	if email != "" {
		taken, err := s.repo.EmailTakenByOther(email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, pkg.BadRequest("Email already in use")
		}
		fields["email"] = email
		user.Email = email
	}

	if password != "" {
		if len(password) < 6 {
			return nil, pkg.BadRequest("Password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		fields["password"] = string(hash)
	}

	if len(fields) > 0 {
		if err := s.repo.Updates(userID, fields); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (s *UserService) profile(user *model.User) (*UserProfile, error) {
	topics, entries, votes, err := s.repo.ContentCounts(user.ID)
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

func (s *UserService) enrichEntries(entries []model.Entry) ([]EntryView, error) {
	return enrichEntries(s.repo, s.topics, s.votes, entries)
}
